package client

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/goccy/go-json"
)

// preferredColumns come first, in this order, when a row has them.
var preferredColumns = []string{"id", "name", "stallName", "cuisine"}

// Render writes o as a titled table with a status line.
func Render(w io.Writer, o *Outcome) error {
	title := "?"
	if o.Query.ID != 0 {
		title = fmt.Sprintf("%d. %s", o.Query.ID, o.Query.Title)
	}
	if _, err := fmt.Fprintf(w, "%s\n%s\n", title, strings.Repeat("=", len(title))); err != nil {
		return err
	}

	switch o.State {
	case StateFailed:
		_, err := fmt.Fprintf(w, "request failed: %v\n\n", o.Err)
		return err
	case StateEmpty:
		if _, err := fmt.Fprintln(w, "no results"); err != nil {
			return err
		}
	default:
		if err := writeTable(w, o.Rows); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%s\n\n", sourceLine(o))
	return err
}

// RenderJSON writes o as one JSON object.
func RenderJSON(w io.Writer, o *Outcome) error {
	out := struct {
		Query      string     `json:"query"`
		Origin     Origin     `json:"origin"`
		State      string     `json:"state"`
		Rows       []Row      `json:"rows"`
		Error      string     `json:"error,omitempty"`
		SnapshotAt *time.Time `json:"snapshotAt,omitempty"`
	}{
		Query:  o.Query.Slug,
		Origin: o.Origin,
		State:  o.State.String(),
		Rows:   o.Rows,
	}
	if out.Rows == nil {
		out.Rows = []Row{}
	}
	if o.Err != nil {
		out.Error = o.Err.Error()
	}
	if !o.SnapshotAt.IsZero() {
		at := o.SnapshotAt
		out.SnapshotAt = &at
	}
	return json.NewEncoder(w).Encode(out)
}

func sourceLine(o *Outcome) string {
	if o.Origin != OriginSnapshot {
		return fmt.Sprintf("(%d rows, live)", len(o.Rows))
	}
	if o.Builtin {
		return fmt.Sprintf("(%d rows, offline: built-in demo data)", len(o.Rows))
	}
	return fmt.Sprintf("(%d rows, offline: snapshot from %s)", len(o.Rows), o.SnapshotAt.Format(time.RFC3339))
}

func writeTable(w io.Writer, rows []Row) error {
	cols := columns(rows)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
	for _, row := range rows {
		cells := make([]string, len(cols))
		for i, c := range cols {
			cells[i] = cell(row[c])
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// columns is the union of row keys: preferred columns first, then the rest
// sorted, with createdAt last.
func columns(rows []Row) []string {
	seen := make(map[string]bool)
	for _, row := range rows {
		for k := range row {
			seen[k] = true
		}
	}

	var cols []string
	for _, c := range preferredColumns {
		if seen[c] {
			cols = append(cols, c)
			delete(seen, c)
		}
	}
	createdAt := seen["createdAt"]
	delete(seen, "createdAt")

	rest := make([]string, 0, len(seen))
	for k := range seen {
		rest = append(rest, k)
	}
	slices.Sort(rest)
	cols = append(cols, rest...)
	if createdAt {
		cols = append(cols, "createdAt")
	}
	return cols
}

func cell(v any) string {
	switch t := v.(type) {
	case nil:
		return "-"
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []any:
		parts := make([]string, len(t))
		for i, e := range t {
			parts[i] = cell(e)
		}
		return strings.Join(parts, ", ")
	case map[string]any:
		if name, ok := t["name"].(string); ok {
			return name
		}
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(raw)
}
