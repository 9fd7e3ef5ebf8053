package database

import (
	"cmp"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"
)

// TxBuilder assembles a BEGIN/COMMIT block from statements whose variables
// may share names. Each statement's variables are renamed to v<n>_<name>.
type TxBuilder struct {
	statements []string
	vars       map[string]interface{}
	varCounter int
}

func NewTxBuilder() *TxBuilder {
	return &TxBuilder{
		statements: make([]string, 0),
		vars:       make(map[string]interface{}),
	}
}

// Add queues a statement and returns the mapping from its original variable
// names to the namespaced ones.
func (tb *TxBuilder) Add(query string, vars map[string]interface{}) map[string]string {
	mapping := make(map[string]string, len(vars))

	// Longest names first so $stall never rewrites the head of $stall_id.
	names := slices.SortedFunc(maps.Keys(vars), func(a, b string) int {
		if c := cmp.Compare(len(b), len(a)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})

	for _, name := range names {
		tb.varCounter++
		renamed := fmt.Sprintf("v%d_%s", tb.varCounter, name)
		query = varPattern(name).ReplaceAllLiteralString(query, "$"+renamed)
		tb.vars[renamed] = vars[name]
		mapping[name] = renamed
	}

	tb.statements = append(tb.statements, query)
	return mapping
}

// Len returns the number of queued statements.
func (tb *TxBuilder) Len() int {
	return len(tb.statements)
}

// Build returns the transaction block and its merged variables.
func (tb *TxBuilder) Build() (string, map[string]interface{}) {
	if len(tb.statements) == 0 {
		return "", nil
	}

	var sb strings.Builder
	sb.WriteString("BEGIN TRANSACTION;\n")
	for _, stmt := range tb.statements {
		sb.WriteString(stmt)
		if !strings.HasSuffix(strings.TrimSpace(stmt), ";") {
			sb.WriteString(";")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("COMMIT TRANSACTION;")

	return sb.String(), tb.vars
}

// varPattern matches $name as a whole identifier.
func varPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`\$` + regexp.QuoteMeta(name) + `\b`)
}

// ExecuteTransaction sends everything queued on tb in one round trip.
func ExecuteTransaction(ctx context.Context, db Database, tb *TxBuilder) ([]interface{}, error) {
	query, vars := tb.Build()
	if query == "" {
		return nil, nil
	}
	return db.Query(ctx, query, vars)
}

// AtomicBatch is a chainable list of statements that succeed or fail together.
type AtomicBatch struct {
	queries []batchQuery
}

type batchQuery struct {
	query string
	vars  map[string]interface{}
}

func NewAtomicBatch() *AtomicBatch {
	return &AtomicBatch{
		queries: make([]batchQuery, 0),
	}
}

func (ab *AtomicBatch) Add(query string, vars map[string]interface{}) *AtomicBatch {
	ab.queries = append(ab.queries, batchQuery{query: query, vars: vars})
	return ab
}

// Execute runs all queued statements as a single transaction.
func (ab *AtomicBatch) Execute(ctx context.Context, db Database) error {
	if len(ab.queries) == 0 {
		return nil
	}

	tb := NewTxBuilder()
	for _, q := range ab.queries {
		tb.Add(q.query, q.vars)
	}

	_, err := ExecuteTransaction(ctx, db, tb)
	return err
}

func (ab *AtomicBatch) Len() int {
	return len(ab.queries)
}
