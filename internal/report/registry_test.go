package report

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/forgo/foodfest/api/internal/model"
)

// mockSource counts collection reads and can fail on demand.
type mockSource struct {
	stalls   []*model.Stall
	dishes   []*model.Dish
	visitors []*model.Visitor

	stallCalls, dishCalls, visitorCalls atomic.Int32

	dishErr error
}

func (m *mockSource) Stalls(ctx context.Context) ([]*model.Stall, error) {
	m.stallCalls.Add(1)
	return m.stalls, nil
}

func (m *mockSource) Dishes(ctx context.Context) ([]*model.Dish, error) {
	m.dishCalls.Add(1)
	if m.dishErr != nil {
		return nil, m.dishErr
	}
	return m.dishes, nil
}

func (m *mockSource) Visitors(ctx context.Context) ([]*model.Visitor, error) {
	m.visitorCalls.Add(1)
	return m.visitors, nil
}

// ============================================================================
// Lookup
// ============================================================================

func TestLookup(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key    string
		wantID int
		wantOK bool
	}{
		{"5", 5, true},
		{"query5", 5, true},
		{"Query12", 12, true},
		{" average-price-per-stall ", 5, true},
		{"most-common-cuisine", 11, true},
		{"top-3-selling", 12, true},
		{"0", 0, false},
		{"13", 0, false},
		{"query", 0, false},
		{"", 0, false},
		{"nope", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Parallel()

			def, ok := Lookup(tt.key)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.key, ok, tt.wantOK)
			}
			if ok && def.ID != tt.wantID {
				t.Errorf("Lookup(%q) id = %d, want %d", tt.key, def.ID, tt.wantID)
			}
		})
	}
}

func TestDefinitions_CatalogShape(t *testing.T) {
	t.Parallel()

	defs := Definitions()
	if len(defs) != 12 {
		t.Fatalf("expected 12 reports, got %d", len(defs))
	}

	slugs := make(map[string]bool)
	for i, d := range defs {
		if d.ID != i+1 {
			t.Errorf("report at %d has id %d", i, d.ID)
		}
		if d.Slug == "" || d.Title == "" {
			t.Errorf("report %d missing slug or title", d.ID)
		}
		if slugs[d.Slug] {
			t.Errorf("duplicate slug %q", d.Slug)
		}
		slugs[d.Slug] = true
		if d.Needs == 0 {
			t.Errorf("report %d reads nothing", d.ID)
		}
	}

	defs[0].Slug = "mutated"
	if Definitions()[0].Slug == "mutated" {
		t.Error("Definitions should return a copy")
	}
}

// ============================================================================
// Load / Execute
// ============================================================================

func TestLoad_FetchesOnlyNeededCollections(t *testing.T) {
	t.Parallel()

	src := &mockSource{stalls: []*model.Stall{stall("s1", "Thai", 1)}}

	ds, err := Load(context.Background(), src, Stalls)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ds.Stalls) != 1 {
		t.Errorf("expected stalls to be loaded")
	}
	if src.stallCalls.Load() != 1 || src.dishCalls.Load() != 0 || src.visitorCalls.Load() != 0 {
		t.Errorf("unexpected reads: stalls=%d dishes=%d visitors=%d",
			src.stallCalls.Load(), src.dishCalls.Load(), src.visitorCalls.Load())
	}
}

func TestLoad_PropagatesErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection refused")
	src := &mockSource{dishErr: boom}

	_, err := Load(context.Background(), src, Dishes|Stalls)
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped source error, got %v", err)
	}
}

func TestExecute_JoinsAcrossCollections(t *testing.T) {
	t.Parallel()

	src := &mockSource{
		stalls: []*model.Stall{stall("s1", "Thai", 1)},
		dishes: []*model.Dish{dish("d1", "s1", 12, 9.5)},
	}
	def, _ := Lookup("top-rated-dishes")

	res, err := Execute(context.Background(), src, def, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	views, ok := res.Rows.([]DishView)
	if !ok {
		t.Fatalf("unexpected row type %T", res.Rows)
	}
	if res.Count != 1 || views[0].Stall == nil || views[0].Stall.Name != "Stall s1" {
		t.Errorf("unexpected result %+v", res)
	}
	if src.visitorCalls.Load() != 0 {
		t.Error("visitors should not be read")
	}
}

// ============================================================================
// Run / RunAll
// ============================================================================

func TestRun_SingleReportOnEmptyDataset(t *testing.T) {
	t.Parallel()

	def, _ := Lookup("most-popular-dish")
	res := Run(nil, def, DefaultOptions())

	if res.Count != 0 {
		t.Errorf("expected zero rows, got %d", res.Count)
	}
	rows, ok := res.Rows.([]DishView)
	if !ok || rows == nil {
		t.Errorf("expected empty non-nil slice, got %#v", res.Rows)
	}
}

func TestRun_TotalContestsOption(t *testing.T) {
	t.Parallel()

	ds := &Dataset{Stalls: []*model.Stall{
		stall("two", "X", 0, "a", "b"),
		stall("three", "X", 0, "a", "b", "c"),
	}}
	def, _ := Lookup("10")

	if got := Run(ds, def, Options{TotalContests: 2}); got.Count != 1 {
		t.Errorf("expected one stall with two contests, got %d", got.Count)
	}
	if got := Run(ds, def, Options{}); got.Count != 1 || got.Rows.([]*model.Stall)[0].ID != "three" {
		t.Errorf("zero option should fall back to default, got %+v", got)
	}
}

func TestRunAll_CatalogOrder(t *testing.T) {
	t.Parallel()

	results := RunAll(&Dataset{}, DefaultOptions())

	if len(results) != len(definitions) {
		t.Fatalf("expected %d results, got %d", len(definitions), len(results))
	}
	for i, r := range results {
		if r == nil {
			t.Fatalf("result %d is nil", i)
		}
		if r.Definition.ID != i+1 {
			t.Errorf("result %d has id %d", i, r.Definition.ID)
		}
		if r.Rows == nil {
			t.Errorf("report %d returned nil rows", r.Definition.ID)
		}
	}
}

func TestExecuteAll_ReadsEachCollectionOnce(t *testing.T) {
	t.Parallel()

	src := &mockSource{}

	if _, err := ExecuteAll(context.Background(), src, DefaultOptions()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if src.stallCalls.Load() != 1 || src.dishCalls.Load() != 1 || src.visitorCalls.Load() != 1 {
		t.Errorf("expected one read per collection, got stalls=%d dishes=%d visitors=%d",
			src.stallCalls.Load(), src.dishCalls.Load(), src.visitorCalls.Load())
	}
}

func TestCollection_String(t *testing.T) {
	t.Parallel()

	if got := (Dishes | Stalls).String(); got != "stalls+dishes" {
		t.Errorf("got %q", got)
	}
	if got := Collection(0).String(); got != "none" {
		t.Errorf("got %q", got)
	}
}
