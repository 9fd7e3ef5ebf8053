package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/foodfest/api/internal/database"
	"github.com/forgo/foodfest/api/internal/model"
)

// mockDB is a func-field database.Database for tests that don't need a server.
type mockDB struct {
	QueryFunc func(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
}

func (m *mockDB) Connect(ctx context.Context) error { return nil }
func (m *mockDB) Close() error                      { return nil }
func (m *mockDB) Ping(ctx context.Context) error    { return nil }

func (m *mockDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, query, vars)
	}
	return nil, nil
}

func (m *mockDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := m.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return database.FirstRecord(results)
}

func (m *mockDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := m.Query(ctx, query, vars)
	return err
}

func (m *mockDB) BeginTx(ctx context.Context) (database.Transaction, error) {
	return nil, errors.New("not supported")
}

func ok(records ...interface{}) map[string]interface{} {
	return map[string]interface{}{"status": "OK", "result": records}
}

// ============================================================================
// Parsing
// ============================================================================

func TestParseStall_SurrealTypes(t *testing.T) {
	t.Parallel()

	created := time.Date(2026, 7, 4, 12, 0, 0, 0, time.UTC)
	s := parseStall(map[string]interface{}{
		"id":         models.RecordID{Table: "stall", ID: "k2x9"},
		"name":       "Spice Route",
		"cuisine":    "Indian",
		"sales":      uint64(1500),
		"live_demo":  true,
		"contests":   []interface{}{"curry", "chili"},
		"created_on": models.CustomDateTime{Time: created},
	})

	if s.ID != "stall:k2x9" {
		t.Errorf("id = %q", s.ID)
	}
	if s.Sales != 1500 {
		t.Errorf("sales = %v", s.Sales)
	}
	if !s.LiveDemo || len(s.Contests) != 2 {
		t.Errorf("unexpected stall %+v", s)
	}
	if !s.CreatedOn.Equal(created) {
		t.Errorf("created = %v", s.CreatedOn)
	}
}

func TestParseDish_MissingArraysAreEmpty(t *testing.T) {
	t.Parallel()

	d := parseDish(map[string]interface{}{
		"id":       "dish:a",
		"stall_id": "stall:gone",
		"price":    int64(12),
		"rating":   9.5,
	})

	if d.SoldBy == nil || len(d.SoldBy) != 0 {
		t.Errorf("soldBy should be empty, got %#v", d.SoldBy)
	}
	if d.StallID != "stall:gone" || d.Price != 12 || d.Rating != 9.5 {
		t.Errorf("unexpected dish %+v", d)
	}
}

func TestRecordID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   interface{}
		want string
	}{
		{"stall:a", "stall:a"},
		{models.RecordID{Table: "dish", ID: "b"}, "dish:b"},
		{&models.RecordID{Table: "visitor", ID: 7}, "visitor:7"},
		{map[string]interface{}{"tb": "stall", "id": "c"}, "stall:c"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := recordID(tt.in); got != tt.want {
			t.Errorf("recordID(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ============================================================================
// Queries (mocked)
// ============================================================================

func TestStallRepository_ExistingIDs_SkipsMalformedIDs(t *testing.T) {
	t.Parallel()

	var gotQuery string
	var gotVars map[string]interface{}
	db := &mockDB{QueryFunc: func(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
		gotQuery, gotVars = query, vars
		return []interface{}{ok(map[string]interface{}{"id": models.RecordID{Table: "stall", ID: "a"}})}, nil
	}}

	found, err := NewStallRepository(db).ExistingIDs(context.Background(), []string{"stall:a", "stall:b", "dish:c", "nonsense"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gotVars) != 2 {
		t.Errorf("expected only stall ids to be queried, got %v", gotVars)
	}
	if !strings.Contains(gotQuery, "type::record($r0), type::record($r1)") {
		t.Errorf("unexpected query %q", gotQuery)
	}
	if !found["stall:a"] || found["stall:b"] {
		t.Errorf("unexpected result %v", found)
	}
}

func TestStallRepository_ExistingIDs_NoQueryForNoCandidates(t *testing.T) {
	t.Parallel()

	db := &mockDB{QueryFunc: func(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
		t.Error("no query expected")
		return nil, nil
	}}

	found, err := NewStallRepository(db).ExistingIDs(context.Background(), []string{"", "x"})
	if err != nil || len(found) != 0 {
		t.Errorf("unexpected result %v, %v", found, err)
	}
}

func TestFestivalRepository_Summary(t *testing.T) {
	t.Parallel()

	db := &mockDB{QueryFunc: func(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
		return []interface{}{
			ok(map[string]interface{}{"count": uint64(3)}),
			ok(map[string]interface{}{"count": uint64(5)}),
			ok(),
			ok(map[string]interface{}{"total": 1234.5}),
		}, nil
	}}

	got, err := NewFestivalRepository(db).Summary(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := model.Summary{Stalls: 3, Dishes: 5, Visitors: 0, TotalSales: 1234.5}
	if *got != want {
		t.Errorf("got %+v, want %+v", *got, want)
	}
}

func TestFestivalRepository_ListErrorsAreWrapped(t *testing.T) {
	t.Parallel()

	db := &mockDB{QueryFunc: func(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
		return nil, database.ErrConnection
	}}

	_, err := NewFestivalRepository(db).Dishes(context.Background())
	if !errors.Is(err, database.ErrConnection) {
		t.Errorf("expected ErrConnection, got %v", err)
	}
}

func TestFestivalRepository_SeedRejectsForeignIDs(t *testing.T) {
	t.Parallel()

	db := &mockDB{QueryFunc: func(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
		t.Error("no query expected")
		return nil, nil
	}}

	err := NewFestivalRepository(db).Seed(context.Background(),
		[]*model.Stall{{ID: "dish:oops", Name: "x", Cuisine: "y"}}, nil, nil)
	if err == nil {
		t.Error("expected error for a non-stall id")
	}
}

func TestFestivalRepository_SeedIsOneTransaction(t *testing.T) {
	t.Parallel()

	calls := 0
	var gotQuery string
	db := &mockDB{QueryFunc: func(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
		calls++
		gotQuery = query
		return nil, nil
	}}

	err := NewFestivalRepository(db).Seed(context.Background(),
		[]*model.Stall{{ID: "stall:a", Name: "A", Cuisine: "Thai"}},
		[]*model.Dish{{ID: "dish:a", Name: "Pad Thai", StallID: "stall:a", Price: 9}},
		[]*model.Visitor{{ID: "visitor:a", Name: "Ana"}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected one round trip, got %d", calls)
	}
	if strings.Count(gotQuery, "CREATE") != 3 || !strings.HasPrefix(gotQuery, "BEGIN TRANSACTION") {
		t.Errorf("unexpected query %s", gotQuery)
	}
}

func TestFestivalRepository_SeedKeepsCreatedOn(t *testing.T) {
	t.Parallel()

	var gotVars map[string]interface{}
	db := &mockDB{QueryFunc: func(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
		gotVars = vars
		return nil, nil
	}}

	first := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	err := NewFestivalRepository(db).Seed(context.Background(),
		[]*model.Stall{
			{ID: "stall:b", Name: "B", Cuisine: "Thai", Sales: 3975, CreatedOn: first},
			{ID: "stall:a", Name: "A", Cuisine: "Thai", Sales: 3975, CreatedOn: first.Add(time.Minute)},
		},
		nil,
		[]*model.Visitor{{ID: "visitor:a", Name: "Ana"}},
	)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var stamped []time.Time
	var unstamped int
	for _, v := range gotVars {
		content, ok := v.(map[string]interface{})
		if !ok {
			continue
		}
		at, ok := content["created_on"].(models.CustomDateTime)
		if !ok {
			unstamped++
			continue
		}
		stamped = append(stamped, at.Time)
	}
	if len(stamped) != 2 || unstamped != 1 {
		t.Fatalf("expected 2 stamped and 1 defaulted record, got %d and %d", len(stamped), unstamped)
	}
	sort.Slice(stamped, func(i, j int) bool { return stamped[i].Before(stamped[j]) })
	if !stamped[0].Equal(first) || !stamped[1].Equal(first.Add(time.Minute)) {
		t.Errorf("unexpected created_on values %v", stamped)
	}
}
