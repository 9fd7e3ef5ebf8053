package model

import (
	"testing"
)

func ptr[T any](v T) *T { return &v }

func hasField(errs []FieldError, field string) bool {
	for _, e := range errs {
		if e.Field == field {
			return true
		}
	}
	return false
}

// ============================================================================
// CreateStallRequest Tests
// ============================================================================

func TestCreateStallRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	req := &CreateStallRequest{Name: "Spice Route", Cuisine: "Indian", Sales: 1200, Contests: []string{"chili"}}
	if errs := req.Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestCreateStallRequest_Validate_RequiresNameAndCuisine(t *testing.T) {
	t.Parallel()

	req := &CreateStallRequest{Name: "  ", Cuisine: ""}
	req.Normalize()

	errs := req.Validate()
	if !hasField(errs, "name") || !hasField(errs, "cuisine") {
		t.Errorf("expected name and cuisine errors, got %v", errs)
	}
}

func TestCreateStallRequest_Validate_NegativeSales(t *testing.T) {
	t.Parallel()

	req := &CreateStallRequest{Name: "A", Cuisine: "B", Sales: -1}
	if !hasField(req.Validate(), "sales") {
		t.Error("expected sales error")
	}
}

func TestCreateStallRequest_ToStall_DefaultsContests(t *testing.T) {
	t.Parallel()

	s := (&CreateStallRequest{Name: "A", Cuisine: "B"}).ToStall()
	if s.Contests == nil || len(s.Contests) != 0 {
		t.Errorf("expected empty contests, got %v", s.Contests)
	}
	if s.Sales != 0 || s.LiveDemo {
		t.Errorf("expected zero defaults, got %+v", s)
	}
}

func TestCreateStallRequest_Normalize_DropsBlankContests(t *testing.T) {
	t.Parallel()

	req := &CreateStallRequest{Name: " A ", Cuisine: "B", Contests: []string{" bbq ", "", "  "}}
	req.Normalize()

	if req.Name != "A" {
		t.Errorf("expected trimmed name, got %q", req.Name)
	}
	if len(req.Contests) != 1 || req.Contests[0] != "bbq" {
		t.Errorf("unexpected contests %v", req.Contests)
	}
}

// ============================================================================
// CreateDishRequest Tests
// ============================================================================

func TestCreateDishRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	req := &CreateDishRequest{Name: "Dosa", StallID: "stall:a", Price: ptr(4.5), Rating: 9.5}
	if errs := req.Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestCreateDishRequest_Validate_PriceRequired(t *testing.T) {
	t.Parallel()

	req := &CreateDishRequest{Name: "Dosa", StallID: "stall:a"}
	if !hasField(req.Validate(), "price") {
		t.Error("expected price error")
	}
}

func TestCreateDishRequest_Validate_ZeroPriceAllowed(t *testing.T) {
	t.Parallel()

	req := &CreateDishRequest{Name: "Water", StallID: "stall:a", Price: ptr(0.0)}
	if errs := req.Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestCreateDishRequest_Validate_RatingRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rating  float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"ten", 10, false},
		{"above ten", 10.5, true},
		{"negative", -1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			req := &CreateDishRequest{Name: "X", StallID: "stall:a", Price: ptr(1.0), Rating: tt.rating}
			if got := hasField(req.Validate(), "rating"); got != tt.wantErr {
				t.Errorf("rating %v: got error=%v, want %v", tt.rating, got, tt.wantErr)
			}
		})
	}
}

func TestCreateDishRequest_Normalize_DedupesSoldBy(t *testing.T) {
	t.Parallel()

	req := &CreateDishRequest{StallID: " stall:a ", SoldBy: []string{"stall:b", " stall:b", "stall:a", ""}}
	req.Normalize()

	if req.StallID != "stall:a" {
		t.Errorf("expected trimmed stall id, got %q", req.StallID)
	}
	if len(req.SoldBy) != 2 || req.SoldBy[0] != "stall:b" || req.SoldBy[1] != "stall:a" {
		t.Errorf("unexpected soldBy %v", req.SoldBy)
	}
}

func TestCreateDishRequest_StallRefs_OwnerFirstWithoutRepeat(t *testing.T) {
	t.Parallel()

	req := &CreateDishRequest{StallID: "stall:a", SoldBy: []string{"stall:b", "stall:a"}}
	refs := req.StallRefs()

	if len(refs) != 2 || refs[0] != "stall:a" || refs[1] != "stall:b" {
		t.Errorf("unexpected refs %v", refs)
	}
}

func TestCreateDishRequest_ToDish_DefaultsSoldBy(t *testing.T) {
	t.Parallel()

	d := (&CreateDishRequest{Name: "X", StallID: "stall:a", Price: ptr(3.0)}).ToDish()
	if d.SoldBy == nil || d.Price != 3 || d.Rating != 0 {
		t.Errorf("unexpected dish %+v", d)
	}
}

// ============================================================================
// CreateVisitorRequest Tests
// ============================================================================

func TestCreateVisitorRequest_Validate(t *testing.T) {
	t.Parallel()

	if errs := (&CreateVisitorRequest{Name: "Ana", StallsVisited: 3}).Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}

	errs := (&CreateVisitorRequest{StallsVisited: -1, DishesRated: -2}).Validate()
	for _, f := range []string{"name", "stallsVisited", "dishesRated"} {
		if !hasField(errs, f) {
			t.Errorf("expected %s error, got %v", f, errs)
		}
	}
}
