package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/forgo/foodfest/api/internal/database"
	"github.com/forgo/foodfest/api/internal/model"
)

// StallRepository handles stall data access
type StallRepository struct {
	db database.Database
}

// NewStallRepository creates a new stall repository
func NewStallRepository(db database.Database) *StallRepository {
	return &StallRepository{db: db}
}

// List returns every stall in insertion order.
func (r *StallRepository) List(ctx context.Context) ([]*model.Stall, error) {
	query := `SELECT * FROM stall ORDER BY created_on ASC, id ASC`

	result, err := r.db.Query(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("list stalls: %w", err)
	}

	records := rows(result, 0)
	stalls := make([]*model.Stall, 0, len(records))
	for _, data := range records {
		stalls = append(stalls, parseStall(data))
	}
	return stalls, nil
}

// Create stores a new stall and fills in its id and creation time.
func (r *StallRepository) Create(ctx context.Context, stall *model.Stall) error {
	query := `
		CREATE stall CONTENT {
			name: $name,
			cuisine: $cuisine,
			sales: $sales,
			live_demo: $live_demo,
			contests: $contests,
			created_on: time::now()
		}
	`
	vars := stallVars(stall)

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return fmt.Errorf("create stall: %w", err)
	}

	data, err := firstRow(result)
	if err != nil {
		return fmt.Errorf("create stall: %w", err)
	}
	created := parseStall(data)
	stall.ID = created.ID
	stall.CreatedOn = created.CreatedOn
	return nil
}

// ExistingIDs returns the subset of ids that name a stored stall.
func (r *StallRepository) ExistingIDs(ctx context.Context, ids []string) (map[string]bool, error) {
	found := make(map[string]bool, len(ids))

	targets := make([]string, 0, len(ids))
	vars := make(map[string]interface{}, len(ids))
	for _, id := range ids {
		if !isRecordOf("stall", id) {
			continue
		}
		name := fmt.Sprintf("r%d", len(targets))
		targets = append(targets, "type::record($"+name+")")
		vars[name] = id
	}
	if len(targets) == 0 {
		return found, nil
	}

	query := "SELECT id FROM " + strings.Join(targets, ", ")
	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, fmt.Errorf("check stalls: %w", err)
	}

	for _, data := range rows(result, 0) {
		found[recordID(data["id"])] = true
	}
	return found, nil
}

func stallVars(s *model.Stall) map[string]interface{} {
	contests := s.Contests
	if contests == nil {
		contests = []string{}
	}
	return map[string]interface{}{
		"name":      s.Name,
		"cuisine":   s.Cuisine,
		"sales":     s.Sales,
		"live_demo": s.LiveDemo,
		"contests":  contests,
	}
}

func parseStall(data map[string]interface{}) *model.Stall {
	return &model.Stall{
		ID:        recordID(data["id"]),
		Name:      getString(data, "name"),
		Cuisine:   getString(data, "cuisine"),
		Sales:     getFloat(data, "sales"),
		LiveDemo:  getBool(data, "live_demo"),
		Contests:  getStringSlice(data, "contests"),
		CreatedOn: getTime(data, "created_on"),
	}
}
