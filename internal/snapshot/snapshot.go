package snapshot

import (
	"context"
	"errors"
	"time"

	"github.com/forgo/foodfest/api/internal/model"
	"github.com/forgo/foodfest/api/internal/report"
)

// ErrNoSnapshot is returned by a Store that has never been saved to.
var ErrNoSnapshot = errors.New("no snapshot stored")

// Snapshot is a point-in-time copy of every collection.
type Snapshot struct {
	Stalls   []*model.Stall   `json:"stalls"`
	Dishes   []*model.Dish    `json:"dishes"`
	Visitors []*model.Visitor `json:"visitors"`
	TakenAt  time.Time        `json:"takenAt"`
	// Builtin marks the demo festival shipped with the binary.
	Builtin bool `json:"builtin,omitempty"`
}

// Capture reads every collection from src into a new snapshot.
func Capture(ctx context.Context, src report.Source) (*Snapshot, error) {
	ds, err := report.Load(ctx, src, report.AllCollections)
	if err != nil {
		return nil, err
	}
	return &Snapshot{
		Stalls:   ds.Stalls,
		Dishes:   ds.Dishes,
		Visitors: ds.Visitors,
		TakenAt:  time.Now().UTC(),
	}, nil
}

// Source serves a snapshot as a report.Source. It never fails.
type Source struct {
	snap *Snapshot
}

func NewSource(snap *Snapshot) *Source {
	if snap == nil {
		snap = &Snapshot{}
	}
	return &Source{snap: snap}
}

func (s *Source) Stalls(ctx context.Context) ([]*model.Stall, error) {
	return s.snap.Stalls, ctx.Err()
}

func (s *Source) Dishes(ctx context.Context) ([]*model.Dish, error) {
	return s.snap.Dishes, ctx.Err()
}

func (s *Source) Visitors(ctx context.Context) ([]*model.Visitor, error) {
	return s.snap.Visitors, ctx.Err()
}
