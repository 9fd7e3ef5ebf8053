package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/forgo/foodfest/api/internal/metrics"
	"github.com/forgo/foodfest/api/internal/report"
	"github.com/forgo/foodfest/api/internal/snapshot"
)

// ErrUnknownQuery is returned for keys that name no query.
var ErrUnknownQuery = errors.New("unknown query")

// Origin says where a result came from.
type Origin string

const (
	OriginLive     Origin = "live"
	OriginSnapshot Origin = "snapshot"
)

// State is what the dashboard shows for a query.
type State int

const (
	StateRows State = iota
	StateEmpty
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateRows:
		return "rows"
	case StateEmpty:
		return "empty"
	default:
		return "failed"
	}
}

// Outcome is the result of asking the dashboard for one query.
type Outcome struct {
	Query  report.Definition
	Origin Origin
	State  State
	Rows   []Row
	Err    error

	// SnapshotAt is when the fallback data was captured. Zero for live results.
	SnapshotAt time.Time
	// Builtin is set when the fallback used the demo festival.
	Builtin bool
}

// API is the part of APIClient the dashboard needs.
type API interface {
	report.Source
	Query(ctx context.Context, key string) ([]Row, error)
}

// SnapshotStore persists the fallback snapshot.
type SnapshotStore interface {
	Save(ctx context.Context, snap *snapshot.Snapshot) error
	LoadOrDemo(ctx context.Context) (*snapshot.Snapshot, error)
}

// DashboardConfig holds the dashboard dependencies and breaker tuning.
type DashboardConfig struct {
	API     API
	Store   SnapshotStore
	Options report.Options

	// FailureThreshold is how many consecutive unavailable answers open the
	// breaker (default 3).
	FailureThreshold uint32
	// OpenTimeout is how long the breaker stays open before probing (default 30s).
	OpenTimeout time.Duration
}

// Dashboard runs queries against the API and answers from the last
// snapshot when the API is unavailable.
type Dashboard struct {
	api   API
	store SnapshotStore
	opts  report.Options
	cb    *gobreaker.CircuitBreaker[[]Row]
}

const breakerName = "festival-api"

func NewDashboard(cfg DashboardConfig) *Dashboard {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 3
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = 30 * time.Second
	}

	metrics.SetCircuitBreakerState(breakerName, 0)
	cb := gobreaker.NewCircuitBreaker[[]Row](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.FailureThreshold
		},
		// Only an unavailable API counts against the breaker; a 4xx is an answer.
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrUnavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Info("circuit breaker state change",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
			metrics.SetCircuitBreakerState(name, stateValue(to))
		},
	})

	return &Dashboard{api: cfg.API, store: cfg.Store, opts: cfg.Options, cb: cb}
}

// Run asks the API for the query named by key, falling back to the local
// snapshot when the API is unavailable or the breaker is open.
func (d *Dashboard) Run(ctx context.Context, key string) *Outcome {
	def, ok := report.Lookup(key)
	if !ok {
		return &Outcome{State: StateFailed, Err: fmt.Errorf("%w: %q", ErrUnknownQuery, key)}
	}

	o, cause := d.live(ctx, def)
	if o != nil {
		return o
	}
	snap, err := d.store.LoadOrDemo(ctx)
	if err != nil {
		return snapshotFailed(def, cause, err)
	}
	res, err := report.Execute(ctx, snapshot.NewSource(snap), def, d.opts)
	return fromSnapshot(snap, def, res, err)
}

// RunAll runs every query in catalog order. Queries the API cannot answer
// share one snapshot load and one evaluation of the catalog.
func (d *Dashboard) RunAll(ctx context.Context) []*Outcome {
	defs := report.Definitions()
	out := make([]*Outcome, len(defs))

	var (
		pending []int
		cause   error
	)
	for i, def := range defs {
		o, err := d.live(ctx, def)
		if o != nil {
			out[i] = o
			continue
		}
		pending = append(pending, i)
		cause = err
	}
	if len(pending) == 0 {
		return out
	}

	snap, err := d.store.LoadOrDemo(ctx)
	if err != nil {
		for _, i := range pending {
			out[i] = snapshotFailed(defs[i], cause, err)
		}
		return out
	}
	results, err := report.ExecuteAll(ctx, snapshot.NewSource(snap), d.opts)
	for _, i := range pending {
		var res *report.Result
		if err == nil {
			res = results[i]
		}
		out[i] = fromSnapshot(snap, defs[i], res, err)
	}
	return out
}

// live asks the API through the breaker. A nil outcome means the caller
// should answer from the snapshot; the returned error is why.
func (d *Dashboard) live(ctx context.Context, def report.Definition) (*Outcome, error) {
	rows, err := d.cb.Execute(func() ([]Row, error) {
		return d.api.Query(ctx, def.Slug)
	})
	if err == nil {
		return outcome(def, OriginLive, rows, nil), nil
	}
	if !fallbackWorthy(err) {
		return &Outcome{Query: def, Origin: OriginLive, State: StateFailed, Err: err}, nil
	}

	slog.Warn("festival API unavailable, using snapshot",
		slog.String("query", def.Slug),
		slog.String("error", err.Error()))
	metrics.RecordDashboardFallback(def.Slug)
	return nil, err
}

// Refresh captures a fresh snapshot from the API and saves it.
func (d *Dashboard) Refresh(ctx context.Context) (*snapshot.Snapshot, error) {
	snap, err := snapshot.Capture(ctx, d.api)
	if err != nil {
		return nil, fmt.Errorf("capture snapshot: %w", err)
	}
	if err := d.store.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("save snapshot: %w", err)
	}
	return snap, nil
}

// BreakerState reports the breaker state: closed, half-open or open.
func (d *Dashboard) BreakerState() string {
	return d.cb.State().String()
}

func snapshotFailed(def report.Definition, cause, err error) *Outcome {
	return &Outcome{
		Query:  def,
		Origin: OriginSnapshot,
		State:  StateFailed,
		Err:    errors.Join(cause, fmt.Errorf("load snapshot: %w", err)),
	}
}

func fromSnapshot(snap *snapshot.Snapshot, def report.Definition, res *report.Result, err error) *Outcome {
	var rows []Row
	if err == nil {
		rows, err = toRows(res.Rows)
	}
	o := outcome(def, OriginSnapshot, rows, err)
	o.SnapshotAt = snap.TakenAt
	o.Builtin = snap.Builtin
	return o
}

func outcome(def report.Definition, origin Origin, rows []Row, err error) *Outcome {
	o := &Outcome{Query: def, Origin: origin, Rows: rows, Err: err}
	switch {
	case err != nil:
		o.State = StateFailed
	case len(rows) == 0:
		o.State = StateEmpty
	default:
		o.State = StateRows
	}
	return o
}

func fallbackWorthy(err error) bool {
	return errors.Is(err, ErrUnavailable) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests)
}

func stateValue(s gobreaker.State) int {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
