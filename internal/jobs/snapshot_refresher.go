package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/forgo/foodfest/api/internal/metrics"
	"github.com/forgo/foodfest/api/internal/snapshot"
)

// Refresher captures and stores a new snapshot.
type Refresher interface {
	Refresh(ctx context.Context) (*snapshot.Snapshot, error)
}

// SnapshotRefresher keeps the dashboard's fallback snapshot current by
// refreshing it on a fixed interval.
type SnapshotRefresher struct {
	refresher Refresher
	interval  time.Duration
	timeout   time.Duration
	stopCh    chan struct{}
	wg        sync.WaitGroup
	running   bool
	mu        sync.Mutex
}

// NewSnapshotRefresher creates a refresher job. A zero interval means one minute.
func NewSnapshotRefresher(r Refresher, interval time.Duration) *SnapshotRefresher {
	if interval <= 0 {
		interval = time.Minute
	}
	timeout := interval
	if timeout > 30*time.Second {
		timeout = 30 * time.Second
	}
	return &SnapshotRefresher{
		refresher: r,
		interval:  interval,
		timeout:   timeout,
	}
}

// Start refreshes once immediately, then on every tick. Calling Start on a
// running job does nothing.
func (p *SnapshotRefresher) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})
	stop := p.stopCh
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(stop)
	slog.Info("snapshot refresher started", slog.Duration("interval", p.interval))
}

// Stop gracefully stops the job and waits for an in-flight refresh.
func (p *SnapshotRefresher) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopCh)
	p.mu.Unlock()

	p.wg.Wait()
	slog.Info("snapshot refresher stopped")
}

func (p *SnapshotRefresher) run(stop <-chan struct{}) {
	defer p.wg.Done()

	p.refresh()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.refresh()
		case <-stop:
			return
		}
	}
}

func (p *SnapshotRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if _, err := p.RunOnce(ctx); err != nil {
		slog.Warn("snapshot refresh failed", slog.String("error", err.Error()))
	}
}

// RunOnce refreshes the snapshot now and records the outcome.
func (p *SnapshotRefresher) RunOnce(ctx context.Context) (*snapshot.Snapshot, error) {
	snap, err := p.refresher.Refresh(ctx)
	if err != nil {
		metrics.RecordSnapshotRefresh(time.Time{}, err)
		return nil, err
	}
	metrics.RecordSnapshotRefresh(snap.TakenAt, nil)
	slog.Debug("snapshot refreshed",
		slog.Int("stalls", len(snap.Stalls)),
		slog.Int("dishes", len(snap.Dishes)),
		slog.Int("visitors", len(snap.Visitors)))
	return snap, nil
}

// IsRunning returns whether the job is running
func (p *SnapshotRefresher) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}
