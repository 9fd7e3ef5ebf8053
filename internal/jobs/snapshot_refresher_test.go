package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/forgo/foodfest/api/internal/snapshot"
)

type mockRefresher struct {
	calls   atomic.Int32
	err     error
	refresh chan struct{}
}

func (m *mockRefresher) Refresh(ctx context.Context) (*snapshot.Snapshot, error) {
	m.calls.Add(1)
	if m.refresh != nil {
		select {
		case m.refresh <- struct{}{}:
		default:
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &snapshot.Snapshot{TakenAt: time.Now()}, nil
}

func TestSnapshotRefresher_RunOnce(t *testing.T) {
	t.Parallel()

	m := &mockRefresher{}
	job := NewSnapshotRefresher(m, time.Hour)

	snap, err := job.RunOnce(context.Background())
	if err != nil || snap == nil {
		t.Fatalf("RunOnce() = %v, %v", snap, err)
	}

	m.err = errors.New("api down")
	if _, err := job.RunOnce(context.Background()); !errors.Is(err, m.err) {
		t.Errorf("expected refresh error, got %v", err)
	}
}

func TestSnapshotRefresher_StartRefreshesImmediately(t *testing.T) {
	t.Parallel()

	m := &mockRefresher{refresh: make(chan struct{}, 1)}
	job := NewSnapshotRefresher(m, time.Hour)

	job.Start()
	defer job.Stop()

	select {
	case <-m.refresh:
	case <-time.After(2 * time.Second):
		t.Fatal("expected an immediate refresh")
	}
	if !job.IsRunning() {
		t.Error("job should be running")
	}
}

func TestSnapshotRefresher_Ticks(t *testing.T) {
	t.Parallel()

	m := &mockRefresher{err: errors.New("still down")}
	job := NewSnapshotRefresher(m, 10*time.Millisecond)

	job.Start()
	time.Sleep(80 * time.Millisecond)
	job.Stop()

	if got := m.calls.Load(); got < 3 {
		t.Errorf("expected repeated refreshes despite errors, got %d", got)
	}
}

func TestSnapshotRefresher_StartStopIdempotent(t *testing.T) {
	t.Parallel()

	job := NewSnapshotRefresher(&mockRefresher{}, time.Hour)

	job.Stop()
	job.Start()
	job.Start()
	job.Stop()
	job.Stop()
	if job.IsRunning() {
		t.Error("job should be stopped")
	}

	job.Start()
	defer job.Stop()
	if !job.IsRunning() {
		t.Error("job should restart after stop")
	}
}

func TestNewSnapshotRefresher_Defaults(t *testing.T) {
	t.Parallel()

	job := NewSnapshotRefresher(&mockRefresher{}, 0)
	if job.interval != time.Minute || job.timeout != 30*time.Second {
		t.Errorf("unexpected defaults interval=%v timeout=%v", job.interval, job.timeout)
	}
}
