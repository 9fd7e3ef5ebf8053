package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/stalls", "200"))

	RecordAPIRequest("GET", "/api/stalls", 200, 12*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/stalls", "200"))
	if after-before != 1 {
		t.Errorf("expected counter to grow by 1, grew by %v", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	TrackActiveRequest(true)
	if got := testutil.ToFloat64(APIActiveRequests); got != before+1 {
		t.Errorf("expected %v, got %v", before+1, got)
	}
	TrackActiveRequest(false)
	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("expected %v, got %v", before, got)
	}
}

func TestRecordReport(t *testing.T) {
	okBefore := testutil.ToFloat64(ReportRunsTotal.WithLabelValues("demo-stalls", "live", "ok"))
	errBefore := testutil.ToFloat64(ReportRunsTotal.WithLabelValues("demo-stalls", "live", "error"))

	RecordReport("demo-stalls", "live", 4, time.Millisecond, nil)
	RecordReport("demo-stalls", "live", 0, time.Millisecond, errors.New("boom"))

	if got := testutil.ToFloat64(ReportRunsTotal.WithLabelValues("demo-stalls", "live", "ok")); got != okBefore+1 {
		t.Errorf("ok runs = %v", got)
	}
	if got := testutil.ToFloat64(ReportRunsTotal.WithLabelValues("demo-stalls", "live", "error")); got != errBefore+1 {
		t.Errorf("error runs = %v", got)
	}
	if got := testutil.ToFloat64(ReportRows.WithLabelValues("demo-stalls")); got != 4 {
		t.Errorf("rows gauge should keep the last successful count, got %v", got)
	}
}

func TestRecordReportCache(t *testing.T) {
	hits := testutil.ToFloat64(ReportCacheHits)
	misses := testutil.ToFloat64(ReportCacheMisses)

	RecordReportCache(true)
	RecordReportCache(false)
	RecordReportCache(false)

	if testutil.ToFloat64(ReportCacheHits)-hits != 1 || testutil.ToFloat64(ReportCacheMisses)-misses != 2 {
		t.Error("unexpected cache counters")
	}
}

func TestRecordSnapshotRefresh(t *testing.T) {
	taken := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

	RecordSnapshotRefresh(taken, nil)
	if got := testutil.ToFloat64(SnapshotTimestamp); got != float64(taken.Unix()) {
		t.Errorf("timestamp = %v", got)
	}

	RecordSnapshotRefresh(time.Time{}, errors.New("offline"))
	if got := testutil.ToFloat64(SnapshotTimestamp); got != float64(taken.Unix()) {
		t.Error("failed refresh should not move the timestamp")
	}
}

func TestSetCircuitBreakerState(t *testing.T) {
	SetCircuitBreakerState("foodfest-api", 2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("foodfest-api")); got != 2 {
		t.Errorf("state = %v", got)
	}
}
