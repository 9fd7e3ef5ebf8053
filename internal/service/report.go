package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/forgo/foodfest/api/internal/cache"
	"github.com/forgo/foodfest/api/internal/metrics"
	"github.com/forgo/foodfest/api/internal/report"
)

// ReportCache stores encoded report rows between writes.
type ReportCache interface {
	Generation(ctx context.Context) (int64, error)
	Get(ctx context.Context, gen int64, report string) (*cache.Entry, bool)
	Set(ctx context.Context, gen int64, report string, rows any, count int) error
}

// ReportService runs the fixed festival reports against the live store.
type ReportService struct {
	source  report.Source
	cache   ReportCache
	opts    report.Options
	timeout time.Duration
}

// ReportServiceConfig holds configuration for the report service
type ReportServiceConfig struct {
	Source  report.Source
	Cache   ReportCache // optional
	Options report.Options
	Timeout time.Duration // zero means no extra deadline
}

func NewReportService(cfg ReportServiceConfig) *ReportService {
	return &ReportService{
		source:  cfg.Source,
		cache:   cfg.Cache,
		opts:    cfg.Options,
		timeout: cfg.Timeout,
	}
}

// Catalog lists the available reports.
func (s *ReportService) Catalog() []report.Definition {
	return report.Definitions()
}

// Run resolves key to a report and executes it. Cached rows are returned as
// raw JSON when the cache has them. The cache generation is read before the
// source, so rows computed across a write are stored under a dead generation.
func (s *ReportService) Run(ctx context.Context, key string) (*report.Result, error) {
	def, ok := report.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownQuery, key)
	}

	var (
		gen       int64
		cacheable bool
	)
	if s.cache != nil {
		var err error
		gen, err = s.cache.Generation(ctx)
		cacheable = err == nil
		if err != nil {
			slog.Warn("report cache unavailable", slog.String("report", def.Slug), slog.String("error", err.Error()))
		}
	}

	if cacheable {
		if entry, hit := s.cache.Get(ctx, gen, def.Slug); hit {
			metrics.RecordReportCache(true)
			metrics.RecordReport(def.Slug, "cache", entry.Count, 0, nil)
			return &report.Result{Definition: def, Rows: entry.Rows, Count: entry.Count}, nil
		}
		metrics.RecordReportCache(false)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	res, err := report.Execute(ctx, s.source, def, s.opts)
	if err != nil {
		metrics.RecordReport(def.Slug, "live", 0, time.Since(start), err)
		return nil, fmt.Errorf("run %s: %w", def.Slug, err)
	}
	metrics.RecordReport(def.Slug, "live", res.Count, time.Since(start), nil)

	if cacheable {
		if err := s.cache.Set(ctx, gen, def.Slug, res.Rows, res.Count); err != nil {
			slog.Warn("failed to cache report", slog.String("report", def.Slug), slog.String("error", err.Error()))
		}
	}
	return res, nil
}
