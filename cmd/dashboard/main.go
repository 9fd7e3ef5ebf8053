package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/forgo/foodfest/api/internal/client"
	"github.com/forgo/foodfest/api/internal/config"
	"github.com/forgo/foodfest/api/internal/jobs"
	"github.com/forgo/foodfest/api/internal/report"
	"github.com/forgo/foodfest/api/internal/snapshot"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags override the environment
	query := flag.String("query", "", "Report to show: number (5), route name (query5) or slug; empty shows all")
	apiURL := flag.String("api", cfg.Dashboard.APIURL, "Festival API base URL")
	snapshotDir := flag.String("snapshot-dir", cfg.Dashboard.SnapshotDir, "Snapshot directory (empty keeps it in memory)")
	timeout := flag.Duration("timeout", cfg.Dashboard.Timeout, "Per-request timeout")
	watch := flag.Duration("watch", 0, "Re-render on this interval until interrupted")
	outputJSON := flag.Bool("json", false, "Output as JSON")
	verbose := flag.Bool("v", false, "Log breaker and fallback events to stderr")

	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg.Dashboard.APIURL = *apiURL
	cfg.Dashboard.SnapshotDir = *snapshotDir
	cfg.Dashboard.Timeout = *timeout
	if err := cfg.ValidateDashboard(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if *query != "" {
		if _, ok := report.Lookup(*query); !ok {
			fmt.Fprintf(os.Stderr, "Unknown report %q\n", *query)
			os.Exit(2)
		}
	}

	store, err := snapshot.Open(cfg.Dashboard.SnapshotDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening snapshot store: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	dashboard := client.NewDashboard(client.DashboardConfig{
		API:     client.NewAPIClient(cfg.Dashboard.APIURL, cfg.Dashboard.Timeout),
		Store:   store,
		Options: report.Options{TotalContests: cfg.Query.TotalContests},
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *watch <= 0 {
		if _, err := dashboard.Refresh(ctx); err != nil {
			slog.Warn("snapshot not refreshed", slog.String("error", err.Error()))
		}
		if err := show(ctx, os.Stdout, dashboard, *query, *outputJSON); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
			os.Exit(1)
		}
		return
	}

	refresher := jobs.NewSnapshotRefresher(dashboard, *watch)
	refresher.Start()
	defer refresher.Stop()

	ticker := time.NewTicker(*watch)
	defer ticker.Stop()
	for {
		if !*outputJSON {
			fmt.Print("\033[H\033[2J")
			fmt.Printf("Festival dashboard  %s  (api %s)\n\n",
				time.Now().Format(time.TimeOnly), dashboard.BreakerState())
		}
		if err := show(ctx, os.Stdout, dashboard, *query, *outputJSON); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering: %v\n", err)
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func show(ctx context.Context, w io.Writer, d *client.Dashboard, query string, asJSON bool) error {
	var outcomes []*client.Outcome
	if query != "" {
		outcomes = []*client.Outcome{d.Run(ctx, query)}
	} else {
		outcomes = d.RunAll(ctx)
	}

	for _, o := range outcomes {
		var err error
		if asJSON {
			err = client.RenderJSON(w, o)
		} else {
			err = client.Render(w, o)
			fmt.Fprintln(w)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
