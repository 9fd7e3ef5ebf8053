package testdb

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/forgo/foodfest/api/internal/database"
)

// TestDB is an isolated database for one test.
type TestDB struct {
	DB        database.Database
	Namespace string
	Database  string

	closeOnce sync.Once
}

var (
	migrationOnce sync.Once
	migrations    []string
	migrationErr  error

	counterMu sync.Mutex
	counter   int64
)

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getTestConfig() database.Config {
	return database.Config{
		URL:      os.Getenv("TEST_DB_URL"),
		Host:     getenv("TEST_DB_HOST", "localhost"),
		Port:     getenv("TEST_DB_PORT", "8000"),
		User:     getenv("TEST_DB_USER", "root"),
		Password: getenv("TEST_DB_PASSWORD", "root"),
	}
}

func uniqueNamespace() string {
	counterMu.Lock()
	defer counterMu.Unlock()
	counter++
	return fmt.Sprintf("test_%d_%d", time.Now().UnixNano(), counter)
}

// findMigrationDir walks up from the test's package directory.
func findMigrationDir() string {
	for _, p := range []string{
		"migrations",
		"../migrations",
		"../../migrations",
		"../../../migrations",
		"../../../../migrations",
	} {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if root := os.Getenv("FOODFEST_ROOT"); root != "" {
		return filepath.Join(root, "migrations")
	}
	return ""
}

func loadMigrations() ([]string, error) {
	migrationOnce.Do(func() {
		dir := findMigrationDir()
		if dir == "" {
			migrationErr = fmt.Errorf("could not find migrations directory")
			return
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			migrationErr = fmt.Errorf("reading migrations dir: %w", err)
			return
		}

		var files []string
		for _, e := range entries {
			if strings.HasSuffix(e.Name(), ".surql") {
				files = append(files, e.Name())
			}
		}
		sort.Strings(files)

		for _, name := range files {
			content, err := os.ReadFile(filepath.Join(dir, name))
			if err != nil {
				migrationErr = fmt.Errorf("reading %s: %w", name, err)
				return
			}
			migrations = append(migrations, string(content))
		}
	})

	return migrations, migrationErr
}

// New connects to SurrealDB in a fresh namespace and applies migrations.
// The test is skipped when the server cannot be reached.
func New(t *testing.T) *TestDB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg := getTestConfig()
	cfg.Namespace = uniqueNamespace()
	cfg.Database = "test"

	db := database.NewSurrealDB(cfg)
	if err := db.Connect(ctx); err != nil {
		t.Skipf("testdb: SurrealDB unavailable at %s: %v", cfg.Endpoint(), err)
	}

	tdb := &TestDB{
		DB:        db,
		Namespace: cfg.Namespace,
		Database:  cfg.Database,
	}

	migs, err := loadMigrations()
	if err != nil {
		_ = db.Close()
		t.Fatalf("testdb: failed to load migrations: %v", err)
	}
	for i, mig := range migs {
		if err := db.Execute(ctx, mig, nil); err != nil {
			_ = db.Close()
			t.Fatalf("testdb: migration %d failed: %v", i+1, err)
		}
	}

	t.Cleanup(tdb.Close)
	return tdb
}

// Close removes the namespace and disconnects. It is registered as a test
// cleanup by New and is safe to call again.
func (tdb *TestDB) Close() {
	tdb.closeOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		_ = tdb.DB.Execute(ctx, fmt.Sprintf("REMOVE NAMESPACE %s", tdb.Namespace), nil)
		_ = tdb.DB.Close()
	})
}
