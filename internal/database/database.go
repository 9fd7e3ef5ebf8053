package database

import (
	"context"
	"errors"
	"fmt"
)

// Standard errors for database operations.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a record with the same id already exists.
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates the store is unreachable or the session failed.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a statement failed to execute.
	ErrQuery = errors.New("query error")
)

// Database defines the operations repositories rely on.
type Database interface {
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes one or more statements and returns one response per statement.
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns the first record it produced.
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query and discards its results.
	Execute(ctx context.Context, query string, vars map[string]interface{}) error

	BeginTx(ctx context.Context) (Transaction, error)
}

// Transaction queues statements until Commit.
type Transaction interface {
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
	Commit() error
	Rollback() error
}

// Config holds connection settings.
type Config struct {
	// URL is the full endpoint, e.g. ws://localhost:8000. When empty the
	// endpoint is built from Host and Port.
	URL       string
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}

// Endpoint returns the websocket endpoint to dial.
func (c Config) Endpoint() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("ws://%s:%s", c.Host, c.Port)
}
