package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// SurrealDB implements Database over a single websocket session.
type SurrealDB struct {
	db     *surrealdb.DB
	config Config
}

// NewSurrealDB creates an unconnected SurrealDB; call Connect before use.
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{
		config: cfg,
	}
}

// Connect dials the endpoint, signs in and selects the namespace and database.
func (s *SurrealDB) Connect(ctx context.Context) error {
	db, err := surrealdb.FromEndpointURLString(ctx, s.config.Endpoint())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if s.config.User != "" {
		_, err = db.SignIn(ctx, &surrealdb.Auth{
			Username: s.config.User,
			Password: s.config.Password,
		})
		if err != nil {
			_ = db.Close(ctx)
			return fmt.Errorf("%w: signin failed: %v", ErrConnection, err)
		}
	}

	if err := db.Use(ctx, s.config.Namespace, s.config.Database); err != nil {
		_ = db.Close(ctx)
		return fmt.Errorf("%w: use failed: %v", ErrConnection, err)
	}

	s.db = db
	return nil
}

func (s *SurrealDB) Close() error {
	if s.db != nil {
		return s.db.Close(context.Background())
	}
	return nil
}

// Ping asks the server for its version.
func (s *SurrealDB) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrConnection
	}
	if _, err := s.db.Version(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

func (s *SurrealDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	if s.db == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[interface{}](ctx, s.db, query, vars)
	if err != nil {
		return nil, classify(err)
	}
	if results == nil {
		return nil, nil
	}

	output := make([]interface{}, 0, len(*results))
	for _, r := range *results {
		if r.Status != "OK" {
			if r.Error != nil {
				return nil, classify(fmt.Errorf("%s", r.Error.Message))
			}
			return nil, ErrQuery
		}
		output = append(output, map[string]interface{}{
			"status": r.Status,
			"result": r.Result,
		})
	}

	return output, nil
}

func (s *SurrealDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := s.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return FirstRecord(results)
}

func (s *SurrealDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := s.Query(ctx, query, vars)
	return err
}

// BeginTx returns a batch transaction bound to this session.
func (s *SurrealDB) BeginTx(ctx context.Context) (Transaction, error) {
	if s.db == nil {
		return nil, ErrConnection
	}
	return &batchTx{db: s, ctx: ctx, builder: NewTxBuilder()}, nil
}

// batchTx queues statements and sends them as one transaction on Commit.
// Query and QueryOne return nothing until then.
type batchTx struct {
	db        Database
	ctx       context.Context
	builder   *TxBuilder
	committed bool
}

func (t *batchTx) Query(_ context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	t.builder.Add(query, vars)
	return nil, nil
}

func (t *batchTx) QueryOne(_ context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	t.builder.Add(query, vars)
	return nil, nil
}

func (t *batchTx) Execute(_ context.Context, query string, vars map[string]interface{}) error {
	t.builder.Add(query, vars)
	return nil
}

func (t *batchTx) Commit() error {
	if t.committed {
		return nil
	}
	if _, err := ExecuteTransaction(t.ctx, t.db, t.builder); err != nil {
		return fmt.Errorf("commit failed: %w", err)
	}
	t.committed = true
	return nil
}

func (t *batchTx) Rollback() error {
	t.builder = NewTxBuilder()
	return nil
}

// classify maps driver errors onto the package sentinels.
func classify(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "already exists"), strings.Contains(msg, "duplicate"):
		return fmt.Errorf("%w: %v", ErrDuplicate, err)
	case strings.Contains(msg, "connection"), strings.Contains(msg, "closed"), strings.Contains(msg, "timeout"):
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return fmt.Errorf("%w: %v", ErrQuery, err)
}

// Records returns the rows produced by the statement at index stmt.
// Non-array results are returned as a single row.
func Records(results []interface{}, stmt int) []interface{} {
	if stmt < 0 || stmt >= len(results) {
		return nil
	}
	resp, ok := results[stmt].(map[string]interface{})
	if !ok {
		return nil
	}
	switch v := resp["result"].(type) {
	case []interface{}:
		return v
	case nil:
		return nil
	default:
		return []interface{}{v}
	}
}

// FirstRecord returns the first row of the first statement, or ErrNotFound.
func FirstRecord(results []interface{}) (interface{}, error) {
	rows := Records(results, 0)
	if len(rows) == 0 || rows[0] == nil {
		return nil, ErrNotFound
	}
	return rows[0], nil
}
