package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

const currentKey = "snapshot:current"

// Store persists the latest snapshot in Badger.
type Store struct {
	db *badger.DB
}

// Open opens a Badger store in dir. An empty dir keeps everything in memory.
func Open(dir string) (*Store, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open snapshot store: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an already open Badger database.
func NewStore(db *badger.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Save replaces the stored snapshot.
func (s *Store) Save(ctx context.Context, snap *Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(currentKey), data)
	})
}

// Load returns the stored snapshot or ErrNoSnapshot.
func (s *Store) Load(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var snap Snapshot
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(currentKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNoSnapshot
		}
		if err != nil {
			return fmt.Errorf("get snapshot: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &snap)
		})
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

// LoadOrDemo returns the stored snapshot, or the demo festival when none was saved.
func (s *Store) LoadOrDemo(ctx context.Context) (*Snapshot, error) {
	snap, err := s.Load(ctx)
	if errors.Is(err, ErrNoSnapshot) {
		return Demo(), nil
	}
	return snap, err
}
