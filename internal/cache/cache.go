// Package cache stores report results in Redis.
//
// Entries are keyed by a generation number; Invalidate bumps the generation
// so every older entry becomes unreachable and expires on its own TTL. A nil
// *ReportCache is valid and caches nothing.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const defaultTTL = 30 * time.Second

// Config holds the Redis connection settings. An empty Addr disables caching.
type Config struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
	TTL      time.Duration
}

// Entry is a cached report result.
type Entry struct {
	Rows  json.RawMessage `json:"rows"`
	Count int             `json:"count"`
}

// ReportCache caches encoded report rows.
type ReportCache struct {
	rdb    redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// Connect dials Redis and verifies it with a ping. It returns (nil, nil) when
// cfg.Addr is empty.
func Connect(ctx context.Context, cfg Config) (*ReportCache, error) {
	if cfg.Addr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return New(rdb, cfg.Prefix, cfg.TTL), nil
}

// New wraps an existing client.
func New(rdb redis.UniversalClient, prefix string, ttl time.Duration) *ReportCache {
	if prefix == "" {
		prefix = "foodfest"
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &ReportCache{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (c *ReportCache) generationKey() string {
	return c.prefix + ":generation"
}

func (c *ReportCache) entryKey(gen int64, report string) string {
	return c.prefix + ":g" + strconv.FormatInt(gen, 10) + ":report:" + report
}

// Generation returns the current cache generation. Read it before computing a
// result and pass the same value to Set.
func (c *ReportCache) Generation(ctx context.Context) (int64, error) {
	if c == nil {
		return 0, nil
	}
	gen, err := c.rdb.Get(ctx, c.generationKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, err
	}
	return gen, nil
}

// Get returns the entry cached for report under gen. Redis failures count as
// misses.
func (c *ReportCache) Get(ctx context.Context, gen int64, report string) (*Entry, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.rdb.Get(ctx, c.entryKey(gen, report)).Bytes()
	if err != nil {
		return nil, false
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, false
	}
	return &e, true
}

// Set encodes rows and stores them under gen for the configured TTL.
func (c *ReportCache) Set(ctx context.Context, gen int64, report string, rows any, count int) error {
	if c == nil {
		return nil
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode rows: %w", err)
	}
	data, err := json.Marshal(Entry{Rows: raw, Count: count})
	if err != nil {
		return fmt.Errorf("encode entry: %w", err)
	}
	return c.rdb.Set(ctx, c.entryKey(gen, report), data, c.ttl).Err()
}

// Invalidate makes every cached entry stale.
func (c *ReportCache) Invalidate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	return c.rdb.Incr(ctx, c.generationKey()).Err()
}

func (c *ReportCache) Close() error {
	if c == nil {
		return nil
	}
	return c.rdb.Close()
}
