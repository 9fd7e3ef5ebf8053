package client

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/forgo/foodfest/api/internal/model"
	"github.com/forgo/foodfest/api/internal/report"
)

// ErrUnavailable means the API could not answer: the request failed in
// transport, timed out or got a 5xx. Callers may fall back to a snapshot.
var ErrUnavailable = errors.New("festival API unavailable")

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 16 << 20

// APIError is a 4xx answer from the API. It is the caller's fault, so it
// never triggers a fallback.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("festival API returned %d: %s", e.Status, e.Message)
}

// Row is one record of a query result, as decoded from JSON.
type Row = map[string]any

// APIClient talks to the festival HTTP API.
type APIClient struct {
	baseURL string
	http    *http.Client
}

// NewAPIClient creates a client for the API rooted at baseURL
// (for example http://localhost:5000/api).
func NewAPIClient(baseURL string, timeout time.Duration) *APIClient {
	return &APIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Catalog lists the queries the API offers.
func (c *APIClient) Catalog(ctx context.Context) ([]report.Definition, error) {
	var defs []report.Definition
	if err := c.get(ctx, "/queries", &defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// Query runs a query by number or slug. A bare object in the response is
// treated as a single row.
func (c *APIClient) Query(ctx context.Context, key string) ([]Row, error) {
	var raw json.RawMessage
	if err := c.get(ctx, "/queries/"+url.PathEscape(key), &raw); err != nil {
		return nil, err
	}
	return decodeRows(raw)
}

// Summary returns the headline figures.
func (c *APIClient) Summary(ctx context.Context) (*model.Summary, error) {
	var sum model.Summary
	if err := c.get(ctx, "/summary", &sum); err != nil {
		return nil, err
	}
	return &sum, nil
}

// Stalls, Dishes and Visitors make the client a report.Source, which is how
// the dashboard captures snapshots.

func (c *APIClient) Stalls(ctx context.Context) ([]*model.Stall, error) {
	var out []*model.Stall
	if err := c.get(ctx, "/stalls", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) Dishes(ctx context.Context) ([]*model.Dish, error) {
	var out []*model.Dish
	if err := c.get(ctx, "/dishes", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) Visitors(ctx context.Context) ([]*model.Visitor, error) {
	var out []*model.Visitor
	if err := c.get(ctx, "/visitors", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *APIClient) get(ctx context.Context, path string, into any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("%w: read body: %w", ErrUnavailable, err)
	}

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: status %d: %s", ErrUnavailable, resp.StatusCode, problemMessage(body))
	case resp.StatusCode >= 400:
		return &APIError{Status: resp.StatusCode, Message: problemMessage(body)}
	}

	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// problemMessage extracts message (or detail) from a problem document.
func problemMessage(body []byte) string {
	var p struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if json.Unmarshal(body, &p) == nil {
		if p.Message != "" {
			return p.Message
		}
		if p.Detail != "" {
			return p.Detail
		}
	}
	return strings.TrimSpace(string(body))
}

// decodeRows accepts an array of objects, a single object or null.
func decodeRows(raw []byte) ([]Row, error) {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		return []Row{}, nil
	case trimmed[0] == '{':
		var one Row
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		return []Row{one}, nil
	}

	var rows []Row
	if err := json.Unmarshal(trimmed, &rows); err != nil {
		return nil, fmt.Errorf("decode rows: %w", err)
	}
	if rows == nil {
		rows = []Row{}
	}
	return rows, nil
}

// toRows converts locally computed report rows to the decoded form used for
// rendering, so live and fallback results look the same.
func toRows(v any) ([]Row, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode rows: %w", err)
	}
	return decodeRows(raw)
}
