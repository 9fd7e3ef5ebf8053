package helpers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/forgo/foodfest/api/internal/database"
	"github.com/forgo/foodfest/api/internal/model"
)

// ============================================================================
// HTTP Request Helpers
// ============================================================================

// RequestBuilder helps construct HTTP requests for testing
type RequestBuilder struct {
	t       *testing.T
	method  string
	path    string
	body    any
	raw     *string
	headers map[string]string
}

// NewRequest creates a new request builder
func NewRequest(t *testing.T, method, path string) *RequestBuilder {
	t.Helper()
	return &RequestBuilder{
		t:       t,
		method:  method,
		path:    path,
		headers: make(map[string]string),
	}
}

// WithBody sets the request body (will be JSON encoded)
func (rb *RequestBuilder) WithBody(body any) *RequestBuilder {
	rb.body = body
	return rb
}

// WithRawBody sends body as is, for malformed payload tests.
func (rb *RequestBuilder) WithRawBody(body string) *RequestBuilder {
	rb.raw = &body
	return rb
}

// WithHeader adds a header to the request
func (rb *RequestBuilder) WithHeader(key, value string) *RequestBuilder {
	rb.headers[key] = value
	return rb
}

// Build creates the HTTP request
func (rb *RequestBuilder) Build() *http.Request {
	rb.t.Helper()

	var bodyReader io.Reader
	switch {
	case rb.raw != nil:
		bodyReader = strings.NewReader(*rb.raw)
	case rb.body != nil:
		bodyBytes, err := json.Marshal(rb.body)
		if err != nil {
			rb.t.Fatalf("helpers: failed to marshal body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(rb.method, rb.path, bodyReader)
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range rb.headers {
		req.Header.Set(k, v)
	}
	return req
}

// Do builds the request and serves it with h.
func (rb *RequestBuilder) Do(h http.Handler) *httptest.ResponseRecorder {
	rb.t.Helper()
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, rb.Build())
	return rr
}

// ============================================================================
// Response Assertion Helpers
// ============================================================================

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, resp *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if resp.Code != expected {
		t.Errorf("expected status %d, got %d. Body: %s", expected, resp.Code, resp.Body.String())
	}
}

// AssertProblemDetails validates an RFC 9457 Problem Details error response.
// Every error body must carry a non-empty message.
func AssertProblemDetails(t *testing.T, resp *httptest.ResponseRecorder, expectedStatus int, expectedCode model.ErrorCode) *model.ProblemDetails {
	t.Helper()

	AssertStatus(t, resp, expectedStatus)

	var problem model.ProblemDetails
	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, &problem); err != nil {
		t.Fatalf("failed to decode problem details: %v. Body: %s", err, string(bodyBytes))
	}

	if problem.Status != expectedStatus {
		t.Errorf("expected problem.status %d, got %d", expectedStatus, problem.Status)
	}
	if expectedCode != 0 && problem.Code != expectedCode {
		t.Errorf("expected problem.code %d, got %d", expectedCode, problem.Code)
	}
	if problem.Message == "" {
		t.Errorf("problem has no message. Body: %s", string(bodyBytes))
	}
	return &problem
}

// AssertValidationError checks for a validation error on a specific field
func AssertValidationError(t *testing.T, resp *httptest.ResponseRecorder, field string) {
	t.Helper()

	problem := AssertProblemDetails(t, resp, http.StatusUnprocessableEntity, model.ErrCodeValidation)
	for _, fe := range problem.Errors {
		if fe.Field == field {
			return
		}
	}
	t.Errorf("expected validation error on field %q, but not found. Errors: %+v", field, problem.Errors)
}

// AssertJSONArrayLen decodes a JSON array body and checks its length.
func AssertJSONArrayLen(t *testing.T, resp *httptest.ResponseRecorder, expected int) []map[string]any {
	t.Helper()

	var rows []map[string]any
	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, &rows); err != nil {
		t.Fatalf("expected a JSON array: %v. Body: %s", err, string(bodyBytes))
	}
	if rows == nil {
		t.Fatalf("expected [] rather than null")
	}
	if len(rows) != expected {
		t.Errorf("expected %d rows, got %d. Body: %s", expected, len(rows), string(bodyBytes))
	}
	return rows
}

// AssertJSONContains checks that the response body contains expected key-value pairs
func AssertJSONContains(t *testing.T, resp *httptest.ResponseRecorder, expected map[string]any) {
	t.Helper()

	var actual map[string]any
	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, &actual); err != nil {
		t.Fatalf("failed to decode response: %v. Body: %s", err, string(bodyBytes))
	}

	for key, expectedVal := range expected {
		actualVal, ok := actual[key]
		if !ok {
			t.Errorf("expected key %q not found in response", key)
			continue
		}
		if !jsonEqual(expectedVal, actualVal) {
			t.Errorf("for key %q: expected %v, got %v", key, expectedVal, actualVal)
		}
	}
}

// DecodeResponse decodes the response body into the given struct
func DecodeResponse(t *testing.T, resp *httptest.ResponseRecorder, v any) {
	t.Helper()

	bodyBytes := resp.Body.Bytes()
	if err := json.Unmarshal(bodyBytes, v); err != nil {
		t.Fatalf("failed to decode response: %v. Body: %s", err, string(bodyBytes))
	}
}

// ============================================================================
// Database Assertion Helpers
// ============================================================================

// AssertRecordExists checks that a record such as "stall:abc" is stored.
func AssertRecordExists(t *testing.T, db database.Database, id string) {
	t.Helper()
	if !recordExists(t, db, id) {
		t.Errorf("expected record %s to exist, but it doesn't", id)
	}
}

// AssertRecordNotExists checks that a record is not stored.
func AssertRecordNotExists(t *testing.T, db database.Database, id string) {
	t.Helper()
	if recordExists(t, db, id) {
		t.Errorf("expected record %s to not exist, but it does", id)
	}
}

func recordExists(t *testing.T, db database.Database, id string) bool {
	t.Helper()

	if !strings.Contains(id, ":") {
		t.Fatalf("helpers: %q is not a table:key record id", id)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rec, err := db.QueryOne(ctx, "SELECT * FROM type::record($id)", map[string]interface{}{
		"id": id,
	})
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false
		}
		t.Fatalf("failed to query for record: %v", err)
	}
	return rec != nil
}

// ============================================================================
// Utility Helpers
// ============================================================================

// jsonEqual compares two JSON values for equality
func jsonEqual(a, b any) bool {
	aBytes, _ := json.Marshal(a)
	bBytes, _ := json.Marshal(b)
	return string(aBytes) == string(bBytes)
}

// StringPtr returns a pointer to the string
func StringPtr(s string) *string {
	return &s
}

// Float64Ptr returns a pointer to the float
func Float64Ptr(f float64) *float64 {
	return &f
}

// IntPtr returns a pointer to the int
func IntPtr(i int) *int {
	return &i
}

// BoolPtr returns a pointer to the bool
func BoolPtr(b bool) *bool {
	return &b
}
