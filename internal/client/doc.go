// Package client is the dashboard side of the festival API.
//
// APIClient speaks HTTP. Dashboard wraps it in a circuit breaker and, when
// the API is unreachable or answers 5xx, runs the same report functions the
// server uses over the last saved snapshot. Each Outcome says whether it is
// live or from a snapshot, and whether it has rows, is empty or failed.
package client
