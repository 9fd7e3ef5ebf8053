// Package testdb runs store-backed tests against a real SurrealDB.
//
// Every TestDB lives in its own namespace with migrations/ applied, and the
// namespace is removed when the test finishes. When no server is reachable
// New skips the test instead of failing it, so `go test ./...` stays green
// on machines without SurrealDB.
//
//	func TestStallRepository_Create(t *testing.T) {
//	    tdb := testdb.New(t)
//	    repo := repository.NewStallRepository(tdb.DB)
//	}
//
// Connection settings come from TEST_DB_URL or TEST_DB_HOST / TEST_DB_PORT,
// TEST_DB_USER and TEST_DB_PASSWORD.
package testdb
