// Package database wraps the SurrealDB connection used by the festival API.
//
// Repositories depend on the Database interface only. Query returns the raw
// per-statement responses ({status, result} maps); QueryOne unwraps the first
// record of the first statement and returns ErrNotFound when there is none.
//
// Transactions are batch based. Statements queued on a Transaction, an
// AtomicBatch or a TxBuilder are sent together inside
// BEGIN TRANSACTION / COMMIT TRANSACTION when committed, so there is no
// isolation between queued statements and Rollback only discards the queue.
//
//	batch := database.NewAtomicBatch().
//	    Add("CREATE type::record($id) CONTENT $stall", stallVars).
//	    Add("CREATE type::record($id) CONTENT $dish", dishVars)
//	err := batch.Execute(ctx, db)
//
// Variables of each statement are namespaced before the batch is sent, so
// the two $id above do not collide.
package database
