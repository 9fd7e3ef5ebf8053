// Package snapshot keeps a local copy of the festival data for the dashboard.
//
// A Snapshot is captured from any report.Source, persisted in Badger by a
// Store and served back through Source so reports can run offline. Demo is
// the built-in festival used before the first capture and by the seed
// endpoint.
package snapshot
