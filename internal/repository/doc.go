// Package repository implements SurrealQL data access for stalls, dishes
// and visitors.
//
// Stored field names are snake_case (stall_id, live_demo, sold_by,
// stalls_visited, dishes_rated, created_on) and are mapped onto the model
// structs by hand. Lists are returned in insertion order. Record ids are
// rendered as "table:key" strings, and dish stall references are stored as
// those strings so a reference to a missing stall is kept as is.
//
// FestivalRepository implements report.Source over the live store.
package repository
