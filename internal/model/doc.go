// Package model defines the festival entities, their create requests and the
// API error shape.
//
// # Entities
//
//   - Stall: a food stall with cuisine, sales, live demo flag and contests
//   - Dish: a dish owned by one stall and optionally sold by others
//   - Visitor: a festival visitor with visit and rating counts
//
// Ids are SurrealDB record ids in "table:key" form ("stall:x1"). Dishes hold
// stall ids as plain strings; nothing stops them from dangling.
//
// # Requests
//
// Create requests are normalized, then validated:
//
//	req.Normalize()
//	if errs := req.Validate(); len(errs) > 0 {
//	    return model.NewValidationError(errs)
//	}
//	stall := req.ToStall()
//
// # Errors
//
// API errors are RFC 9457 problem documents. Message repeats Detail so
// clients that only read {message} still get the reason.
package model
