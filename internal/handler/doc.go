// Package handler provides the HTTP handlers for the festival API.
//
// Handlers decode requests, call a service and write JSON. Successful reads
// return bare JSON values (arrays for collections and queries); creates
// return 201 with the stored object. Failures are RFC 9457 problem
// documents produced by MapServiceError:
//
//	422  validation failed, including unknown stall references
//	400  malformed JSON
//	403  seeding outside development
//	404  unknown query
//	409  seeding a store that already has data
//	500  storage or unexpected failure
//
// NewRouter mounts everything on a net/http ServeMux using method patterns.
package handler
