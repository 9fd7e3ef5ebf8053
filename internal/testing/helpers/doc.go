// Package helpers provides HTTP and database assertions for festival API tests.
//
// # Requests
//
//	rr := helpers.NewRequest(t, "POST", "/api/stalls").
//	    WithBody(map[string]any{"name": "Spice Route", "cuisine": "Indian"}).
//	    Do(router)
//	helpers.AssertStatus(t, rr, http.StatusCreated)
//
// # Problem responses
//
//	helpers.AssertValidationError(t, rr, "cuisine")
//	helpers.AssertProblemDetails(t, rr, http.StatusNotFound, model.ErrCodeNotFound)
//
// # Records
//
//	helpers.AssertRecordExists(t, db, "stall:abc")
package helpers
