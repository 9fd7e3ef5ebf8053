// Package service implements the business logic layer for the festival API.
//
// Services sit between HTTP handlers and repositories:
//
//   - EntityService validates and stores stalls, dishes and visitors
//   - ReportService resolves and runs the fixed reports, with an optional cache
//   - FestivalService serves headline figures and seeds demo data
//
// Each constructor takes a config struct. Services declare the repository
// interfaces they need so tests can substitute func-field mocks.
//
// # Errors
//
// Failures are reported with the sentinels in errors.go. Validation problems
// come back as *ValidationError, which matches ErrValidation with errors.Is
// and carries one entry per offending field:
//
//	_, err := svc.CreateDish(ctx, req)
//	if errors.Is(err, service.ErrStallNotFound) {
//	    // stallId or a soldBy entry does not resolve
//	}
package service
