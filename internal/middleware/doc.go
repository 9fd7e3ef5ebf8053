// Package middleware provides HTTP middleware for the festival API.
//
// Middleware are plain func(http.Handler) http.Handler values composed with
// Chain, outermost first:
//
//	h := middleware.Chain(mux,
//	    middleware.Recovery,
//	    middleware.RequestID,
//	    middleware.Logger,
//	    middleware.CORS(origins),
//	    middleware.RateLimit(limiter),
//	    middleware.Compress,
//	    middleware.Metrics,
//	)
//
// Metrics reads the matched ServeMux pattern and so goes last.
package middleware
