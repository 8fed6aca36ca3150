// Package controller contains the cross-cutting HTTP middlewares and helper
// handlers the API server is assembled from: WithCORS for permissive CORS
// plus preflight handling, WithLogger for request-scoped logging with request
// IDs, and PprofMux for the profiling endpoints.
package controller
