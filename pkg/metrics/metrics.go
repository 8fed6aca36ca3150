// Package metrics holds shared instrumentation defaults.
package metrics

// DefaultBuckets are the latency histogram boundaries, in seconds, shared by
// the request-duration metrics. The upper buckets leave room for handlers
// that wait on external geocoding calls.
var DefaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30} //nolint: gochecknoglobals
