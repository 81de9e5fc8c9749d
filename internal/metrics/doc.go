// Package metrics defines Signpost's Prometheus collectors.
//
// Collectors are registered on the controller-runtime registry so that a
// single promhttp handler exposes them alongside the client-go metrics.
// Components record through the helper functions in recorder.go rather than
// touching the collectors directly.
package metrics
