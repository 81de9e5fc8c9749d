package metrics

import "time"

// RecordList records one adapter list call: how many objects it returned,
// how many Descriptors survived, and how long it took.
func RecordList(adapter string, objects, descriptors int, duration time.Duration) {
	adapterObjectsTotal.WithLabelValues(adapter).Add(float64(objects))
	adapterDescriptorsTotal.WithLabelValues(adapter).Add(float64(descriptors))
	adapterListDuration.WithLabelValues(adapter).Observe(duration.Seconds())
}

// RecordAdapterError counts an adapter failure under the given reason.
func RecordAdapterError(adapter, reason string) {
	adapterErrorsTotal.WithLabelValues(adapter, reason).Inc()
}

// ObserveAggregation records the latency of a full aggregation.
func ObserveAggregation(duration time.Duration) {
	aggregationDuration.Observe(duration.Seconds())
}

// RecordCacheLookup counts a cache hit or miss.
func RecordCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	cacheRequestsTotal.WithLabelValues(result).Inc()
}

// RecordBroadcast counts one change event sent to subscribers.
func RecordBroadcast() {
	eventBroadcastsTotal.Inc()
}

// SetStreamSubscribers sets the number of connected stream subscribers.
func SetStreamSubscribers(n int) {
	streamSubscribers.Set(float64(n))
}
