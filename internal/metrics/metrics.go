package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

// Error reasons for adapterErrorsTotal.
const (
	ReasonList      = "list"
	ReasonMalformed = "malformed"
	ReasonForbidden = "forbidden"
	ReasonNotFound  = "notfound"
	ReasonTimeout   = "timeout"
	ReasonPanic     = "panic"
)

var (
	adapterObjectsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signpost_adapter_objects_total",
			Help: "Objects listed per adapter, before extraction and inclusion filtering.",
		},
		[]string{"adapter"},
	)

	adapterDescriptorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signpost_adapter_descriptors_total",
			Help: "Descriptors surfaced per adapter after inclusion filtering.",
		},
		[]string{"adapter"},
	)

	adapterErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signpost_adapter_errors_total",
			Help: "Adapter failures by reason. malformed drops one object; every other reason drops the whole source.",
		},
		[]string{"adapter", "reason"},
	)

	adapterListDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "signpost_adapter_list_duration_seconds",
			Help:    "Latency of one adapter's list call in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"adapter"},
	)

	aggregationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "signpost_aggregation_duration_seconds",
			Help:    "Latency of a full aggregation across all active adapters in seconds.",
			Buckets: prometheus.DefBuckets,
		},
	)

	cacheRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signpost_cache_requests_total",
			Help: "Aggregation cache lookups by result.",
		},
		[]string{"result"},
	)

	eventBroadcastsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signpost_event_broadcasts_total",
			Help: "Change events broadcast to stream subscribers.",
		},
	)

	streamSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "signpost_stream_subscribers",
			Help: "Currently connected event stream subscribers.",
		},
	)
)

func init() {
	metrics.Registry.MustRegister(Collectors()...)
}

// Collectors returns all Signpost collectors. Useful for tests that check
// naming and registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		adapterObjectsTotal,
		adapterDescriptorsTotal,
		adapterErrorsTotal,
		adapterListDuration,
		aggregationDuration,
		cacheRequestsTotal,
		eventBroadcastsTotal,
		streamSubscribers,
	}
}
