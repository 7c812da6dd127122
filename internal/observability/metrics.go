package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "synthforms_request_duration_seconds",
			Help: "Duration of HTTP requests in seconds",
		},
		[]string{"path", "method", "status"},
	)

	// FormsGenerated counts generated forms by template and entity kind
	FormsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synthforms_forms_generated_total",
			Help: "Number of synthetic forms generated",
		},
		[]string{"document_type", "entity_kind"},
	)

	// FieldFallbacks counts fields that fell back to the not-available sentinel
	FieldFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synthforms_field_fallbacks_total",
			Help: "Number of generated fields replaced by the not-available sentinel",
		},
		[]string{"field"},
	)

	// FormCacheOperations tracks seeded form cache lookups and writes
	FormCacheOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synthforms_form_cache_operations_total",
			Help: "Number of seeded form cache operations",
		},
		[]string{"operation", "result"},
	)

	// SinkOperations tracks writes to the mongo and amqp sinks
	SinkOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "synthforms_sink_operations_total",
			Help: "Number of form sink operations",
		},
		[]string{"sink", "status"},
	)

	// ActiveConnections tracks active connections
	ActiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "synthforms_active_connections",
			Help: "Number of active connections",
		},
	)
)
