// Package metrics registers the process-wide Prometheus collectors exposed
// on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Ingestions counts ingestions that reached the done state.
	Ingestions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "expenselens_ingestions_total",
		Help: "Expense ingestions that completed and were persisted.",
	})

	// IngestFailures counts ingestions that reached the error state, by
	// failure kind: invalid_input, extraction_failed, storage_unavailable.
	IngestFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "expenselens_ingest_failures_total",
		Help: "Expense ingestions that failed, by failure kind.",
	}, []string{"kind"})

	// ProviderCalls counts outbound calls to external collaborators.
	ProviderCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "expenselens_provider_calls_total",
		Help: "Outbound calls to external services, by provider.",
	}, []string{"provider"})
)
