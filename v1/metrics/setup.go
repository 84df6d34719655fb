package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus registry, the HTTP server exposing it and the
// AWS call metrics fed by ObserveOperation.
type Metrics struct {
	// Server exposes the /metrics endpoint.
	Server *http.Server

	// Registry is the service's own registry, isolated from the global one.
	Registry *prometheus.Registry

	namespace  string
	registerer prometheus.Registerer

	callsTotal    *prometheus.CounterVec
	callDuration  *prometheus.HistogramVec
	retriesTotal  *prometheus.CounterVec
	untracedTotal *prometheus.CounterVec
}

// NewMetrics creates a dedicated registry, registers the AWS call metrics and,
// if enabled, the default collectors, all labelled with service="<ServiceName>".
//
// Example:
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "orders"})
//	go m.Server.ListenAndServe()
//
//	inst := awsv2.NewInstrumentor(recorder, awsv2.Config{}, log, m)
func NewMetrics(cfg Config) *Metrics {
	if cfg.Address == "" {
		cfg.Address = DefaultMetricsAddress
	}

	registry := prometheus.NewRegistry()
	registerer := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry:   registry,
		namespace:  cfg.Namespace,
		registerer: registerer,
	}

	m.callsTotal = createCounterVec(cfg.Namespace, "aws_calls_total",
		"Total number of AWS SDK calls by outcome", []string{"aws_service", "operation", "outcome"})
	m.callDuration = createHistogramVec(cfg.Namespace, "aws_call_duration_seconds",
		"Duration of AWS SDK calls in seconds, retries included", []string{"aws_service", "operation"}, prometheus.DefBuckets)
	m.retriesTotal = createCounterVec(cfg.Namespace, "aws_call_retries_total",
		"Total number of retried AWS SDK call attempts", []string{"aws_service", "operation"})
	m.untracedTotal = createCounterVec(cfg.Namespace, "aws_calls_untraced_total",
		"Total number of AWS SDK calls made without an active segment", []string{"aws_service", "operation"})

	registerer.MustRegister(
		m.callsTotal,
		m.callDuration,
		m.retriesTotal,
		m.untracedTotal,
	)

	if cfg.EnableDefaultCollectors {
		registerer.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	return m
}
