// Package metrics exposes Prometheus metrics about instrumented AWS calls.
//
// *Metrics implements observability.Observer: pass it to awsv2.NewInstrumentor or
// awsv1.NewInstrumentor, or let FXModule provide it, and every call is counted:
//
//	aws_calls_total{aws_service, operation, outcome}
//	aws_call_duration_seconds{aws_service, operation}
//	aws_call_retries_total{aws_service, operation}
//	aws_calls_untraced_total{aws_service, operation}
//
// outcome is one of success, error, fault or throttle. Every metric carries a
// constant service label and, when Config.Namespace is set, a name prefix.
//
// The registry is served at Config.Address:
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "orders"})
//	go m.Server.ListenAndServe()
package metrics
