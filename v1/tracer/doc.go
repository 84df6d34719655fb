/*
Package tracer sets up an OpenTelemetry TracerProvider and re-exports closed
segments through it.

*Tracer implements segment.Emitter. Handing it to a segment.Recorder turns every
closed segment into a tree of spans: the segment becomes a server span and each
subsegment a child span, AWS calls as client spans. Start and end times are kept,
and the throttle, error and fault flags, the "aws" and "http" records and the
error cause become span attributes, status and events.

When the segment's trace and parent ids are X-Ray formatted the root span
continues that trace, so the OpenTelemetry backend and X-Ray agree on the trace id:

	1-5759e988-bd862e3fe1be46a994272793 -> 5759e988bd862e3fe1be46a994272793

With Config.EnableExport spans are exported over OTLP/HTTP, configured through
the standard OTEL_EXPORTER_OTLP_* environment variables.

	tr, err := tracer.NewClient(tracer.Config{ServiceName: "orders", EnableExport: true}, log)
	if err != nil {
		return err
	}
	defer tr.Shutdown(ctx)

	recorder := segment.NewRecorder(segment.Config{ServiceName: "orders"}, tr, log)
*/
package tracer
