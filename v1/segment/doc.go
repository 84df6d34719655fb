// Package segment holds the trace data model used by the AWS client instrumentation:
// segments, subsegments, the X-Amzn-Trace-Id header value and the context plumbing
// that lets instrumented clients find the active entity.
//
// A Segment represents one top-level unit of work, usually one incoming request.
// Every outbound call made while handling it gets a Subsegment. Segments are
// carried on a context.Context rather than in goroutine-local state:
//
//	rec := segment.NewRecorder(segment.Config{ServiceName: "ingest"}, emitter, log)
//
//	func handle(w http.ResponseWriter, r *http.Request) {
//		header, _ := segment.ParseTraceHeader(r.Header.Get(segment.TraceHeaderName))
//		ctx, seg := rec.BeginSegmentFromHeader(r.Context(), "", header)
//		defer seg.Close()
//
//		// Clients instrumented with awsv2 or awsv1 open subsegments under seg.
//		s3Client.GetObject(ctx, input)
//	}
//
// # Lifecycle
//
// A subsegment is closed exactly once, with Close or CloseWithError. A second close
// returns ErrAlreadyClosed, and attribute or flag writes after close are dropped.
// Closing the segment renders the whole tree as a Document and hands it to the
// Emitter. Sampled-out segments (Sampled=0 upstream) are never emitted.
//
// # Thread Safety
//
// Several goroutines may add subsegments under the same segment concurrently.
// A single subsegment is meant to be written by the goroutine that opened it.
package segment
