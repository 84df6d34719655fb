package tracer

import (
	"context"
	"crypto/rand"

	oteltrace "go.opentelemetry.io/otel/trace"
)

type documentIDsKey struct{}

type documentIDs struct {
	traceID string
	id      string
}

func contextWithDocumentIDs(ctx context.Context, traceID, id string) context.Context {
	return context.WithValue(ctx, documentIDsKey{}, documentIDs{traceID: traceID, id: id})
}

// xrayIDGenerator hands out the ids of the document being emitted, so a span
// carries the same trace and span id as the X-Amzn-Trace-Id header sent
// downstream. Documents whose ids are not X-Ray formatted get random ids.
type xrayIDGenerator struct{}

func newIDGenerator() xrayIDGenerator {
	return xrayIDGenerator{}
}

func (g xrayIDGenerator) NewIDs(ctx context.Context) (oteltrace.TraceID, oteltrace.SpanID) {
	ids, _ := ctx.Value(documentIDsKey{}).(documentIDs)

	tid, ok := parseTraceID(ids.traceID)
	if !ok {
		tid = g.randomTraceID()
	}
	return tid, g.spanID(ids.id)
}

func (g xrayIDGenerator) NewSpanID(ctx context.Context, _ oteltrace.TraceID) oteltrace.SpanID {
	ids, _ := ctx.Value(documentIDsKey{}).(documentIDs)
	return g.spanID(ids.id)
}

func (g xrayIDGenerator) spanID(id string) oteltrace.SpanID {
	if sid, err := oteltrace.SpanIDFromHex(id); err == nil {
		return sid
	}
	var sid oteltrace.SpanID
	for !sid.IsValid() {
		_, _ = rand.Read(sid[:])
	}
	return sid
}

func (g xrayIDGenerator) randomTraceID() oteltrace.TraceID {
	var tid oteltrace.TraceID
	for !tid.IsValid() {
		_, _ = rand.Read(tid[:])
	}
	return tid
}
