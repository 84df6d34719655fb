package tracer

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"

	"github.com/Aleph-Alpha/awsxray/v1/segment"
)

const (
	attrTraceID   = "aws.xray.trace_id"
	attrID        = "aws.xray.id"
	attrNamespace = "aws.xray.namespace"
	attrThrottle  = "aws.xray.throttle"
	attrError     = "aws.xray.error"
	attrFault     = "aws.xray.fault"
)

// Emit records doc and its subsegments as spans. Spans reuse the X-Ray trace id
// and entity ids, so downstream services that received a trace header can be
// joined to them. The root span continues the upstream trace when the segment's
// trace and parent ids are X-Ray formatted.
func (t *Tracer) Emit(doc *segment.Document) error {
	if doc == nil {
		return errors.New("tracer: nil document")
	}

	ctx := context.Background()
	if parent, ok := remoteParent(doc.TraceID, doc.ParentID); ok {
		ctx = oteltrace.ContextWithRemoteSpanContext(ctx, parent)
	}

	t.emit(ctx, t.provider.Tracer(instrumentationName), doc, doc.TraceID)
	return nil
}

func (t *Tracer) emit(ctx context.Context, tr oteltrace.Tracer, doc *segment.Document, traceID string) {
	kind := oteltrace.SpanKindServer
	if doc.Type == "subsegment" {
		kind = oteltrace.SpanKindInternal
		if doc.Namespace == "aws" || doc.Namespace == "remote" {
			kind = oteltrace.SpanKindClient
		}
	}

	ctx, span := tr.Start(contextWithDocumentIDs(ctx, traceID, doc.ID), doc.Name,
		oteltrace.WithSpanKind(kind),
		oteltrace.WithTimestamp(fromEpochSeconds(doc.StartTime)),
		oteltrace.WithAttributes(documentAttributes(doc, traceID)...),
	)

	if doc.Cause != nil {
		span.RecordError(errors.New(doc.Cause.Message), oteltrace.WithAttributes(
			attribute.String("exception.type", doc.Cause.Name),
		))
	}
	if doc.Fault || doc.Error {
		msg := "error"
		if doc.Cause != nil {
			msg = doc.Cause.Message
		}
		span.SetStatus(codes.Error, msg)
	}

	for _, child := range doc.Subsegments {
		t.emit(ctx, tr, child, traceID)
	}

	end := fromEpochSeconds(doc.EndTime)
	if end.IsZero() {
		end = time.Now()
	}
	span.End(oteltrace.WithTimestamp(end))
}

func documentAttributes(doc *segment.Document, traceID string) []attribute.KeyValue {
	attrs := []attribute.KeyValue{
		attribute.String(attrTraceID, traceID),
		attribute.String(attrID, doc.ID),
	}
	if doc.Namespace != "" {
		attrs = append(attrs, attribute.String(attrNamespace, doc.Namespace))
	}
	if doc.Throttle {
		attrs = append(attrs, attribute.Bool(attrThrottle, true))
	}
	if doc.Error {
		attrs = append(attrs, attribute.Bool(attrError, true))
	}
	if doc.Fault {
		attrs = append(attrs, attribute.Bool(attrFault, true))
	}
	attrs = append(attrs, flatten("aws", doc.AWS)...)
	attrs = append(attrs, flatten("http", doc.HTTP)...)
	for k, v := range doc.Metadata {
		attrs = append(attrs, flatten("metadata."+k, v)...)
	}
	return attrs
}

// flatten turns v into dotted attributes under prefix, going through its JSON
// form so struct tags decide the keys.
func flatten(prefix string, v interface{}) []attribute.KeyValue {
	if v == nil {
		return nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return []attribute.KeyValue{attribute.String(prefix, fmt.Sprint(v))}
	}
	var decoded interface{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil
	}

	var attrs []attribute.KeyValue
	var walk func(key string, val interface{})
	walk = func(key string, val interface{}) {
		switch typed := val.(type) {
		case map[string]interface{}:
			for k, child := range typed {
				walk(key+"."+k, child)
			}
		case string:
			attrs = append(attrs, attribute.String(key, typed))
		case bool:
			attrs = append(attrs, attribute.Bool(key, typed))
		case float64:
			if typed == math.Trunc(typed) && math.Abs(typed) < 1<<53 {
				attrs = append(attrs, attribute.Int64(key, int64(typed)))
			} else {
				attrs = append(attrs, attribute.Float64(key, typed))
			}
		case nil:
		default:
			encoded, _ := json.Marshal(typed)
			attrs = append(attrs, attribute.String(key, string(encoded)))
		}
	}
	walk(prefix, decoded)
	return attrs
}

// remoteParent converts X-Ray ids, "1-<8 hex>-<24 hex>" and 16 hex, into an
// OpenTelemetry span context.
func remoteParent(traceID, parentID string) (oteltrace.SpanContext, bool) {
	tid, ok := parseTraceID(traceID)
	if !ok {
		return oteltrace.SpanContext{}, false
	}
	sid, err := oteltrace.SpanIDFromHex(parentID)
	if err != nil {
		return oteltrace.SpanContext{}, false
	}
	return oteltrace.NewSpanContext(oteltrace.SpanContextConfig{
		TraceID:    tid,
		SpanID:     sid,
		TraceFlags: oteltrace.FlagsSampled,
		Remote:     true,
	}), true
}

func parseTraceID(traceID string) (oteltrace.TraceID, bool) {
	parts := strings.Split(traceID, "-")
	if len(parts) != 3 || parts[0] != "1" || len(parts[1]) != 8 || len(parts[2]) != 24 {
		return oteltrace.TraceID{}, false
	}
	var tid oteltrace.TraceID
	if _, err := hex.Decode(tid[:], []byte(parts[1]+parts[2])); err != nil {
		return oteltrace.TraceID{}, false
	}
	return tid, tid.IsValid()
}

func fromEpochSeconds(sec float64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(0, int64(sec*float64(time.Second)))
}
