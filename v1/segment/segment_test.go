package segment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

type recordingEmitter struct {
	mu   sync.Mutex
	docs []*Document
	err  error
}

func (e *recordingEmitter) Emit(doc *Document) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.docs = append(e.docs, doc)
	return e.err
}

func (e *recordingEmitter) Documents() []*Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Document{}, e.docs...)
}

type recordingLogger struct {
	nopLogger
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) Warn(msg string, _ error, _ ...map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func TestSubsegmentCloseOnce(t *testing.T) {
	rec := NewRecorder(Config{ServiceName: "svc"}, &recordingEmitter{}, nil)
	_, seg := rec.BeginSegment(context.Background(), "")

	sub := seg.AddNewSubsegment("s3")
	assert.False(t, sub.Closed())
	assert.True(t, sub.EndTime().IsZero())

	require.NoError(t, sub.Close())
	assert.True(t, sub.Closed())
	assert.False(t, sub.EndTime().IsZero())

	err := sub.CloseWithError(ErrorPayload{Message: "late"})
	assert.True(t, IsAlreadyClosedError(err))
	assert.Nil(t, sub.Cause(), "second close must not record a cause")
}

func TestSubsegmentDropsWritesAfterClose(t *testing.T) {
	rec := NewRecorder(Config{}, &recordingEmitter{}, nil)
	_, seg := rec.BeginSegment(context.Background(), "svc")
	sub := seg.AddNewSubsegment("s3")

	sub.AddAttribute("namespace", "aws")
	require.NoError(t, sub.Close())

	sub.AddAttribute("http", "late")
	sub.AddThrottleFlag()
	sub.AddErrorFlag()
	sub.AddFaultFlag()

	assert.Equal(t, map[string]interface{}{"namespace": "aws"}, sub.Attributes())
	assert.False(t, sub.Throttled())
	assert.False(t, sub.Errored())
	assert.False(t, sub.Faulted())
}

func TestSubsegmentCloseWithError(t *testing.T) {
	rec := NewRecorder(Config{}, &recordingEmitter{}, nil)
	_, seg := rec.BeginSegment(context.Background(), "svc")
	sub := seg.AddNewSubsegment("dynamodb")

	payload := ErrorPayload{
		Message: "throttled",
		Name:    "ThrottlingException",
		Stack:   []StackFrame{{Path: "main.go", Line: 10, Label: "main.run"}},
		Remote:  true,
	}
	require.NoError(t, sub.CloseWithError(payload))

	require.NotNil(t, sub.Cause())
	assert.Equal(t, payload, *sub.Cause())
}

func TestNestedSubsegments(t *testing.T) {
	rec := NewRecorder(Config{}, &recordingEmitter{}, nil)
	_, seg := rec.BeginSegment(context.Background(), "svc")

	outer := seg.AddNewSubsegment("handler")
	inner := outer.AddNewSubsegment("s3")

	assert.Same(t, seg, inner.Root())
	assert.Same(t, outer, inner.Parent())
	assert.Equal(t, []*Subsegment{inner}, outer.Subsegments())
	assert.Equal(t, []*Subsegment{outer}, seg.Subsegments())
}

func TestConcurrentSubsegments(t *testing.T) {
	rec := NewRecorder(Config{}, &recordingEmitter{}, nil)
	_, seg := rec.BeginSegment(context.Background(), "svc")

	const calls = 64
	var g errgroup.Group
	for i := 0; i < calls; i++ {
		g.Go(func() error {
			sub := seg.AddNewSubsegment(fmt.Sprintf("call-%d", i))
			sub.AddAttribute("index", i)
			return sub.Close()
		})
	}
	require.NoError(t, g.Wait())

	subs := seg.Subsegments()
	require.Len(t, subs, calls)

	ids := make(map[string]struct{}, calls)
	for _, sub := range subs {
		assert.True(t, sub.Closed())
		ids[sub.ID()] = struct{}{}
	}
	assert.Len(t, ids, calls)
}

func TestSegmentCloseEmitsOnce(t *testing.T) {
	emitter := &recordingEmitter{}
	rec := NewRecorder(Config{}, emitter, nil)
	_, seg := rec.BeginSegment(context.Background(), "svc")

	sub := seg.AddNewSubsegment("s3")
	sub.AddAttribute("namespace", "aws")
	sub.AddAttribute("aws", map[string]interface{}{"operation": "getObject"})
	sub.AddAttribute("http", map[string]interface{}{"response": map[string]interface{}{"status": 404}})
	sub.AddAttribute("custom", "value")
	sub.AddErrorFlag()
	require.NoError(t, sub.Close())

	require.NoError(t, seg.Close())
	assert.True(t, IsAlreadyClosedError(seg.Close()))

	docs := emitter.Documents()
	require.Len(t, docs, 1)

	doc := docs[0]
	assert.Equal(t, "svc", doc.Name)
	assert.Equal(t, seg.TraceID(), doc.TraceID)
	assert.Equal(t, seg.ID(), doc.ID)
	assert.False(t, doc.InProgress)
	assert.GreaterOrEqual(t, doc.EndTime, doc.StartTime)

	require.Len(t, doc.Subsegments, 1)
	child := doc.Subsegments[0]
	assert.Equal(t, "subsegment", child.Type)
	assert.Equal(t, "aws", child.Namespace)
	assert.True(t, child.Error)
	assert.False(t, child.Fault)
	assert.Equal(t, map[string]interface{}{"operation": "getObject"}, child.AWS)
	assert.Equal(t, map[string]interface{}{"custom": "value"}, child.Metadata)

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"namespace":"aws"`)
	assert.Contains(t, string(raw), `"trace_id":"`+seg.TraceID()+`"`)
}

func TestSegmentNotTracedIsNotEmitted(t *testing.T) {
	emitter := &recordingEmitter{}
	sampled := false
	rec := NewRecorder(Config{Sampled: &sampled}, emitter, nil)

	_, seg := rec.BeginSegment(context.Background(), "svc")
	assert.True(t, seg.NotTraced())
	require.NoError(t, seg.Close())

	assert.Empty(t, emitter.Documents())
}

func TestSegmentEmitFailureIsLogged(t *testing.T) {
	log := &recordingLogger{}
	rec := NewRecorder(Config{}, &recordingEmitter{err: errors.New("daemon down")}, log)
	_, seg := rec.BeginSegment(context.Background(), "svc")

	require.NoError(t, seg.Close())
	assert.Equal(t, []string{"failed to emit segment"}, log.warns)
}
