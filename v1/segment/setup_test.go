package segment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderDefaults(t *testing.T) {
	rec := NewRecorder(Config{ServiceName: "ingest"}, nil, nil)

	assert.True(t, rec.IsAutomaticMode())
	assert.IsType(t, &LogEmitter{}, rec.emitter)

	_, seg := rec.BeginSegment(context.Background(), "")
	assert.Equal(t, "ingest", seg.Name())
	assert.False(t, seg.NotTraced())
	assert.Empty(t, seg.ParentID())
	require.NoError(t, seg.Close())
}

func TestRecorderManualMode(t *testing.T) {
	rec := NewRecorder(Config{ContextMode: ManualMode}, nil, nil)
	assert.False(t, rec.IsAutomaticMode())
}

func TestRecorderResolveSegment(t *testing.T) {
	rec := NewRecorder(Config{}, &recordingEmitter{}, nil)

	assert.Nil(t, rec.ResolveSegment(context.Background()))

	ctx, seg := rec.BeginSegment(context.Background(), "svc")
	assert.Same(t, seg, rec.ResolveSegment(ctx))

	subCtx, sub := rec.BeginSubsegment(ctx, "work")
	require.NotNil(t, sub)
	assert.Same(t, sub, rec.ResolveSegment(subCtx))
	assert.Same(t, seg, rec.ResolveSegment(subCtx).Root())
	assert.Same(t, seg, rec.ResolveSegment(ctx), "parent context is unchanged")
}

func TestRecorderBeginSubsegmentWithoutContext(t *testing.T) {
	rec := NewRecorder(Config{}, &recordingEmitter{}, nil)

	ctx := context.Background()
	got, sub := rec.BeginSubsegment(ctx, "work")
	assert.Nil(t, sub)
	assert.Equal(t, ctx, got)
}

func TestRecorderBeginSegmentFromHeader(t *testing.T) {
	rec := NewRecorder(Config{}, &recordingEmitter{}, nil)

	header, err := ParseTraceHeader("Root=1-5759e988-bd862e3fe1be46a994272793;Parent=53995c3f42cd8ad8;Sampled=0")
	require.NoError(t, err)

	_, seg := rec.BeginSegmentFromHeader(context.Background(), "svc", header)
	assert.Equal(t, "1-5759e988-bd862e3fe1be46a994272793", seg.TraceID())
	assert.Equal(t, "53995c3f42cd8ad8", seg.ParentID())
	assert.True(t, seg.NotTraced())
	assert.NotEqual(t, "53995c3f42cd8ad8", seg.ID())
}

