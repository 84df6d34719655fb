package segment

import "context"

// Logger defines the logging operations used by the segment package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

// Recorder starts segments, places them on the context and resolves the active
// entity for instrumented clients. It is safe for concurrent use.
type Recorder struct {
	cfg     Config
	emitter Emitter
	logger  Logger
}

// NewRecorder creates a Recorder.
//
// Parameters:
//   - cfg: segment naming, context mode and default sampling decision
//   - emitter: destination for closed segments; nil selects a LogEmitter
//   - logger: may be nil
//
// Example:
//
//	rec := segment.NewRecorder(segment.Config{ServiceName: "ingest"}, nil, log)
//	ctx, seg := rec.BeginSegment(ctx, "")
//	defer seg.Close()
func NewRecorder(cfg Config, emitter Emitter, logger Logger) *Recorder {
	if logger == nil {
		logger = nopLogger{}
	}
	if emitter == nil {
		emitter = NewLogEmitter(logger)
	}
	if cfg.ContextMode == "" {
		cfg.ContextMode = AutomaticMode
	}
	return &Recorder{cfg: cfg, emitter: emitter, logger: logger}
}

// BeginSegment starts a new trace and returns a context carrying its segment.
// An empty name falls back to Config.ServiceName.
func (r *Recorder) BeginSegment(ctx context.Context, name string) (context.Context, *Segment) {
	return r.BeginSegmentFromHeader(ctx, name, TraceHeader{Sampled: r.cfg.sampled()})
}

// BeginSegmentFromHeader starts a segment that continues the trace described by
// header, typically parsed from an incoming request. An empty Root starts a new trace.
func (r *Recorder) BeginSegmentFromHeader(ctx context.Context, name string, header TraceHeader) (context.Context, *Segment) {
	if name == "" {
		name = r.cfg.ServiceName
	}
	seg := newSegment(name, header, r.emitter, r.logger)
	return ContextWithEntity(ctx, seg), seg
}

// BeginSubsegment opens a subsegment under the active entity. It returns a nil
// subsegment and the unchanged context when no entity is active.
func (r *Recorder) BeginSubsegment(ctx context.Context, name string) (context.Context, *Subsegment) {
	parent := FromContext(ctx)
	if parent == nil {
		return ctx, nil
	}
	sub := parent.AddNewSubsegment(name)
	return ContextWithEntity(ctx, sub), sub
}

// ResolveSegment returns the active entity for ctx, or nil.
func (r *Recorder) ResolveSegment(ctx context.Context) Entity {
	return FromContext(ctx)
}

// IsAutomaticMode reports whether the recorder runs in automatic context mode.
func (r *Recorder) IsAutomaticMode() bool {
	return r.cfg.automatic()
}
