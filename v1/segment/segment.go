package segment

import (
	"sync"
	"time"
)

// Entity is anything a subsegment can be attached to: a Segment or another Subsegment.
// It is what ResolveSegment returns for the current context.
type Entity interface {
	// ID is the 16 hex character identifier of this entity.
	ID() string

	// Name is the display name of this entity.
	Name() string

	// Root walks up to the Segment that owns this entity. A Segment returns itself.
	Root() *Segment

	// AddNewSubsegment opens a child subsegment. Safe for concurrent use.
	AddNewSubsegment(name string) *Subsegment
}

// Segment is the root tracing unit for one top-level unit of work.
// Subsegments may be added from several goroutines at once.
type Segment struct {
	mu sync.Mutex

	traceID   string
	id        string
	parentID  string
	name      string
	notTraced bool

	startTime time.Time
	endTime   time.Time
	closed    bool

	subsegments []*Subsegment

	emitter Emitter
	logger  Logger
}

func newSegment(name string, header TraceHeader, emitter Emitter, logger Logger) *Segment {
	traceID := header.Root
	if traceID == "" {
		traceID = NewTraceID()
	}

	return &Segment{
		traceID:   traceID,
		id:        NewID(),
		parentID:  header.Parent,
		name:      name,
		notTraced: !header.Sampled,
		startTime: time.Now(),
		emitter:   emitter,
		logger:    logger,
	}
}

func (s *Segment) ID() string       { return s.id }
func (s *Segment) Name() string     { return s.name }
func (s *Segment) Root() *Segment   { return s }
func (s *Segment) TraceID() string  { return s.traceID }
func (s *Segment) ParentID() string { return s.parentID }

// NotTraced reports whether the sampling decision for this trace was negative.
func (s *Segment) NotTraced() bool { return s.notTraced }

// AddNewSubsegment opens a subsegment directly under the segment.
func (s *Segment) AddNewSubsegment(name string) *Subsegment {
	sub := newSubsegment(name, s, s)

	s.mu.Lock()
	s.subsegments = append(s.subsegments, sub)
	s.mu.Unlock()

	return sub
}

// Subsegments returns a snapshot of the direct children.
func (s *Segment) Subsegments() []*Subsegment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Subsegment, len(s.subsegments))
	copy(out, s.subsegments)
	return out
}

// Closed reports whether Close has been called.
func (s *Segment) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close ends the segment and hands its document to the emitter. Sampled-out
// segments are closed without being emitted.
func (s *Segment) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrAlreadyClosed
	}
	s.closed = true
	s.endTime = time.Now()
	s.mu.Unlock()

	if s.notTraced || s.emitter == nil {
		return nil
	}

	if err := s.emitter.Emit(s.Document()); err != nil {
		s.logger.Warn("failed to emit segment", err, map[string]interface{}{
			"trace_id":   s.traceID,
			"segment_id": s.id,
		})
	}
	return nil
}

// Document renders the segment and its subsegment tree.
func (s *Segment) Document() *Document {
	s.mu.Lock()
	doc := &Document{
		Name:       s.name,
		ID:         s.id,
		TraceID:    s.traceID,
		ParentID:   s.parentID,
		StartTime:  epochSeconds(s.startTime),
		EndTime:    epochSeconds(s.endTime),
		InProgress: !s.closed,
	}
	children := make([]*Subsegment, len(s.subsegments))
	copy(children, s.subsegments)
	s.mu.Unlock()

	for _, child := range children {
		doc.Subsegments = append(doc.Subsegments, child.document())
	}
	return doc
}

func epochSeconds(t time.Time) float64 {
	if t.IsZero() {
		return 0
	}
	return float64(t.UnixNano()) / float64(time.Second)
}
