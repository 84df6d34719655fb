package segment

import (
	"sync"
	"time"
)

// StackFrame is one caller frame recorded with an error payload.
type StackFrame struct {
	Path  string `json:"path"`
	Line  int    `json:"line"`
	Label string `json:"label"`
}

// ErrorPayload describes the error a subsegment was closed with.
type ErrorPayload struct {
	Message string       `json:"message"`
	Name    string       `json:"name"`
	Stack   []StackFrame `json:"stack,omitempty"`
	// Remote marks errors raised by the called service rather than locally.
	Remote bool `json:"remote"`
}

// Subsegment records one call made on behalf of its parent entity. It is owned by
// the goroutine performing the call and must be closed exactly once; writes made
// after Close are dropped.
type Subsegment struct {
	mu sync.Mutex

	id     string
	name   string
	parent Entity
	root   *Segment

	startTime time.Time
	endTime   time.Time
	closed    bool

	attributes map[string]interface{}
	throttle   bool
	errored    bool
	fault      bool
	cause      *ErrorPayload

	subsegments []*Subsegment
}

func newSubsegment(name string, parent Entity, root *Segment) *Subsegment {
	return &Subsegment{
		id:         NewID(),
		name:       name,
		parent:     parent,
		root:       root,
		startTime:  time.Now(),
		attributes: make(map[string]interface{}),
	}
}

func (s *Subsegment) ID() string     { return s.id }
func (s *Subsegment) Name() string   { return s.name }
func (s *Subsegment) Root() *Segment { return s.root }

// Parent returns the entity this subsegment was opened under.
func (s *Subsegment) Parent() Entity { return s.parent }

// AddNewSubsegment opens a nested subsegment.
func (s *Subsegment) AddNewSubsegment(name string) *Subsegment {
	sub := newSubsegment(name, s, s.root)

	s.mu.Lock()
	s.subsegments = append(s.subsegments, sub)
	s.mu.Unlock()

	return sub
}

// AddAttribute stores a named value on the subsegment.
func (s *Subsegment) AddAttribute(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.attributes[key] = value
}

func (s *Subsegment) AddThrottleFlag() { s.setFlag(&s.throttle) }
func (s *Subsegment) AddErrorFlag()    { s.setFlag(&s.errored) }
func (s *Subsegment) AddFaultFlag()    { s.setFlag(&s.fault) }

func (s *Subsegment) setFlag(flag *bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	*flag = true
}

// Close ends the subsegment without an error.
func (s *Subsegment) Close() error {
	return s.close(nil)
}

// CloseWithError ends the subsegment and records the error that ended the call.
func (s *Subsegment) CloseWithError(payload ErrorPayload) error {
	return s.close(&payload)
}

func (s *Subsegment) close(cause *ErrorPayload) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrAlreadyClosed
	}
	s.closed = true
	s.endTime = time.Now()
	s.cause = cause
	return nil
}

// Attribute returns a single attribute value.
func (s *Subsegment) Attribute(key string) (interface{}, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.attributes[key]
	return v, ok
}

// Attributes returns a copy of all attributes.
func (s *Subsegment) Attributes() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]interface{}, len(s.attributes))
	for k, v := range s.attributes {
		out[k] = v
	}
	return out
}

func (s *Subsegment) Throttled() bool { return s.flag(&s.throttle) }
func (s *Subsegment) Errored() bool   { return s.flag(&s.errored) }
func (s *Subsegment) Faulted() bool   { return s.flag(&s.fault) }
func (s *Subsegment) Closed() bool    { return s.flag(&s.closed) }

func (s *Subsegment) flag(flag *bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *flag
}

// Cause returns the error payload given to CloseWithError, or nil.
func (s *Subsegment) Cause() *ErrorPayload {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cause
}

// Subsegments returns a snapshot of the nested children.
func (s *Subsegment) Subsegments() []*Subsegment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Subsegment, len(s.subsegments))
	copy(out, s.subsegments)
	return out
}

// StartTime and EndTime bound the call; EndTime is zero while open.
func (s *Subsegment) StartTime() time.Time { return s.startTime }

func (s *Subsegment) EndTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.endTime
}

func (s *Subsegment) document() *Document {
	s.mu.Lock()
	doc := &Document{
		Name:       s.name,
		ID:         s.id,
		Type:       "subsegment",
		StartTime:  epochSeconds(s.startTime),
		EndTime:    epochSeconds(s.endTime),
		InProgress: !s.closed,
		Throttle:   s.throttle,
		Error:      s.errored,
		Fault:      s.fault,
		Cause:      s.cause,
	}
	for k, v := range s.attributes {
		switch k {
		case "namespace":
			if ns, ok := v.(string); ok {
				doc.Namespace = ns
				continue
			}
		case "aws":
			doc.AWS = v
			continue
		case "http":
			doc.HTTP = v
			continue
		}
		if doc.Metadata == nil {
			doc.Metadata = make(map[string]interface{})
		}
		doc.Metadata[k] = v
	}
	children := make([]*Subsegment, len(s.subsegments))
	copy(children, s.subsegments)
	s.mu.Unlock()

	for _, child := range children {
		doc.Subsegments = append(doc.Subsegments, child.document())
	}
	return doc
}
