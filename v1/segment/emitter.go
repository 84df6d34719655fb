package segment

// Document is the serialisable form of a closed segment and its subsegment tree.
type Document struct {
	Name        string                 `json:"name"`
	ID          string                 `json:"id"`
	TraceID     string                 `json:"trace_id,omitempty"`
	ParentID    string                 `json:"parent_id,omitempty"`
	Type        string                 `json:"type,omitempty"`
	StartTime   float64                `json:"start_time"`
	EndTime     float64                `json:"end_time,omitempty"`
	InProgress  bool                   `json:"in_progress,omitempty"`
	Namespace   string                 `json:"namespace,omitempty"`
	Throttle    bool                   `json:"throttle,omitempty"`
	Error       bool                   `json:"error,omitempty"`
	Fault       bool                   `json:"fault,omitempty"`
	Cause       *ErrorPayload          `json:"cause,omitempty"`
	AWS         interface{}            `json:"aws,omitempty"`
	HTTP        interface{}            `json:"http,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	Subsegments []*Document            `json:"subsegments,omitempty"`
}

// Emitter ships closed segments to a backend.
type Emitter interface {
	Emit(doc *Document) error
}

// LogEmitter writes closed segments to the logger at debug level.
type LogEmitter struct {
	logger Logger
}

// NewLogEmitter creates an emitter backed by logger.
func NewLogEmitter(logger Logger) *LogEmitter {
	return &LogEmitter{logger: logger}
}

func (e *LogEmitter) Emit(doc *Document) error {
	e.logger.Debug("segment closed", nil, map[string]interface{}{
		"trace_id":    doc.TraceID,
		"segment_id":  doc.ID,
		"subsegments": len(doc.Subsegments),
		"document":    doc,
	})
	return nil
}
