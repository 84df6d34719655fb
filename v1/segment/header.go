package segment

import (
	"fmt"
	"strings"
)

// TraceHeaderName is the HTTP header carrying the trace context between services.
const TraceHeaderName = "X-Amzn-Trace-Id"

// TraceHeader is the decoded value of an X-Amzn-Trace-Id header.
type TraceHeader struct {
	// Root is the trace ID shared by every entity in the trace.
	Root string
	// Parent is the ID of the entity that made the call.
	Parent string
	// Sampled is false when the upstream decided not to trace.
	Sampled bool
}

// String renders the header as Root=<id>;Parent=<id>;Sampled=<0|1>.
// Parent is omitted when empty.
func (h TraceHeader) String() string {
	sampled := "0"
	if h.Sampled {
		sampled = "1"
	}

	var b strings.Builder
	b.WriteString("Root=")
	b.WriteString(h.Root)
	if h.Parent != "" {
		b.WriteString(";Parent=")
		b.WriteString(h.Parent)
	}
	b.WriteString(";Sampled=")
	b.WriteString(sampled)
	return b.String()
}

// ParseTraceHeader decodes a header value. Keys may come in any order and unknown
// keys are ignored. A missing or undecided ("?") Sampled value counts as sampled.
func ParseTraceHeader(value string) (TraceHeader, error) {
	h := TraceHeader{Sampled: true}

	for _, part := range strings.Split(value, ";") {
		key, val, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "Root":
			h.Root = strings.TrimSpace(val)
		case "Parent":
			h.Parent = strings.TrimSpace(val)
		case "Sampled":
			h.Sampled = strings.TrimSpace(val) != "0"
		}
	}

	if h.Root == "" {
		return TraceHeader{}, fmt.Errorf("%w: %q", ErrInvalidTraceHeader, value)
	}
	return h, nil
}

