package segment

import "errors"

var (
	// ErrAlreadyClosed is returned when a segment or subsegment is closed a second time.
	ErrAlreadyClosed = errors.New("segment: already closed")

	// ErrInvalidTraceHeader is returned when a trace header value has no usable Root.
	ErrInvalidTraceHeader = errors.New("segment: invalid trace header")
)

// IsAlreadyClosedError checks if the error reports a repeated close.
func IsAlreadyClosedError(err error) bool {
	return errors.Is(err, ErrAlreadyClosed)
}

// IsInvalidTraceHeaderError checks if the error reports an unparsable trace header.
func IsInvalidTraceHeaderError(err error) bool {
	return errors.Is(err, ErrInvalidTraceHeader)
}
