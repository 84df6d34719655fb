package segment

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTraceID(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^1-[0-9a-f]{8}-[0-9a-f]{24}$`), NewTraceID())
	assert.NotEqual(t, NewTraceID(), NewTraceID())
}

func TestNewTraceIDEncodesTime(t *testing.T) {
	id := newTraceIDAt(time.Unix(0x5759e988, 0))
	assert.Equal(t, "1-5759e988-", id[:11])
}

func TestNewID(t *testing.T) {
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{16}$`), NewID())
}

func TestCauseFromHTTPStatus(t *testing.T) {
	tests := []struct {
		status int
		want   CauseType
	}{
		{0, CauseNone},
		{200, CauseNone},
		{302, CauseNone},
		{399, CauseNone},
		{400, CauseError},
		{404, CauseError},
		{429, CauseError},
		{499, CauseError},
		{500, CauseFault},
		{503, CauseFault},
		{599, CauseFault},
		{600, CauseNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CauseFromHTTPStatus(tt.status), "status %d", tt.status)
	}
}
