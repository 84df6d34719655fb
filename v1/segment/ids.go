package segment

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// NewTraceID returns a trace ID of the form 1-<epoch seconds in hex>-<96 random bits in hex>.
func NewTraceID() string {
	return newTraceIDAt(time.Now())
}

func newTraceIDAt(t time.Time) string {
	return fmt.Sprintf("1-%08x-%s", t.Unix(), randomHex(12))
}

// NewID returns a 64-bit random entity ID rendered as 16 hex characters.
func NewID() string {
	return randomHex(8)
}

func randomHex(n int) string {
	b := make([]byte, n)
	// crypto/rand.Read never returns an error on supported platforms.
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
