package segment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceHeaderString(t *testing.T) {
	tests := []struct {
		name   string
		header TraceHeader
		want   string
	}{
		{
			name:   "sampled",
			header: TraceHeader{Root: "1-abc", Parent: "def", Sampled: true},
			want:   "Root=1-abc;Parent=def;Sampled=1",
		},
		{
			name:   "not sampled",
			header: TraceHeader{Root: "1-abc", Parent: "def", Sampled: false},
			want:   "Root=1-abc;Parent=def;Sampled=0",
		},
		{
			name:   "no parent",
			header: TraceHeader{Root: "1-abc", Sampled: true},
			want:   "Root=1-abc;Sampled=1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.header.String())
		})
	}
}

func TestParseTraceHeader(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    TraceHeader
		wantErr bool
	}{
		{
			name:  "canonical",
			value: "Root=1-5759e988-bd862e3fe1be46a994272793;Parent=53995c3f42cd8ad8;Sampled=1",
			want:  TraceHeader{Root: "1-5759e988-bd862e3fe1be46a994272793", Parent: "53995c3f42cd8ad8", Sampled: true},
		},
		{
			name:  "reordered with spaces and unknown keys",
			value: "Sampled=0; Self=1-aaa ;Parent=def; Root=1-abc",
			want:  TraceHeader{Root: "1-abc", Parent: "def", Sampled: false},
		},
		{
			name:  "undecided sampling",
			value: "Root=1-abc;Sampled=?",
			want:  TraceHeader{Root: "1-abc", Sampled: true},
		},
		{
			name:    "missing root",
			value:   "Parent=def;Sampled=1",
			wantErr: true,
		},
		{
			name:    "empty",
			value:   "",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTraceHeader(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsInvalidTraceHeaderError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTraceHeaderRoundTrip(t *testing.T) {
	h := TraceHeader{Root: NewTraceID(), Parent: NewID(), Sampled: true}

	got, err := ParseTraceHeader(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, got)
}
