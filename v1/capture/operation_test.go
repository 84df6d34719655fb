package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type GetObjectCommand struct{}

type renamedCommand struct{}

func (renamedCommand) OperationName() string { return "ListBuckets" }

func TestOperationName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "GetObjectCommand", want: "getObject"},
		{in: "GetObject", want: "getObject"},
		{in: "PutItemCommand", want: "putItem"},
		{in: "Command", want: ""},
		{in: "Cmd", want: "cmd"},
		{in: "", want: ""},
		{in: "x", want: "x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, OperationName(tt.in))
		})
	}
}

func TestOperationNameOf(t *testing.T) {
	assert.Equal(t, "getObject", OperationNameOf(GetObjectCommand{}))
	assert.Equal(t, "getObject", OperationNameOf(&GetObjectCommand{}))
	assert.Equal(t, "listBuckets", OperationNameOf(renamedCommand{}))
	assert.Equal(t, "", OperationNameOf(nil))
}
