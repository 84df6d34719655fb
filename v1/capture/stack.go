package capture

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/Aleph-Alpha/awsxray/v1/segment"
)

const maxStackDepth = 32

// callerStack snapshots the stack of the goroutine issuing the call, skipping
// skip frames above the caller of callerStack.
func callerStack(skip int) []segment.StackFrame {
	pcs := make([]uintptr, maxStackDepth)
	n := runtime.Callers(skip+2, pcs)
	if n == 0 {
		return nil
	}

	frames := runtime.CallersFrames(pcs[:n])
	stack := make([]segment.StackFrame, 0, n)
	for {
		frame, more := frames.Next()
		stack = append(stack, segment.StackFrame{
			Path:  frame.File,
			Line:  frame.Line,
			Label: frame.Function,
		})
		if !more {
			break
		}
	}
	return stack
}

type apiError interface {
	ErrorCode() string
}

type codedError interface {
	Code() string
}

// errorName picks the most specific name for err: the service error code when
// the SDK exposes one, the Go type otherwise.
func errorName(err error) string {
	var api apiError
	if errors.As(err, &api) && api.ErrorCode() != "" {
		return api.ErrorCode()
	}
	var coded codedError
	if errors.As(err, &coded) && coded.Code() != "" {
		return coded.Code()
	}
	return strings.TrimPrefix(fmt.Sprintf("%T", err), "*")
}
