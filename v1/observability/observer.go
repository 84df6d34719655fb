// Package observability defines the hook instrumented components use to report
// each operation they perform, so metrics and tracing can be attached without the
// component knowing about either.
package observability

import "time"

// OperationContext describes one completed operation.
type OperationContext struct {
	// Component is the reporting package, e.g. "aws".
	Component string

	// Operation is the operation name, e.g. "getObject".
	Operation string

	// Resource is the main target of the operation, e.g. the AWS service.
	Resource string

	// SubResource narrows Resource, e.g. the region.
	SubResource string

	// Duration is the wall time the operation took.
	Duration time.Duration

	// Error is the error returned to the caller, if any.
	Error error

	// Size is the payload size in bytes when known.
	Size int64

	// Metadata carries component specific details.
	Metadata map[string]interface{}
}

// Observer receives one OperationContext per completed operation.
// Implementations must be safe for concurrent use and must not block.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

func (f ObserverFunc) ObserveOperation(ctx OperationContext) { f(ctx) }
