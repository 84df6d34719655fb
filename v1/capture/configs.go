package capture

import "github.com/Aleph-Alpha/awsxray/v1/observability"

// Component is the component name reported to observers.
const Component = "aws"

// Config configures an Interceptor. Every field is optional.
type Config struct {
	// Logger receives pass-through notices and bookkeeping failures.
	Logger Logger

	// Observer is notified once per intercepted call.
	Observer observability.Observer

	// IsThrottle classifies SDK errors as throttling errors.
	IsThrottle ThrottleClassifier
}
