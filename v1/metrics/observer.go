package metrics

import (
	"github.com/Aleph-Alpha/awsxray/v1/observability"
)

const (
	OutcomeSuccess  = "success"
	OutcomeError    = "error"
	OutcomeFault    = "fault"
	OutcomeThrottle = "throttle"
)

// ObserveOperation records one AWS call.
func (m *Metrics) ObserveOperation(ctx observability.OperationContext) {
	service, operation := ctx.Resource, ctx.Operation

	m.callsTotal.WithLabelValues(service, operation, outcome(ctx)).Inc()
	m.callDuration.WithLabelValues(service, operation).Observe(ctx.Duration.Seconds())

	if retries, ok := ctx.Metadata["retries"].(int); ok && retries > 0 {
		m.retriesTotal.WithLabelValues(service, operation).Add(float64(retries))
	}
	if traced, ok := ctx.Metadata["traced"].(bool); ok && !traced {
		m.untracedTotal.WithLabelValues(service, operation).Inc()
	}
}

// outcome picks the most specific label: throttle, then fault, then error.
func outcome(ctx observability.OperationContext) string {
	switch {
	case flag(ctx, "throttle"):
		return OutcomeThrottle
	case flag(ctx, "fault"):
		return OutcomeFault
	case flag(ctx, "error") || ctx.Error != nil:
		return OutcomeError
	default:
		return OutcomeSuccess
	}
}

func flag(ctx observability.OperationContext, key string) bool {
	v, _ := ctx.Metadata[key].(bool)
	return v
}
