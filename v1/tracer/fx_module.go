package tracer

import (
	"context"

	"go.uber.org/fx"

	"github.com/Aleph-Alpha/awsxray/v1/logger"
	"github.com/Aleph-Alpha/awsxray/v1/segment"
)

// FXModule provides the *Tracer, and the same value as segment.Emitter so closed
// segments are re-exported as spans, and shuts the provider down on stop.
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    tracer.FXModule,
//	    segment.FXModule,
//	    fx.Supply(tracer.Config{ServiceName: "orders", EnableExport: true}),
//	)
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClientWithDI,
		func(t *Tracer) segment.Emitter { return t },
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerParams groups the dependencies needed to create a Tracer.
type TracerParams struct {
	fx.In

	Config Config
	Logger *logger.Logger `optional:"true"`
}

// NewClientWithDI creates a Tracer from injected dependencies.
func NewClientWithDI(params TracerParams) (*Tracer, error) {
	var log Logger
	if params.Logger != nil {
		log = params.Logger
	}
	return NewClient(params.Config, log)
}

// RegisterTracerLifecycle flushes and stops the provider when the application stops.
func RegisterTracerLifecycle(lc fx.Lifecycle, tracer *Tracer) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			tracer.logger.Info("shutting down tracer", nil, nil)
			return tracer.Shutdown(ctx)
		},
	})
}
