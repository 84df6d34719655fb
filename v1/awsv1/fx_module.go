package awsv1

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/awsxray/v1/logger"
	"github.com/Aleph-Alpha/awsxray/v1/observability"
	"github.com/Aleph-Alpha/awsxray/v1/segment"
)

// FXModule provides the *Instrumentor to an fx application.
//
// Dependencies required by this module:
//   - a *segment.Recorder (from segment.FXModule)
//   - an awsv1.Config
//   - optionally a *logger.Logger and an observability.Observer
var FXModule = fx.Module("awsv1",
	fx.Provide(
		NewInstrumentorWithDI,
	),
)

// InstrumentorParams groups the dependencies needed to create an Instrumentor.
type InstrumentorParams struct {
	fx.In

	Recorder *segment.Recorder
	Config   Config
	Logger   *logger.Logger         `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewInstrumentorWithDI creates an Instrumentor from injected dependencies.
func NewInstrumentorWithDI(params InstrumentorParams) *Instrumentor {
	var log Logger
	if params.Logger != nil {
		log = params.Logger
	}
	return NewInstrumentor(params.Recorder, params.Config, log, params.Observer)
}
