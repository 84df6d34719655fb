package segment

import (
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/awsxray/v1/logger"
)

// FXModule provides the *Recorder to an fx application.
//
// Dependencies required by this module:
//   - a segment.Config
//   - optionally a segment.Emitter (for example from tracer.FXModule)
//   - optionally a *logger.Logger (from logger.FXModule)
//
// Usage:
//
//	app := fx.New(
//	    logger.FXModule,
//	    segment.FXModule,
//	    fx.Supply(segment.Config{ServiceName: "ingest"}),
//	)
var FXModule = fx.Module("segment",
	fx.Provide(
		NewRecorderWithDI,
	),
)

// RecorderParams groups the dependencies needed to create a Recorder.
type RecorderParams struct {
	fx.In

	Config  Config
	Emitter Emitter        `optional:"true"`
	Logger  *logger.Logger `optional:"true"`
}

// NewRecorderWithDI creates a Recorder from injected dependencies.
func NewRecorderWithDI(params RecorderParams) *Recorder {
	var log Logger
	if params.Logger != nil {
		log = params.Logger
	}
	return NewRecorder(params.Config, params.Emitter, log)
}
