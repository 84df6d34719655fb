package minio

import (
	"github.com/minio/minio-go/v7"
	"go.uber.org/fx"

	"github.com/Aleph-Alpha/awsxray/v1/logger"
	"github.com/Aleph-Alpha/awsxray/v1/observability"
	"github.com/Aleph-Alpha/awsxray/v1/segment"
)

// FXModule provides a traced *minio.Client.
//
// Dependencies required by this module:
//   - a *segment.Recorder (from segment.FXModule)
//   - a minio.Config
//   - optionally a *logger.Logger and an observability.Observer
var FXModule = fx.Module("minio",
	fx.Provide(
		NewClientWithDI,
	),
)

// ClientParams groups the dependencies needed to create the client.
type ClientParams struct {
	fx.In

	Recorder *segment.Recorder
	Config   Config
	Logger   *logger.Logger         `optional:"true"`
	Observer observability.Observer `optional:"true"`
}

// NewClientWithDI creates a traced client from injected dependencies.
func NewClientWithDI(params ClientParams) (*minio.Client, error) {
	var log Logger
	if params.Logger != nil {
		log = params.Logger
	}
	return NewClient(params.Config, params.Recorder, log, params.Observer)
}
