package minio

import (
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Aleph-Alpha/awsxray/v1/capture"
	"github.com/Aleph-Alpha/awsxray/v1/observability"
)

// NewClient creates a minio-go client whose requests are traced through a Transport.
// The client uses path style bucket lookup.
//
// Example:
//
//	client, err := minio.NewClient(minio.Config{
//	    Connection: minio.ConnectionConfig{
//	        Endpoint:        "localhost:9000",
//	        AccessKeyID:     "minioadmin",
//	        SecretAccessKey: "minioadmin",
//	        Region:          "us-east-1",
//	    },
//	}, recorder, log, nil)
//	if err != nil {
//	    return err
//	}
//	info, err := client.StatObject(ctx, "invoices", "2024/03.pdf", minio.StatObjectOptions{})
func NewClient(cfg Config, resolver capture.Resolver, logger Logger, observer observability.Observer) (*minio.Client, error) {
	return minio.New(cfg.Connection.Endpoint, &minio.Options{
		Creds:        credentials.NewStaticV4(cfg.Connection.AccessKeyID, cfg.Connection.SecretAccessKey, ""),
		Secure:       cfg.Connection.UseSSL,
		Region:       cfg.Connection.Region,
		Transport:    NewTransport(nil, cfg, resolver, logger, observer),
		BucketLookup: minio.BucketLookupPath,
	})
}
