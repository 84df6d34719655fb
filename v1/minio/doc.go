// Package minio traces S3-compatible clients that do not go through an AWS SDK.
//
// Transport wraps an http.RoundTripper: every request becomes a subsegment named
// "s3" whose operation is derived from the request, GET /bucket/key or GET /key
// on bucket.s3.amazonaws.com being getObject, and carries the X-Amzn-Trace-Id
// header. NewClient builds a path style minio-go client on top of it:
//
//	client, err := minio.NewClient(cfg, recorder, log, nil)
//	_, err = client.StatObject(ctx, "invoices", "2024/03.pdf", minio.StatObjectOptions{})
//
// The transport sees single attempts, so retries made by the client show up as
// separate subsegments, and a status code is an outcome rather than an error:
// 4xx and 5xx set the error and fault flags without a cause.
package minio
