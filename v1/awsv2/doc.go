/*
Package awsv2 records aws-sdk-go-v2 calls as subsegments and propagates the
trace through the X-Amzn-Trace-Id header.

Two middlewares are registered on each operation stack:

  - an Initialize step middleware that wraps the whole operation, retries
    included, in a subsegment named after the service's signing name
  - a Build step middleware that stamps the trace header on the outgoing request

Register them for every client built from a config:

	inst := awsv2.NewInstrumentor(recorder, awsv2.Config{}, log, nil)
	inst.AppendMiddleware(&awsCfg)
	client := s3.NewFromConfig(awsCfg)

or for a single client:

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.APIOptions = append(o.APIOptions, inst.Instrument)
	})

Calls made with a context that carries no segment pass through untouched.

The subsegment records the error as it leaves the operation stack. The client
wraps it in a *smithy.OperationError ("operation error S3: GetObject, ...")
afterwards, so the recorded cause message is the one errors.As yields from the
OperationError's Unwrap, not the caller's err.Error().
*/
package awsv2
