// Package awsv1 records aws-sdk-go (v1) requests as subsegments and propagates
// the trace through the X-Amzn-Trace-Id header.
//
// A Send handler opens the subsegment before the first attempt and stamps the
// header on every attempt; a Complete handler closes it once the request is done:
//
//	inst := awsv1.NewInstrumentor(recorder, awsv1.Config{}, log, nil)
//	sess := inst.WrapSession(session.Must(session.NewSession()))
//	client := s3.New(sess)
//	out, err := client.GetObjectWithContext(ctx, input)
//
// Requests that fail before anything is sent, such as validation errors, are
// not recorded. The error a request returns is never changed.
package awsv1
