/*
Package capture records outbound AWS SDK calls as subsegments of the segment
active on the call's context.

It is independent of any particular SDK: adapters translate the SDK's hooks into
a Call, run it through an Interceptor and hand back the response Metadata. See
packages awsv2 and awsv1.

# Lifecycle

For every call the Interceptor:

  - resolves the entity on the context; without one the call is passed through
    untouched and a notice is logged
  - opens a subsegment named after the service and puts it on the context
  - runs the call
  - attaches the "aws" and "http" records, sets the throttle, error and fault
    flags and closes the subsegment exactly once

The caller always sees the call's own result and error.

# Usage

	recorder := segment.NewRecorder(segment.Config{ServiceName: "orders"}, nil, log)
	interceptor := capture.NewInterceptor(recorder, capture.Config{Logger: log})

	ctx, seg := recorder.BeginSegment(ctx, "handle-order")
	defer seg.Close()

	out, err := interceptor.Do(ctx, capture.Call{
		Service:   "s3",
		Operation: capture.OperationName("GetObject"),
		Region:    capture.StaticRegion("eu-west-1"),
	}, send)

# Trace header

TraceHeaderValue renders the X-Amzn-Trace-Id value for the entity on a context:

	Root=1-5759e988-bd862e3fe1be46a994272793;Parent=53995c3f42cd8ad8;Sampled=1
*/
package capture
