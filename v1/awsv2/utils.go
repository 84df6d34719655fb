package awsv2

import (
	"errors"

	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/Aleph-Alpha/awsxray/v1/capture"
)

// responseMetadata collects what the stack reported about the call. The raw
// response and request id are looked up on the call metadata first, then on the
// last attempt, then on the error.
func responseMetadata(md middleware.Metadata, err error) capture.Metadata {
	var out capture.Metadata

	sources := []middleware.Metadata{md}
	if results, ok := retry.GetAttemptResults(md); ok && len(results.Results) > 0 {
		out.Retries = len(results.Results) - 1
		sources = append(sources, results.Results[len(results.Results)-1].ResponseMetadata)
	}

	for _, src := range sources {
		if out.StatusCode == 0 {
			if raw := rawResponse(src); raw != nil {
				out.StatusCode = raw.StatusCode
				out.Headers = raw.Header
			}
		}
		if out.RequestID == "" {
			if id, ok := awsmiddleware.GetRequestIDMetadata(src); ok {
				out.RequestID = id
			}
		}
	}

	if err != nil {
		fillFromError(&out, err)
	}
	return out
}

func rawResponse(md middleware.Metadata) *smithyhttp.Response {
	raw, ok := awsmiddleware.GetRawResponse(md).(*smithyhttp.Response)
	if !ok || raw == nil || raw.Response == nil {
		return nil
	}
	return raw
}

func fillFromError(out *capture.Metadata, err error) {
	var awsErr *awshttp.ResponseError
	if errors.As(err, &awsErr) {
		if out.RequestID == "" {
			out.RequestID = awsErr.ServiceRequestID()
		}
		if awsErr.ResponseError != nil {
			fillFromResponse(out, awsErr.ResponseError)
		}
		return
	}

	var respErr *smithyhttp.ResponseError
	if errors.As(err, &respErr) {
		fillFromResponse(out, respErr)
	}
}

func fillFromResponse(out *capture.Metadata, respErr *smithyhttp.ResponseError) {
	if respErr.Response == nil || respErr.Response.Response == nil {
		return
	}
	if out.StatusCode == 0 {
		out.StatusCode = respErr.HTTPStatusCode()
	}
	if out.Headers == nil {
		out.Headers = respErr.Response.Header
	}
}
