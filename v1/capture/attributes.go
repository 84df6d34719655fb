package capture

import (
	"net/http"

	"github.com/Aleph-Alpha/awsxray/v1/segment"
)

const (
	headerRequestID         = "x-amz-request-id"
	headerExtendedRequestID = "x-amz-id-2"
)

// Metadata is what an SDK reports about a finished call, successful or not.
type Metadata struct {
	// Headers are the raw response headers, nil when no response was received.
	Headers http.Header

	// StatusCode is the HTTP status of the last attempt, 0 when unknown.
	StatusCode int

	// Retries is the number of attempts made after the first one.
	Retries int

	// RequestID is the request id the SDK extracted, used when the
	// x-amz-request-id header is absent.
	RequestID string
}

// AWSAttributes is the bundle stored on a subsegment under the "aws" key.
type AWSAttributes struct {
	ExtendedRequestID string            `json:"extendedRequestId,omitempty"`
	RequestID         string            `json:"requestId,omitempty"`
	RetryCount        int               `json:"retryCount"`
	Request           RequestAttributes `json:"request"`
}

type RequestAttributes struct {
	Operation   string                `json:"operation"`
	HTTPRequest HTTPRequestAttributes `json:"httpRequest"`
	Params      interface{}           `json:"params,omitempty"`
}

type HTTPRequestAttributes struct {
	Region     string `json:"region"`
	StatusCode int    `json:"statusCode,omitempty"`
}

// HTTPOutcome is the record stored on a subsegment under the "http" key.
type HTTPOutcome struct {
	Response HTTPResponse `json:"response"`
}

type HTTPResponse struct {
	Status int `json:"status"`
}

// AttributeInput carries everything BuildAttributes reads.
type AttributeInput struct {
	Metadata  Metadata
	Operation string
	Region    string
	Params    interface{}
}

// BuildAttributes turns call metadata into the aws bundle and the http outcome.
// Missing metadata yields zero values.
func BuildAttributes(in AttributeInput) (AWSAttributes, HTTPOutcome) {
	md := in.Metadata

	requestID := headerValue(md.Headers, headerRequestID)
	if requestID == "" {
		requestID = md.RequestID
	}

	retries := md.Retries
	if retries < 0 {
		retries = 0
	}

	attrs := AWSAttributes{
		ExtendedRequestID: headerValue(md.Headers, headerExtendedRequestID),
		RequestID:         requestID,
		RetryCount:        retries,
		Request: RequestAttributes{
			Operation: in.Operation,
			HTTPRequest: HTTPRequestAttributes{
				Region:     in.Region,
				StatusCode: md.StatusCode,
			},
			Params: in.Params,
		},
	}
	return attrs, HTTPOutcome{Response: HTTPResponse{Status: md.StatusCode}}
}

func headerValue(h http.Header, key string) string {
	if h == nil {
		return ""
	}
	return h.Get(key)
}

// ThrottleClassifier reports whether an SDK error means the call was throttled.
type ThrottleClassifier func(err error) bool

// FlagSet is the flag decision for one call.
type FlagSet struct {
	Throttle bool
	Error    bool
	Fault    bool
}

// Flags derives the flags for a call outcome. A call is throttled when the
// classifier says so or the status is 429; error and fault follow the status class.
func Flags(outcome HTTPOutcome, err error, isThrottle ThrottleClassifier) FlagSet {
	var f FlagSet
	status := outcome.Response.Status

	if status == http.StatusTooManyRequests || (err != nil && isThrottle != nil && isThrottle(err)) {
		f.Throttle = true
	}

	switch segment.CauseFromHTTPStatus(status) {
	case segment.CauseFault:
		f.Fault = true
	case segment.CauseError:
		f.Error = true
	}
	return f
}

func (f FlagSet) apply(sub *segment.Subsegment) {
	if f.Throttle {
		sub.AddThrottleFlag()
	}
	if f.Fault {
		sub.AddFaultFlag()
	}
	if f.Error {
		sub.AddErrorFlag()
	}
}
