package minio

import (
	"context"
	"net/http"

	"github.com/Aleph-Alpha/awsxray/v1/capture"
	"github.com/Aleph-Alpha/awsxray/v1/observability"
)

const defaultService = "s3"

// Logger defines the logging operations used by the package.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// Transport is an http.RoundTripper that records every S3 request it carries
// as a subsegment and stamps the trace header on it. Each attempt of a retried
// request is its own subsegment.
type Transport struct {
	base        http.RoundTripper
	cfg         Config
	interceptor *capture.Interceptor
}

// NewTransport wraps base, http.DefaultTransport when nil.
func NewTransport(base http.RoundTripper, cfg Config, resolver capture.Resolver, logger Logger, observer observability.Observer) *Transport {
	if base == nil {
		base = http.DefaultTransport
	}
	if cfg.Tracing.Service == "" {
		cfg.Tracing.Service = defaultService
	}

	captureCfg := capture.Config{Observer: observer}
	if logger != nil {
		captureCfg.Logger = logger
	}
	return &Transport{
		base:        base,
		cfg:         cfg,
		interceptor: capture.NewInterceptor(resolver, captureCfg),
	}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	hostBucket := virtualHostBucket(req.URL.Hostname(), t.cfg.Connection.Endpoint)
	op, bucket, key := s3Operation(req.Method, req.URL, req.Header, hostBucket)

	call := capture.Call{
		Service:   t.cfg.Tracing.Service,
		Operation: capture.OperationName(op),
		Region:    capture.StaticRegion(t.cfg.Connection.Region),
	}
	if !t.cfg.Tracing.OmitParams {
		params := map[string]string{"Bucket": bucket}
		if key != "" {
			params["Key"] = key
		}
		call.Params = params
	}

	var resp *http.Response
	_, err := t.interceptor.Do(req.Context(), call, func(ctx context.Context) (interface{}, capture.Metadata, error) {
		out := req.Clone(ctx)
		t.interceptor.InjectHeader(ctx, out.Header)

		var err error
		resp, err = t.base.RoundTrip(out)
		if err != nil {
			return nil, capture.Metadata{}, err
		}
		return resp, capture.Metadata{StatusCode: resp.StatusCode, Headers: resp.Header}, nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
