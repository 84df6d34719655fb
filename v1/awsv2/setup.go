package awsv2

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsmiddleware "github.com/aws/aws-sdk-go-v2/aws/middleware"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/Aleph-Alpha/awsxray/v1/capture"
	"github.com/Aleph-Alpha/awsxray/v1/observability"
)

const (
	callMiddlewareID   = "XRayCallInterceptor"
	headerMiddlewareID = "XRayTraceHeader"
)

// Logger defines the logging operations used by the instrumentation.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

// Instrumentor adds subsegment recording and trace header propagation to
// aws-sdk-go-v2 clients.
type Instrumentor struct {
	cfg         Config
	interceptor *capture.Interceptor
}

// NewInstrumentor creates an Instrumentor recording into the entities resolver
// finds on each call's context. logger and observer may be nil.
//
// Example:
//
//	rec := segment.NewRecorder(segment.Config{ServiceName: "orders"}, nil, log)
//	inst := awsv2.NewInstrumentor(rec, awsv2.Config{}, log, nil)
//
//	awsCfg, _ := config.LoadDefaultConfig(ctx)
//	inst.AppendMiddleware(&awsCfg)
//	client := s3.NewFromConfig(awsCfg)
func NewInstrumentor(resolver capture.Resolver, cfg Config, logger Logger, observer observability.Observer) *Instrumentor {
	captureCfg := capture.Config{
		Observer:   observer,
		IsThrottle: isThrottle,
	}
	if logger != nil {
		captureCfg.Logger = logger
	}
	return &Instrumentor{
		cfg:         cfg,
		interceptor: capture.NewInterceptor(resolver, captureCfg),
	}
}

// AppendMiddleware registers the instrumentation on every client built from awsCfg.
func (i *Instrumentor) AppendMiddleware(awsCfg *aws.Config) {
	awsCfg.APIOptions = append(awsCfg.APIOptions, i.Instrument)
}

// Instrument adds the call interceptor and the trace header middleware to stack.
// It can be passed per client or per operation, e.g. through s3.Options.APIOptions.
func (i *Instrumentor) Instrument(stack *middleware.Stack) error {
	// After, so the operation's service metadata is already on the context.
	err := stack.Initialize.Add(middleware.InitializeMiddlewareFunc(callMiddlewareID, i.handleInitialize), middleware.After)
	if err != nil {
		return err
	}
	return stack.Build.Add(middleware.BuildMiddlewareFunc(headerMiddlewareID, i.handleBuild), middleware.After)
}

func (i *Instrumentor) handleInitialize(
	ctx context.Context, in middleware.InitializeInput, next middleware.InitializeHandler,
) (
	out middleware.InitializeOutput, metadata middleware.Metadata, err error,
) {
	call := capture.Call{
		Service:   serviceName(ctx),
		Operation: capture.OperationName(awsmiddleware.GetOperationName(ctx)),
		Region:    capture.StaticRegion(awsmiddleware.GetRegion(ctx)),
	}
	if !i.cfg.OmitParams {
		call.Params = in.Parameters
	}

	_, err = i.interceptor.Do(ctx, call, func(ctx context.Context) (interface{}, capture.Metadata, error) {
		out, metadata, err = next.HandleInitialize(ctx, in)
		return out.Result, responseMetadata(metadata, err), err
	})
	return out, metadata, err
}

func (i *Instrumentor) handleBuild(
	ctx context.Context, in middleware.BuildInput, next middleware.BuildHandler,
) (
	out middleware.BuildOutput, metadata middleware.Metadata, err error,
) {
	if req, ok := in.Request.(*smithyhttp.Request); ok {
		i.interceptor.InjectHeader(ctx, req.Header)
	}
	return next.HandleBuild(ctx, in)
}

func serviceName(ctx context.Context) string {
	if name := awsmiddleware.GetSigningName(ctx); name != "" {
		return name
	}
	return strings.ToLower(awsmiddleware.GetServiceID(ctx))
}

func isThrottle(err error) bool {
	return retry.IsErrorThrottles(retry.DefaultThrottles).IsErrorThrottle(err) == aws.TrueTernary
}
