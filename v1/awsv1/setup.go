package awsv1

import (
	"context"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/aws/session"

	"github.com/Aleph-Alpha/awsxray/v1/capture"
	"github.com/Aleph-Alpha/awsxray/v1/observability"
)

const (
	// SendHandlerName is the name of the handler that opens the subsegment and
	// stamps the trace header before each attempt is sent.
	SendHandlerName = "awsxray/v1/awsv1.Send"
	// CompleteHandlerName is the name of the handler that closes the subsegment.
	CompleteHandlerName = "awsxray/v1/awsv1.Complete"
)

// Logger defines the logging operations used by the instrumentation.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
}

type captureKey struct{}

// Instrumentor adds subsegment recording and trace header propagation to
// aws-sdk-go clients.
type Instrumentor struct {
	cfg         Config
	interceptor *capture.Interceptor
}

// NewInstrumentor creates an Instrumentor recording into the entities resolver
// finds on each request's context. logger and observer may be nil.
func NewInstrumentor(resolver capture.Resolver, cfg Config, logger Logger, observer observability.Observer) *Instrumentor {
	captureCfg := capture.Config{
		Observer:   observer,
		IsThrottle: request.IsErrorThrottle,
	}
	if logger != nil {
		captureCfg.Logger = logger
	}
	return &Instrumentor{
		cfg:         cfg,
		interceptor: capture.NewInterceptor(resolver, captureCfg),
	}
}

// WrapSession returns a copy of s whose clients are instrumented.
func (i *Instrumentor) WrapSession(s *session.Session) *session.Session {
	s = s.Copy()
	i.InstrumentHandlers(&s.Handlers)
	return s
}

// Client instruments a single service client, e.g. s3.New(sess).Client.
func (i *Instrumentor) Client(c *client.Client) {
	i.InstrumentHandlers(&c.Handlers)
}

// InstrumentHandlers installs the named handlers on h. Installing twice
// replaces the earlier handlers.
func (i *Instrumentor) InstrumentHandlers(h *request.Handlers) {
	h.Send.RemoveByName(SendHandlerName)
	h.Complete.RemoveByName(CompleteHandlerName)

	h.Send.PushFrontNamed(request.NamedHandler{Name: SendHandlerName, Fn: i.send})
	h.Complete.PushBackNamed(request.NamedHandler{Name: CompleteHandlerName, Fn: i.complete})
}

func (i *Instrumentor) send(req *request.Request) {
	ctx := req.Context()
	if _, ok := ctx.Value(captureKey{}).(*capture.Capture); !ok {
		ctx = i.begin(ctx, req)
		req.SetContext(ctx)
	}
	if req.HTTPRequest != nil {
		i.interceptor.InjectHeader(ctx, req.HTTPRequest.Header)
	}
}

func (i *Instrumentor) begin(ctx context.Context, req *request.Request) context.Context {
	call := capture.Call{
		Service:   serviceName(req),
		Operation: capture.OperationName(operationName(req)),
		Region:    capture.StaticRegion(aws.StringValue(req.Config.Region)),
	}
	if !i.cfg.OmitParams {
		call.Params = req.Params
	}

	ctx, c := i.interceptor.Begin(ctx, call)
	return context.WithValue(ctx, captureKey{}, c)
}

func (i *Instrumentor) complete(req *request.Request) {
	c, ok := req.Context().Value(captureKey{}).(*capture.Capture)
	if !ok {
		return
	}
	// The SDK has already decided what Send returns; Finish only records.
	_ = c.Finish(req.Context(), req.Data, responseMetadata(req), req.Error)
}

func serviceName(req *request.Request) string {
	if req.ClientInfo.SigningName != "" {
		return req.ClientInfo.SigningName
	}
	return req.ClientInfo.ServiceName
}

func operationName(req *request.Request) string {
	if req.Operation == nil {
		return ""
	}
	return req.Operation.Name
}

func responseMetadata(req *request.Request) capture.Metadata {
	md := capture.Metadata{
		Retries:   req.RetryCount,
		RequestID: req.RequestID,
	}
	if req.HTTPResponse != nil {
		md.StatusCode = req.HTTPResponse.StatusCode
		md.Headers = req.HTTPResponse.Header
	}
	return md
}
