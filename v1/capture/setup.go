package capture

import (
	"context"
	"fmt"
	"reflect"
	"sync"
	"time"

	"github.com/Aleph-Alpha/awsxray/v1/observability"
	"github.com/Aleph-Alpha/awsxray/v1/segment"
)

// Resolver exposes the entity active on a context and the recorder's context mode.
// *segment.Recorder implements it.
type Resolver interface {
	ResolveSegment(ctx context.Context) segment.Entity
	IsAutomaticMode() bool
}

// RegionFunc resolves the region a call was sent to.
type RegionFunc func(ctx context.Context) (string, error)

// StaticRegion returns a RegionFunc that always yields region.
func StaticRegion(region string) RegionFunc {
	return func(context.Context) (string, error) { return region, nil }
}

// Call identifies one outbound SDK call.
type Call struct {
	// Service is the client's signing name, used as the subsegment name.
	Service string

	// Operation is the lower camel case operation name, see OperationName.
	Operation string

	// Params is the operation input, recorded as request params.
	Params interface{}

	// Region resolves the call's region. Nil means unknown.
	Region RegionFunc
}

func (c Call) label() string {
	return c.Service + "." + c.Operation
}

func (c Call) region(ctx context.Context) (string, error) {
	if c.Region == nil {
		return "", nil
	}
	return c.Region(ctx)
}

// SendFunc performs the wrapped call.
type SendFunc func(ctx context.Context) (output interface{}, md Metadata, err error)

// Interceptor wraps SDK calls in subsegments. It is safe for concurrent use.
type Interceptor struct {
	resolver   Resolver
	logger     Logger
	observer   observability.Observer
	isThrottle ThrottleClassifier
}

// NewInterceptor creates an Interceptor resolving the active entity through resolver.
func NewInterceptor(resolver Resolver, cfg Config) *Interceptor {
	logger := cfg.Logger
	if logger == nil {
		logger = nopLogger{}
	}
	return &Interceptor{
		resolver:   resolver,
		logger:     logger,
		observer:   cfg.Observer,
		isThrottle: cfg.IsThrottle,
	}
}

// Do runs send inside a subsegment named after call.Service. The output and error
// of send are returned unchanged, except that a nil output without an error
// becomes ErrUnexpectedResponse. A panic in send closes the subsegment with an
// error and is re-raised.
func (i *Interceptor) Do(ctx context.Context, call Call, send SendFunc) (interface{}, error) {
	ctx, c := i.begin(ctx, call, 1)
	defer c.closeOnPanic()

	output, md, err := send(ctx)
	return output, c.Finish(ctx, output, md, err)
}

// Begin opens the subsegment for call and returns the context to send the call
// with. Adapters whose SDK splits a call over several hooks pair it with
// Capture.Finish; everyone else should use Do.
func (i *Interceptor) Begin(ctx context.Context, call Call) (context.Context, *Capture) {
	return i.begin(ctx, call, 1)
}

func (i *Interceptor) begin(ctx context.Context, call Call, skip int) (context.Context, *Capture) {
	c := &Capture{
		interceptor: i,
		call:        call,
		start:       time.Now(),
	}

	entity := i.resolver.ResolveSegment(ctx)
	if entity == nil {
		i.logMissingContext(call)
		return ctx, c
	}

	c.sub = entity.AddNewSubsegment(call.Service)
	c.sub.AddAttribute("namespace", "aws")
	c.stack = callerStack(skip + 1)
	return segment.ContextWithEntity(ctx, c.sub), c
}

func (i *Interceptor) logMissingContext(call Call) {
	fields := map[string]interface{}{
		"service":   call.Service,
		"operation": call.Operation,
	}
	if i.resolver.IsAutomaticMode() {
		i.logger.Info("Call "+call.label()+" is missing the sub/segment context for automatic mode. Ignoring.", nil, fields)
		return
	}
	i.logger.Info("Call "+call.label()+" requires a segment on the context for tracing in manual mode. Ignoring.", nil, fields)
}

// Capture is one in-flight call. Its subsegment is nil when the call is passed
// through untraced.
type Capture struct {
	interceptor *Interceptor
	call        Call
	sub         *segment.Subsegment
	stack       []segment.StackFrame
	start       time.Time
	once        sync.Once
}

// Subsegment returns the call's subsegment, nil for pass-through calls.
func (c *Capture) Subsegment() *segment.Subsegment {
	return c.sub
}

// Traced reports whether the call is recorded.
func (c *Capture) Traced() bool {
	return c.sub != nil
}

// Finish closes the capture with the call's outcome and returns the error the
// caller must see. Only the first Finish has an effect; later calls return err.
func (c *Capture) Finish(ctx context.Context, output interface{}, md Metadata, err error) error {
	result := err
	c.once.Do(func() {
		result = c.finish(ctx, output, md, err)
	})
	return result
}

func (c *Capture) finish(ctx context.Context, output interface{}, md Metadata, err error) error {
	if c.sub == nil {
		region, _ := c.call.region(ctx)
		c.observe(region, md, FlagSet{}, err)
		return err
	}

	callErr := err
	if callErr == nil && isNilOutput(output) {
		callErr = ErrUnexpectedResponse
	}

	region, regionErr := c.call.region(ctx)
	if regionErr != nil && callErr == nil {
		callErr = fmt.Errorf("resolve region: %w", regionErr)
	}

	awsAttrs, httpOutcome := BuildAttributes(AttributeInput{
		Metadata:  md,
		Operation: c.call.Operation,
		Region:    region,
		Params:    c.call.Params,
	})
	c.sub.AddAttribute("aws", awsAttrs)
	c.sub.AddAttribute("http", httpOutcome)

	flags := Flags(httpOutcome, callErr, c.interceptor.isThrottle)
	flags.apply(c.sub)

	var closeErr error
	if callErr == nil {
		closeErr = c.sub.Close()
	} else {
		closeErr = c.sub.CloseWithError(c.payload(callErr))
	}
	if closeErr != nil {
		c.interceptor.logger.Warn("failed to close subsegment", closeErr, map[string]interface{}{
			"service":   c.call.Service,
			"operation": c.call.Operation,
		})
	}

	c.observe(region, md, flags, callErr)
	return callErr
}

func (c *Capture) closeOnPanic() {
	r := recover()
	if r == nil {
		return
	}
	c.once.Do(func() {
		panicErr := fmt.Errorf("panic: %v", r)
		if c.sub != nil {
			if closeErr := c.sub.CloseWithError(c.payload(panicErr)); closeErr != nil {
				c.interceptor.logger.Warn("failed to close subsegment", closeErr, nil)
			}
		}
		c.observe("", Metadata{}, FlagSet{}, panicErr)
	})
	panic(r)
}

func (c *Capture) payload(err error) segment.ErrorPayload {
	return segment.ErrorPayload{
		Message: err.Error(),
		Name:    errorName(err),
		Stack:   c.stack,
		Remote:  true,
	}
}

func (c *Capture) observe(region string, md Metadata, flags FlagSet, err error) {
	observer := c.interceptor.observer
	if observer == nil {
		return
	}
	observer.ObserveOperation(observability.OperationContext{
		Component:   Component,
		Operation:   c.call.Operation,
		Resource:    c.call.Service,
		SubResource: region,
		Duration:    time.Since(c.start),
		Error:       err,
		Metadata: map[string]interface{}{
			"status_code": md.StatusCode,
			"retries":     md.Retries,
			"throttle":    flags.Throttle,
			"error":       flags.Error,
			"fault":       flags.Fault,
			"traced":      c.sub != nil,
		},
	})
}

func isNilOutput(v interface{}) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
