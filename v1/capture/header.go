package capture

import (
	"context"
	"net/http"

	"github.com/Aleph-Alpha/awsxray/v1/segment"
)

// TraceHeaderValue renders the X-Amzn-Trace-Id value for the entity active on ctx.
// It returns false when ctx carries no entity.
func TraceHeaderValue(ctx context.Context, resolver Resolver) (string, bool) {
	entity := resolver.ResolveSegment(ctx)
	if entity == nil {
		return "", false
	}
	root := entity.Root()
	if root == nil {
		return "", false
	}

	header := segment.TraceHeader{
		Root:    root.TraceID(),
		Parent:  entity.ID(),
		Sampled: !root.NotTraced(),
	}
	return header.String(), true
}

// InjectHeader sets the trace header on h when ctx carries an entity and
// leaves h untouched otherwise.
func (i *Interceptor) InjectHeader(ctx context.Context, h http.Header) bool {
	if h == nil {
		return false
	}
	value, ok := TraceHeaderValue(ctx, i.resolver)
	if !ok {
		return false
	}
	h.Set(segment.TraceHeaderName, value)
	return true
}
