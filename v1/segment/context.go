package segment

import "context"

type entityKey struct{}

// ContextWithEntity returns a copy of ctx carrying e as the active entity.
func ContextWithEntity(ctx context.Context, e Entity) context.Context {
	return context.WithValue(ctx, entityKey{}, e)
}

// FromContext returns the active entity, or nil when the context carries none.
func FromContext(ctx context.Context) Entity {
	if ctx == nil {
		return nil
	}
	e, _ := ctx.Value(entityKey{}).(Entity)
	return e
}
