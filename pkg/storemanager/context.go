package storemanager

import "context"

type storeKey struct{}

// WithCurrent returns a context carrying the requested store, given by code
// or numeric id.
func WithCurrent(ctx context.Context, store string) context.Context {
	if store == "" {
		return ctx
	}
	return context.WithValue(ctx, storeKey{}, store)
}

// CurrentFromContext returns the store requested in ctx, if any.
func CurrentFromContext(ctx context.Context) (string, bool) {
	v, ok := ctx.Value(storeKey{}).(string)
	return v, ok && v != ""
}
