package backendurl

import (
	"context"
	"maps"
)

type paramsKey struct{}

// WithCurrentParams stores the route parameters of the current request.
// They are reused by URLs built with "_current".
func WithCurrentParams(ctx context.Context, params map[string]string) context.Context {
	return context.WithValue(ctx, paramsKey{}, maps.Clone(params))
}

// CurrentParams returns the parameters stored by WithCurrentParams.
func CurrentParams(ctx context.Context) map[string]string {
	p, _ := ctx.Value(paramsKey{}).(map[string]string)
	return p
}
