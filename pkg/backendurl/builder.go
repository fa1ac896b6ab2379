package backendurl

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

// Reserved parameter names.
const (
	ParamCurrent  = "_current"  // true: keep the current request parameters
	ParamQuery    = "_query"    // map[string]string or url.Values appended as query string
	ParamFragment = "_fragment" // string appended after "#"
)

// Builder builds admin URLs of the form
// <base>/<front>/<route>/<key>/<value>/... for "area/controller/action" routes.
type Builder struct {
	base   string
	front  string
	routes map[string]struct{}
}

// Option configures a Builder.
type Option func(*Builder)

// WithFrontName sets the admin area path segment. Default "admin".
func WithFrontName(name string) Option {
	return func(b *Builder) {
		b.front = strings.Trim(name, "/")
	}
}

// WithRoutes restricts the builder to the given routes.
func WithRoutes(routes ...string) Option {
	return func(b *Builder) {
		if b.routes == nil {
			b.routes = make(map[string]struct{}, len(routes))
		}
		for _, r := range routes {
			b.routes[normalizeRoute(r)] = struct{}{}
		}
	}
}

// New creates a Builder for the absolute base URL.
func New(baseURL string, opts ...Option) (*Builder, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: base url %q", ErrInvalidConfig, baseURL)
	}

	b := &Builder{
		base:  strings.TrimRight(baseURL, "/"),
		front: "admin",
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// URL returns the URL of route with params. Parameters are written as path
// segments sorted by name; explicit params override current ones.
func (b *Builder) URL(ctx context.Context, route string, params map[string]any) (string, error) {
	route = normalizeRoute(route)
	if route == "" {
		return "", ErrUnknownRoute
	}
	if b.routes != nil {
		if _, ok := b.routes[route]; !ok {
			return "", fmt.Errorf("%w: %s", ErrUnknownRoute, route)
		}
	}

	segments := make(map[string]string)
	if current, _ := params[ParamCurrent].(bool); current {
		for k, v := range CurrentParams(ctx) {
			segments[k] = v
		}
	}

	var (
		query    string
		fragment string
	)
	for k, v := range params {
		switch k {
		case ParamCurrent:
		case ParamQuery:
			query = encodeQuery(v)
		case ParamFragment:
			fragment = fmt.Sprint(v)
		default:
			if v == nil {
				delete(segments, k)
				continue
			}
			segments[k] = fmt.Sprint(v)
		}
	}

	var sb strings.Builder
	sb.WriteString(b.base)
	if b.front != "" {
		sb.WriteString("/" + b.front)
	}
	sb.WriteString("/" + route + "/")

	keys := make([]string, 0, len(segments))
	for k := range segments {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		sb.WriteString(url.PathEscape(k) + "/" + url.PathEscape(segments[k]) + "/")
	}

	if query != "" {
		sb.WriteString("?" + query)
	}
	if fragment != "" {
		sb.WriteString("#" + fragment)
	}
	return sb.String(), nil
}

func encodeQuery(v any) string {
	switch q := v.(type) {
	case url.Values:
		return q.Encode()
	case map[string]string:
		values := make(url.Values, len(q))
		for k, v := range q {
			values.Set(k, v)
		}
		return values.Encode()
	case string:
		return strings.TrimPrefix(q, "?")
	default:
		return ""
	}
}

// normalizeRoute fills missing route parts with "index": "productattach"
// becomes "productattach/index/index".
func normalizeRoute(route string) string {
	route = strings.Trim(route, "/")
	if route == "" {
		return ""
	}
	parts := strings.Split(route, "/")
	if len(parts) > 3 {
		parts = parts[:3]
	}
	for len(parts) < 3 {
		parts = append(parts, "index")
	}
	for i, p := range parts {
		if p == "" || p == "*" {
			parts[i] = "index"
		}
	}
	return strings.Join(parts, "/")
}
