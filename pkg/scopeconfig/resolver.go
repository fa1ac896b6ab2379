package scopeconfig

import (
	"context"
	"errors"
)

// Source returns the value stored for exactly one scope, without fallback.
// A missing value is reported as ErrNotFound.
type Source interface {
	Lookup(ctx context.Context, path string, scope Scope, scopeID int) (string, error)
}

// WebsiteResolver maps a store to the website it belongs to.
type WebsiteResolver interface {
	WebsiteID(ctx context.Context, storeID int) (int, error)
}

// Resolver reads values with scope fallback: a store value wins over its
// website's value, which wins over the default value.
type Resolver struct {
	source   Source
	websites WebsiteResolver
}

// NewResolver creates a Resolver. websites may be nil, in which case store
// lookups fall back straight to the default scope.
func NewResolver(source Source, websites WebsiteResolver) *Resolver {
	return &Resolver{source: source, websites: websites}
}

// Value returns the value of path for the given scope.
func (r *Resolver) Value(ctx context.Context, path string, scope Scope, scopeID int) (string, error) {
	if !scope.Valid() {
		return "", ErrInvalidScope
	}

	if scope == ScopeStores {
		v, err := r.source.Lookup(ctx, path, ScopeStores, scopeID)
		if !errors.Is(err, ErrNotFound) {
			return v, err
		}
		if r.websites == nil {
			scope = ScopeDefault
		} else {
			websiteID, err := r.websites.WebsiteID(ctx, scopeID)
			if err != nil {
				return "", err
			}
			scope, scopeID = ScopeWebsites, websiteID
		}
	}

	if scope == ScopeWebsites {
		v, err := r.source.Lookup(ctx, path, ScopeWebsites, scopeID)
		if !errors.Is(err, ErrNotFound) {
			return v, err
		}
	}

	return r.source.Lookup(ctx, path, ScopeDefault, 0)
}

// Chain returns a Source asking each source in turn until one has a value.
func Chain(sources ...Source) Source {
	return chain(sources)
}

type chain []Source

func (c chain) Lookup(ctx context.Context, path string, scope Scope, scopeID int) (string, error) {
	for _, s := range c {
		v, err := s.Lookup(ctx, path, scope, scopeID)
		if !errors.Is(err, ErrNotFound) {
			return v, err
		}
	}
	return "", ErrNotFound
}
