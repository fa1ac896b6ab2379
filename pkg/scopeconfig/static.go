package scopeconfig

import (
	"context"
	"sync"
)

// Static is an in-memory Source, used for defaults from the environment
// and in tests. The zero value is ready to use.
type Static struct {
	mu     sync.RWMutex
	values map[key]string
}

// NewStatic creates a Static source with default-scope values.
func NewStatic(defaults map[string]string) *Static {
	s := &Static{}
	for path, v := range defaults {
		s.Set(path, ScopeDefault, 0, v)
	}
	return s
}

// Set stores a value for a scope.
func (s *Static) Set(path string, scope Scope, scopeID int, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[key]string)
	}
	s.values[newKey(path, scope, scopeID)] = value
}

func (s *Static) Lookup(_ context.Context, path string, scope Scope, scopeID int) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[newKey(path, scope, scopeID)]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}
