package scopeconfig

import (
	"fmt"
	"strconv"
)

// Scope is the level a config value is defined at.
type Scope string

const (
	ScopeDefault  Scope = "default"
	ScopeWebsites Scope = "websites"
	ScopeStores   Scope = "stores"
)

// ParseScope converts a scope name. The singular forms "website" and
// "store" are accepted as well.
func ParseScope(s string) (Scope, error) {
	switch s {
	case "default", "":
		return ScopeDefault, nil
	case "websites", "website":
		return ScopeWebsites, nil
	case "stores", "store":
		return ScopeStores, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidScope, s)
	}
}

func (s Scope) Valid() bool {
	switch s {
	case ScopeDefault, ScopeWebsites, ScopeStores:
		return true
	}
	return false
}

// key identifies a config value; the default scope always uses id 0.
type key struct {
	scope Scope
	id    int
	path  string
}

func newKey(path string, scope Scope, scopeID int) key {
	if scope == ScopeDefault {
		scopeID = 0
	}
	return key{scope: scope, id: scopeID, path: path}
}

func (k key) String() string {
	return string(k.scope) + "/" + strconv.Itoa(k.id) + "/" + k.path
}
