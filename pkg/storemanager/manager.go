package storemanager

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Manager resolves stores from a fixed list.
type Manager struct {
	stores []Store
	byID   map[int]*Store
	byCode map[string]*Store
	def    *Store
}

// New creates a Manager. Exactly one store may be marked as default; when
// none is, the first store is used.
func New(stores []Store) (*Manager, error) {
	if len(stores) == 0 {
		return nil, fmt.Errorf("%w: no stores", ErrInvalidStores)
	}

	m := &Manager{
		stores: make([]Store, len(stores)),
		byID:   make(map[int]*Store, len(stores)),
		byCode: make(map[string]*Store, len(stores)),
	}
	copy(m.stores, stores)

	for i := range m.stores {
		s := &m.stores[i]
		if s.Code == "" {
			return nil, fmt.Errorf("%w: store %d has no code", ErrInvalidStores, s.ID)
		}
		if _, ok := m.byID[s.ID]; ok {
			return nil, fmt.Errorf("%w: id %d", ErrDuplicateStore, s.ID)
		}
		if _, ok := m.byCode[s.Code]; ok {
			return nil, fmt.Errorf("%w: code %q", ErrDuplicateStore, s.Code)
		}
		if s.BaseMediaURL != "" && !strings.HasSuffix(s.BaseMediaURL, "/") {
			s.BaseMediaURL += "/"
		}
		if s.Default {
			if m.def != nil {
				return nil, fmt.Errorf("%w: more than one default store", ErrInvalidStores)
			}
			m.def = s
		}
		m.byID[s.ID] = s
		m.byCode[s.Code] = s
	}

	if m.def == nil {
		m.def = &m.stores[0]
	}
	return m, nil
}

// Parse creates a Manager from a YAML document with a top-level "stores" list.
func Parse(data []byte) (*Manager, error) {
	var f storesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStores, err)
	}
	return New(f.Stores)
}

// Load reads and parses a stores file.
func Load(path string) (*Manager, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToLoad, err)
	}
	return Parse(data)
}

// Single creates a Manager with one default store.
func Single(baseMediaURL string) *Manager {
	m, _ := New([]Store{{ID: 1, Code: "default", WebsiteID: 1, Name: "Default Store View", BaseMediaURL: baseMediaURL, Default: true}})
	return m
}

// CurrentStore returns the store requested in ctx (see WithCurrent), or the
// default store when none was requested.
func (m *Manager) CurrentStore(ctx context.Context) (*Store, error) {
	ref, ok := CurrentFromContext(ctx)
	if !ok {
		s := *m.def
		return &s, nil
	}
	return m.Store(ref)
}

// Store looks a store up by code, falling back to a numeric id.
func (m *Manager) Store(ref string) (*Store, error) {
	if s, ok := m.byCode[ref]; ok {
		c := *s
		return &c, nil
	}
	if id, err := strconv.Atoi(ref); err == nil {
		if s, ok := m.byID[id]; ok {
			c := *s
			return &c, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrStoreNotFound, ref)
}

// WebsiteID returns the website storeID belongs to.
func (m *Manager) WebsiteID(_ context.Context, storeID int) (int, error) {
	s, ok := m.byID[storeID]
	if !ok {
		return 0, fmt.Errorf("%w: id %d", ErrStoreNotFound, storeID)
	}
	return s.WebsiteID, nil
}

// DefaultStore returns the default store.
func (m *Manager) DefaultStore() Store {
	return *m.def
}

// Stores returns all stores in definition order.
func (m *Manager) Stores() []Store {
	out := make([]Store, len(m.stores))
	copy(out, m.stores)
	return out
}
