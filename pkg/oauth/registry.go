package oauth

import (
	"fmt"
	"slices"
)

// Registry holds configured strategies and allows lookup by name.
// It performs no auth logic itself and is read-only after construction.
type Registry[U any] struct {
	strategies map[string]Authenticator[U]
}

// NewRegistry registers the given strategies by name.
// A later strategy with the same name replaces an earlier one.
func NewRegistry[U any](list ...Authenticator[U]) *Registry[U] {
	m := make(map[string]Authenticator[U], len(list))
	for _, s := range list {
		if s != nil {
			m[s.Name()] = s
		}
	}
	return &Registry[U]{strategies: m}
}

// Get returns the strategy registered under name.
func (r *Registry[U]) Get(name string) (Authenticator[U], error) {
	s, ok := r.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
	return s, nil
}

// Names returns the registered strategy names in sorted order.
func (r *Registry[U]) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
