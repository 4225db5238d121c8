package method

import (
	"errors"
	"fmt"
)

// ErrDuplicateMethod is returned when the registry receives two methods
// with the same name.
var ErrDuplicateMethod = errors.New("duplicate method")

// Registry stores methods with deterministic ordering. Entries are fixed
// at construction; there is no runtime registration.
type Registry struct {
	ordered []Method
	index   map[string]Method
}

// NewRegistry creates a registry from methods, validating every command
// template. Template problems are configuration errors and fail fast.
func NewRegistry(methods []Method) (*Registry, error) {
	ordered := make([]Method, 0, len(methods))
	index := make(map[string]Method, len(methods))

	for _, m := range methods {
		name := m.Name()

		if _, exists := index[name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMethod, name)
		}

		err := validateTemplate(name, m.Compress)
		if err != nil {
			return nil, err
		}

		if m.Decompress != nil {
			err = validateTemplate(name, m.Decompress)
			if err != nil {
				return nil, err
			}
		}

		index[name] = m
		ordered = append(ordered, m)
	}

	return &Registry{
		ordered: ordered,
		index:   index,
	}, nil
}

// All returns all methods in insertion order.
func (r *Registry) All() []Method {
	methods := make([]Method, len(r.ordered))
	copy(methods, r.ordered)

	return methods
}

// Lookup returns the method registered under name.
func (r *Registry) Lookup(name string) (Method, bool) {
	m, ok := r.index[name]

	return m, ok
}

// Names returns all method names in insertion order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.ordered))
	for _, m := range r.ordered {
		names = append(names, m.Name())
	}

	return names
}
