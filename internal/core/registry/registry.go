package registry

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownType is the only fatal error of the query core: every other
// malformed input degrades to a neutral default, but an unrecognized type
// slug is surfaced to the caller.
var ErrUnknownType = errors.New("unknown record type")

// Registry maps record-type slugs to their definitions. It is constructed
// once at startup and read-only afterwards.
type Registry struct {
	types map[string]*RecordType
}

func New(types ...*RecordType) (*Registry, error) {
	r := &Registry{types: make(map[string]*RecordType, len(types))}
	for _, t := range types {
		if t.Slug == "" {
			return nil, fmt.Errorf("record type with empty slug")
		}
		if _, dup := r.types[t.Slug]; dup {
			return nil, fmt.Errorf("duplicate record type %q", t.Slug)
		}
		t.index()
		r.types[t.Slug] = t
	}
	return r, nil
}

// MustNew is New for static, compile-time type sets.
func MustNew(types ...*RecordType) *Registry {
	r, err := New(types...)
	if err != nil {
		panic(err)
	}
	return r
}

// Get resolves a type slug to its definition.
func (r *Registry) Get(slug string) (*RecordType, error) {
	t, ok := r.types[slug]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, slug)
	}
	return t, nil
}

// All returns every registered type, ordered by slug.
func (r *Registry) All() []*RecordType {
	out := make([]*RecordType, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out
}
