package cell

import (
	"fmt"
	"sort"

	"github.com/dolthub/swiss"
)

// An Env is a namespace of named cells, such as the variable table of a
// single-goroutine interpreter or the mutable registries of a plugin host.
// Bindings are permanent: a name is defined once and resolves to the same
// cell for the life of the Env. An Env follows the same threading model as
// the cells it holds.
type Env[T any] struct {
	m *swiss.Map[string, *Cell[T]]
}

// NewEnv returns an empty namespace with capacity for at least size
// bindings.
func NewEnv[T any](size int) *Env[T] {
	return &Env[T]{m: swiss.NewMap[string, *Cell[T]](uint32(size))}
}

// Define binds name to a new cell holding v and returns the cell. It is an
// error to define the same name twice.
func (e *Env[T]) Define(name string, v T) (*Cell[T], error) {
	if e.m.Has(name) {
		return nil, fmt.Errorf("cell: %s is already defined", name)
	}
	c := New(v)
	e.m.Put(name, c)
	return c, nil
}

// Lookup returns the cell bound to name.
func (e *Env[T]) Lookup(name string) (*Cell[T], bool) {
	return e.m.Get(name)
}

// Len returns the number of bindings.
func (e *Env[T]) Len() int { return e.m.Count() }

// Names returns the defined names in lexical order.
func (e *Env[T]) Names() []string {
	names := make([]string, 0, e.m.Count())
	e.m.Iter(func(k string, _ *Cell[T]) bool {
		names = append(names, k)
		return false
	})
	sort.Strings(names)
	return names
}
