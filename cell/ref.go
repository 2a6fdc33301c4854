package cell

// A Ref is an owned read-only guard on a cell's value. Any number of Refs
// may be live on the same cell at once; each one holds the cell in a shared
// state until it is released. Refs are created by [Cell.Borrow],
// [Cell.TryBorrow] and [Ref.Clone], never directly.
type Ref[T any] struct {
	s        *storage[T]
	released bool
}

// Value returns the value held by the cell.
func (r *Ref[T]) Value() T {
	r.use("read through")
	return r.s.val
}

// Clone returns a new read-only guard on the same cell, equivalent to
// another Borrow call but without going through the cell. The clone releases
// independently of r.
func (r *Ref[T]) Clone() *Ref[T] {
	r.use("clone")
	if !r.s.state.tryAcquireShared() {
		// a live Ref means the state is shared, the acquire cannot fail
		panic("cell: internal error: clone with state " + r.s.state.String())
	}
	return &Ref[T]{s: r.s}
}

// Release drops the guard's read-only hold, decrementing the cell's shared
// count (back to free if this was the last live guard). Releasing an
// already-released guard is a no-op, so an explicit Release followed by a
// deferred one releases only once.
func (r *Ref[T]) Release() {
	if r.released {
		return
	}
	r.use("release")
	r.released = true
	r.s.state.releaseShared()
}

// use panics if the guard must not be used anymore. verb describes the
// rejected operation, as in "read through".
func (r *Ref[T]) use(verb string) {
	if r.released {
		panic("cell: cannot " + verb + " a released guard")
	}
	r.s.check()
}
