package cell

// A RefMut is an owned read-write guard on a cell's value. At most one
// RefMut is live on a cell at a time, and never together with a [Ref]; the
// cell stays in the exclusive state until the guard is released. RefMuts are
// created by [Cell.BorrowMut] and [Cell.TryBorrowMut], never directly, and
// cannot be cloned.
type RefMut[T any] struct {
	s        *storage[T]
	released bool
}

// Value returns the value held by the cell.
func (r *RefMut[T]) Value() T {
	r.use("read through")
	return r.s.val
}

// Set replaces the value held by the cell.
func (r *RefMut[T]) Set(v T) {
	r.use("write through")
	r.s.val = v
}

// Release drops the guard's read-write hold, moving the cell back to the
// free state. Releasing an already-released guard is a no-op, so an explicit
// Release followed by a deferred one releases only once.
func (r *RefMut[T]) Release() {
	if r.released {
		return
	}
	r.use("release")
	r.released = true
	r.s.state.releaseExclusive()
}

// use panics if the guard must not be used anymore. verb describes the
// rejected operation, as in "write through".
func (r *RefMut[T]) use(verb string) {
	if r.released {
		panic("cell: cannot " + verb + " a released guard")
	}
	r.s.check()
}
