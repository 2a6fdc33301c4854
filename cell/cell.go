// Package cell provides a single-goroutine container that hands out owned
// borrow guards: any number of concurrent read-only guards, or exactly one
// read-write guard, enforced at runtime. Unlike a scoped lock, the guards
// are plain values that can be stored, returned from functions and kept in
// other data structures; the borrow is held until the guard is explicitly
// released, not until some lexical scope ends.
//
// Guards co-own the cell's backing storage, so a guard obtained from a cell
// remains valid even after the last direct reference to the cell is gone;
// the storage is collected once the cell and every guard are unreachable.
//
// Cells are not a synchronization primitive: they must only ever be used
// from a single goroutine. Build with -tags debug to pin each cell to its
// creating goroutine and panic on violations.
package cell

// storage is the shared backing of a cell: the held value and the borrow
// state. The cell and every live guard hold the same *storage, which is what
// keeps a guard valid after the cell itself becomes unreachable.
type storage[T any] struct {
	val   T
	state State
	goid  uint64 // creating goroutine, only set and checked in debug builds
}

// A Cell holds a single value of type T. The value is reachable only through
// guards obtained from the four borrow methods: Borrow and TryBorrow grant
// read-only access shared by any number of live [Ref] guards, BorrowMut and
// TryBorrowMut grant read-write access through a single live [RefMut] guard.
type Cell[T any] struct {
	s *storage[T]
}

// New returns a cell holding v, with no outstanding borrow.
func New[T any](v T) *Cell[T] {
	s := &storage[T]{val: v}
	s.pin()
	return &Cell[T]{s: s}
}

// A BorrowConflictError is the panic value of Borrow and BorrowMut when the
// requested borrow cannot be granted under the current state. Requesting a
// borrow while holding a conflicting guard is a programming error, so the
// failure is a panic by default; the TryBorrow and TryBorrowMut probes
// report the same condition as a false return instead.
type BorrowConflictError string

func (e BorrowConflictError) Error() string { return string(e) }

// Borrow returns a new read-only guard on the cell's value. It panics with a
// BorrowConflictError if a read-write guard is live.
func (c *Cell[T]) Borrow() *Ref[T] {
	r, ok := c.TryBorrow()
	if !ok {
		panic(BorrowConflictError("cell: already exclusively borrowed"))
	}
	return r
}

// TryBorrow is the non-panicking form of Borrow: it reports !ok instead of
// panicking when the borrow cannot be granted, leaving the state untouched.
func (c *Cell[T]) TryBorrow() (*Ref[T], bool) {
	c.s.check()
	if !c.s.state.tryAcquireShared() {
		return nil, false
	}
	return &Ref[T]{s: c.s}, true
}

// BorrowMut returns a new read-write guard on the cell's value. It panics
// with a BorrowConflictError if any guard, read-only or read-write, is live.
func (c *Cell[T]) BorrowMut() *RefMut[T] {
	r, ok := c.TryBorrowMut()
	if !ok {
		panic(BorrowConflictError("cell: already borrowed"))
	}
	return r
}

// TryBorrowMut is the non-panicking form of BorrowMut: it reports !ok
// instead of panicking when the borrow cannot be granted, leaving the state
// untouched.
func (c *Cell[T]) TryBorrowMut() (*RefMut[T], bool) {
	c.s.check()
	if !c.s.state.tryAcquireExclusive() {
		return nil, false
	}
	return &RefMut[T]{s: c.s}, true
}

// State reports the current borrow state of the cell. It is a snapshot for
// diagnostics and tests, not a reservation of any kind.
func (c *Cell[T]) State() State {
	c.s.check()
	return c.s.state
}
