package cell

import "strconv"

// State describes the borrow state of a cell: free, shared by n read-only
// guards, or held by one read-write guard. It is encoded as a signed
// counter: zero is Free, a positive value is the number of live read-only
// guards, and Exclusive marks a live read-write guard. A cell is never in a
// shared state with a zero count; releasing the last read-only guard moves
// the state back to Free.
type State int

const (
	Free      State = 0
	Exclusive State = -1
)

// Shared returns the state of a cell held by n read-only guards, n >= 1.
func Shared(n int) State { return State(n) }

func (s State) String() string {
	switch {
	case s == Free:
		return "free"
	case s == Exclusive:
		return "exclusive"
	case s > 0:
		return "shared(" + strconv.Itoa(int(s)) + ")"
	default:
		return "invalid(" + strconv.Itoa(int(s)) + ")"
	}
}

// The four transitions below are the only mutation paths of a cell's state.
// The acquire forms never mutate on failure; the release forms panic when
// the state does not match the hold being dropped, because the guards'
// release bookkeeping makes that unreachable and reaching it means the
// counter has desynchronized from the live guards.

// tryAcquireShared grants a new read-only hold unless a read-write guard is
// live.
func (s *State) tryAcquireShared() bool {
	if *s < 0 {
		return false
	}
	*s++
	return true
}

// tryAcquireExclusive grants the read-write hold only on a free cell.
func (s *State) tryAcquireExclusive() bool {
	if *s != Free {
		return false
	}
	*s = Exclusive
	return true
}

// releaseShared drops one read-only hold, moving back to Free if it was the
// last one.
func (s *State) releaseShared() {
	if *s < 1 {
		panic("cell: internal error: shared release with state " + s.String())
	}
	*s--
}

// releaseExclusive drops the read-write hold.
func (s *State) releaseExclusive() {
	if *s != Exclusive {
		panic("cell: internal error: exclusive release with state " + s.String())
	}
	*s = Free
}
