package cell_test

import (
	"math/rand"
	"testing"

	"github.com/mna/ecrin/cell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorrowAndMutate(t *testing.T) {
	c := cell.New(42)

	r := c.Borrow()
	require.Equal(t, 42, r.Value())
	require.Equal(t, cell.Shared(1), c.State())

	// no mutable access while a read-only guard is live
	_, ok := c.TryBorrowMut()
	require.False(t, ok)
	require.Equal(t, cell.Shared(1), c.State())

	r.Release()
	require.Equal(t, cell.Free, c.State())

	m := c.BorrowMut()
	m.Set(45)
	require.Equal(t, 45, m.Value())
	m.Release()

	r = c.Borrow()
	require.Equal(t, 45, r.Value())
	r.Release()
}

func TestExclusiveBlocksAll(t *testing.T) {
	c := cell.New("x")
	m := c.BorrowMut()

	_, ok := c.TryBorrow()
	assert.False(t, ok)
	_, ok = c.TryBorrowMut()
	assert.False(t, ok)
	assert.Equal(t, cell.Exclusive, c.State())

	m.Release()
	assert.Equal(t, cell.Free, c.State())
}

func TestBorrowConflictPanics(t *testing.T) {
	c := cell.New(1)

	m := c.BorrowMut()
	assert.PanicsWithValue(t, cell.BorrowConflictError("cell: already exclusively borrowed"), func() {
		c.Borrow()
	})
	assert.PanicsWithValue(t, cell.BorrowConflictError("cell: already borrowed"), func() {
		c.BorrowMut()
	})
	m.Release()

	r := c.Borrow()
	assert.PanicsWithValue(t, cell.BorrowConflictError("cell: already borrowed"), func() {
		c.BorrowMut()
	})
	r.Release()
}

func TestSharedReleaseInReverseOrder(t *testing.T) {
	c := cell.New(0)

	var refs []*cell.Ref[int]
	for i := 1; i <= 4; i++ {
		refs = append(refs, c.Borrow())
		require.Equal(t, cell.Shared(i), c.State())
	}
	for i := 3; i >= 1; i-- {
		refs[i].Release()
		require.Equal(t, cell.Shared(i), c.State())
	}
	refs[0].Release()
	require.Equal(t, cell.Free, c.State())
}

func TestSharedReleaseInAnyOrder(t *testing.T) {
	c := cell.New(0)
	r1, r2, r3 := c.Borrow(), c.Borrow(), c.Borrow()

	r2.Release()
	require.Equal(t, cell.Shared(2), c.State())
	r1.Release()
	require.Equal(t, cell.Shared(1), c.State())
	require.Equal(t, 0, r3.Value())
	r3.Release()
	require.Equal(t, cell.Free, c.State())
}

func TestReleaseIdempotent(t *testing.T) {
	c := cell.New(7)

	r := c.Borrow()
	func() {
		defer r.Release()
		r.Release() // explicit release, the deferred one must be a no-op
	}()
	require.Equal(t, cell.Free, c.State())

	m := c.BorrowMut()
	m.Release()
	m.Release()
	require.Equal(t, cell.Free, c.State())
}

func TestUseAfterReleasePanics(t *testing.T) {
	c := cell.New(7)

	r := c.Borrow()
	r.Release()
	assert.PanicsWithValue(t, "cell: cannot read through a released guard", func() { r.Value() })
	assert.PanicsWithValue(t, "cell: cannot clone a released guard", func() { r.Clone() })

	m := c.BorrowMut()
	m.Release()
	assert.PanicsWithValue(t, "cell: cannot read through a released guard", func() { m.Value() })
	assert.PanicsWithValue(t, "cell: cannot write through a released guard", func() { m.Set(8) })
}

func TestClone(t *testing.T) {
	c := cell.New(3)

	r := c.Borrow()
	cl := r.Clone()
	require.Equal(t, cell.Shared(2), c.State())

	// the clone holds its own borrow, independent of the original
	r.Release()
	require.Equal(t, cell.Shared(1), c.State())
	require.Equal(t, 3, cl.Value())
	_, ok := c.TryBorrowMut()
	require.False(t, ok)

	cl.Release()
	require.Equal(t, cell.Free, c.State())
}

func TestRefOutlivesCell(t *testing.T) {
	r := func() *cell.Ref[string] {
		c := cell.New("keep")
		return c.Borrow()
	}()
	require.Equal(t, "keep", r.Value())
	r.Release()
}

func TestRefMutMovedOut(t *testing.T) {
	type holder struct{ m *cell.RefMut[int] }

	c := cell.New(10)
	h := func() holder {
		return holder{m: c.BorrowMut()}
	}()

	h.m.Set(11)
	_, ok := c.TryBorrow()
	require.False(t, ok)

	h.m.Release()
	r := c.Borrow()
	require.Equal(t, 11, r.Value())
	r.Release()
}

// TestRandomOps applies a long pseudo-random sequence of probe and release
// operations, holding the successful guards on stacks, and verifies after
// every step that the cell's state matches the live guards exactly.
func TestRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c := cell.New[int64](0)

	var (
		refs []*cell.Ref[int64]
		muts []*cell.RefMut[int64]
	)
	for i := 0; i < 10000; i++ {
		switch rng.Intn(3) {
		case 0:
			if r, ok := c.TryBorrow(); ok {
				refs = append(refs, r)
				require.Empty(t, muts)
			}
		case 1:
			if m, ok := c.TryBorrowMut(); ok {
				m.Set(m.Value() + 1)
				muts = append(muts, m)
				require.Empty(t, refs)
			}
		default:
			if n := len(refs); n > 0 {
				refs[n-1].Release()
				refs = refs[:n-1]
			}
			if n := len(muts); n > 0 {
				muts[n-1].Release()
				muts = muts[:n-1]
			}
		}

		switch {
		case len(muts) > 0:
			require.Len(t, muts, 1)
			require.Equal(t, cell.Exclusive, c.State())
		case len(refs) > 0:
			require.Equal(t, cell.Shared(len(refs)), c.State())
		default:
			require.Equal(t, cell.Free, c.State())
		}
	}
}
