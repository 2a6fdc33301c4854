package script

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/mna/ecrin/cell"
)

// Run executes ops against a fresh cell holding int64(0) and writes one
// trace line per op to w, in the form
//
//	file:line: op -> outcome [state]
//
// where outcome is "ok", "conflict" for a rejected borrow, "noop" for an op
// whose guard stack is empty, "fail" for an expect mismatch, and the value
// read for a get. Execution always runs the whole script; the returned
// error reports the expect mismatches, if any, and is guaranteed to
// implement Unwrap() []error when non-nil.
func Run(ops []Op, w io.Writer) error {
	var (
		c    = cell.New[int64](0)
		refs []*cell.Ref[int64]
		muts []*cell.RefMut[int64]
		errs []error
	)

	for _, op := range ops {
		outcome := "ok"
		switch op.Kind {
		case Borrow:
			if r, ok := c.TryBorrow(); ok {
				refs = append(refs, r)
			} else {
				outcome = "conflict"
			}

		case BorrowMut:
			if m, ok := c.TryBorrowMut(); ok {
				muts = append(muts, m)
			} else {
				outcome = "conflict"
			}

		case Clone:
			if n := len(refs); n > 0 {
				refs = append(refs, refs[n-1].Clone())
			} else {
				outcome = "noop"
			}

		case Release:
			if n := len(refs); n > 0 {
				refs[n-1].Release()
				refs = refs[:n-1]
			} else {
				outcome = "noop"
			}

		case ReleaseMut:
			if n := len(muts); n > 0 {
				muts[n-1].Release()
				muts = muts[:n-1]
			} else {
				outcome = "noop"
			}

		case Set:
			if n := len(muts); n > 0 {
				muts[n-1].Set(op.Arg)
			} else {
				outcome = "noop"
			}

		case Get:
			if n := len(refs); n > 0 {
				outcome = strconv.FormatInt(refs[n-1].Value(), 10)
			} else {
				outcome = "noop"
			}

		case Expect:
			if got := c.State(); got != op.Want {
				outcome = "fail"
				errs = append(errs, fmt.Errorf("%s: expect %s: state is %s", op.Pos, op.Want, got))
			}
		}
		fmt.Fprintf(w, "%s: %s -> %s [%s]\n", op.Pos, op, outcome, c.State())
	}
	return errors.Join(errs...)
}
