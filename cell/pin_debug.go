//go:build debug

package cell

import (
	"fmt"
	"runtime"
)

func goid() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	// "goroutine 123 [running]:\n"
	var id uint64
	_, _ = fmt.Sscanf(string(buf[:n]), "goroutine %d ", &id)
	return id
}

// pin records the creating goroutine of the storage (debug builds only).
func (s *storage[T]) pin() {
	s.goid = goid()
}

// check panics if the storage is used from a goroutine other than the one
// that created it (debug builds only).
func (s *storage[T]) check() {
	if id := goid(); s.goid != id {
		panic(
			fmt.Sprintf(
				"cell: contract violation: cell created on goroutine %d used from goroutine %d; "+
					"cells and their guards are single-goroutine",
				s.goid,
				id,
			),
		)
	}
}
