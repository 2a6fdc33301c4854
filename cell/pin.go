//go:build !debug

package cell

func goid() uint64 { return 0 }

// pin records the creating goroutine of the storage (debug builds only).
func (s *storage[T]) pin() {}

// check panics if the storage is used from a goroutine other than the one
// that created it (debug builds only).
func (s *storage[T]) check() {}
