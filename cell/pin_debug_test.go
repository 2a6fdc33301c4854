//go:build debug

package cell_test

import (
	"testing"

	"github.com/mna/ecrin/cell"
	"github.com/stretchr/testify/require"
)

func TestPinnedToCreatingGoroutine(t *testing.T) {
	c := cell.New(1)

	done := make(chan any, 1)
	go func() {
		defer func() { done <- recover() }()
		c.Borrow()
	}()

	got := <-done
	require.NotNil(t, got, "expected a contract violation panic")
	require.Contains(t, got.(string), "cell: contract violation")
}
