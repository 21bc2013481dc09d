//go:build !unix

// Package mmapbuf provides platform-specific helpers for reserving the
// pool's backing region outside the Go heap.
package mmapbuf

import "fmt"

// Alloc falls back to a heap-allocated slice when mmap is not available.
func Alloc(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmapbuf: invalid region size %d", size)
	}
	return make([]byte, size), func() error { return nil }, nil
}
