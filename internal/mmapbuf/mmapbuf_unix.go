//go:build unix

package mmapbuf

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Alloc maps an anonymous, private region of the given size and returns it
// together with a release function. The region lives outside the Go heap,
// which keeps a large pool from inflating GC scan work and mirrors the
// statically reserved RAM block the pool stands in for on bare metal.
func Alloc(size int) ([]byte, func() error, error) {
	if size <= 0 {
		return nil, nil, fmt.Errorf("mmapbuf: invalid region size %d", size)
	}
	data, err := unix.Mmap(-1, 0, size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, nil, fmt.Errorf("mmapbuf: mmap %d bytes: %w", size, err)
	}
	release := func() error {
		if data == nil {
			return nil
		}
		err := unix.Munmap(data)
		if errors.Is(err, unix.EINVAL) {
			// Treat double-unmap as no-op for callers.
			return nil
		}
		return err
	}
	return data, release, nil
}
