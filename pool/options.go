package pool

import "github.com/poolkit/poolkit/internal/format"

// Option configures pool construction.
type Option func(*config)

type config struct {
	capacity   int
	maxRecords int
	mmapBacked bool
}

func defaultConfig() *config {
	return &config{
		capacity:   format.DefaultPoolSize,
		maxRecords: format.DefaultMaxRecords,
	}
}

// WithCapacity sets the total size of the managed region in bytes.
// The default is 100 KiB.
func WithCapacity(n int) Option {
	return func(c *config) {
		c.capacity = n
	}
}

// WithMaxRecords sets the number of ledger slots, bounding the number of
// simultaneously live partitioned allocations. The default is 96.
//
// The ledger reserves maxRecords * 12 bytes from the front of the region
// while carved; if that reservation is not strictly smaller than the
// capacity, partitioned Acquire calls fail with ErrNoMetaSpace.
func WithMaxRecords(n int) Option {
	return func(c *config) {
		c.maxRecords = n
	}
}

// WithMmapBacking places the backing region in an anonymous memory mapping
// outside the Go heap instead of a heap-allocated slice. On platforms
// without mmap support this falls back to a heap slice.
func WithMmapBacking() Option {
	return func(c *config) {
		c.mmapBacked = true
	}
}
