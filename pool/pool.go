package pool

import (
	"fmt"
	"unsafe"

	"github.com/poolkit/poolkit/internal/format"
	"github.com/poolkit/poolkit/internal/mmapbuf"
)

// maxCapacity is the largest supported region size. Record offsets are
// stored as uint32 inside the region, so the capacity must fit in int32.
const maxCapacity = 0x7FFFFFFF

// Pool is the allocation engine over one fixed-capacity byte region.
// All bookkeeping for live allocations is serialized into the front of the
// region while at least one partitioned allocation exists.
type Pool struct {
	data    []byte       // backing region, len(data) == capacity
	release func() error // backing release hook (mmap), nil for heap slices

	maxRecords int

	// carved reports whether the ledger currently occupies the front of the
	// region. head is the slot index of the lowest-offset live record, or
	// format.NoIndex when no records exist.
	carved bool
	head   int32

	// wholeTaken is set while the entire region is held by a single
	// whole-region allocation. Mutually exclusive with carved.
	wholeTaken bool

	counters counters
}

// New constructs a Pool with the given options. The region is zeroed and
// the pool starts empty: no ledger carved, whole-region mode clear.
func New(opts ...Option) (*Pool, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.capacity <= 0 {
		return nil, fmt.Errorf("pool: invalid capacity %d", cfg.capacity)
	}
	if cfg.capacity > maxCapacity {
		return nil, fmt.Errorf("pool: capacity %d exceeds %d limit", cfg.capacity, maxCapacity)
	}
	if cfg.maxRecords <= 0 {
		return nil, fmt.Errorf("pool: invalid ledger slot count %d", cfg.maxRecords)
	}

	p := &Pool{
		maxRecords: cfg.maxRecords,
		head:       format.NoIndex,
	}
	if cfg.mmapBacked {
		data, release, err := mmapbuf.Alloc(cfg.capacity)
		if err != nil {
			return nil, err
		}
		p.data = data
		p.release = release
	} else {
		p.data = make([]byte, cfg.capacity)
	}
	return p, nil
}

// Close releases the backing region. The pool must not be used afterwards,
// and any outstanding sub-slices become invalid. Close is a no-op for
// heap-backed pools.
func (p *Pool) Close() error {
	if p.release == nil {
		return nil
	}
	release := p.release
	p.release = nil
	p.data = nil
	return release()
}

// Capacity returns the total size of the managed region in bytes.
func (p *Pool) Capacity() int {
	return len(p.data)
}

// MaxRecords returns the number of ledger slots.
func (p *Pool) MaxRecords() int {
	return p.maxRecords
}

// Reserved returns the region bytes the ledger occupies while carved.
// Partitioned allocations are always placed at or above this offset.
func (p *Pool) Reserved() int {
	return format.LedgerBytes(p.maxRecords)
}

// offsetOf translates a caller-visible slice back into an offset within the
// backing region. This is the only place addresses are compared; everything
// else in the engine works with offsets and slot indices. The second return
// is false when the slice does not point into the region at all.
func (p *Pool) offsetOf(buf []byte) (uint32, bool) {
	if len(buf) == 0 || len(p.data) == 0 {
		return 0, false
	}
	base := uintptr(unsafe.Pointer(&p.data[0]))
	ptr := uintptr(unsafe.Pointer(&buf[0]))
	if ptr < base || ptr >= base+uintptr(len(p.data)) {
		return 0, false
	}
	return uint32(ptr - base), true
}

// block returns the caller-visible sub-slice for a placed allocation.
// Capacity is clipped so callers cannot reslice into a neighboring block.
func (p *Pool) block(off, size uint32) []byte {
	return p.data[off : off+size : off+size]
}
