// Package pool manages a single fixed-capacity byte region as a substitute
// heap for environments without a dynamic allocator.
//
// # Overview
//
// A Pool owns one contiguous region of a fixed size and hands out
// non-overlapping sub-slices of it on request. Bookkeeping lives inside the
// managed region itself: the first time a partitioned allocation is made, a
// ledger of fixed-size allocation records is carved from the front of the
// region, and it is released again as soon as the last allocation is freed.
// No auxiliary heap storage is used at any point.
//
// # Operations
//
// The engine exposes two operations:
//
//   - Acquire(size): Allocate size bytes, returning a sub-slice of the region
//   - Release(p): Return a previously acquired block to the pool
//
// Placement is first-fit over ascending offsets: the first gap large enough
// for the request is used, and the block is placed at the gap's start.
// Adjacent free space is tracked implicitly (only live blocks are recorded),
// so no coalescing step exists or is needed.
//
// # Whole-region mode
//
// Requesting exactly the pool's capacity is special-cased: when nothing else
// is live and the ledger is not carved, the caller receives the entire
// region, including the bytes the ledger would otherwise reserve. While the
// region is taken, every other Acquire fails. Releasing the region's base
// address returns the pool to the empty state.
//
// # Release contract
//
// Release never reports failure. A nil slice, a pointer outside the region,
// an interior pointer into a live block, or a double release are all silent
// no-ops. The Stats.ReleaseMisses counter records such calls for test
// observability without changing the contract.
//
// # Usage Example
//
//	p, err := pool.New()
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	buf, err := p.Acquire(1024)
//	if err != nil {
//	    return err
//	}
//
//	// Write through buf...
//	buf[0] = 42
//
//	// Later, return the block
//	p.Release(buf)
//
// # Sizing
//
// Defaults are a 100 KiB region with 96 ledger slots (12 bytes per record,
// 1152 bytes reserved while carved). Both are configurable via WithCapacity
// and WithMaxRecords. The slot count bounds the number of simultaneously
// live partitioned allocations; the 97th concurrent Acquire fails even when
// address space remains.
//
// # Thread Safety
//
// Pool instances are not thread-safe. Callers must synchronize access
// externally; concurrent Acquire/Release calls can corrupt the record list.
//
// # Related Packages
//
//   - github.com/poolkit/poolkit/internal/format: Record layout and encoding
//   - github.com/poolkit/poolkit/internal/mmapbuf: Off-heap backing regions
package pool
