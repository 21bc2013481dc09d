package pool

import (
	"fmt"

	"github.com/poolkit/poolkit/internal/format"
)

// counters holds the monotonic operation counters kept by the engine.
type counters struct {
	acquires        uint64
	acquireFailures uint64
	releases        uint64
	releaseMisses   uint64
}

// Stats is a point-in-time snapshot of pool state and operation counters.
type Stats struct {
	Acquires        uint64 // Successful Acquire calls
	AcquireFailures uint64 // Failed Acquire calls, any cause
	Releases        uint64 // Release calls that freed a block
	ReleaseMisses   uint64 // Release calls that were silent no-ops

	LiveRecords int  // Partitioned allocations currently live
	BytesInUse  int  // Sum of live partitioned block sizes
	Carved      bool // Ledger currently occupies the region front
	WholeTaken  bool // Entire region held by one allocation
}

// Stats returns a snapshot of the pool's counters and occupancy.
func (p *Pool) Stats() Stats {
	s := Stats{
		Acquires:        p.counters.acquires,
		AcquireFailures: p.counters.acquireFailures,
		Releases:        p.counters.releases,
		ReleaseMisses:   p.counters.releaseMisses,
		Carved:          p.carved,
		WholeTaken:      p.wholeTaken,
	}
	if p.wholeTaken {
		s.BytesInUse = len(p.data)
		return s
	}
	for cur := p.head; cur != format.NoIndex; cur = p.recNext(cur) {
		s.LiveRecords++
		s.BytesInUse += int(p.recSize(cur))
	}
	return s
}

// Gap describes one free span between live allocations.
type Gap struct {
	Offset int
	Size   int
}

// FreeGaps returns the free spans available to partitioned allocation, in
// ascending-offset order. While the whole region is taken there are none;
// while the pool is empty there is a single gap covering everything above
// the ledger reservation.
func (p *Pool) FreeGaps() []Gap {
	if p.wholeTaken {
		return nil
	}

	base := format.LedgerBytes(p.maxRecords)
	limit := len(p.data)
	if base >= limit {
		return nil
	}

	var gaps []Gap
	addGap := func(start, end int) {
		if end > start {
			gaps = append(gaps, Gap{Offset: start, Size: end - start})
		}
	}

	if p.head == format.NoIndex {
		addGap(base, limit)
		return gaps
	}

	addGap(base, int(p.recOffset(p.head)))
	for cur := p.head; cur != format.NoIndex; cur = p.recNext(cur) {
		start := int(p.recOffset(cur) + p.recSize(cur))
		end := limit
		if nxt := p.recNext(cur); nxt != format.NoIndex {
			end = int(p.recOffset(nxt))
		}
		addGap(start, end)
	}
	return gaps
}

// LargestGap returns the size of the biggest free span, or zero when none.
func (p *Pool) LargestGap() int {
	largest := 0
	for _, g := range p.FreeGaps() {
		if g.Size > largest {
			largest = g.Size
		}
	}
	return largest
}

// Validate walks the record list and checks the engine's structural
// invariants: mode exclusivity, strictly ascending disjoint blocks, every
// block inside the usable span, and a cycle-free list that fits the slot
// array. It is intended for tests and diagnostics; a non-nil error means
// the pool state is corrupt.
func (p *Pool) Validate() error {
	if p.wholeTaken && p.carved {
		return fmt.Errorf("pool: whole-region mode and carved ledger both active")
	}
	if !p.carved {
		if p.head != format.NoIndex {
			return fmt.Errorf("pool: record list present without a carved ledger")
		}
		return nil
	}

	base := uint32(format.LedgerBytes(p.maxRecords))
	limit := uint32(len(p.data))

	seen := make(map[int32]bool)
	prevEnd := base
	first := true
	for cur := p.head; cur != format.NoIndex; cur = p.recNext(cur) {
		if cur < 0 || cur >= int32(p.maxRecords) {
			return fmt.Errorf("pool: record link %d outside slot array", cur)
		}
		if seen[cur] {
			return fmt.Errorf("pool: record list cycles at slot %d", cur)
		}
		seen[cur] = true

		off, size := p.recOffset(cur), p.recSize(cur)
		if size == 0 {
			return fmt.Errorf("pool: linked slot %d is marked unused", cur)
		}
		if off < base || off+size > limit {
			return fmt.Errorf("pool: block [%d, %d) outside usable span [%d, %d)",
				off, off+size, base, limit)
		}
		if !first && off < prevEnd {
			return fmt.Errorf("pool: block at %d overlaps or precedes block ending at %d",
				off, prevEnd)
		}
		prevEnd = off + size
		first = false
	}
	return nil
}
