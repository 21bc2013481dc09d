package pool

import "github.com/poolkit/poolkit/internal/format"

// Acquire allocates size bytes from the region and returns the block as a
// sub-slice of the backing store. The block stays valid until a matching
// Release. On failure the returned slice is nil and the error identifies
// the cause; callers that only care about success can treat any non-nil
// error uniformly.
//
// Requesting exactly Capacity() bytes takes the whole-region path: it
// succeeds only from the empty state and grants the entire region,
// including the bytes the ledger would otherwise reserve.
func (p *Pool) Acquire(size int) ([]byte, error) {
	if size <= 0 {
		return nil, p.fail(ErrBadRequest)
	}

	// Whole-region path: bypasses the ledger entirely.
	if size == len(p.data) {
		if p.wholeTaken {
			return nil, p.fail(ErrRegionTaken)
		}
		if p.carved || p.head != format.NoIndex {
			return nil, p.fail(ErrBusy)
		}
		p.wholeTaken = true
		p.counters.acquires++
		return p.block(0, uint32(size)), nil
	}

	if p.wholeTaken {
		return nil, p.fail(ErrRegionTaken)
	}
	if size > len(p.data) {
		// Can never fit; also keeps the uint32 conversion below exact.
		return nil, p.fail(ErrNoSpace)
	}
	if !p.carve() {
		return nil, p.fail(ErrNoMetaSpace)
	}

	req := uint32(size)
	off, ok := p.findGap(req)
	if !ok {
		p.uncarve() // nothing placed; don't hold the reservation
		return nil, p.fail(ErrNoSpace)
	}
	idx := p.freeSlot()
	if idx == format.NoIndex {
		return nil, p.fail(ErrLedgerFull)
	}

	p.setRecord(idx, off, req)
	p.insertSorted(idx)
	p.counters.acquires++
	return p.block(off, req), nil
}

// findGap scans free space in ascending-offset order and returns the start
// of the first gap that fits req bytes: the gap between the ledger
// reservation and the first record, the gaps between consecutive records,
// and the tail gap after the last record. Placement is at the gap's start,
// never its end (first-fit, not best-fit).
func (p *Pool) findGap(req uint32) (uint32, bool) {
	base := uint32(format.LedgerBytes(p.maxRecords))
	limit := uint32(len(p.data))

	if p.head == format.NoIndex {
		if base+req <= limit {
			return base, true
		}
		return 0, false
	}

	// Gap between the ledger reservation and the first block.
	if p.recOffset(p.head) >= base+req {
		return base, true
	}

	// Gaps between consecutive blocks, then the tail gap up to the limit.
	for cur := p.head; cur != format.NoIndex; cur = p.recNext(cur) {
		gapStart := p.recOffset(cur) + p.recSize(cur)
		gapEnd := limit
		if nxt := p.recNext(cur); nxt != format.NoIndex {
			gapEnd = p.recOffset(nxt)
		}
		if gapEnd > gapStart && gapEnd-gapStart >= req {
			return gapStart, true
		}
	}
	return 0, false
}

// fail counts an acquire failure and passes the error through.
func (p *Pool) fail(err error) error {
	p.counters.acquireFailures++
	return err
}
