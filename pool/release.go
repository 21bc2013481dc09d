package pool

import "github.com/poolkit/poolkit/internal/format"

// Release returns a previously acquired block to the pool. It never reports
// failure: a nil or empty slice, a pointer outside the region, an interior
// pointer into a live block, an address that was never handed out, and a
// double release are all silent no-ops. Such calls are counted in
// Stats.ReleaseMisses.
//
// Matching is by exact start offset only. Releasing the whole-region
// allocation (a slice starting at byte 0 while the region is taken) clears
// whole-region mode; releasing the last partitioned block uncarves the
// ledger, making the whole region allocatable again.
func (p *Pool) Release(buf []byte) {
	if buf == nil {
		p.counters.releaseMisses++
		return
	}

	off, ok := p.offsetOf(buf)
	if !ok {
		p.counters.releaseMisses++
		return
	}

	// Whole-region path: the only way the mode flag is cleared.
	if p.wholeTaken {
		if off == 0 {
			p.wholeTaken = false
			p.counters.releases++
			return
		}
		p.counters.releaseMisses++
		return
	}

	if !p.carved {
		p.counters.releaseMisses++
		return
	}

	idx := p.removeByOffset(off)
	if idx == format.NoIndex {
		p.counters.releaseMisses++
		return
	}

	p.setRecord(idx, 0, 0)
	p.counters.releases++
	p.uncarve()
}
