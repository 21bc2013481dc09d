package pool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poolkit/poolkit/internal/format"
)

// TestAcquire_Basic tests that consecutive allocations land above the ledger
// reservation and do not overlap.
func TestAcquire_Basic(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	a, err := p.Acquire(128)
	require.NoError(t, err, "Acquire(128) should succeed")
	b, err := p.Acquire(1024)
	require.NoError(t, err, "Acquire(1024) should succeed")
	c, err := p.Acquire(4096)
	require.NoError(t, err, "Acquire(4096) should succeed")

	require.Len(t, a, 128)
	require.Len(t, b, 1024)
	require.Len(t, c, 4096)

	offA, ok := p.offsetOf(a)
	require.True(t, ok)
	offB, ok := p.offsetOf(b)
	require.True(t, ok)
	offC, ok := p.offsetOf(c)
	require.True(t, ok)

	reserved := uint32(p.Reserved())
	assert.GreaterOrEqual(t, offA, reserved, "Block should sit above the ledger reservation")
	assert.GreaterOrEqual(t, offB, reserved)
	assert.GreaterOrEqual(t, offC, reserved)

	// Pairwise disjoint: first-fit places them back to back.
	assert.Equal(t, offA+128, offB, "Blocks should be placed back to back")
	assert.Equal(t, offB+1024, offC)

	require.NoError(t, p.Validate())
}

// TestAcquire_WriteThrough tests that a returned block is writable and the
// write is visible through the backing region.
func TestAcquire_WriteThrough(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	buf, err := p.Acquire(64)
	require.NoError(t, err)

	buf[0] = 42
	buf[63] = 7

	off, ok := p.offsetOf(buf)
	require.True(t, ok)
	assert.Equal(t, byte(42), p.data[off])
	assert.Equal(t, byte(7), p.data[off+63])
}

// TestAcquire_InvalidSize tests that non-positive sizes fail without side
// effects on the ledger.
func TestAcquire_InvalidSize(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	_, err = p.Acquire(0)
	assert.ErrorIs(t, err, ErrBadRequest)

	_, err = p.Acquire(-5)
	assert.ErrorIs(t, err, ErrBadRequest)

	s := p.Stats()
	assert.False(t, s.Carved, "Invalid requests should not carve the ledger")
	assert.Zero(t, s.LiveRecords)
	assert.Equal(t, uint64(2), s.AcquireFailures)
}

// TestAcquire_Oversize tests that a request larger than the region fails
// and leaves the pool empty.
func TestAcquire_Oversize(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	_, err = p.Acquire(p.Capacity() + 1)
	assert.ErrorIs(t, err, ErrNoSpace)
	assert.False(t, p.Stats().Carved)
}

// TestAcquire_CapacityFit tests that a successful allocation never extends
// past the end of the region.
func TestAcquire_CapacityFit(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	// Largest partitioned allocation that can fit.
	max := p.Capacity() - p.Reserved()
	buf, err := p.Acquire(max)
	require.NoError(t, err, "Acquire(%d) should fill the usable span exactly", max)

	off, ok := p.offsetOf(buf)
	require.True(t, ok)
	assert.Equal(t, p.Capacity(), int(off)+len(buf), "Block should end exactly at the region end")

	// One byte more than fits anywhere.
	_, err = p.Acquire(max)
	assert.ErrorIs(t, err, ErrNoSpace)
	require.NoError(t, p.Validate())
}

// TestAcquire_FirstFitReuse tests that freeing a block makes its space
// available again and that the first sufficient gap wins (scenario: free the
// middle block, then allocate something smaller).
func TestAcquire_FirstFitReuse(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	a, err := p.Acquire(128)
	require.NoError(t, err)
	b, err := p.Acquire(1024)
	require.NoError(t, err)
	c, err := p.Acquire(4096)
	require.NoError(t, err)

	offB, ok := p.offsetOf(b)
	require.True(t, ok)

	p.Release(b)

	d, err := p.Acquire(512)
	require.NoError(t, err, "Acquire(512) should reuse the freed gap")
	offD, ok := p.offsetOf(d)
	require.True(t, ok)
	assert.Equal(t, offB, offD, "First-fit should place at the start of the freed gap")

	require.NoError(t, p.Validate())
	_ = a
	_ = c
}

// TestAcquire_FirstFitSkipsSmallGaps tests that a gap too small for the
// request is skipped in favor of the next sufficient one.
func TestAcquire_FirstFitSkipsSmallGaps(t *testing.T) {
	p, err := New()
	require.NoError(t, err)

	a, err := p.Acquire(100)
	require.NoError(t, err)
	b, err := p.Acquire(100)
	require.NoError(t, err)
	c, err := p.Acquire(100)
	require.NoError(t, err)

	// Free the first block: gap of 100 bytes at the usable base.
	p.Release(a)

	// 200 bytes cannot fit the 100-byte gap; must land after c.
	d, err := p.Acquire(200)
	require.NoError(t, err)
	offC, _ := p.offsetOf(c)
	offD, ok := p.offsetOf(d)
	require.True(t, ok)
	assert.Equal(t, offC+100, offD, "Request should skip the too-small gap")

	// 100 bytes fits the first gap exactly.
	e, err := p.Acquire(100)
	require.NoError(t, err)
	offE, ok := p.offsetOf(e)
	require.True(t, ok)
	assert.Equal(t, uint32(p.Reserved()), offE, "Exact-fit request should take the first gap")

	require.NoError(t, p.Validate())
	_ = b
}

// TestAcquire_LedgerExhaustion tests that the slot count bounds concurrent
// allocations even when address space remains.
func TestAcquire_LedgerExhaustion(t *testing.T) {
	p, err := New(WithCapacity(4096), WithMaxRecords(8))
	require.NoError(t, err)

	var live [][]byte
	for i := 0; i < 8; i++ {
		buf, acqErr := p.Acquire(16)
		require.NoError(t, acqErr, "Acquire %d should succeed", i)
		live = append(live, buf)
	}

	// Plenty of space left, but every slot is taken.
	assert.Greater(t, p.LargestGap(), 16)
	_, err = p.Acquire(16)
	assert.ErrorIs(t, err, ErrLedgerFull)

	// Freeing one slot makes room again.
	p.Release(live[3])
	_, err = p.Acquire(16)
	require.NoError(t, err)

	require.NoError(t, p.Validate())
}

// TestAcquire_LedgerDoesNotFit tests the misconfigured case where the
// ledger reservation is not strictly smaller than the region.
func TestAcquire_LedgerDoesNotFit(t *testing.T) {
	p, err := New(WithCapacity(format.LedgerBytes(8)), WithMaxRecords(8))
	require.NoError(t, err)

	_, err = p.Acquire(16)
	assert.ErrorIs(t, err, ErrNoMetaSpace)

	// The whole-region path bypasses the ledger and still works.
	buf, err := p.Acquire(p.Capacity())
	require.NoError(t, err, "Whole-region path should not need the ledger")
	require.Len(t, buf, p.Capacity())
}

// TestAcquire_SlotReuse tests that released ledger slots are reused rather
// than leaked across acquire/release cycles.
func TestAcquire_SlotReuse(t *testing.T) {
	p, err := New(WithCapacity(4096), WithMaxRecords(4))
	require.NoError(t, err)

	keep, err := p.Acquire(32)
	require.NoError(t, err)

	for n := 0; n < 20; n++ {
		buf, acqErr := p.Acquire(64)
		require.NoError(t, acqErr, "Slot should be recycled every cycle")
		p.Release(buf)
	}

	require.NoError(t, p.Validate())
	_ = keep
}
