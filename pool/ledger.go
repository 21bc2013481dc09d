package pool

import "github.com/poolkit/poolkit/internal/format"

// Ledger maintenance. Records are 12-byte entries serialized into
// data[0 : maxRecords*12] while carved, threaded into a singly-linked list
// ordered strictly ascending by block offset. A record with size zero is a
// free slot. See internal/format for the field layout.

// recBase returns the byte offset of slot i's record within the region.
func (p *Pool) recBase(i int32) int {
	return int(i) * format.RecordSize
}

func (p *Pool) recOffset(i int32) uint32 {
	return format.ReadU32(p.data, p.recBase(i)+format.RecordOffsetField)
}

func (p *Pool) recSize(i int32) uint32 {
	return format.ReadU32(p.data, p.recBase(i)+format.RecordSizeField)
}

func (p *Pool) recNext(i int32) int32 {
	return format.ReadI32(p.data, p.recBase(i)+format.RecordNextField)
}

func (p *Pool) setRecord(i int32, off, size uint32) {
	base := p.recBase(i)
	format.PutU32(p.data, base+format.RecordOffsetField, off)
	format.PutU32(p.data, base+format.RecordSizeField, size)
}

func (p *Pool) setNext(i, next int32) {
	format.PutI32(p.data, p.recBase(i)+format.RecordNextField, next)
}

// carve reserves the ledger area at the front of the region and resets
// every slot to unused. Returns false when the whole region is taken or
// when the ledger itself would not fit strictly inside the region.
func (p *Pool) carve() bool {
	if p.carved {
		return true
	}
	if p.wholeTaken {
		return false
	}
	if format.LedgerBytes(p.maxRecords) >= len(p.data) {
		return false
	}
	for i := int32(0); i < int32(p.maxRecords); i++ {
		p.setRecord(i, 0, 0)
		p.setNext(i, format.NoIndex)
	}
	p.head = format.NoIndex
	p.carved = true
	return true
}

// uncarve releases the ledger reservation once no records remain, making a
// future whole-region allocation possible again.
func (p *Pool) uncarve() {
	if p.head != format.NoIndex {
		return
	}
	p.carved = false
}

// freeSlot returns the index of an unused record slot, or format.NoIndex
// when every slot is occupied.
func (p *Pool) freeSlot() int32 {
	for i := int32(0); i < int32(p.maxRecords); i++ {
		if p.recSize(i) == 0 {
			return i
		}
	}
	return format.NoIndex
}

// insertSorted links slot idx into the live list, keeping it strictly
// ascending by offset. The record's offset and size must already be set.
func (p *Pool) insertSorted(idx int32) {
	if p.head == format.NoIndex || p.recOffset(idx) < p.recOffset(p.head) {
		p.setNext(idx, p.head)
		p.head = idx
		return
	}
	prev := p.head
	for p.recNext(prev) != format.NoIndex &&
		p.recOffset(p.recNext(prev)) < p.recOffset(idx) {
		prev = p.recNext(prev)
	}
	p.setNext(idx, p.recNext(prev))
	p.setNext(prev, idx)
}

// removeByOffset unlinks the record whose block starts exactly at off and
// returns its slot index, or format.NoIndex when no record matches.
// Interior offsets within a live block do not match.
func (p *Pool) removeByOffset(off uint32) int32 {
	prev := format.NoIndex
	cur := p.head
	for cur != format.NoIndex {
		if p.recOffset(cur) == off {
			if prev == format.NoIndex {
				p.head = p.recNext(cur)
			} else {
				p.setNext(prev, p.recNext(cur))
			}
			p.setNext(cur, format.NoIndex)
			return cur
		}
		prev = cur
		cur = p.recNext(cur)
	}
	return format.NoIndex
}
