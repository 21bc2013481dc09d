package format

// Layout constants for the pool region and its in-region ledger.
//
// The ledger is an array of fixed-size allocation records carved from the
// front of the managed region. Each record is 12 bytes, little-endian:
//
//	Offset  Size  Description
//	0x00    4     Block offset from the start of the region (uint32).
//	0x04    4     Block size in bytes (uint32). Zero marks the slot unused.
//	0x08    4     Slot index of the next record in ascending-offset order
//	              (int32). NoIndex (-1) terminates the list.
const (
	// RecordSize is the serialized footprint of one allocation record.
	RecordSize = 12

	// Field offsets within a record.
	RecordOffsetField = 0
	RecordSizeField   = 4
	RecordNextField   = 8
)

const (
	// DefaultPoolSize is the default capacity of the managed region (100 KiB).
	DefaultPoolSize = 100 * 1024

	// DefaultMaxRecords is the default number of ledger slots, bounding the
	// number of simultaneously live partitioned allocations.
	DefaultMaxRecords = 96
)

// NoIndex is the list terminator / "no slot" sentinel for record links.
const NoIndex int32 = -1

// LedgerBytes returns the region bytes reserved by a carved ledger of n slots.
func LedgerBytes(n int) int {
	return n * RecordSize
}
