package pool

import "errors"

var (
	// ErrBadRequest indicates a non-positive allocation size.
	ErrBadRequest = errors.New("pool: requested size must be positive")

	// ErrNoSpace indicates that no free gap large enough was found.
	ErrNoSpace = errors.New("pool: no gap large enough")

	// ErrLedgerFull indicates that a placement exists but every ledger slot
	// is occupied, bounding the number of concurrent allocations.
	ErrLedgerFull = errors.New("pool: no free ledger slot")

	// ErrRegionTaken indicates the entire region is held by a whole-region
	// allocation, so no further allocation can be satisfied.
	ErrRegionTaken = errors.New("pool: entire region is taken")

	// ErrBusy indicates a whole-region request while partitioned
	// allocations are live.
	ErrBusy = errors.New("pool: partitioned allocations are live")

	// ErrNoMetaSpace indicates the ledger's own storage requirement is not
	// strictly smaller than the region, so partitioned allocation can never
	// succeed with this capacity/slot-count pair.
	ErrNoMetaSpace = errors.New("pool: ledger does not fit inside the region")
)
