package parking

import "errors"

// Domain errors surfaced by the coordinator. These are expected outcomes of
// precondition violations, not faults; the API layer maps each one to a
// stable client-visible status. Registry and ledger errors (registry.ErrSlotNotFound,
// ledger.ErrAlreadyRegistered, ...) pass through untouched.
var (
	// ErrLotConflict means the lot cannot be re-created while any active
	// slot is occupied.
	ErrLotConflict = errors.New("parking lot has occupied slots")
	// ErrNotRegistered means no records exist for the plate.
	ErrNotRegistered = errors.New("vehicle not registered")
	// ErrNoUnparkedRecord means every record of the plate already carries
	// a slot, so nothing is left to park.
	ErrNoUnparkedRecord = errors.New("no unparked record for vehicle")
	// ErrSlotUnavailable means the target slot is occupied.
	ErrSlotUnavailable = errors.New("slot is not available")
	// ErrDuplicatePark means the plate already has a parked record bound to
	// the target slot.
	ErrDuplicatePark = errors.New("vehicle already parked at this slot")
	// ErrRecordNotFound means the plate has no record at the target slot.
	ErrRecordNotFound = errors.New("vehicle record not found at this slot")
	// ErrNotCurrentlyParked means the record at the target slot is not in
	// the parked state.
	ErrNotCurrentlyParked = errors.New("vehicle is not currently parked")
	// ErrInvalidSize means the size is not one of small, medium, large.
	ErrInvalidSize = errors.New("size must be small, medium, or large")
	// ErrInvalidAmount means a count argument was not a positive integer.
	ErrInvalidAmount = errors.New("amount must be a positive integer")
	// ErrNoContiguousRun means no contiguous run of free slots of the
	// requested length exists.
	ErrNoContiguousRun = errors.New("no contiguous free slots of requested length")
)
