// Package parking holds the allocation coordinator: the single owner of the
// slot-and-ledger state machine. Each mutation runs inside one database
// transaction, and a coordinator-level mutex serializes mutations so that
// concurrent park/leave calls on the same slot or plate observe at most one
// winner and never a half-applied transition.
package parking

import (
	"context"
	"log"
	"sync"

	"gorm.io/gorm"

	"parking-lot-backend/internal/ledger"
	"parking-lot-backend/internal/model"
	"parking-lot-backend/internal/registry"
)

// SlotNotifier receives the number of a slot that has just become free.
// The notification worker pool implements it.
type SlotNotifier interface {
	Dispatch(slotNumber int)
}

// Coordinator orchestrates registration, slot assignment, occupancy and
// release across the slot registry and the vehicle ledger.
type Coordinator struct {
	db       *gorm.DB
	mu       sync.Mutex
	notifier SlotNotifier // may be nil
}

// NewCoordinator creates a coordinator over the given database. notifier may
// be nil if slot-freed notifications are not wanted.
func NewCoordinator(db *gorm.DB, notifier SlotNotifier) *Coordinator {
	return &Coordinator{db: db, notifier: notifier}
}

// Status summarizes the current lot occupancy.
type Status struct {
	TotalSlots       int   `json:"totalSlots"`
	AvailableCount   int   `json:"availableSlotCount"`
	OccupiedCount    int   `json:"occupiedSlotCount"`
	AvailableNumbers []int `json:"availableSlotNumbers"`
}

// CreateLot replaces the slot set with total fresh slots numbered 1..total.
// Fails with ErrLotConflict while any active slot is occupied.
func (c *Coordinator) CreateLot(ctx context.Context, total int) ([]model.Slot, error) {
	if total <= 0 {
		return nil, ErrInvalidAmount
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var slots []model.Slot
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		occupied, err := registry.HasOccupied(tx)
		if err != nil {
			return err
		}
		if occupied {
			return ErrLotConflict
		}
		slots, err = registry.Initialize(tx, total)
		return err
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// RegisterVehicle claims the plate and creates one unset record per
// slot-unit of the given size.
func (c *Coordinator) RegisterVehicle(ctx context.Context, plate string, size model.VehicleSize) ([]model.VehicleRecord, error) {
	if !size.Valid() {
		return nil, ErrInvalidSize
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var records []model.VehicleRecord
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		records, err = ledger.Register(tx, plate, size)
		return err
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// ParkVehicle binds one unset record of the plate to the caller-chosen slot.
// The slot flip and the ledger update commit together; if the ledger cannot
// supply a record at commit time the whole transaction rolls back.
//
// Multi-slot vehicles park one record per call; the records of one plate
// need not occupy contiguous slots.
func (c *Coordinator) ParkVehicle(ctx context.Context, plate string, slotNumber int) (*model.VehicleRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var record *model.VehicleRecord
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		records, err := ledger.RecordsFor(tx, plate)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return ErrNotRegistered
		}

		hasUnset := false
		for _, r := range records {
			if r.SlotNumber == nil {
				hasUnset = true
			}
			if r.SlotNumber != nil && *r.SlotNumber == slotNumber && r.Status == model.StatusParked {
				return ErrDuplicatePark
			}
		}
		if !hasUnset {
			return ErrNoUnparkedRecord
		}

		slot, err := registry.Get(tx, slotNumber)
		if err != nil {
			return err
		}
		if !slot.Active {
			return registry.ErrSlotNotFound
		}
		if !slot.Available {
			return ErrSlotUnavailable
		}

		if err := registry.Occupy(tx, slotNumber); err != nil {
			return err
		}
		record, err = ledger.AssignSlot(tx, plate, slotNumber)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// LeaveVehicle releases the slot the plate is parked at and marks the
// matching record as left, as one transaction. Subscribers watching the slot
// are notified after the commit.
func (c *Coordinator) LeaveVehicle(ctx context.Context, plate string, slotNumber int) (*model.VehicleRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var record *model.VehicleRecord
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		records, err := ledger.RecordsFor(tx, plate)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return ErrNotRegistered
		}

		var target *model.VehicleRecord
		for i := range records {
			if records[i].SlotNumber != nil && *records[i].SlotNumber == slotNumber {
				target = &records[i]
				break
			}
		}
		if target == nil {
			return ErrRecordNotFound
		}
		if target.Status != model.StatusParked {
			return ErrNotCurrentlyParked
		}

		if err := registry.Release(tx, slotNumber); err != nil {
			return err
		}
		record, err = ledger.ReleaseSlot(tx, plate, slotNumber)
		return err
	})
	if err != nil {
		return nil, err
	}

	if c.notifier != nil {
		c.notifier.Dispatch(slotNumber)
	} else {
		log.Printf("Slot %d freed by %s (no notifier configured)", slotNumber, plate)
	}
	return record, nil
}

// AddSlots appends amount fresh slots after the highest number ever used.
func (c *Coordinator) AddSlots(ctx context.Context, amount int) ([]model.Slot, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var slots []model.Slot
	err := c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		slots, err = registry.AddSlots(tx, amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// RemoveSlot soft-deletes an empty active slot.
func (c *Coordinator) RemoveSlot(ctx context.Context, slotNumber int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return registry.Remove(tx, slotNumber)
	})
}

// GetStatus reports lot totals and the available slot numbers.
func (c *Coordinator) GetStatus(ctx context.Context) (*Status, error) {
	db := c.db.WithContext(ctx)

	all, err := registry.Snapshot(db)
	if err != nil {
		return nil, err
	}
	free, err := registry.AvailableSnapshot(db)
	if err != nil {
		return nil, err
	}

	numbers := make([]int, len(free))
	for i, s := range free {
		numbers[i] = s.Number
	}
	return &Status{
		TotalSlots:       len(all),
		AvailableCount:   len(free),
		OccupiedCount:    len(all) - len(free),
		AvailableNumbers: numbers,
	}, nil
}

// PlatesBySize lists the distinct plates of the given size with at least one
// parked record.
func (c *Coordinator) PlatesBySize(ctx context.Context, size model.VehicleSize) ([]string, error) {
	if !size.Valid() {
		return nil, ErrInvalidSize
	}

	records, err := ledger.BySize(c.db.WithContext(ctx), size)
	if err != nil {
		return nil, err
	}
	plates := make([]string, len(records))
	for i, r := range records {
		plates[i] = r.Plate
	}
	return plates, nil
}

// SlotsBySize lists the slot numbers currently held by vehicles of the
// given size.
func (c *Coordinator) SlotsBySize(ctx context.Context, size model.VehicleSize) ([]int, error) {
	if !size.Valid() {
		return nil, ErrInvalidSize
	}
	return ledger.ParkedSlots(c.db.WithContext(ctx), size)
}

// FindContiguous returns the first run of count consecutive free slot
// numbers, or ErrNoContiguousRun if none exists. Parking itself stays
// single-slot-per-call; this is a planning query for multi-slot vehicles.
func (c *Coordinator) FindContiguous(ctx context.Context, count int) ([]int, error) {
	if count <= 0 {
		return nil, ErrInvalidAmount
	}

	run, err := registry.FindFreeRun(c.db.WithContext(ctx), count)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, ErrNoContiguousRun
	}
	return run, nil
}
