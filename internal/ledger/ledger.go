// Package ledger owns the per-vehicle occupancy records. A vehicle of size N
// has N records sharing one plate; each record binds to at most one slot over
// its lifetime. Registration is a one-time identity claim per plate.
//
// Like the registry, all functions run against the *gorm.DB they are given so
// the coordinator can include ledger updates in a shared transaction.
package ledger

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"parking-lot-backend/internal/model"
)

var (
	// ErrAlreadyRegistered means records for the plate already exist,
	// regardless of their status.
	ErrAlreadyRegistered = errors.New("vehicle already registered")
	// ErrNoFreeRecord means every record of the plate already carries a slot.
	ErrNoFreeRecord = errors.New("no unassigned record for vehicle")
	// ErrNotParked means no record of the plate is parked at the given slot.
	ErrNotParked = errors.New("vehicle is not parked at this slot")
)

// Register creates the record set for a new plate: one record per slot-unit
// of the given size, all unset and unassigned.
func Register(db *gorm.DB, plate string, size model.VehicleSize) ([]model.VehicleRecord, error) {
	var count int64
	if err := db.Model(&model.VehicleRecord{}).Where("plate = ?", plate).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check existing registration for %q: %w", plate, err)
	}
	if count > 0 {
		return nil, ErrAlreadyRegistered
	}

	records := make([]model.VehicleRecord, size.SlotCount())
	for i := range records {
		records[i] = model.VehicleRecord{Plate: plate, Size: size, Status: model.StatusUnset}
	}
	if err := db.Create(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to create records for %q: %w", plate, err)
	}
	return records, nil
}

// RecordsFor returns all records for a plate in insertion order.
func RecordsFor(db *gorm.DB, plate string) ([]model.VehicleRecord, error) {
	var records []model.VehicleRecord
	err := db.Where("plate = ?", plate).Order("id ASC").Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load records for %q: %w", plate, err)
	}
	return records, nil
}

// AssignSlot binds the first record of the plate that has no slot to the
// given slot number and marks it parked.
func AssignSlot(db *gorm.DB, plate string, slotNumber int) (*model.VehicleRecord, error) {
	var record model.VehicleRecord
	err := db.Where("plate = ? AND slot_number IS NULL", plate).
		Order("id ASC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoFreeRecord
		}
		return nil, fmt.Errorf("failed to find unassigned record for %q: %w", plate, err)
	}

	record.SlotNumber = &slotNumber
	record.Status = model.StatusParked
	if err := db.Save(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to assign slot %d to %q: %w", slotNumber, plate, err)
	}
	return &record, nil
}

// ReleaseSlot marks the record of the plate parked at the given slot as left.
// The slot number is retained on the record for history.
func ReleaseSlot(db *gorm.DB, plate string, slotNumber int) (*model.VehicleRecord, error) {
	var record model.VehicleRecord
	err := db.Where("plate = ? AND slot_number = ? AND status = ?", plate, slotNumber, model.StatusParked).
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotParked
		}
		return nil, fmt.Errorf("failed to find parked record for %q at slot %d: %w", plate, slotNumber, err)
	}

	record.Status = model.StatusLeft
	if err := db.Save(&record).Error; err != nil {
		return nil, fmt.Errorf("failed to release %q from slot %d: %w", plate, slotNumber, err)
	}
	return &record, nil
}

// BySize returns one representative parked record per distinct plate of the
// given size. Used to answer "which plates of size X are currently parked".
func BySize(db *gorm.DB, size model.VehicleSize) ([]model.VehicleRecord, error) {
	var records []model.VehicleRecord
	err := db.Where("size = ? AND status = ?", size, model.StatusParked).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load parked records of size %s: %w", size, err)
	}

	seen := make(map[string]bool, len(records))
	representatives := records[:0]
	for _, r := range records {
		if seen[r.Plate] {
			continue
		}
		seen[r.Plate] = true
		representatives = append(representatives, r)
	}
	return representatives, nil
}

// ParkedSlots returns the slot numbers currently held by parked records of
// the given size.
func ParkedSlots(db *gorm.DB, size model.VehicleSize) ([]int, error) {
	numbers := make([]int, 0)
	err := db.Model(&model.VehicleRecord{}).
		Where("size = ? AND status = ? AND slot_number IS NOT NULL", size, model.StatusParked).
		Order("slot_number ASC").
		Pluck("slot_number", &numbers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load parked slots of size %s: %w", size, err)
	}
	return numbers, nil
}
