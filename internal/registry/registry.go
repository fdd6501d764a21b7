// Package registry owns the set of parking slots: their numbering, their
// availability and active flags, and the search for contiguous free runs.
//
// All functions operate on the *gorm.DB they are given, which may be a
// transaction handle; callers that need multiple registry and ledger updates
// to commit together pass the same transaction to both.
package registry

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"parking-lot-backend/internal/model"
)

var (
	// ErrSlotNotFound means no slot with the requested number was ever created.
	ErrSlotNotFound = errors.New("slot not found")
	// ErrAlreadyInactive means the slot was already soft-deleted.
	ErrAlreadyInactive = errors.New("slot already deleted")
	// ErrOccupied means the operation requires the slot to be free.
	ErrOccupied = errors.New("slot is occupied")
)

// Initialize replaces the entire slot set with total fresh slots numbered
// 1..total, all available and active. It is destructive; the caller must
// have verified that no slot is currently occupied.
func Initialize(db *gorm.DB, total int) ([]model.Slot, error) {
	if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&model.Slot{}).Error; err != nil {
		return nil, fmt.Errorf("failed to clear slot set: %w", err)
	}

	slots := make([]model.Slot, total)
	for i := range slots {
		slots[i] = model.Slot{Number: i + 1, Available: true, Active: true}
	}
	if err := db.Create(&slots).Error; err != nil {
		return nil, fmt.Errorf("failed to create %d slots: %w", total, err)
	}
	return slots, nil
}

// HasOccupied reports whether any active slot is currently occupied.
func HasOccupied(db *gorm.DB) (bool, error) {
	var count int64
	err := db.Model(&model.Slot{}).
		Where("active = ? AND available = ?", true, false).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count occupied slots: %w", err)
	}
	return count > 0, nil
}

// AddSlots appends amount new slots numbered after the highest number ever
// assigned, including numbers held by inactive slots. Slot numbers are never
// reused.
func AddSlots(db *gorm.DB, amount int) ([]model.Slot, error) {
	var maxNumber int
	err := db.Model(&model.Slot{}).
		Select("COALESCE(MAX(number), 0)").
		Scan(&maxNumber).Error
	if err != nil {
		return nil, fmt.Errorf("failed to determine highest slot number: %w", err)
	}

	slots := make([]model.Slot, amount)
	for i := range slots {
		slots[i] = model.Slot{Number: maxNumber + i + 1, Available: true, Active: true}
	}
	if err := db.Create(&slots).Error; err != nil {
		return nil, fmt.Errorf("failed to append %d slots: %w", amount, err)
	}
	return slots, nil
}

// Get returns the slot with the given number, active or not.
func Get(db *gorm.DB, number int) (*model.Slot, error) {
	var slot model.Slot
	if err := db.Where("number = ?", number).First(&slot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("failed to look up slot %d: %w", number, err)
	}
	return &slot, nil
}

// Remove soft-deletes a slot. The slot must exist, still be active, and not
// be occupied; the row is kept so the number is never reassigned.
func Remove(db *gorm.DB, number int) error {
	slot, err := Get(db, number)
	if err != nil {
		return err
	}
	if !slot.Active {
		return ErrAlreadyInactive
	}
	if !slot.Available {
		return ErrOccupied
	}

	if err := db.Model(slot).Update("active", false).Error; err != nil {
		return fmt.Errorf("failed to deactivate slot %d: %w", number, err)
	}
	return nil
}

// Occupy marks an existing slot as occupied.
func Occupy(db *gorm.DB, number int) error {
	return setAvailable(db, number, false)
}

// Release marks an existing slot as free again.
func Release(db *gorm.DB, number int) error {
	return setAvailable(db, number, true)
}

func setAvailable(db *gorm.DB, number int, available bool) error {
	res := db.Model(&model.Slot{}).
		Where("number = ?", number).
		Update("available", available)
	if res.Error != nil {
		return fmt.Errorf("failed to update slot %d: %w", number, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

// FindFreeRun returns the numbers of the first run of count active, available
// slots whose numbers are consecutive integers. A gap left by an inactive or
// occupied slot breaks a run. Returns nil if no such run exists.
func FindFreeRun(db *gorm.DB, count int) ([]int, error) {
	free, err := AvailableSnapshot(db)
	if err != nil {
		return nil, err
	}
	if len(free) < count {
		return nil, nil
	}

	for i := 0; i+count <= len(free); i++ {
		if free[i+count-1].Number-free[i].Number == count-1 {
			numbers := make([]int, count)
			for j := 0; j < count; j++ {
				numbers[j] = free[i+j].Number
			}
			return numbers, nil
		}
	}
	return nil, nil
}

// Snapshot returns all active slots ordered by number.
func Snapshot(db *gorm.DB) ([]model.Slot, error) {
	var slots []model.Slot
	err := db.Where("active = ?", true).Order("number ASC").Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load slot snapshot: %w", err)
	}
	return slots, nil
}

// AvailableSnapshot returns the active, available slots ordered by number.
func AvailableSnapshot(db *gorm.DB) ([]model.Slot, error) {
	var slots []model.Slot
	err := db.Where("active = ? AND available = ?", true, true).
		Order("number ASC").
		Find(&slots).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load available slots: %w", err)
	}
	return slots, nil
}
