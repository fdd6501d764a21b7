package model

import "time"

// VehicleSize is the declared size class of a registered vehicle.
type VehicleSize string

const (
	SizeSmall  VehicleSize = "small"
	SizeMedium VehicleSize = "medium"
	SizeLarge  VehicleSize = "large"
)

// SlotCount returns how many slot-units a vehicle of this size claims.
// Returns 0 for an unrecognized size.
func (s VehicleSize) SlotCount() int {
	switch s {
	case SizeSmall:
		return 1
	case SizeMedium:
		return 2
	case SizeLarge:
		return 3
	}
	return 0
}

// Valid reports whether s is one of the recognized size classes.
func (s VehicleSize) Valid() bool {
	return s.SlotCount() > 0
}

// RecordStatus is the lifecycle state of one vehicle record.
type RecordStatus string

const (
	StatusUnset  RecordStatus = "unset"
	StatusParked RecordStatus = "parked"
	StatusLeft   RecordStatus = "left"
)

// VehicleRecord tracks one slot-unit of a registered vehicle. A vehicle of
// size N has N records sharing the same plate, each independently bound to
// at most one slot over its lifetime (unset -> parked -> left, no reuse).
type VehicleRecord struct {
	ID         int64        `gorm:"primaryKey" json:"id"`
	Plate      string       `gorm:"index;size:32;not null" json:"plateNumber"`
	Size       VehicleSize  `gorm:"size:16;not null" json:"carSize"`
	SlotNumber *int         `json:"slotNumber"`
	Status     RecordStatus `gorm:"size:16;not null" json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
	UpdatedAt  time.Time    `json:"updatedAt"`
}
