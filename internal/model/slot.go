package model

import "time"

// Slot represents one numbered parking space.
//
// A slot that has been soft-deleted keeps its row with Active=false so that
// its number is never handed out again; Available tracks occupancy only for
// active slots.
type Slot struct {
	ID        int64     `gorm:"primaryKey" json:"-"`
	Number    int       `gorm:"uniqueIndex;not null" json:"slotNumber"`
	Available bool      `gorm:"not null" json:"available"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
