package model

import "time"

// PushSubscription holds the information for a browser push subscription.
// A subscriber is notified whenever one of its watched slots becomes free.
type PushSubscription struct {
	Endpoint  string    `gorm:"primaryKey"`
	P256DH    string    `gorm:"column:p256dh;not null"`
	Auth      string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`

	// Associations
	Slots []*Slot `gorm:"many2many:subscription_slot_mapping;"`
}