package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"gorm.io/gorm"

	"parking-lot-backend/internal/parking"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	coordinator *parking.Coordinator
	db          *gorm.DB
	webpush     *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(coordinator *parking.Coordinator, db *gorm.DB, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		coordinator: coordinator,
		db:          db,
		webpush:     webpushOptions,
	}
}
