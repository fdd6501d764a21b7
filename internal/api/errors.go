package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"parking-lot-backend/internal/ledger"
	"parking-lot-backend/internal/parking"
	"parking-lot-backend/internal/registry"
)

// statusFor maps a domain error to its HTTP status. Anything unrecognized is
// an infrastructure fault and becomes a 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, registry.ErrSlotNotFound),
		errors.Is(err, registry.ErrAlreadyInactive),
		errors.Is(err, parking.ErrNotRegistered),
		errors.Is(err, parking.ErrRecordNotFound),
		errors.Is(err, parking.ErrNoContiguousRun):
		return http.StatusNotFound
	case errors.Is(err, registry.ErrOccupied),
		errors.Is(err, ledger.ErrAlreadyRegistered),
		errors.Is(err, ledger.ErrNoFreeRecord),
		errors.Is(err, parking.ErrLotConflict),
		errors.Is(err, parking.ErrNoUnparkedRecord),
		errors.Is(err, parking.ErrSlotUnavailable),
		errors.Is(err, parking.ErrDuplicatePark):
		return http.StatusConflict
	case errors.Is(err, ledger.ErrNotParked),
		errors.Is(err, parking.ErrNotCurrentlyParked),
		errors.Is(err, parking.ErrInvalidSize),
		errors.Is(err, parking.ErrInvalidAmount):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the canonical error response for a domain error.
// Infrastructure faults are reported without leaking their details.
func abortWithError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		c.AbortWithStatusJSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}
