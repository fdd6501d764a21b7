package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type createLotRequest struct {
	TotalSlots int `json:"totalSlots" binding:"required,gt=0"`
}

// CreateLot handles POST /api/parking-lots. It replaces the whole slot set
// and fails while any slot is still occupied.
func (h *Handler) CreateLot(c *gin.Context) {
	var req createLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "totalSlots must be a positive integer"})
		return
	}

	slots, err := h.coordinator.CreateLot(c.Request.Context(), req.TotalSlots)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":        "Parking lot created successfully",
		"totalSlots":     len(slots),
		"availableSlots": len(slots),
	})
}

type addSlotsRequest struct {
	Amount int `json:"amount" binding:"required,gt=0"`
}

// AddSlots handles POST /api/slots/create.
func (h *Handler) AddSlots(c *gin.Context) {
	var req addSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a positive integer"})
		return
	}

	slots, err := h.coordinator.AddSlots(c.Request.Context(), req.Amount)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": strconv.Itoa(len(slots)) + " empty slot(s) added successfully",
		"count":   len(slots),
		"slots":   slots,
	})
}

// RemoveSlot handles DELETE /api/slots/delete?slotNumber=N. Slots are soft
// deleted; their numbers are never reassigned.
func (h *Handler) RemoveSlot(c *gin.Context) {
	slotNumber, err := strconv.Atoi(c.Query("slotNumber"))
	if err != nil || slotNumber <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "slotNumber must be a positive integer"})
		return
	}

	if err := h.coordinator.RemoveSlot(c.Request.Context(), slotNumber); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Empty slot deleted successfully",
		"slotNumber": slotNumber,
	})
}
