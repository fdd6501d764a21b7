package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"parking-lot-backend/internal/model"
)

// GetStatus handles GET /api/parking-lot/status.
func (h *Handler) GetStatus(c *gin.Context) {
	status, err := h.coordinator.GetStatus(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// PlatesBySize handles GET /api/cars/parked?size=S: the distinct plates of
// that size with at least one parked record.
func (h *Handler) PlatesBySize(c *gin.Context) {
	size := c.Query("size")
	if size == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query param size is required"})
		return
	}

	plates, err := h.coordinator.PlatesBySize(c.Request.Context(), model.VehicleSize(size))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"size": size, "plates": plates, "count": len(plates)})
}

// SlotsBySize handles GET /api/spaces/parked?size=S: the slot numbers held
// by parked vehicles of that size.
func (h *Handler) SlotsBySize(c *gin.Context) {
	size := c.Query("size")
	if size == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query param size is required"})
		return
	}

	slots, err := h.coordinator.SlotsBySize(c.Request.Context(), model.VehicleSize(size))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"size": size, "slots": slots, "count": len(slots)})
}

// FindContiguous handles GET /api/slots/contiguous?count=N: a planning query
// that returns the first run of N consecutive free slot numbers.
func (h *Handler) FindContiguous(c *gin.Context) {
	count, err := strconv.Atoi(c.Query("count"))
	if err != nil || count <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "count must be a positive integer"})
		return
	}

	run, err := h.coordinator.FindContiguous(c.Request.Context(), count)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count, "slots": run})
}
