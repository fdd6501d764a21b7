package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"parking-lot-backend/internal/model"
)

type registerRequest struct {
	PlateNumber string `json:"plateNumber" binding:"required"`
	CarSize     string `json:"carSize" binding:"required"`
}

// RegisterVehicle handles POST /api/cars/register. Registration is a
// one-time claim per plate; it creates one ledger record per slot-unit of
// the declared size.
func (h *Handler) RegisterVehicle(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plateNumber and carSize are required"})
		return
	}

	records, err := h.coordinator.RegisterVehicle(c.Request.Context(), req.PlateNumber, model.VehicleSize(req.CarSize))
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Car registered successfully",
		"plateNumber": req.PlateNumber,
		"carSize":     req.CarSize,
		"records":     records,
	})
}

type parkRequest struct {
	PlateNumber string `json:"plateNumber" binding:"required"`
	SlotNumber  int    `json:"slotNumber" binding:"required,gt=0"`
}

// ParkVehicle handles POST /api/cars/park. One call parks one record at one
// caller-chosen slot; multi-slot vehicles issue one call per record.
func (h *Handler) ParkVehicle(c *gin.Context) {
	var req parkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plateNumber and slotNumber are required"})
		return
	}

	record, err := h.coordinator.ParkVehicle(c.Request.Context(), req.PlateNumber, req.SlotNumber)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Car parked successfully",
		"plateNumber": req.PlateNumber,
		"slotNumber":  req.SlotNumber,
		"record":      record,
	})
}

// LeaveVehicle handles POST /api/cars/leave.
func (h *Handler) LeaveVehicle(c *gin.Context) {
	var req parkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plateNumber and slotNumber are required"})
		return
	}

	record, err := h.coordinator.LeaveVehicle(c.Request.Context(), req.PlateNumber, req.SlotNumber)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Car left successfully",
		"plateNumber": req.PlateNumber,
		"slotNumber":  req.SlotNumber,
		"record":      record,
	})
}
