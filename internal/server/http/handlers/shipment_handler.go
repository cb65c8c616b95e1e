package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cripslk/dispatch/internal/domain/model"
	"github.com/cripslk/dispatch/internal/server/http/dto"
	"github.com/cripslk/dispatch/internal/usecase"
)

// ShipmentHandler manages shipment endpoints.
type ShipmentHandler struct {
	facade ShipmentFacade
}

// NewShipmentHandler constructs ShipmentHandler.
func NewShipmentHandler(facade ShipmentFacade) *ShipmentHandler {
	return &ShipmentHandler{facade: facade}
}

// Create handles POST /api/shipments.
func (h *ShipmentHandler) Create(c *gin.Context) {
	var req dto.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	shipment, err := h.facade.CreateShipment(c.Request.Context(), usecase.CreateShipmentInput{
		OrderIDs:            req.OrderIDs,
		VehicleID:           req.VehicleID,
		DriverID:            req.DriverID,
		DepartureDate:       req.DepartureDate,
		ExpectedArrivalDate: req.ExpectedArrivalDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toShipmentResponse(*shipment))
}

// List handles GET /api/shipments.
func (h *ShipmentHandler) List(c *gin.Context) {
	shipments, err := h.facade.Shipments(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.ShipmentResponse, 0, len(shipments))
	for _, shipment := range shipments {
		response = append(response, toShipmentResponse(shipment))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/shipments/:id.
func (h *ShipmentHandler) Get(c *gin.Context) {
	shipment, err := h.facade.Shipment(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toShipmentResponse(*shipment))
}

// UpdateStatus handles PUT /api/shipments/:id/status.
func (h *ShipmentHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	shipment, err := h.facade.UpdateShipmentStatus(c.Request.Context(), c.Param("id"), usecase.ShipmentStatusInput{
		Status:      model.ShipmentStatus(req.Status),
		ArrivalDate: req.ArrivalDate,
		DelayReason: req.DelayReason,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toShipmentResponse(*shipment))
}

// Delete handles DELETE /api/shipments/:id.
func (h *ShipmentHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteShipment(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "shipment deleted"})
}
