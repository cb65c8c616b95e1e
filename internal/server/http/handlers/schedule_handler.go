package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cripslk/dispatch/internal/domain/model"
	"github.com/cripslk/dispatch/internal/server/http/dto"
	"github.com/cripslk/dispatch/internal/usecase"
)

// ScheduleHandler manages shipment-schedule endpoints.
type ScheduleHandler struct {
	facade ScheduleFacade
}

// NewScheduleHandler constructs ScheduleHandler.
func NewScheduleHandler(facade ScheduleFacade) *ScheduleHandler {
	return &ScheduleHandler{facade: facade}
}

// Create handles POST /api/schedules.
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	schedule, err := h.facade.CreateSchedule(c.Request.Context(), usecase.CreateScheduleInput{
		OrderIDs:            req.OrderIDs,
		VehicleID:           req.VehicleID,
		DriverID:            req.DriverID,
		DepartureDate:       req.DepartureDate,
		ExpectedArrivalDate: req.ExpectedArrivalDate,
		Location:            req.Location,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toScheduleResponse(*schedule, nil))
}

// List handles GET /api/schedules.
func (h *ScheduleHandler) List(c *gin.Context) {
	schedules, err := h.facade.Schedules(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]dto.ScheduleResponse, 0, len(schedules))
	for _, entry := range schedules {
		response = append(response, toScheduleResponse(entry.Schedule, entry.Orders))
	}
	c.JSON(http.StatusOK, response)
}

// Update handles PUT /api/schedules/:id. A status of "In Progress"
// promotes the schedule and the response carries the shipment instead.
func (h *ScheduleHandler) Update(c *gin.Context) {
	var req dto.UpdateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	input := usecase.ScheduleUpdateInput{
		Location:    req.Location,
		ArrivalDate: req.ArrivalDate,
		DelayReason: req.DelayReason,
	}
	if req.Status != nil {
		status := model.ScheduleStatus(*req.Status)
		input.Status = &status
	}

	result, err := h.facade.UpdateSchedule(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.Shipment != nil {
		c.JSON(http.StatusOK, toShipmentResponse(*result.Shipment))
		return
	}
	c.JSON(http.StatusOK, toScheduleResponse(*result.Schedule, nil))
}

// Delete handles DELETE /api/schedules/:id.
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteSchedule(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MessageResponse{Message: "schedule deleted"})
}

// Complete handles POST /api/schedules/:id/complete.
func (h *ScheduleHandler) Complete(c *gin.Context) {
	var req dto.CompleteScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body"})
		return
	}

	shipment, err := h.facade.PromoteSchedule(c.Request.Context(), c.Param("id"), req.ExpectedArrivalDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toShipmentResponse(*shipment))
}
