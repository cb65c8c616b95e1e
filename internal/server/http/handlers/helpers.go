package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/cripslk/dispatch/internal/domain/errors"
	"github.com/cripslk/dispatch/internal/domain/model"
	"github.com/cripslk/dispatch/internal/server/http/dto"
	"github.com/cripslk/dispatch/internal/server/http/middleware"
)

// CurrentStaffID extracts the authenticated staff identifier from context.
func CurrentStaffID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.StaffIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

// CurrentActor renders the authenticated caller as a status-history
// actor reference.
func CurrentActor(c *gin.Context) string {
	id := CurrentStaffID(c)
	if id == 0 {
		return ""
	}
	return fmt.Sprintf("staff:%d", id)
}

// respondError maps the domain error taxonomy onto HTTP status codes.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *domainErrors.ValidationError
		invalidOrders *domainErrors.InvalidOrdersError
		transitionErr *domainErrors.InvalidTransitionError
		downstreamErr *domainErrors.DownstreamError
	)

	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &invalidOrders),
		errors.Is(err, domainErrors.ErrUnknownDriver),
		errors.Is(err, domainErrors.ErrDriverUnavailable):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
	case errors.As(err, &transitionErr),
		errors.Is(err, domainErrors.ErrAlreadyExists):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.As(err, &downstreamErr):
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error"})
	}
}

func toOrderItems(items []dto.OrderItemPayload) []model.OrderItem {
	result := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		result = append(result, model.OrderItem{
			ItemID:    item.ItemID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}
	return result
}

func toOrderResponse(order model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemPayload, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemPayload{
			ItemID:    item.ItemID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	var history []dto.StatusEntryResponse
	for _, entry := range order.History {
		history = append(history, dto.StatusEntryResponse{
			Status:     string(entry.Status),
			Actor:      entry.Actor,
			RecordedAt: entry.RecordedAt,
		})
	}

	return dto.OrderResponse{
		ID:            order.ID,
		Kind:          string(order.Kind),
		Items:         items,
		Status:        string(order.Status),
		StatusHistory: history,
		ShipmentID:    order.ShipmentCode,
		Location:      order.Location,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}
}

func toScheduleResponse(schedule model.Schedule, orders []model.Order) dto.ScheduleResponse {
	var summaries []dto.OrderSummary
	for _, order := range orders {
		summaries = append(summaries, dto.OrderSummary{
			ID:         order.ID,
			Kind:       string(order.Kind),
			Status:     string(order.Status),
			ShipmentID: order.ShipmentCode,
		})
	}

	return dto.ScheduleResponse{
		Code:                schedule.Code,
		OrderIDs:            schedule.OrderIDs,
		Orders:              summaries,
		VehicleID:           schedule.VehicleID,
		DriverID:            schedule.DriverID,
		DepartureDate:       schedule.DepartureDate,
		ExpectedArrivalDate: schedule.ExpectedArrivalDate,
		ArrivalDate:         schedule.ArrivalDate,
		Location:            schedule.Location,
		Status:              string(schedule.Status),
		DelayReason:         schedule.DelayReason,
		CreatedAt:           schedule.CreatedAt,
		UpdatedAt:           schedule.UpdatedAt,
	}
}

func toShipmentResponse(shipment model.Shipment) dto.ShipmentResponse {
	return dto.ShipmentResponse{
		Code:                shipment.Code,
		OrderIDs:            shipment.OrderIDs,
		VehicleID:           shipment.VehicleID,
		DriverID:            shipment.DriverID,
		DepartureDate:       shipment.DepartureDate,
		ExpectedArrivalDate: shipment.ExpectedArrivalDate,
		ArrivalDate:         shipment.ArrivalDate,
		Status:              string(shipment.Status),
		DelayReason:         shipment.DelayReason,
		LastUpdated:         shipment.LastUpdated,
	}
}
