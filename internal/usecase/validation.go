package usecase

import (
	domainErrors "github.com/cripslk/dispatch/internal/domain/errors"
	"github.com/cripslk/dispatch/internal/domain/model"
)

func validateItems(items []model.OrderItem) error {
	if len(items) == 0 {
		return &domainErrors.ValidationError{Field: "items"}
	}
	for _, item := range items {
		switch {
		case item.ItemID == "":
			return &domainErrors.ValidationError{Field: "items.item_id"}
		case item.Quantity <= 0:
			return &domainErrors.ValidationError{Field: "items.quantity"}
		case item.UnitPrice < 0:
			return &domainErrors.ValidationError{Field: "items.unit_price"}
		}
	}
	return nil
}

// validateScheduleInput checks scalar fields in declaration order so
// the error names the first missing one.
func validateScheduleInput(in CreateScheduleInput) error {
	switch {
	case len(in.OrderIDs) == 0:
		return &domainErrors.ValidationError{Field: "orderIds"}
	case in.VehicleID == "":
		return &domainErrors.ValidationError{Field: "vehicleId"}
	case in.DriverID == "":
		return &domainErrors.ValidationError{Field: "driverId"}
	case in.DepartureDate.IsZero():
		return &domainErrors.ValidationError{Field: "departureDate"}
	case in.ExpectedArrivalDate.IsZero():
		return &domainErrors.ValidationError{Field: "expectedArrivalDate"}
	case in.ExpectedArrivalDate.Before(in.DepartureDate):
		return &domainErrors.ValidationError{Field: "expectedArrivalDate"}
	}
	for _, id := range in.OrderIDs {
		if id == "" {
			return &domainErrors.ValidationError{Field: "orderIds"}
		}
	}
	return nil
}
