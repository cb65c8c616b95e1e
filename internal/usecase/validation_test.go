package usecase

import (
	"errors"
	"testing"
	"time"

	domainErrors "github.com/cripslk/dispatch/internal/domain/errors"
	"github.com/cripslk/dispatch/internal/domain/model"
)

func TestValidateItemsFieldOrder(t *testing.T) {
	err := validateItems([]model.OrderItem{{ItemID: "", Quantity: 0, UnitPrice: -1}})
	var validation *domainErrors.ValidationError
	if !errors.As(err, &validation) || validation.Field != "items.item_id" {
		t.Fatalf("expected first failing field to win, got %v", err)
	}
}

func TestValidateItemsAcceptsValid(t *testing.T) {
	err := validateItems([]model.OrderItem{{ItemID: "java-fern", Name: "Java fern", Quantity: 10, UnitPrice: 0}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateScheduleInputArrivalOrdering(t *testing.T) {
	departure := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	err := validateScheduleInput(CreateScheduleInput{
		OrderIDs:            []string{"ORD001"},
		VehicleID:           "VH-1",
		DriverID:            "DRV-1",
		DepartureDate:       departure,
		ExpectedArrivalDate: departure.Add(-time.Minute),
	})
	var validation *domainErrors.ValidationError
	if !errors.As(err, &validation) || validation.Field != "expectedArrivalDate" {
		t.Fatalf("expected expectedArrivalDate error, got %v", err)
	}
}
