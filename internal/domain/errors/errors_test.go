package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Field: "vehicleId"}
	if err.Error() != `invalid or missing field "vehicleId"` {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestInvalidOrdersErrorMessage(t *testing.T) {
	err := &InvalidOrdersError{IDs: []string{"ORD001", "ORD002"}}
	if err.Error() != "orders not in required status: ORD001, ORD002" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestInvalidTransitionErrorMessage(t *testing.T) {
	err := &InvalidTransitionError{OrderID: "ORD001", From: "Pending", To: "Delivered"}
	if err.Error() != "order ORD001: illegal status transition Pending -> Delivered" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestDownstreamErrorUnwraps(t *testing.T) {
	cause := errors.New("connection reset")
	err := &DownstreamError{OrderID: "ORD001", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to unwrap")
	}

	wrapped := fmt.Errorf("cascade: %w", err)
	var downstream *DownstreamError
	if !errors.As(wrapped, &downstream) {
		t.Fatal("expected errors.As to find DownstreamError")
	}
	if downstream.OrderID != "ORD001" {
		t.Fatalf("unexpected order id %s", downstream.OrderID)
	}
}
