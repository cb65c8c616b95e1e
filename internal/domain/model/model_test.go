package model

import "testing"

func TestOrderKindValid(t *testing.T) {
	if !OrderKindCustomer.Valid() || !OrderKindStock.Valid() {
		t.Fatal("known kinds must be valid")
	}
	if OrderKind("wholesale").Valid() {
		t.Fatal("unknown kind must be invalid")
	}
}

func TestCustomerOrderTransitions(t *testing.T) {
	cases := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusDelivered, false},
		{OrderStatusConfirmed, OrderStatusShipped, true},
		{OrderStatusConfirmed, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusCompleted, false},
		{OrderStatusShipped, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusConfirmed, true},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusCompleted, true},
		{OrderStatusDelivered, OrderStatusDelivered, true},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusCompleted, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusConfirmed, false},
	}

	for _, tc := range cases {
		if got := CanTransition(OrderKindCustomer, tc.from, tc.to); got != tc.allowed {
			t.Errorf("customer %s -> %s: expected %v, got %v", tc.from, tc.to, tc.allowed, got)
		}
	}
}

func TestStockOrdersNeverComplete(t *testing.T) {
	if CanTransition(OrderKindStock, OrderStatusDelivered, OrderStatusCompleted) {
		t.Fatal("stock orders must not reach Completed")
	}
	if !CanTransition(OrderKindStock, OrderStatusDelivered, OrderStatusDelivered) {
		t.Fatal("stock orders may repeat Delivered")
	}
	if KnownOrderStatus(OrderKindStock, OrderStatusCompleted) {
		t.Fatal("Completed is not a stock order status")
	}
}

func TestKnownOrderStatusRejectsDelayed(t *testing.T) {
	// Delays live on schedules and shipments, never on an order.
	if KnownOrderStatus(OrderKindCustomer, OrderStatus("Delayed")) {
		t.Fatal("Delayed must not be an order status")
	}
}

func TestKnownScheduleStatus(t *testing.T) {
	for _, status := range []ScheduleStatus{ScheduleStatusScheduled, ScheduleStatusInProgress, ScheduleStatusCompleted, ScheduleStatusDelayed} {
		if !KnownScheduleStatus(status) {
			t.Errorf("expected %s to be known", status)
		}
	}
	if KnownScheduleStatus("In Transit") {
		t.Fatal("In Transit belongs to shipments, not schedules")
	}
}

func TestKnownShipmentStatus(t *testing.T) {
	for _, status := range []ShipmentStatus{ShipmentStatusScheduled, ShipmentStatusInTransit, ShipmentStatusDelivered, ShipmentStatusDelayed} {
		if !KnownShipmentStatus(status) {
			t.Errorf("expected %s to be known", status)
		}
	}
	if KnownShipmentStatus("In Progress") {
		t.Fatal("In Progress belongs to schedules, not shipments")
	}
}

func TestDerivedOrderStatus(t *testing.T) {
	if ScheduleStatusCompleted.DerivedOrderStatus() != OrderStatusDelivered {
		t.Fatal("completed schedules deliver their orders")
	}
	for _, status := range []ScheduleStatus{ScheduleStatusScheduled, ScheduleStatusInProgress, ScheduleStatusDelayed} {
		if status.DerivedOrderStatus() != OrderStatusShipped {
			t.Errorf("%s must keep orders Shipped", status)
		}
	}
}

func TestFormatCode(t *testing.T) {
	if got := FormatCode(ShipmentCodePrefix, 1); got != "SHP001" {
		t.Fatalf("unexpected code %s", got)
	}
	if got := FormatCode(OrderCodePrefix, 42); got != "ORD042" {
		t.Fatalf("unexpected code %s", got)
	}
	if got := FormatCode(ShipmentCodePrefix, 1234); got != "SHP1234" {
		t.Fatalf("expected wide codes past 999, got %s", got)
	}
}

func TestParseCodeSuffix(t *testing.T) {
	if got := ParseCodeSuffix(ShipmentCodePrefix, "SHP007"); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if got := ParseCodeSuffix(ShipmentCodePrefix, "ORD007"); got != 0 {
		t.Fatalf("expected 0 for wrong prefix, got %d", got)
	}
	if got := ParseCodeSuffix(ShipmentCodePrefix, "SHPxyz"); got != 0 {
		t.Fatalf("expected 0 for garbage suffix, got %d", got)
	}
}
