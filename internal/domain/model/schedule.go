package model

import "time"

// ScheduleStatus describes the lifecycle of a planned dispatch.
type ScheduleStatus string

const (
	ScheduleStatusScheduled  ScheduleStatus = "Scheduled"
	ScheduleStatusInProgress ScheduleStatus = "In Progress"
	ScheduleStatusCompleted  ScheduleStatus = "Completed"
	ScheduleStatusDelayed    ScheduleStatus = "Delayed"
)

// KnownScheduleStatus reports whether the value is a valid schedule status.
func KnownScheduleStatus(status ScheduleStatus) bool {
	switch status {
	case ScheduleStatusScheduled, ScheduleStatusInProgress, ScheduleStatusCompleted, ScheduleStatusDelayed:
		return true
	}
	return false
}

// DerivedOrderStatus maps a schedule status onto the status its orders
// should carry: Completed delivers them, everything else (including
// Delayed, which stays a schedule-level signal) keeps them Shipped.
func (s ScheduleStatus) DerivedOrderStatus() OrderStatus {
	if s == ScheduleStatusCompleted {
		return OrderStatusDelivered
	}
	return OrderStatusShipped
}

// Schedule is a planned grouping of confirmed orders dispatched
// together before physical movement begins. Once promoted to a
// Shipment the record is removed.
type Schedule struct {
	Code                string
	OrderIDs            []string
	VehicleID           string
	DriverID            string
	DepartureDate       time.Time
	ExpectedArrivalDate time.Time
	ArrivalDate         *time.Time
	Location            *string
	Status              ScheduleStatus
	DelayReason         *string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
