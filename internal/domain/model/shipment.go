package model

import "time"

// ShipmentStatus describes the lifecycle of a dispatch that has begun
// physically moving. Deliberately distinct from ScheduleStatus.
type ShipmentStatus string

const (
	ShipmentStatusScheduled ShipmentStatus = "Scheduled"
	ShipmentStatusInTransit ShipmentStatus = "In Transit"
	ShipmentStatusDelivered ShipmentStatus = "Delivered"
	ShipmentStatusDelayed   ShipmentStatus = "Delayed"
)

// KnownShipmentStatus reports whether the value is a valid shipment status.
func KnownShipmentStatus(status ShipmentStatus) bool {
	switch status {
	case ShipmentStatusScheduled, ShipmentStatusInTransit, ShipmentStatusDelivered, ShipmentStatusDelayed:
		return true
	}
	return false
}

// Shipment is the physical-movement record. It keeps the code of the
// schedule it was promoted from and carries the order ids so a
// delivered shipment can still reach its orders.
type Shipment struct {
	Code                string
	OrderIDs            []string
	VehicleID           string
	DriverID            string
	DepartureDate       time.Time
	ExpectedArrivalDate time.Time
	ArrivalDate         *time.Time
	Status              ShipmentStatus
	DelayReason         *string
	LastUpdated         time.Time
}
