package dto

import "time"

// CreateScheduleRequest plans a dispatch of confirmed orders.
type CreateScheduleRequest struct {
	OrderIDs            []string  `json:"orderIds"`
	VehicleID           string    `json:"vehicleId"`
	DriverID            string    `json:"driverId"`
	DepartureDate       time.Time `json:"departureDate"`
	ExpectedArrivalDate time.Time `json:"expectedArrivalDate"`
	Location            string    `json:"location"`
}

// UpdateScheduleRequest patches a schedule; only supplied fields change.
type UpdateScheduleRequest struct {
	Status      *string    `json:"status"`
	Location    *string    `json:"location"`
	ArrivalDate *time.Time `json:"arrivalDate"`
	DelayReason *string    `json:"delayReason"`
}

// CompleteScheduleRequest promotes a schedule into a shipment.
type CompleteScheduleRequest struct {
	ExpectedArrivalDate *time.Time `json:"expectedArrivalDate"`
}

// OrderSummary is the abbreviated order view embedded in schedule listings.
type OrderSummary struct {
	ID         string  `json:"id"`
	Kind       string  `json:"kind"`
	Status     string  `json:"status"`
	ShipmentID *string `json:"shipmentId"`
}

// ScheduleResponse describes a schedule on the wire.
type ScheduleResponse struct {
	Code                string         `json:"code"`
	OrderIDs            []string       `json:"orderIds"`
	Orders              []OrderSummary `json:"orders,omitempty"`
	VehicleID           string         `json:"vehicleId"`
	DriverID            string         `json:"driverId"`
	DepartureDate       time.Time      `json:"departureDate"`
	ExpectedArrivalDate time.Time      `json:"expectedArrivalDate"`
	ArrivalDate         *time.Time     `json:"arrivalDate,omitempty"`
	Location            *string        `json:"location,omitempty"`
	Status              string         `json:"status"`
	DelayReason         *string        `json:"delayReason,omitempty"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`
}
