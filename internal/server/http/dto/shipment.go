package dto

import "time"

// CreateShipmentRequest records a shipment directly.
type CreateShipmentRequest struct {
	OrderIDs            []string  `json:"orderIds"`
	VehicleID           string    `json:"vehicleId"`
	DriverID            string    `json:"driverId"`
	DepartureDate       time.Time `json:"departureDate"`
	ExpectedArrivalDate time.Time `json:"expectedArrivalDate"`
}

// UpdateShipmentStatusRequest advances a shipment's progress.
type UpdateShipmentStatusRequest struct {
	Status      string     `json:"status"`
	ArrivalDate *time.Time `json:"arrivalDate"`
	DelayReason *string    `json:"delayReason"`
}

// ShipmentResponse describes a shipment on the wire.
type ShipmentResponse struct {
	Code                string     `json:"code"`
	OrderIDs            []string   `json:"orderIds"`
	VehicleID           string     `json:"vehicleId"`
	DriverID            string     `json:"driverId"`
	DepartureDate       time.Time  `json:"departureDate"`
	ExpectedArrivalDate time.Time  `json:"expectedArrivalDate"`
	ArrivalDate         *time.Time `json:"arrivalDate,omitempty"`
	Status              string     `json:"status"`
	DelayReason         *string    `json:"delayReason,omitempty"`
	LastUpdated         time.Time  `json:"lastUpdated"`
}
