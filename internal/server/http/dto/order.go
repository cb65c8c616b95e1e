package dto

import "time"

// OrderItemPayload is a single order line on the wire.
type OrderItemPayload struct {
	ItemID    string  `json:"itemId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// CreateOrderRequest registers a new pending order.
type CreateOrderRequest struct {
	Kind  string             `json:"kind"`
	Items []OrderItemPayload `json:"items"`
}

// UpdateOrderRequest is the collaborator update contract: only
// supplied fields change. An empty shipmentId clears the reference.
type UpdateOrderRequest struct {
	Status     *string `json:"status"`
	Location   *string `json:"location"`
	ShipmentID *string `json:"shipmentId"`
}

// StatusEntryResponse is one status-history record.
type StatusEntryResponse struct {
	Status     string    `json:"status"`
	Actor      string    `json:"updatedBy,omitempty"`
	RecordedAt time.Time `json:"timestamp"`
}

// OrderResponse describes an order on the wire.
type OrderResponse struct {
	ID            string                `json:"id"`
	Kind          string                `json:"kind"`
	Items         []OrderItemPayload    `json:"items"`
	Status        string                `json:"status"`
	StatusHistory []StatusEntryResponse `json:"statusHistory,omitempty"`
	ShipmentID    *string               `json:"shipmentId"`
	Location      string                `json:"location,omitempty"`
	CreatedAt     time.Time             `json:"createdAt"`
	UpdatedAt     time.Time             `json:"updatedAt"`
}
