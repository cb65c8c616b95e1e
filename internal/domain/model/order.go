package model

import "time"

// OrderKind distinguishes customer sales orders from supplier
// stock-replenishment orders. The two kinds share one status spelling
// but keep separate lifecycles.
type OrderKind string

const (
	OrderKindCustomer OrderKind = "customer"
	OrderKindStock    OrderKind = "stock"
)

// Valid reports whether the kind is one of the known order kinds.
func (k OrderKind) Valid() bool {
	return k == OrderKindCustomer || k == OrderKindStock
}

// OrderStatus describes an order lifecycle stage.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusConfirmed OrderStatus = "Confirmed"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCompleted OrderStatus = "Completed"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// OrderItem is a single line of an order.
type OrderItem struct {
	ItemID    string  `json:"item_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

// StatusEntry is one append-only record of an order status change.
type StatusEntry struct {
	Status     OrderStatus
	Actor      string
	RecordedAt time.Time
}

// Order describes a customer purchase or stock-replenishment request.
// History is loaded on single-order reads; the invariant is that its
// last entry always matches Status.
type Order struct {
	ID           string
	Kind         OrderKind
	Items        []OrderItem
	Status       OrderStatus
	History      []StatusEntry
	ShipmentCode *string
	Location     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Shipped orders may step back to Confirmed when their schedule is
// deleted; self-transitions are allowed because schedule updates
// re-derive the same order status.
var customerTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusShipped, OrderStatusDelivered, OrderStatusConfirmed},
	OrderStatusDelivered: {OrderStatusDelivered, OrderStatusCompleted},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// Stock orders never reach Completed.
var stockTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusShipped, OrderStatusDelivered, OrderStatusConfirmed},
	OrderStatusDelivered: {OrderStatusDelivered},
	OrderStatusCancelled: {},
}

func transitionsFor(kind OrderKind) map[OrderStatus][]OrderStatus {
	if kind == OrderKindStock {
		return stockTransitions
	}
	return customerTransitions
}

// KnownOrderStatus reports whether the status belongs to the lifecycle
// of the given order kind.
func KnownOrderStatus(kind OrderKind, status OrderStatus) bool {
	_, ok := transitionsFor(kind)[status]
	return ok
}

// CanTransition reports whether an order of the given kind may move
// from one status to another.
func CanTransition(kind OrderKind, from, to OrderStatus) bool {
	for _, next := range transitionsFor(kind)[from] {
		if next == to {
			return true
		}
	}
	return false
}
