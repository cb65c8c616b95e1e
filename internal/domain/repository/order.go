package repository

import (
	"context"

	"github.com/cripslk/dispatch/internal/domain/model"
)

// OrderFilter narrows order listings. Nil/empty fields mean "any".
type OrderFilter struct {
	Status *model.OrderStatus
	IDs    []string
}

// OrderRepository describes persistence operations with orders.
// AppendStatus must write the status column and the history row
// atomically and reject transitions the order's lifecycle forbids.
type OrderRepository interface {
	Create(ctx context.Context, kind model.OrderKind, items []model.OrderItem) (*model.Order, error)
	Get(ctx context.Context, id string) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, error)
	AppendStatus(ctx context.Context, id string, status model.OrderStatus, actor string) error
	SetShipmentCode(ctx context.Context, id string, code *string) error
	SetLocation(ctx context.Context, id string, location string) error
}
