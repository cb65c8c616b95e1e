package usecase

import (
	"context"

	domainErrors "github.com/cripslk/dispatch/internal/domain/errors"
	"github.com/cripslk/dispatch/internal/domain/model"
	"github.com/cripslk/dispatch/internal/domain/repository"
)

// OrderUseCase encapsulates order lifecycle logic outside the
// synchronizer: creation by the originating flow and the direct
// update contract consumed by back-office screens.
type OrderUseCase struct {
	orders repository.OrderRepository
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository) *OrderUseCase {
	return &OrderUseCase{orders: orders}
}

// OrderUpdateInput is a partial direct update of a single order.
type OrderUpdateInput struct {
	Status        *model.OrderStatus
	Location      *string
	ShipmentCode  *string
	ClearShipment bool
}

// Create registers a new order in Pending status.
func (u *OrderUseCase) Create(ctx context.Context, kind model.OrderKind, items []model.OrderItem) (*model.Order, error) {
	if !kind.Valid() {
		return nil, &domainErrors.ValidationError{Field: "kind"}
	}
	if err := validateItems(items); err != nil {
		return nil, err
	}
	return u.orders.Create(ctx, kind, items)
}

// Get returns a single order with its full status history.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	return u.orders.Get(ctx, id)
}

// List returns orders matching the filter, oldest first.
func (u *OrderUseCase) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	return u.orders.List(ctx, filter)
}

// Update applies the supplied fields one by one. Status changes go
// through the same transition-checked append as synchronizer cascades.
func (u *OrderUseCase) Update(ctx context.Context, id string, input OrderUpdateInput, actor string) (*model.Order, error) {
	if input.Status != nil {
		if err := u.orders.AppendStatus(ctx, id, *input.Status, actor); err != nil {
			return nil, err
		}
	}
	if input.Location != nil {
		if err := u.orders.SetLocation(ctx, id, *input.Location); err != nil {
			return nil, err
		}
	}
	if input.ShipmentCode != nil {
		if err := u.orders.SetShipmentCode(ctx, id, input.ShipmentCode); err != nil {
			return nil, err
		}
	} else if input.ClearShipment {
		if err := u.orders.SetShipmentCode(ctx, id, nil); err != nil {
			return nil, err
		}
	}
	return u.orders.Get(ctx, id)
}
