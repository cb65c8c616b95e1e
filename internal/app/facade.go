package app

import (
	"context"
	"time"

	"github.com/cripslk/dispatch/internal/domain/model"
	"github.com/cripslk/dispatch/internal/domain/repository"
	"github.com/cripslk/dispatch/internal/usecase"
)

// DispatchFacade aggregates the use cases exposed over HTTP.
type DispatchFacade struct {
	auth     *usecase.AuthUseCase
	orders   *usecase.OrderUseCase
	dispatch *usecase.DispatchUseCase
}

// NewDispatchFacade constructs DispatchFacade.
func NewDispatchFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, dispatch *usecase.DispatchUseCase) *DispatchFacade {
	return &DispatchFacade{auth: auth, orders: orders, dispatch: dispatch}
}

func (f *DispatchFacade) Register(ctx context.Context, login, password string, role model.StaffRole) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password, role)
	return token, err
}

func (f *DispatchFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *DispatchFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *DispatchFacade) Staff(ctx context.Context, id int64) (*model.Staff, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *DispatchFacade) CreateOrder(ctx context.Context, kind model.OrderKind, items []model.OrderItem) (*model.Order, error) {
	return f.orders.Create(ctx, kind, items)
}

func (f *DispatchFacade) Order(ctx context.Context, id string) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *DispatchFacade) Orders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	return f.orders.List(ctx, filter)
}

func (f *DispatchFacade) UpdateOrder(ctx context.Context, id string, input usecase.OrderUpdateInput, actor string) (*model.Order, error) {
	return f.orders.Update(ctx, id, input, actor)
}

func (f *DispatchFacade) CreateSchedule(ctx context.Context, input usecase.CreateScheduleInput) (*model.Schedule, error) {
	return f.dispatch.CreateSchedule(ctx, input)
}

func (f *DispatchFacade) Schedules(ctx context.Context) ([]usecase.ScheduleWithOrders, error) {
	return f.dispatch.ListSchedules(ctx)
}

func (f *DispatchFacade) UpdateSchedule(ctx context.Context, code string, input usecase.ScheduleUpdateInput) (*usecase.ScheduleUpdateResult, error) {
	return f.dispatch.UpdateSchedule(ctx, code, input)
}

func (f *DispatchFacade) DeleteSchedule(ctx context.Context, code string) error {
	return f.dispatch.DeleteSchedule(ctx, code)
}

func (f *DispatchFacade) PromoteSchedule(ctx context.Context, code string, expectedArrival *time.Time) (*model.Shipment, error) {
	return f.dispatch.MoveToShipment(ctx, code, expectedArrival)
}

func (f *DispatchFacade) CreateShipment(ctx context.Context, input usecase.CreateShipmentInput) (*model.Shipment, error) {
	return f.dispatch.CreateShipment(ctx, input)
}

func (f *DispatchFacade) Shipments(ctx context.Context) ([]model.Shipment, error) {
	return f.dispatch.ListShipments(ctx)
}

func (f *DispatchFacade) Shipment(ctx context.Context, code string) (*model.Shipment, error) {
	return f.dispatch.GetShipment(ctx, code)
}

func (f *DispatchFacade) UpdateShipmentStatus(ctx context.Context, code string, input usecase.ShipmentStatusInput) (*model.Shipment, error) {
	return f.dispatch.UpdateShipmentStatus(ctx, code, input)
}

func (f *DispatchFacade) DeleteShipment(ctx context.Context, code string) error {
	return f.dispatch.DeleteShipment(ctx, code)
}
