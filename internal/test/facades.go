package test

import (
	"context"
	"time"

	"github.com/cripslk/dispatch/internal/domain/model"
	"github.com/cripslk/dispatch/internal/domain/repository"
	"github.com/cripslk/dispatch/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, model.StaffRole) (string, error)
	AuthenticateFn func(context.Context, string, string) (string, error)
	ParseFn        func(string) (int64, error)
}

// Register returns token for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string, role model.StaffRole) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password, role)
	}
	return "token", nil
}

// Authenticate returns token for successful authentication scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken returns stored identifier for authenticated staff.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn func(context.Context, model.OrderKind, []model.OrderItem) (*model.Order, error)
	GetFn    func(context.Context, string) (*model.Order, error)
	ListFn   func(context.Context, repository.OrderFilter) ([]model.Order, error)
	UpdateFn func(context.Context, string, usecase.OrderUpdateInput, string) (*model.Order, error)
}

// CreateOrder delegates to provided function or returns a default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, kind model.OrderKind, items []model.OrderItem) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, kind, items)
	}
	return &model.Order{ID: "ORD001", Kind: kind, Items: items, Status: model.OrderStatusPending}, nil
}

// Order returns configured order for given identifier.
func (s OrderFacadeStub) Order(ctx context.Context, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Order{ID: id, Kind: model.OrderKindCustomer, Status: model.OrderStatusPending}, nil
}

// Orders returns predefined order listings.
func (s OrderFacadeStub) Orders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return []model.Order{{ID: "ORD001", Kind: model.OrderKindCustomer, Status: model.OrderStatusPending}}, nil
}

// UpdateOrder executes configured update handler.
func (s OrderFacadeStub) UpdateOrder(ctx context.Context, id string, input usecase.OrderUpdateInput, actor string) (*model.Order, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, input, actor)
	}
	return &model.Order{ID: id, Kind: model.OrderKindCustomer, Status: model.OrderStatusConfirmed}, nil
}

// ScheduleFacadeStub simulates schedule operations for handler tests.
type ScheduleFacadeStub struct {
	CreateFn  func(context.Context, usecase.CreateScheduleInput) (*model.Schedule, error)
	ListFn    func(context.Context) ([]usecase.ScheduleWithOrders, error)
	UpdateFn  func(context.Context, string, usecase.ScheduleUpdateInput) (*usecase.ScheduleUpdateResult, error)
	DeleteFn  func(context.Context, string) error
	PromoteFn func(context.Context, string, *time.Time) (*model.Shipment, error)
}

// CreateSchedule returns configured schedule or a default one.
func (s ScheduleFacadeStub) CreateSchedule(ctx context.Context, input usecase.CreateScheduleInput) (*model.Schedule, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, input)
	}
	return &model.Schedule{
		Code:                "SHP001",
		OrderIDs:            input.OrderIDs,
		VehicleID:           input.VehicleID,
		DriverID:            input.DriverID,
		DepartureDate:       input.DepartureDate,
		ExpectedArrivalDate: input.ExpectedArrivalDate,
		Status:              model.ScheduleStatusScheduled,
	}, nil
}

// Schedules returns preconfigured listings.
func (s ScheduleFacadeStub) Schedules(ctx context.Context) ([]usecase.ScheduleWithOrders, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []usecase.ScheduleWithOrders{{Schedule: model.Schedule{Code: "SHP001", Status: model.ScheduleStatusScheduled}}}, nil
}

// UpdateSchedule executes configured update handler.
func (s ScheduleFacadeStub) UpdateSchedule(ctx context.Context, code string, input usecase.ScheduleUpdateInput) (*usecase.ScheduleUpdateResult, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, code, input)
	}
	return &usecase.ScheduleUpdateResult{Schedule: &model.Schedule{Code: code, Status: model.ScheduleStatusScheduled}}, nil
}

// DeleteSchedule executes configured delete handler.
func (s ScheduleFacadeStub) DeleteSchedule(ctx context.Context, code string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, code)
	}
	return nil
}

// PromoteSchedule converts the schedule into a shipment for tests.
func (s ScheduleFacadeStub) PromoteSchedule(ctx context.Context, code string, expectedArrival *time.Time) (*model.Shipment, error) {
	if s.PromoteFn != nil {
		return s.PromoteFn(ctx, code, expectedArrival)
	}
	return &model.Shipment{Code: code, Status: model.ShipmentStatusInTransit}, nil
}

// ShipmentFacadeStub simulates shipment operations for handler tests.
type ShipmentFacadeStub struct {
	CreateFn       func(context.Context, usecase.CreateShipmentInput) (*model.Shipment, error)
	ListFn         func(context.Context) ([]model.Shipment, error)
	GetFn          func(context.Context, string) (*model.Shipment, error)
	UpdateStatusFn func(context.Context, string, usecase.ShipmentStatusInput) (*model.Shipment, error)
	DeleteFn       func(context.Context, string) error
}

// CreateShipment returns configured shipment or a default scheduled one.
func (s ShipmentFacadeStub) CreateShipment(ctx context.Context, input usecase.CreateShipmentInput) (*model.Shipment, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, input)
	}
	return &model.Shipment{
		Code:                "SHP001",
		OrderIDs:            input.OrderIDs,
		VehicleID:           input.VehicleID,
		DriverID:            input.DriverID,
		DepartureDate:       input.DepartureDate,
		ExpectedArrivalDate: input.ExpectedArrivalDate,
		Status:              model.ShipmentStatusScheduled,
	}, nil
}

// Shipments returns preconfigured listings.
func (s ShipmentFacadeStub) Shipments(ctx context.Context) ([]model.Shipment, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	return []model.Shipment{{Code: "SHP001", Status: model.ShipmentStatusScheduled}}, nil
}

// Shipment returns stored shipment for given code.
func (s ShipmentFacadeStub) Shipment(ctx context.Context, code string) (*model.Shipment, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, code)
	}
	return &model.Shipment{Code: code, Status: model.ShipmentStatusInTransit}, nil
}

// UpdateShipmentStatus executes configured update handler.
func (s ShipmentFacadeStub) UpdateShipmentStatus(ctx context.Context, code string, input usecase.ShipmentStatusInput) (*model.Shipment, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, code, input)
	}
	return &model.Shipment{Code: code, Status: input.Status}, nil
}

// DeleteShipment executes configured delete handler.
func (s ShipmentFacadeStub) DeleteShipment(ctx context.Context, code string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, code)
	}
	return nil
}

// DispatchFacadeStub aggregates facade dependencies for HTTP layer tests.
type DispatchFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	ScheduleFacadeStub
	ShipmentFacadeStub
}

// DriverRegistryStub resolves drivers without the fleet service.
type DriverRegistryStub struct {
	DriverFn func(context.Context, string) (*model.Driver, error)
	Result   *model.Driver
	Err      error
}

// Driver returns configured driver or an available default.
func (s DriverRegistryStub) Driver(ctx context.Context, id string) (*model.Driver, error) {
	if s.DriverFn != nil {
		return s.DriverFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Result != nil {
		return s.Result, nil
	}
	return &model.Driver{ID: id, Name: "driver", Available: true}, nil
}

// PublishedEvent records a single Publish invocation.
type PublishedEvent struct {
	Key     string
	Payload any
}

// EventPublisherStub records published notifications.
type EventPublisherStub struct {
	PublishFn func(context.Context, string, any) error
	Events    []PublishedEvent
	Err       error
}

// Publish stores the event or delegates to the override.
func (s *EventPublisherStub) Publish(ctx context.Context, routingKey string, payload any) error {
	if s.PublishFn != nil {
		return s.PublishFn(ctx, routingKey, payload)
	}
	if s.Err != nil {
		return s.Err
	}
	s.Events = append(s.Events, PublishedEvent{Key: routingKey, Payload: payload})
	return nil
}
