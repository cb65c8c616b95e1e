package handlers

import (
	"context"
	"time"

	"github.com/cripslk/dispatch/internal/domain/model"
	"github.com/cripslk/dispatch/internal/domain/repository"
	"github.com/cripslk/dispatch/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string, role model.StaffRole) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, kind model.OrderKind, items []model.OrderItem) (*model.Order, error)
	Order(ctx context.Context, id string) (*model.Order, error)
	Orders(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error)
	UpdateOrder(ctx context.Context, id string, input usecase.OrderUpdateInput, actor string) (*model.Order, error)
}

// ScheduleFacade exposes the schedule side of the synchronizer.
type ScheduleFacade interface {
	CreateSchedule(ctx context.Context, input usecase.CreateScheduleInput) (*model.Schedule, error)
	Schedules(ctx context.Context) ([]usecase.ScheduleWithOrders, error)
	UpdateSchedule(ctx context.Context, code string, input usecase.ScheduleUpdateInput) (*usecase.ScheduleUpdateResult, error)
	DeleteSchedule(ctx context.Context, code string) error
	PromoteSchedule(ctx context.Context, code string, expectedArrival *time.Time) (*model.Shipment, error)
}

// ShipmentFacade exposes shipment store operations.
type ShipmentFacade interface {
	CreateShipment(ctx context.Context, input usecase.CreateShipmentInput) (*model.Shipment, error)
	Shipments(ctx context.Context) ([]model.Shipment, error)
	Shipment(ctx context.Context, code string) (*model.Shipment, error)
	UpdateShipmentStatus(ctx context.Context, code string, input usecase.ShipmentStatusInput) (*model.Shipment, error)
	DeleteShipment(ctx context.Context, code string) error
}

// DispatchFacade aggregates the full set of operations used across handlers.
type DispatchFacade interface {
	AuthFacade
	OrderFacade
	ScheduleFacade
	ShipmentFacade
}
