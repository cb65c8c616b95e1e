package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	domainErrors "github.com/cripslk/dispatch/internal/domain/errors"
	"github.com/cripslk/dispatch/internal/domain/model"
	"github.com/cripslk/dispatch/internal/domain/repository"
	testhelpers "github.com/cripslk/dispatch/internal/test"
	"github.com/cripslk/dispatch/internal/usecase"
)

type facadeFixture struct {
	facade    *DispatchFacade
	staff     *testhelpers.StaffRepositoryStub
	orders    *testhelpers.OrderRepositoryStub
	schedules *testhelpers.ScheduleRepositoryStub
	shipments *testhelpers.ShipmentRepositoryStub
}

func newFacadeFixture() *facadeFixture {
	staffRepo := testhelpers.NewStaffRepositoryStub()
	strategy := testhelpers.StrategyStub{ParseFn: func(string) (int64, error) { return 99, nil }}
	authUC := usecase.NewAuthUseCase(staffRepo, testhelpers.HasherStub{}, strategy)

	orderRepo := testhelpers.NewOrderRepositoryStub()
	orderUC := usecase.NewOrderUseCase(orderRepo)

	scheduleRepo := testhelpers.NewScheduleRepositoryStub()
	shipmentRepo := testhelpers.NewShipmentRepositoryStub()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	dispatchUC := usecase.NewDispatchUseCase(orderRepo, scheduleRepo, shipmentRepo, testhelpers.DriverRegistryStub{}, &testhelpers.EventPublisherStub{}, logger)

	return &facadeFixture{
		facade:    NewDispatchFacade(authUC, orderUC, dispatchUC),
		staff:     staffRepo,
		orders:    orderRepo,
		schedules: scheduleRepo,
		shipments: shipmentRepo,
	}
}

func TestDispatchFacadeAuth(t *testing.T) {
	f := newFacadeFixture()
	token, err := f.facade.Register(context.Background(), "dispatcher", "pass", model.StaffRoleTransportManager)
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	stored, err := f.staff.GetByLogin(context.Background(), "dispatcher")
	if err != nil {
		t.Fatalf("staff not stored: %v", err)
	}
	if stored.Role != model.StaffRoleTransportManager {
		t.Fatalf("unexpected stored role %q", stored.Role)
	}

	token, err = f.facade.Authenticate(context.Background(), "dispatcher", "pass")
	if err != nil {
		t.Fatalf("authenticate returned error: %v", err)
	}
	if token != "token" {
		t.Fatalf("unexpected token %q", token)
	}

	id, err := f.facade.ParseToken("anything")
	if err != nil {
		t.Fatalf("parse token returned error: %v", err)
	}
	if id != 99 {
		t.Fatalf("unexpected staff id %d", id)
	}

	account, err := f.facade.Staff(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("staff lookup returned error: %v", err)
	}
	if account.Login != "dispatcher" {
		t.Fatalf("unexpected login %q", account.Login)
	}
}

func TestDispatchFacadeOrders(t *testing.T) {
	f := newFacadeFixture()

	order, err := f.facade.CreateOrder(context.Background(), model.OrderKindCustomer, []model.OrderItem{{ItemID: "anubias", Name: "Anubias nana", Quantity: 20}})
	if err != nil {
		t.Fatalf("create order returned error: %v", err)
	}
	if order.ID != "ORD001" || order.Status != model.OrderStatusPending {
		t.Fatalf("unexpected order %+v", order)
	}

	fetched, err := f.facade.Order(context.Background(), "ORD001")
	if err != nil {
		t.Fatalf("get order returned error: %v", err)
	}
	if fetched.ID != "ORD001" {
		t.Fatalf("unexpected order id %q", fetched.ID)
	}

	status := model.OrderStatusConfirmed
	updated, err := f.facade.UpdateOrder(context.Background(), "ORD001", usecase.OrderUpdateInput{Status: &status}, "staff:7")
	if err != nil {
		t.Fatalf("update order returned error: %v", err)
	}
	if updated.Status != model.OrderStatusConfirmed {
		t.Fatalf("unexpected status %s", updated.Status)
	}

	listed, err := f.facade.Orders(context.Background(), repository.OrderFilter{Status: &status})
	if err != nil {
		t.Fatalf("list orders returned error: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected one confirmed order, got %d", len(listed))
	}
}

func TestDispatchFacadeScheduleLifecycle(t *testing.T) {
	f := newFacadeFixture()
	f.orders.Seed(model.Order{ID: "ORD001", Kind: model.OrderKindCustomer, Status: model.OrderStatusConfirmed})

	departure := time.Date(2026, 4, 1, 6, 0, 0, 0, time.UTC)
	schedule, err := f.facade.CreateSchedule(context.Background(), usecase.CreateScheduleInput{
		OrderIDs:            []string{"ORD001"},
		VehicleID:           "VH-2",
		DriverID:            "DRV-1",
		DepartureDate:       departure,
		ExpectedArrivalDate: departure.Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create schedule returned error: %v", err)
	}
	if schedule.Code != "SHP001" {
		t.Fatalf("unexpected schedule code %q", schedule.Code)
	}

	schedules, err := f.facade.Schedules(context.Background())
	if err != nil {
		t.Fatalf("list schedules returned error: %v", err)
	}
	if len(schedules) != 1 || len(schedules[0].Orders) != 1 {
		t.Fatalf("unexpected schedule listing %+v", schedules)
	}

	location := "Colombo port"
	result, err := f.facade.UpdateSchedule(context.Background(), "SHP001", usecase.ScheduleUpdateInput{Location: &location})
	if err != nil {
		t.Fatalf("update schedule returned error: %v", err)
	}
	if result.Schedule == nil || result.Schedule.Location == nil || *result.Schedule.Location != location {
		t.Fatalf("unexpected update result %+v", result)
	}

	shipment, err := f.facade.PromoteSchedule(context.Background(), "SHP001", nil)
	if err != nil {
		t.Fatalf("promote schedule returned error: %v", err)
	}
	if shipment.Code != "SHP001" {
		t.Fatalf("expected code to survive promotion, got %q", shipment.Code)
	}
	if _, err := f.schedules.Get(context.Background(), "SHP001"); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected schedule to be removed, got %v", err)
	}
}

func TestDispatchFacadeShipments(t *testing.T) {
	f := newFacadeFixture()
	f.orders.Seed(model.Order{ID: "ORD001", Kind: model.OrderKindCustomer, Status: model.OrderStatusConfirmed})

	departure := time.Date(2026, 4, 1, 6, 0, 0, 0, time.UTC)
	shipment, err := f.facade.CreateShipment(context.Background(), usecase.CreateShipmentInput{
		OrderIDs:            []string{"ORD001"},
		VehicleID:           "VH-2",
		DriverID:            "DRV-1",
		DepartureDate:       departure,
		ExpectedArrivalDate: departure.Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create shipment returned error: %v", err)
	}

	fetched, err := f.facade.Shipment(context.Background(), shipment.Code)
	if err != nil {
		t.Fatalf("get shipment returned error: %v", err)
	}
	if fetched.Code != shipment.Code {
		t.Fatalf("unexpected shipment code %q", fetched.Code)
	}

	listed, err := f.facade.Shipments(context.Background())
	if err != nil {
		t.Fatalf("list shipments returned error: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected one shipment, got %d", len(listed))
	}

	updated, err := f.facade.UpdateShipmentStatus(context.Background(), shipment.Code, usecase.ShipmentStatusInput{Status: model.ShipmentStatusInTransit})
	if err != nil {
		t.Fatalf("update shipment returned error: %v", err)
	}
	if updated.Status != model.ShipmentStatusInTransit {
		t.Fatalf("unexpected shipment status %s", updated.Status)
	}

	if err := f.facade.DeleteShipment(context.Background(), shipment.Code); err != nil {
		t.Fatalf("delete shipment returned error: %v", err)
	}
	if _, err := f.facade.Shipment(context.Background(), shipment.Code); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestDispatchFacadeDeleteScheduleRevertsOrders(t *testing.T) {
	f := newFacadeFixture()
	f.orders.Seed(model.Order{ID: "ORD001", Kind: model.OrderKindCustomer, Status: model.OrderStatusConfirmed})

	departure := time.Date(2026, 4, 1, 6, 0, 0, 0, time.UTC)
	if _, err := f.facade.CreateSchedule(context.Background(), usecase.CreateScheduleInput{
		OrderIDs:            []string{"ORD001"},
		VehicleID:           "VH-2",
		DriverID:            "DRV-1",
		DepartureDate:       departure,
		ExpectedArrivalDate: departure.Add(24 * time.Hour),
	}); err != nil {
		t.Fatalf("create schedule returned error: %v", err)
	}

	if err := f.facade.DeleteSchedule(context.Background(), "SHP001"); err != nil {
		t.Fatalf("delete schedule returned error: %v", err)
	}

	order, err := f.orders.Get(context.Background(), "ORD001")
	if err != nil {
		t.Fatalf("get order returned error: %v", err)
	}
	if order.Status != model.OrderStatusConfirmed {
		t.Fatalf("expected order to revert to Confirmed, got %s", order.Status)
	}
	if order.ShipmentCode != nil {
		t.Fatalf("expected cleared shipment reference, got %v", *order.ShipmentCode)
	}
}
