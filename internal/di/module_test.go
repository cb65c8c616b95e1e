package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/cripslk/dispatch/internal/adapter/events"
	"github.com/cripslk/dispatch/internal/adapter/fleet"
	"github.com/cripslk/dispatch/internal/app"
	"github.com/cripslk/dispatch/internal/config"
	"github.com/cripslk/dispatch/internal/domain/repository"
	"github.com/cripslk/dispatch/internal/storage/postgres"
	"github.com/cripslk/dispatch/internal/test"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:      ":0",
		DatabaseURI:     "postgres://stub",
		FleetAddress:    "http://localhost",
		TokenSecret:     "secret",
		DriverCacheTTL:  time.Minute,
		ShutdownTimeout: time.Millisecond,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	staffRepo := test.NewStaffRepositoryStub()
	orderRepo := test.NewOrderRepositoryStub()
	scheduleRepo := test.NewScheduleRepositoryStub()
	shipmentRepo := test.NewShipmentRepositoryStub()

	var facade *app.DispatchFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.StaffRepository(staffRepo)),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(repository.ScheduleRepository(scheduleRepo)),
			fx.Replace(repository.ShipmentRepository(shipmentRepo)),
			fx.Replace(fleet.Client(test.DriverRegistryStub{})),
			fx.Replace(events.Publisher(&test.EventPublisherStub{})),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected dispatch facade instance")
	}
}
