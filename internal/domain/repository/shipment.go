package repository

import (
	"context"
	"time"

	"github.com/cripslk/dispatch/internal/domain/model"
)

// ShipmentUpdate patches a shipment's progress fields.
type ShipmentUpdate struct {
	Status      model.ShipmentStatus
	ArrivalDate *time.Time
	DelayReason *string
}

// ShipmentRepository describes persistence operations with shipments.
// Create generates a code when the shipment carries none; promoted
// schedules keep their original code.
type ShipmentRepository interface {
	Create(ctx context.Context, shipment *model.Shipment) (*model.Shipment, error)
	Get(ctx context.Context, code string) (*model.Shipment, error)
	List(ctx context.Context) ([]model.Shipment, error)
	UpdateStatus(ctx context.Context, code string, update ShipmentUpdate) (*model.Shipment, error)
	Delete(ctx context.Context, code string) error
}
