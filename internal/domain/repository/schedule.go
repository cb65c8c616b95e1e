package repository

import (
	"context"
	"time"

	"github.com/cripslk/dispatch/internal/domain/model"
)

// ScheduleUpdate is a partial update: only non-nil fields change.
type ScheduleUpdate struct {
	Status      *model.ScheduleStatus
	Location    *string
	ArrivalDate *time.Time
	DelayReason *string
}

// ScheduleRepository describes persistence operations with planned
// dispatches. Create assigns the next sequential shipment code.
type ScheduleRepository interface {
	Create(ctx context.Context, schedule *model.Schedule) (*model.Schedule, error)
	Get(ctx context.Context, code string) (*model.Schedule, error)
	List(ctx context.Context) ([]model.Schedule, error)
	Update(ctx context.Context, code string, update ScheduleUpdate) (*model.Schedule, error)
	Delete(ctx context.Context, code string) error
}
