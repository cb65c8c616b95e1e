package usecase

import (
	"context"
	"log/slog"
	"sort"
	"time"

	domainErrors "github.com/cripslk/dispatch/internal/domain/errors"
	"github.com/cripslk/dispatch/internal/domain/model"
	"github.com/cripslk/dispatch/internal/domain/repository"
)

// Cascade writes triggered by the synchronizer are attributed to the
// system rather than the requesting dispatcher.
const systemActor = "system"

// DriverRegistry resolves drivers against the external fleet service.
type DriverRegistry interface {
	Driver(ctx context.Context, id string) (*model.Driver, error)
}

// EventPublisher pushes best-effort dispatch notifications. Failures
// are logged, never propagated: notifications are not part of the
// consistency workflow.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// CreateScheduleInput carries the dispatcher's request to group
// confirmed orders into a planned dispatch.
type CreateScheduleInput struct {
	OrderIDs            []string
	VehicleID           string
	DriverID            string
	DepartureDate       time.Time
	ExpectedArrivalDate time.Time
	Location            string
}

// ScheduleUpdateInput is a partial schedule update.
type ScheduleUpdateInput struct {
	Status      *model.ScheduleStatus
	Location    *string
	ArrivalDate *time.Time
	DelayReason *string
}

// ScheduleUpdateResult either holds the patched schedule or, when the
// update promoted it, the resulting shipment.
type ScheduleUpdateResult struct {
	Schedule *model.Schedule
	Shipment *model.Shipment
}

// ShipmentStatusInput advances a shipment's progress.
type ShipmentStatusInput struct {
	Status      model.ShipmentStatus
	ArrivalDate *time.Time
	DelayReason *string
}

// CreateShipmentInput creates a shipment record directly, bypassing
// the schedule stage.
type CreateShipmentInput struct {
	OrderIDs            []string
	VehicleID           string
	DriverID            string
	DepartureDate       time.Time
	ExpectedArrivalDate time.Time
}

// ScheduleWithOrders pairs a schedule with summaries of the orders it
// references, for listing screens.
type ScheduleWithOrders struct {
	Schedule model.Schedule
	Orders   []model.Order
}

// DispatchUseCase is the status synchronizer: it keeps order, schedule
// and shipment statuses mutually consistent across the dispatch
// workflow. All synchronization is request-triggered and synchronous.
type DispatchUseCase struct {
	orders    repository.OrderRepository
	schedules repository.ScheduleRepository
	shipments repository.ShipmentRepository
	fleet     DriverRegistry
	events    EventPublisher
	logger    *slog.Logger
}

// NewDispatchUseCase constructs the synchronizer.
func NewDispatchUseCase(
	orders repository.OrderRepository,
	schedules repository.ScheduleRepository,
	shipments repository.ShipmentRepository,
	fleet DriverRegistry,
	events EventPublisher,
	logger *slog.Logger,
) *DispatchUseCase {
	return &DispatchUseCase{
		orders:    orders,
		schedules: schedules,
		shipments: shipments,
		fleet:     fleet,
		events:    events,
		logger:    logger,
	}
}

// CreateSchedule validates the request, persists the schedule and
// transitions every referenced order to Shipped with a back reference
// to the new code. If a per-order update fails, the schedule is
// deleted best-effort before the error returns; order updates applied
// before the failing one are not rolled back.
func (u *DispatchUseCase) CreateSchedule(ctx context.Context, input CreateScheduleInput) (*model.Schedule, error) {
	if err := validateScheduleInput(input); err != nil {
		return nil, err
	}

	driver, err := u.fleet.Driver(ctx, input.DriverID)
	if err != nil {
		return nil, err
	}
	if !driver.Available {
		return nil, domainErrors.ErrDriverUnavailable
	}

	confirmed := model.OrderStatusConfirmed
	matched, err := u.orders.List(ctx, repository.OrderFilter{Status: &confirmed, IDs: input.OrderIDs})
	if err != nil {
		return nil, err
	}
	if missing := missingIDs(input.OrderIDs, matched); len(missing) > 0 {
		return nil, &domainErrors.InvalidOrdersError{IDs: missing}
	}

	schedule := &model.Schedule{
		OrderIDs:            input.OrderIDs,
		VehicleID:           input.VehicleID,
		DriverID:            input.DriverID,
		DepartureDate:       input.DepartureDate,
		ExpectedArrivalDate: input.ExpectedArrivalDate,
		Status:              model.ScheduleStatusScheduled,
	}
	if input.Location != "" {
		schedule.Location = &input.Location
	}

	created, err := u.schedules.Create(ctx, schedule)
	if err != nil {
		return nil, err
	}

	code := created.Code
	for _, orderID := range input.OrderIDs {
		if err := u.orders.AppendStatus(ctx, orderID, model.OrderStatusShipped, systemActor); err != nil {
			u.compensateSchedule(ctx, code, orderID, err)
			return nil, &domainErrors.DownstreamError{OrderID: orderID, Err: err}
		}
		if err := u.orders.SetShipmentCode(ctx, orderID, &code); err != nil {
			u.compensateSchedule(ctx, code, orderID, err)
			return nil, &domainErrors.DownstreamError{OrderID: orderID, Err: err}
		}
	}

	u.notify(ctx, "schedule.created", scheduleEvent(created))
	return created, nil
}

// compensateSchedule removes a schedule whose order cascade failed so
// no schedule exists referencing orders that were never transitioned.
func (u *DispatchUseCase) compensateSchedule(ctx context.Context, code, orderID string, cause error) {
	u.logger.Error("schedule cascade failed, removing schedule",
		slog.String("code", code),
		slog.String("order", orderID),
		slog.String("error", cause.Error()),
	)
	if err := u.schedules.Delete(ctx, code); err != nil {
		u.logger.Error("schedule compensation failed, manual reconciliation required",
			slog.String("code", code),
			slog.String("error", err.Error()),
		)
	}
}

// ListSchedules returns all schedules enriched with summaries of the
// orders they reference.
func (u *DispatchUseCase) ListSchedules(ctx context.Context) ([]ScheduleWithOrders, error) {
	schedules, err := u.schedules.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(schedules) == 0 {
		return nil, nil
	}

	seen := make(map[string]struct{})
	var ids []string
	for _, schedule := range schedules {
		for _, id := range schedule.OrderIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	var byID map[string]model.Order
	if len(ids) > 0 {
		orders, err := u.orders.List(ctx, repository.OrderFilter{IDs: ids})
		if err != nil {
			return nil, err
		}
		byID = make(map[string]model.Order, len(orders))
		for _, order := range orders {
			byID[order.ID] = order
		}
	}

	result := make([]ScheduleWithOrders, 0, len(schedules))
	for _, schedule := range schedules {
		entry := ScheduleWithOrders{Schedule: schedule}
		for _, id := range schedule.OrderIDs {
			if order, ok := byID[id]; ok {
				entry.Orders = append(entry.Orders, order)
			}
		}
		result = append(result, entry)
	}
	return result, nil
}

// GetSchedule loads a single schedule by code.
func (u *DispatchUseCase) GetSchedule(ctx context.Context, code string) (*model.Schedule, error) {
	return u.schedules.Get(ctx, code)
}

// UpdateSchedule patches the supplied fields and cascades the derived
// order status onto every referenced order. A status of "In Progress"
// is a promotion: the schedule is converted to a shipment instead of
// being updated in place. Cascade failures leave the already-applied
// schedule changes in place and name the failing order.
func (u *DispatchUseCase) UpdateSchedule(ctx context.Context, code string, input ScheduleUpdateInput) (*ScheduleUpdateResult, error) {
	if input.Status != nil {
		if !model.KnownScheduleStatus(*input.Status) {
			return nil, &domainErrors.ValidationError{Field: "status"}
		}
		if *input.Status == model.ScheduleStatusInProgress {
			shipment, err := u.MoveToShipment(ctx, code, nil)
			if err != nil {
				return nil, err
			}
			return &ScheduleUpdateResult{Shipment: shipment}, nil
		}
		if *input.Status == model.ScheduleStatusDelayed && input.DelayReason == nil {
			return nil, &domainErrors.ValidationError{Field: "delayReason"}
		}
	}

	updated, err := u.schedules.Update(ctx, code, repository.ScheduleUpdate{
		Status:      input.Status,
		Location:    input.Location,
		ArrivalDate: input.ArrivalDate,
		DelayReason: input.DelayReason,
	})
	if err != nil {
		return nil, err
	}

	derived := updated.Status.DerivedOrderStatus()
	for _, orderID := range updated.OrderIDs {
		if err := u.orders.AppendStatus(ctx, orderID, derived, systemActor); err != nil {
			return nil, &domainErrors.DownstreamError{OrderID: orderID, Err: err}
		}
		if input.Location != nil {
			if err := u.orders.SetLocation(ctx, orderID, *input.Location); err != nil {
				return nil, &domainErrors.DownstreamError{OrderID: orderID, Err: err}
			}
		}
	}

	u.notify(ctx, "schedule.updated", scheduleEvent(updated))
	return &ScheduleUpdateResult{Schedule: updated}, nil
}

// MoveToShipment promotes a schedule into an in-transit shipment under
// the same code, carrying the order ids, then removes the schedule.
// Referenced orders are left untouched; the usual caller has already
// set them Shipped. A nil expectedArrival keeps the schedule's own.
func (u *DispatchUseCase) MoveToShipment(ctx context.Context, code string, expectedArrival *time.Time) (*model.Shipment, error) {
	schedule, err := u.schedules.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	arrival := schedule.ExpectedArrivalDate
	if expectedArrival != nil {
		arrival = *expectedArrival
	}

	shipment, err := u.shipments.Create(ctx, &model.Shipment{
		Code:                schedule.Code,
		OrderIDs:            schedule.OrderIDs,
		VehicleID:           schedule.VehicleID,
		DriverID:            schedule.DriverID,
		DepartureDate:       schedule.DepartureDate,
		ExpectedArrivalDate: arrival,
		Status:              model.ShipmentStatusInTransit,
	})
	if err != nil {
		return nil, err
	}

	if err := u.schedules.Delete(ctx, code); err != nil {
		// Undo the promotion rather than leave the dispatch recorded twice.
		if cleanupErr := u.shipments.Delete(ctx, shipment.Code); cleanupErr != nil {
			u.logger.Error("promotion cleanup failed, manual reconciliation required",
				slog.String("code", shipment.Code),
				slog.String("error", cleanupErr.Error()),
			)
		}
		return nil, err
	}

	u.notify(ctx, "schedule.promoted", shipmentEvent(shipment))
	return shipment, nil
}

// DeleteSchedule reverts every referenced order to its pre-dispatch
// state and then removes the schedule. Reverts run first so a cascade
// failure leaves the schedule intact for a retry.
func (u *DispatchUseCase) DeleteSchedule(ctx context.Context, code string) error {
	schedule, err := u.schedules.Get(ctx, code)
	if err != nil {
		return err
	}

	for _, orderID := range schedule.OrderIDs {
		if err := u.orders.AppendStatus(ctx, orderID, model.OrderStatusConfirmed, systemActor); err != nil {
			return &domainErrors.DownstreamError{OrderID: orderID, Err: err}
		}
		if err := u.orders.SetShipmentCode(ctx, orderID, nil); err != nil {
			return &domainErrors.DownstreamError{OrderID: orderID, Err: err}
		}
	}

	if err := u.schedules.Delete(ctx, code); err != nil {
		return err
	}

	u.notify(ctx, "schedule.deleted", scheduleEvent(schedule))
	return nil
}

// CreateShipment records a shipment directly without a schedule stage.
// No order cascade happens here.
func (u *DispatchUseCase) CreateShipment(ctx context.Context, input CreateShipmentInput) (*model.Shipment, error) {
	switch {
	case input.VehicleID == "":
		return nil, &domainErrors.ValidationError{Field: "vehicleId"}
	case input.DriverID == "":
		return nil, &domainErrors.ValidationError{Field: "driverId"}
	case input.DepartureDate.IsZero():
		return nil, &domainErrors.ValidationError{Field: "departureDate"}
	case input.ExpectedArrivalDate.IsZero():
		return nil, &domainErrors.ValidationError{Field: "expectedArrivalDate"}
	}

	shipment, err := u.shipments.Create(ctx, &model.Shipment{
		OrderIDs:            input.OrderIDs,
		VehicleID:           input.VehicleID,
		DriverID:            input.DriverID,
		DepartureDate:       input.DepartureDate,
		ExpectedArrivalDate: input.ExpectedArrivalDate,
		Status:              model.ShipmentStatusScheduled,
	})
	if err != nil {
		return nil, err
	}

	u.notify(ctx, "shipment.created", shipmentEvent(shipment))
	return shipment, nil
}

// ListShipments returns all shipments, most recently touched first.
func (u *DispatchUseCase) ListShipments(ctx context.Context) ([]model.Shipment, error) {
	return u.shipments.List(ctx)
}

// GetShipment loads a single shipment by code.
func (u *DispatchUseCase) GetShipment(ctx context.Context, code string) (*model.Shipment, error) {
	return u.shipments.Get(ctx, code)
}

// UpdateShipmentStatus advances the shipment and, when it was
// delivered, cascades Delivered onto the orders it carries. Delays
// stay shipment-level and never reach an order.
func (u *DispatchUseCase) UpdateShipmentStatus(ctx context.Context, code string, input ShipmentStatusInput) (*model.Shipment, error) {
	if !model.KnownShipmentStatus(input.Status) {
		return nil, &domainErrors.ValidationError{Field: "status"}
	}
	if input.Status == model.ShipmentStatusDelayed && input.DelayReason == nil {
		return nil, &domainErrors.ValidationError{Field: "delayReason"}
	}

	updated, err := u.shipments.UpdateStatus(ctx, code, repository.ShipmentUpdate{
		Status:      input.Status,
		ArrivalDate: input.ArrivalDate,
		DelayReason: input.DelayReason,
	})
	if err != nil {
		return nil, err
	}

	if updated.Status == model.ShipmentStatusDelivered {
		for _, orderID := range updated.OrderIDs {
			if err := u.orders.AppendStatus(ctx, orderID, model.OrderStatusDelivered, systemActor); err != nil {
				return nil, &domainErrors.DownstreamError{OrderID: orderID, Err: err}
			}
		}
	}

	u.notify(ctx, "shipment.updated", shipmentEvent(updated))
	return updated, nil
}

// DeleteShipment removes a shipment record. No cascade.
func (u *DispatchUseCase) DeleteShipment(ctx context.Context, code string) error {
	return u.shipments.Delete(ctx, code)
}

func (u *DispatchUseCase) notify(ctx context.Context, routingKey string, payload any) {
	if err := u.events.Publish(ctx, routingKey, payload); err != nil {
		u.logger.Warn("dispatch notification failed",
			slog.String("event", routingKey),
			slog.String("error", err.Error()),
		)
	}
}

func missingIDs(requested []string, matched []model.Order) []string {
	found := make(map[string]struct{}, len(matched))
	for _, order := range matched {
		found[order.ID] = struct{}{}
	}
	var missing []string
	for _, id := range requested {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}

func scheduleEvent(schedule *model.Schedule) map[string]any {
	return map[string]any{
		"code":     schedule.Code,
		"status":   schedule.Status,
		"orderIds": schedule.OrderIDs,
		"at":       time.Now().UTC(),
	}
}

func shipmentEvent(shipment *model.Shipment) map[string]any {
	return map[string]any{
		"code":     shipment.Code,
		"status":   shipment.Status,
		"orderIds": shipment.OrderIDs,
		"at":       time.Now().UTC(),
	}
}
