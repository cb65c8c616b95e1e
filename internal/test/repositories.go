package test

import (
	"context"
	"fmt"
	"time"

	domainErrors "github.com/cripslk/dispatch/internal/domain/errors"
	"github.com/cripslk/dispatch/internal/domain/model"
	"github.com/cripslk/dispatch/internal/domain/repository"
)

// StaffRepositoryStub stores staff accounts in-memory for tests.
type StaffRepositoryStub struct {
	Accounts map[string]*model.Staff
	ByID     map[int64]*model.Staff
	Next     int64
	Err      error
}

// NewStaffRepositoryStub constructs stub repository with initialized maps.
func NewStaffRepositoryStub() *StaffRepositoryStub {
	return &StaffRepositoryStub{
		Accounts: make(map[string]*model.Staff),
		ByID:     make(map[int64]*model.Staff),
		Next:     1,
	}
}

// Create registers staff unless login already exists or stub has explicit error.
func (s *StaffRepositoryStub) Create(ctx context.Context, login, passwordHash string, role model.StaffRole) (*model.Staff, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Accounts == nil {
		s.Accounts = make(map[string]*model.Staff)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.Staff)
	}
	if _, exists := s.Accounts[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	staff := &model.Staff{ID: s.Next, Login: login, PasswordHash: passwordHash, Role: role}
	s.Next++
	s.Accounts[login] = staff
	s.ByID[staff.ID] = staff
	return staff, nil
}

// GetByLogin fetches staff by login or returns not found.
func (s *StaffRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.Staff, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if staff, ok := s.Accounts[login]; ok {
		return staff, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches staff by identifier or returns not found.
func (s *StaffRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if staff, ok := s.ByID[id]; ok {
		return staff, nil
	}
	return nil, domainErrors.ErrNotFound
}

// StatusAppendCall records a single AppendStatus invocation.
type StatusAppendCall struct {
	OrderID string
	Status  model.OrderStatus
	Actor   string
}

// OrderRepositoryStub keeps orders in-memory and enforces the same
// lifecycle rules as the persistent repository, so synchronizer tests
// observe realistic transition failures.
type OrderRepositoryStub struct {
	CreateFn          func(context.Context, model.OrderKind, []model.OrderItem) (*model.Order, error)
	GetFn             func(context.Context, string) (*model.Order, error)
	ListFn            func(context.Context, repository.OrderFilter) ([]model.Order, error)
	AppendStatusFn    func(context.Context, string, model.OrderStatus, string) error
	SetShipmentCodeFn func(context.Context, string, *string) error
	SetLocationFn     func(context.Context, string, string) error

	Orders      map[string]*model.Order
	Next        int
	AppendCalls []StatusAppendCall
}

// NewOrderRepositoryStub constructs stub repository with initialized storage.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order), Next: 1}
}

// Seed stores an order under its identifier, overwriting any previous one.
func (s *OrderRepositoryStub) Seed(order model.Order) *model.Order {
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	stored := order
	s.Orders[order.ID] = &stored
	return &stored
}

// Create registers an order in Pending under the next sequential code.
func (s *OrderRepositoryStub) Create(ctx context.Context, kind model.OrderKind, items []model.OrderItem) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, kind, items)
	}
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	now := time.Now().UTC()
	order := &model.Order{
		ID:        fmt.Sprintf("%s%03d", model.OrderCodePrefix, s.Next),
		Kind:      kind,
		Items:     items,
		Status:    model.OrderStatusPending,
		History:   []model.StatusEntry{{Status: model.OrderStatusPending, RecordedAt: now}},
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Next++
	s.Orders[order.ID] = order
	return order, nil
}

// Get returns stored order or not found.
func (s *OrderRepositoryStub) Get(ctx context.Context, id string) (*model.Order, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	if order, ok := s.Orders[id]; ok {
		copied := *order
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List filters stored orders by status and identifier set.
func (s *OrderRepositoryStub) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	var wanted map[string]struct{}
	if len(filter.IDs) > 0 {
		wanted = make(map[string]struct{}, len(filter.IDs))
		for _, id := range filter.IDs {
			wanted[id] = struct{}{}
		}
	}
	var result []model.Order
	for _, order := range s.Orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if wanted != nil {
			if _, ok := wanted[order.ID]; !ok {
				continue
			}
		}
		result = append(result, *order)
	}
	return result, nil
}

// AppendStatus records the call and applies the transition when the
// order's lifecycle permits it.
func (s *OrderRepositoryStub) AppendStatus(ctx context.Context, id string, status model.OrderStatus, actor string) error {
	s.AppendCalls = append(s.AppendCalls, StatusAppendCall{OrderID: id, Status: status, Actor: actor})
	if s.AppendStatusFn != nil {
		return s.AppendStatusFn(ctx, id, status, actor)
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if !model.CanTransition(order.Kind, order.Status, status) {
		return &domainErrors.InvalidTransitionError{OrderID: id, From: string(order.Status), To: string(status)}
	}
	order.Status = status
	order.History = append(order.History, model.StatusEntry{Status: status, Actor: actor, RecordedAt: time.Now().UTC()})
	order.UpdatedAt = time.Now().UTC()
	return nil
}

// SetShipmentCode stores or clears the order's shipment back reference.
func (s *OrderRepositoryStub) SetShipmentCode(ctx context.Context, id string, code *string) error {
	if s.SetShipmentCodeFn != nil {
		return s.SetShipmentCodeFn(ctx, id, code)
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.ShipmentCode = code
	return nil
}

// SetLocation updates the order's last reported location.
func (s *OrderRepositoryStub) SetLocation(ctx context.Context, id string, location string) error {
	if s.SetLocationFn != nil {
		return s.SetLocationFn(ctx, id, location)
	}
	order, ok := s.Orders[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.Location = location
	return nil
}

// ScheduleRepositoryStub stores schedules in-memory with sequential codes.
type ScheduleRepositoryStub struct {
	CreateFn func(context.Context, *model.Schedule) (*model.Schedule, error)
	GetFn    func(context.Context, string) (*model.Schedule, error)
	ListFn   func(context.Context) ([]model.Schedule, error)
	UpdateFn func(context.Context, string, repository.ScheduleUpdate) (*model.Schedule, error)
	DeleteFn func(context.Context, string) error

	Schedules map[string]*model.Schedule
	Next      int
	Deleted   []string
}

// NewScheduleRepositoryStub constructs stub repository with initialized storage.
func NewScheduleRepositoryStub() *ScheduleRepositoryStub {
	return &ScheduleRepositoryStub{Schedules: make(map[string]*model.Schedule), Next: 1}
}

// Create stores the schedule under the next sequential code.
func (s *ScheduleRepositoryStub) Create(ctx context.Context, schedule *model.Schedule) (*model.Schedule, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, schedule)
	}
	if s.Schedules == nil {
		s.Schedules = make(map[string]*model.Schedule)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	now := time.Now().UTC()
	stored := *schedule
	stored.Code = model.FormatCode(model.ShipmentCodePrefix, s.Next)
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.Next++
	s.Schedules[stored.Code] = &stored
	return &stored, nil
}

// Get returns stored schedule or not found.
func (s *ScheduleRepositoryStub) Get(ctx context.Context, code string) (*model.Schedule, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, code)
	}
	if schedule, ok := s.Schedules[code]; ok {
		copied := *schedule
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored schedules.
func (s *ScheduleRepositoryStub) List(ctx context.Context) ([]model.Schedule, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	var result []model.Schedule
	for _, schedule := range s.Schedules {
		result = append(result, *schedule)
	}
	return result, nil
}

// Update applies non-nil fields to the stored schedule.
func (s *ScheduleRepositoryStub) Update(ctx context.Context, code string, update repository.ScheduleUpdate) (*model.Schedule, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, code, update)
	}
	schedule, ok := s.Schedules[code]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if update.Status != nil {
		schedule.Status = *update.Status
	}
	if update.Location != nil {
		schedule.Location = update.Location
	}
	if update.ArrivalDate != nil {
		schedule.ArrivalDate = update.ArrivalDate
	}
	if update.DelayReason != nil {
		schedule.DelayReason = update.DelayReason
	}
	schedule.UpdatedAt = time.Now().UTC()
	copied := *schedule
	return &copied, nil
}

// Delete removes stored schedule and records the call.
func (s *ScheduleRepositoryStub) Delete(ctx context.Context, code string) error {
	s.Deleted = append(s.Deleted, code)
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, code)
	}
	if _, ok := s.Schedules[code]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Schedules, code)
	return nil
}

// ShipmentRepositoryStub stores shipments in-memory.
type ShipmentRepositoryStub struct {
	CreateFn       func(context.Context, *model.Shipment) (*model.Shipment, error)
	GetFn          func(context.Context, string) (*model.Shipment, error)
	ListFn         func(context.Context) ([]model.Shipment, error)
	UpdateStatusFn func(context.Context, string, repository.ShipmentUpdate) (*model.Shipment, error)
	DeleteFn       func(context.Context, string) error

	Shipments map[string]*model.Shipment
	Next      int
	Deleted   []string
}

// NewShipmentRepositoryStub constructs stub repository with initialized storage.
func NewShipmentRepositoryStub() *ShipmentRepositoryStub {
	return &ShipmentRepositoryStub{Shipments: make(map[string]*model.Shipment), Next: 1}
}

// Create keeps a pre-assigned code or generates the next sequential one.
func (s *ShipmentRepositoryStub) Create(ctx context.Context, shipment *model.Shipment) (*model.Shipment, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, shipment)
	}
	if s.Shipments == nil {
		s.Shipments = make(map[string]*model.Shipment)
	}
	if s.Next == 0 {
		s.Next = 1
	}
	stored := *shipment
	if stored.Code == "" {
		stored.Code = model.FormatCode(model.ShipmentCodePrefix, s.Next)
		s.Next++
	} else if _, exists := s.Shipments[stored.Code]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored.LastUpdated = time.Now().UTC()
	s.Shipments[stored.Code] = &stored
	return &stored, nil
}

// Get returns stored shipment or not found.
func (s *ShipmentRepositoryStub) Get(ctx context.Context, code string) (*model.Shipment, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, code)
	}
	if shipment, ok := s.Shipments[code]; ok {
		copied := *shipment
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all stored shipments.
func (s *ShipmentRepositoryStub) List(ctx context.Context) ([]model.Shipment, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx)
	}
	var result []model.Shipment
	for _, shipment := range s.Shipments {
		result = append(result, *shipment)
	}
	return result, nil
}

// UpdateStatus applies the status and any provided progress fields.
func (s *ShipmentRepositoryStub) UpdateStatus(ctx context.Context, code string, update repository.ShipmentUpdate) (*model.Shipment, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, code, update)
	}
	shipment, ok := s.Shipments[code]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	shipment.Status = update.Status
	if update.ArrivalDate != nil {
		shipment.ArrivalDate = update.ArrivalDate
	}
	if update.DelayReason != nil {
		shipment.DelayReason = update.DelayReason
	}
	shipment.LastUpdated = time.Now().UTC()
	copied := *shipment
	return &copied, nil
}

// Delete removes stored shipment and records the call.
func (s *ShipmentRepositoryStub) Delete(ctx context.Context, code string) error {
	s.Deleted = append(s.Deleted, code)
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, code)
	}
	if _, ok := s.Shipments[code]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Shipments, code)
	return nil
}
