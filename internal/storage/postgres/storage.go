package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/cripslk/dispatch/internal/domain/errors"
	"github.com/cripslk/dispatch/internal/domain/model"
	"github.com/cripslk/dispatch/internal/domain/repository"
)

const uniqueViolation = "23505"

// codeRetryAttempts bounds retries when two creates race for the same
// sequential code and one loses the unique-constraint check.
const codeRetryAttempts = 3

// Pool is the subset of pgxpool.Pool the storage needs. Satisfied by
// pgxmock in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   Pool
	logger *slog.Logger
}

type staffRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type scheduleRepository struct {
	storage *Storage
}

type shipmentRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Staff() repository.StaffRepository {
	return &staffRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Schedules() repository.ScheduleRepository {
	return &scheduleRepository{storage: s}
}

func (s *Storage) Shipments() repository.ShipmentRepository {
	return &shipmentRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS staff (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id TEXT PRIMARY KEY,
            kind TEXT NOT NULL,
            items JSONB NOT NULL DEFAULT '[]',
            status TEXT NOT NULL,
            shipment_code TEXT,
            location TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_status_history (
            id SERIAL PRIMARY KEY,
            order_id TEXT NOT NULL REFERENCES orders(id),
            status TEXT NOT NULL,
            actor TEXT,
            recorded_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS schedules (
            code TEXT PRIMARY KEY,
            order_ids TEXT[] NOT NULL,
            vehicle_id TEXT NOT NULL,
            driver_id TEXT NOT NULL,
            departure_date TIMESTAMPTZ NOT NULL,
            expected_arrival_date TIMESTAMPTZ NOT NULL,
            arrival_date TIMESTAMPTZ,
            location TEXT,
            status TEXT NOT NULL,
            delay_reason TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS shipments (
            code TEXT PRIMARY KEY,
            order_ids TEXT[] NOT NULL,
            vehicle_id TEXT NOT NULL,
            driver_id TEXT NOT NULL,
            departure_date TIMESTAMPTZ NOT NULL,
            expected_arrival_date TIMESTAMPTZ NOT NULL,
            arrival_date TIMESTAMPTZ,
            status TEXT NOT NULL,
            delay_reason TEXT,
            last_updated TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_history_order ON order_status_history(order_id, recorded_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// --- StaffRepository implementation ---

func (r *staffRepository) Create(ctx context.Context, login, passwordHash string, role model.StaffRole) (*model.Staff, error) {
	const query = `INSERT INTO staff (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	var st model.Staff
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, role).Scan(&st.ID, &st.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	st.Login = login
	st.PasswordHash = passwordHash
	st.Role = role
	return &st, nil
}

func (r *staffRepository) GetByLogin(ctx context.Context, login string) (*model.Staff, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM staff WHERE login=$1`
	return r.scanStaff(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *staffRepository) GetByID(ctx context.Context, id int64) (*model.Staff, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM staff WHERE id=$1`
	return r.scanStaff(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *staffRepository) scanStaff(row pgx.Row) (*model.Staff, error) {
	var st model.Staff
	err := row.Scan(&st.ID, &st.Login, &st.PasswordHash, &st.Role, &st.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &st, nil
}

// --- OrderRepository implementation ---

const orderColumns = `id, kind, items, status, shipment_code, location, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.Order, error) {
	var (
		o     model.Order
		items []byte
	)
	err := row.Scan(&o.ID, &o.Kind, &items, &o.Status, &o.ShipmentCode, &o.Location, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return nil, fmt.Errorf("decode order items: %w", err)
		}
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, kind model.OrderKind, items []model.OrderItem) (*model.Order, error) {
	encoded, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("encode order items: %w", err)
	}

	var order *model.Order
	for attempt := 0; attempt < codeRetryAttempts; attempt++ {
		err = r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
			const nextQuery = `SELECT COALESCE(MAX(CAST(SUBSTRING(id FROM 4) AS INTEGER)), 0) FROM orders`
			var last int
			if err := tx.QueryRow(ctx, nextQuery).Scan(&last); err != nil {
				return err
			}
			id := model.FormatCode(model.OrderCodePrefix, last+1)

			const insertQuery = `INSERT INTO orders (id, kind, items, status) VALUES ($1, $2, $3, $4)
                                 RETURNING created_at, updated_at`
			o := model.Order{ID: id, Kind: kind, Items: items, Status: model.OrderStatusPending}
			if err := tx.QueryRow(ctx, insertQuery, id, kind, encoded, model.OrderStatusPending).Scan(&o.CreatedAt, &o.UpdatedAt); err != nil {
				return err
			}

			const historyQuery = `INSERT INTO order_status_history (order_id, status, actor) VALUES ($1, $2, NULL)
                                  RETURNING recorded_at`
			var recordedAt time.Time
			if err := tx.QueryRow(ctx, historyQuery, id, model.OrderStatusPending).Scan(&recordedAt); err != nil {
				return err
			}
			o.History = []model.StatusEntry{{Status: model.OrderStatusPending, RecordedAt: recordedAt}}
			order = &o
			return nil
		})
		if err == nil {
			return order, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("allocate order id: %w", err)
}

func (r *orderRepository) Get(ctx context.Context, id string) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	const historyQuery = `SELECT status, COALESCE(actor, ''), recorded_at
                          FROM order_status_history WHERE order_id=$1 ORDER BY recorded_at, id`
	rows, err := r.storage.pool.Query(ctx, historyQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry model.StatusEntry
		if err := rows.Scan(&entry.Status, &entry.Actor, &entry.RecordedAt); err != nil {
			return nil, err
		}
		order.History = append(order.History, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var (
		conditions []string
		args       []any
	)
	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("status=$%d", len(args)))
	}
	if len(filter.IDs) > 0 {
		args = append(args, filter.IDs)
		conditions = append(conditions, fmt.Sprintf("id = ANY($%d)", len(args)))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at"

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// AppendStatus updates the order status and appends the matching
// history row in one transaction, so readers never observe one without
// the other. The row is locked for the duration of the check so two
// dispatchers cannot race the same order past the transition table.
func (r *orderRepository) AppendStatus(ctx context.Context, id string, status model.OrderStatus, actor string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const currentQuery = `SELECT kind, status FROM orders WHERE id=$1 FOR UPDATE`
		var (
			kind    model.OrderKind
			current model.OrderStatus
		)
		if err := tx.QueryRow(ctx, currentQuery, id).Scan(&kind, &current); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		if !model.CanTransition(kind, current, status) {
			return &domainErrors.InvalidTransitionError{OrderID: id, From: string(current), To: string(status)}
		}

		const updateQuery = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
		if _, err := tx.Exec(ctx, updateQuery, status, id); err != nil {
			return err
		}

		const historyQuery = `INSERT INTO order_status_history (order_id, status, actor) VALUES ($1, $2, NULLIF($3, ''))`
		if _, err := tx.Exec(ctx, historyQuery, id, status, actor); err != nil {
			return err
		}
		return nil
	})
}

func (r *orderRepository) SetShipmentCode(ctx context.Context, id string, code *string) error {
	const query = `UPDATE orders SET shipment_code=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, code, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SetLocation(ctx context.Context, id string, location string) error {
	const query = `UPDATE orders SET location=$1, updated_at=NOW() WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, query, location, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- ScheduleRepository implementation ---

// nextShipmentCode picks the next sequential code across schedules and
// shipments, since a promoted schedule keeps its code in the shipments
// table. Uniqueness is guaranteed by the primary key, not this read.
const nextShipmentCodeQuery = `SELECT GREATEST(
        COALESCE((SELECT MAX(CAST(SUBSTRING(code FROM 4) AS INTEGER)) FROM schedules), 0),
        COALESCE((SELECT MAX(CAST(SUBSTRING(code FROM 4) AS INTEGER)) FROM shipments), 0))`

func (s *Storage) nextShipmentCode(ctx context.Context) (string, error) {
	var last int
	if err := s.pool.QueryRow(ctx, nextShipmentCodeQuery).Scan(&last); err != nil {
		return "", err
	}
	return model.FormatCode(model.ShipmentCodePrefix, last+1), nil
}

const scheduleColumns = `code, order_ids, vehicle_id, driver_id, departure_date, expected_arrival_date,
                         arrival_date, location, status, delay_reason, created_at, updated_at`

func scanSchedule(row pgx.Row) (*model.Schedule, error) {
	var sc model.Schedule
	err := row.Scan(&sc.Code, &sc.OrderIDs, &sc.VehicleID, &sc.DriverID, &sc.DepartureDate,
		&sc.ExpectedArrivalDate, &sc.ArrivalDate, &sc.Location, &sc.Status, &sc.DelayReason,
		&sc.CreatedAt, &sc.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &sc, nil
}

func (r *scheduleRepository) Create(ctx context.Context, schedule *model.Schedule) (*model.Schedule, error) {
	const insertQuery = `INSERT INTO schedules (code, order_ids, vehicle_id, driver_id, departure_date,
                         expected_arrival_date, location, status, delay_reason)
                         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                         RETURNING created_at, updated_at`

	var lastErr error
	for attempt := 0; attempt < codeRetryAttempts; attempt++ {
		code, err := r.storage.nextShipmentCode(ctx)
		if err != nil {
			return nil, err
		}

		created := *schedule
		created.Code = code
		err = r.storage.pool.QueryRow(ctx, insertQuery, code, schedule.OrderIDs, schedule.VehicleID,
			schedule.DriverID, schedule.DepartureDate, schedule.ExpectedArrivalDate, schedule.Location,
			schedule.Status, schedule.DelayReason).Scan(&created.CreatedAt, &created.UpdatedAt)
		if err == nil {
			return &created, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("allocate shipment code: %w", lastErr)
}

func (r *scheduleRepository) Get(ctx context.Context, code string) (*model.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE code=$1`
	schedule, err := scanSchedule(r.storage.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return schedule, nil
}

func (r *scheduleRepository) List(ctx context.Context) ([]model.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *scheduleRepository) Update(ctx context.Context, code string, update repository.ScheduleUpdate) (*model.Schedule, error) {
	assignments := []string{"updated_at=NOW()"}
	args := []any{}
	appendSet := func(column string, value any) {
		args = append(args, value)
		assignments = append(assignments, fmt.Sprintf("%s=$%d", column, len(args)))
	}
	if update.Status != nil {
		appendSet("status", *update.Status)
	}
	if update.Location != nil {
		appendSet("location", *update.Location)
	}
	if update.ArrivalDate != nil {
		appendSet("arrival_date", *update.ArrivalDate)
	}
	if update.DelayReason != nil {
		appendSet("delay_reason", *update.DelayReason)
	}

	args = append(args, code)
	query := fmt.Sprintf(`UPDATE schedules SET %s WHERE code=$%d RETURNING `+scheduleColumns,
		strings.Join(assignments, ", "), len(args))

	schedule, err := scanSchedule(r.storage.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return schedule, nil
}

func (r *scheduleRepository) Delete(ctx context.Context, code string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM schedules WHERE code=$1`, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// --- ShipmentRepository implementation ---

const shipmentColumns = `code, order_ids, vehicle_id, driver_id, departure_date, expected_arrival_date,
                         arrival_date, status, delay_reason, last_updated`

func scanShipment(row pgx.Row) (*model.Shipment, error) {
	var sh model.Shipment
	err := row.Scan(&sh.Code, &sh.OrderIDs, &sh.VehicleID, &sh.DriverID, &sh.DepartureDate,
		&sh.ExpectedArrivalDate, &sh.ArrivalDate, &sh.Status, &sh.DelayReason, &sh.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &sh, nil
}

func (r *shipmentRepository) Create(ctx context.Context, shipment *model.Shipment) (*model.Shipment, error) {
	const insertQuery = `INSERT INTO shipments (code, order_ids, vehicle_id, driver_id, departure_date,
                         expected_arrival_date, arrival_date, status, delay_reason)
                         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                         RETURNING last_updated`

	insert := func(code string) (*model.Shipment, error) {
		created := *shipment
		created.Code = code
		err := r.storage.pool.QueryRow(ctx, insertQuery, code, shipment.OrderIDs, shipment.VehicleID,
			shipment.DriverID, shipment.DepartureDate, shipment.ExpectedArrivalDate, shipment.ArrivalDate,
			shipment.Status, shipment.DelayReason).Scan(&created.LastUpdated)
		if err != nil {
			return nil, err
		}
		return &created, nil
	}

	// Promoted schedules arrive with their code already assigned.
	if shipment.Code != "" {
		created, err := insert(shipment.Code)
		if err != nil && isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return created, err
	}

	var lastErr error
	for attempt := 0; attempt < codeRetryAttempts; attempt++ {
		code, err := r.storage.nextShipmentCode(ctx)
		if err != nil {
			return nil, err
		}
		created, err := insert(code)
		if err == nil {
			return created, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("allocate shipment code: %w", lastErr)
}

func (r *shipmentRepository) Get(ctx context.Context, code string) (*model.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments WHERE code=$1`
	shipment, err := scanShipment(r.storage.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return shipment, nil
}

func (r *shipmentRepository) List(ctx context.Context) ([]model.Shipment, error) {
	query := `SELECT ` + shipmentColumns + ` FROM shipments ORDER BY last_updated DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Shipment
	for rows.Next() {
		shipment, err := scanShipment(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *shipment)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *shipmentRepository) UpdateStatus(ctx context.Context, code string, update repository.ShipmentUpdate) (*model.Shipment, error) {
	query := `UPDATE shipments SET status=$1, arrival_date=COALESCE($2, arrival_date),
              delay_reason=COALESCE($3, delay_reason), last_updated=NOW()
              WHERE code=$4 RETURNING ` + shipmentColumns

	shipment, err := scanShipment(r.storage.pool.QueryRow(ctx, query, update.Status, update.ArrivalDate, update.DelayReason, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return shipment, nil
}

func (r *shipmentRepository) Delete(ctx context.Context, code string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM shipments WHERE code=$1`, code)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
