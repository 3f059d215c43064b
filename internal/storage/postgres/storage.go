package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/slt-fleet/tireflow/internal/domain/errors"
	"github.com/slt-fleet/tireflow/internal/domain/model"
	"github.com/slt-fleet/tireflow/internal/domain/repository"
)

// Pool abstracts the pgx connection pool so tests can substitute a mock.
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

type requestRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type employeeRepository struct {
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
func (s *Storage) Requests() repository.RequestRepository {
	return &requestRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Employees() repository.EmployeeRepository {
	return &employeeRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS tire_requests (
            id TEXT PRIMARY KEY,
            vehicle_no TEXT NOT NULL,
            vehicle_type TEXT NOT NULL DEFAULT '',
            vehicle_brand TEXT NOT NULL DEFAULT '',
            vehicle_model TEXT NOT NULL DEFAULT '',
            user_section TEXT NOT NULL,
            replacement_date TEXT NOT NULL,
            existing_make TEXT NOT NULL DEFAULT '',
            tire_size TEXT NOT NULL DEFAULT '',
            no_of_tires TEXT NOT NULL,
            no_of_tubes TEXT NOT NULL DEFAULT '',
            cost_center TEXT NOT NULL,
            present_km TEXT NOT NULL DEFAULT '',
            previous_km TEXT NOT NULL DEFAULT '',
            wear_indicator TEXT NOT NULL DEFAULT '',
            wear_pattern TEXT NOT NULL DEFAULT '',
            officer_service_no TEXT NOT NULL,
            email TEXT NOT NULL,
            comments TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            photo_urls TEXT[] NOT NULL DEFAULT '{}',
            rejection_reason TEXT,
            tto_approval_date TIMESTAMPTZ,
            tto_rejection_date TIMESTAMPTZ,
            tto_rejection_reason TEXT,
            submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS tire_orders (
            id TEXT PRIMARY KEY,
            request_id TEXT NOT NULL,
            vehicle_no TEXT NOT NULL DEFAULT '',
            tire_brand TEXT NOT NULL DEFAULT '',
            tire_size TEXT NOT NULL DEFAULT '',
            quantity INTEGER NOT NULL,
            vendor_email TEXT NOT NULL DEFAULT '',
            user_email TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            rejection_reason TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS employees (
            id TEXT PRIMARY KEY,
            email TEXT UNIQUE NOT NULL,
            service_no TEXT UNIQUE NOT NULL,
            section TEXT NOT NULL DEFAULT '',
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_tire_requests_status ON tire_requests(status, submitted_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_tire_orders_vendor ON tire_orders(vendor_email, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- RequestRepository implementation ---

const requestColumns = `id, vehicle_no, vehicle_type, vehicle_brand, vehicle_model, user_section,
        replacement_date, existing_make, tire_size, no_of_tires, no_of_tubes, cost_center,
        present_km, previous_km, wear_indicator, wear_pattern, officer_service_no, email,
        comments, status, photo_urls, rejection_reason, tto_approval_date, tto_rejection_date,
        tto_rejection_reason, submitted_at, updated_at`

func scanRequest(row pgx.Row) (*model.TireRequest, error) {
	var r model.TireRequest
	var photos []string
	err := row.Scan(&r.ID, &r.VehicleNo, &r.VehicleType, &r.VehicleBrand, &r.VehicleModel, &r.UserSection,
		&r.ReplacementDate, &r.ExistingMake, &r.TireSize, &r.NoOfTires, &r.NoOfTubes, &r.CostCenter,
		&r.PresentKm, &r.PreviousKm, &r.WearIndicator, &r.WearPattern, &r.OfficerServiceNo, &r.Email,
		&r.Comments, &r.Status, &photos, &r.RejectionReason, &r.TTOApprovalDate, &r.TTORejectionDate,
		&r.TTORejectionReason, &r.SubmittedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	r.PhotoURLs = photos
	r.TirePhotoURLs = photos
	return &r, nil
}

func (r *requestRepository) Create(ctx context.Context, request *model.TireRequest) (*model.TireRequest, error) {
	const query = `INSERT INTO tire_requests (
            id, vehicle_no, vehicle_type, vehicle_brand, vehicle_model, user_section,
            replacement_date, existing_make, tire_size, no_of_tires, no_of_tubes, cost_center,
            present_km, previous_km, wear_indicator, wear_pattern, officer_service_no, email,
            comments, status, photo_urls, rejection_reason
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22)
        RETURNING submitted_at, updated_at`

	err := r.storage.pool.QueryRow(ctx, query,
		request.ID, request.VehicleNo, request.VehicleType, request.VehicleBrand, request.VehicleModel,
		request.UserSection, request.ReplacementDate, request.ExistingMake, request.TireSize,
		request.NoOfTires, request.NoOfTubes, request.CostCenter, request.PresentKm, request.PreviousKm,
		request.WearIndicator, request.WearPattern, request.OfficerServiceNo, request.Email,
		request.Comments, request.Status, request.PhotoURLs, request.RejectionReason,
	).Scan(&request.SubmittedAt, &request.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}

	return request, nil
}

func (r *requestRepository) GetByID(ctx context.Context, id string) (*model.TireRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM tire_requests WHERE id=$1`
	request, err := scanRequest(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return request, nil
}

func (r *requestRepository) List(ctx context.Context) ([]model.TireRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM tire_requests ORDER BY submitted_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (r *requestRepository) ListByStatuses(ctx context.Context, statuses []model.RequestStatus) ([]model.TireRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM tire_requests WHERE status = ANY($1) ORDER BY submitted_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, statusStrings(statuses))
	if err != nil {
		return nil, err
	}
	return collectRequests(rows)
}

func (r *requestRepository) CountByStatuses(ctx context.Context, statuses []model.RequestStatus) (int64, error) {
	const query = `SELECT COUNT(*) FROM tire_requests WHERE status = ANY($1)`
	var count int64
	if err := r.storage.pool.QueryRow(ctx, query, statusStrings(statuses)).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

const requestUpdateSet = `vehicle_no=$2, vehicle_type=$3, vehicle_brand=$4, vehicle_model=$5,
        user_section=$6, replacement_date=$7, existing_make=$8, tire_size=$9, no_of_tires=$10,
        no_of_tubes=$11, cost_center=$12, present_km=$13, previous_km=$14, wear_indicator=$15,
        wear_pattern=$16, officer_service_no=$17, email=$18, comments=$19, status=$20,
        photo_urls=$21, rejection_reason=$22, tto_approval_date=$23, tto_rejection_date=$24,
        tto_rejection_reason=$25, updated_at=NOW()`

func requestUpdateArgs(request *model.TireRequest) []any {
	return []any{
		request.ID, request.VehicleNo, request.VehicleType, request.VehicleBrand, request.VehicleModel,
		request.UserSection, request.ReplacementDate, request.ExistingMake, request.TireSize,
		request.NoOfTires, request.NoOfTubes, request.CostCenter, request.PresentKm, request.PreviousKm,
		request.WearIndicator, request.WearPattern, request.OfficerServiceNo, request.Email,
		request.Comments, request.Status, request.PhotoURLs, request.RejectionReason,
		request.TTOApprovalDate, request.TTORejectionDate, request.TTORejectionReason,
	}
}

func (r *requestRepository) Update(ctx context.Context, request *model.TireRequest) (*model.TireRequest, error) {
	query := `UPDATE tire_requests SET ` + requestUpdateSet + ` WHERE id=$1 RETURNING submitted_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query, requestUpdateArgs(request)...).
		Scan(&request.SubmittedAt, &request.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return request, nil
}

// Mutate serializes concurrent transitions on one request: the row is loaded
// under FOR UPDATE, fn inspects and mutates the latest committed state, and
// the write commits in the same transaction.
func (r *requestRepository) Mutate(ctx context.Context, id string, fn func(*model.TireRequest) error) (*model.TireRequest, error) {
	var request *model.TireRequest
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + requestColumns + ` FROM tire_requests WHERE id=$1 FOR UPDATE`
		var err error
		request, err = scanRequest(tx.QueryRow(ctx, query, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		if err := fn(request); err != nil {
			return err
		}

		update := `UPDATE tire_requests SET ` + requestUpdateSet + ` WHERE id=$1 RETURNING submitted_at, updated_at`
		return tx.QueryRow(ctx, update, requestUpdateArgs(request)...).
			Scan(&request.SubmittedAt, &request.UpdatedAt)
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (r *requestRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tire_requests WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func collectRequests(rows pgx.Rows) ([]model.TireRequest, error) {
	defer rows.Close()

	var result []model.TireRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *request)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func statusStrings(statuses []model.RequestStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, string(s))
	}
	return out
}

// --- OrderRepository implementation ---

const orderColumns = `id, request_id, vehicle_no, tire_brand, tire_size, quantity,
        vendor_email, user_email, status, rejection_reason, created_at, updated_at`

func scanOrder(row pgx.Row) (*model.TireOrder, error) {
	var o model.TireOrder
	err := row.Scan(&o.ID, &o.RequestID, &o.VehicleNo, &o.TireBrand, &o.TireSize, &o.Quantity,
		&o.VendorEmail, &o.UserEmail, &o.Status, &o.RejectionReason, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *model.TireOrder) (*model.TireOrder, error) {
	const query = `INSERT INTO tire_orders (
            id, request_id, vehicle_no, tire_brand, tire_size, quantity, vendor_email, user_email, status
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING created_at, updated_at`

	err := r.storage.pool.QueryRow(ctx, query,
		order.ID, order.RequestID, order.VehicleNo, order.TireBrand, order.TireSize,
		order.Quantity, order.VendorEmail, order.UserEmail, order.Status,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.TireOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM tire_orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByRequestID(ctx context.Context, requestID string) (*model.TireOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM tire_orders WHERE request_id=$1 ORDER BY created_at LIMIT 1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) List(ctx context.Context) ([]model.TireOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM tire_orders ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) ListByVendorEmail(ctx context.Context, vendorEmail string) ([]model.TireOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM tire_orders WHERE vendor_email=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, vendorEmail)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) Update(ctx context.Context, order *model.TireOrder) (*model.TireOrder, error) {
	const query = `UPDATE tire_orders SET request_id=$2, vehicle_no=$3, tire_brand=$4, tire_size=$5,
            quantity=$6, vendor_email=$7, user_email=$8, status=$9, rejection_reason=$10, updated_at=NOW()
        WHERE id=$1 RETURNING created_at, updated_at`
	err := r.storage.pool.QueryRow(ctx, query,
		order.ID, order.RequestID, order.VehicleNo, order.TireBrand, order.TireSize,
		order.Quantity, order.VendorEmail, order.UserEmail, order.Status, order.RejectionReason,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus, rejectionReason *string) (*model.TireOrder, error) {
	query := `UPDATE tire_orders SET status=$2, rejection_reason=$3, updated_at=NOW()
        WHERE id=$1 RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id, status, rejectionReason))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM tire_orders WHERE id=$1`
	tag, err := r.storage.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func collectOrders(rows pgx.Rows) ([]model.TireOrder, error) {
	defer rows.Close()

	var result []model.TireOrder
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

// --- EmployeeRepository implementation ---

const employeeColumns = `id, email, service_no, section, password_hash, created_at`

func scanEmployee(row pgx.Row) (*model.Employee, error) {
	var e model.Employee
	err := row.Scan(&e.ID, &e.Email, &e.ServiceNo, &e.Section, &e.PasswordHash, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *model.Employee) (*model.Employee, error) {
	const query = `INSERT INTO employees (id, email, service_no, section, password_hash)
        VALUES ($1,$2,$3,$4,$5) RETURNING created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		employee.ID, employee.Email, employee.ServiceNo, employee.Section, employee.PasswordHash,
	).Scan(&employee.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return employee, nil
}

func (r *employeeRepository) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id=$1`
	return r.getOne(ctx, query, id)
}

func (r *employeeRepository) GetByEmail(ctx context.Context, email string) (*model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email=$1`
	return r.getOne(ctx, query, email)
}

func (r *employeeRepository) GetByServiceNo(ctx context.Context, serviceNo string) (*model.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE service_no=$1`
	return r.getOne(ctx, query, serviceNo)
}

func (r *employeeRepository) getOne(ctx context.Context, query string, arg any) (*model.Employee, error) {
	employee, err := scanEmployee(r.storage.pool.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return employee, nil
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
