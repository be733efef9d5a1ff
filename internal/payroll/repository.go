package payroll

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/platform/db"
	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/purchases"
)

// ErrPaymentNotFound indicates no payment exists for the lookup.
var ErrPaymentNotFound = errors.New("salary payment not found")

// uniqueViolation is the PostgreSQL error code for unique constraint hits.
const uniqueViolation = "23505"

// Repository defines payroll data access.
type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error

	FindPayment(ctx context.Context, staffID string, period PayPeriod) (Payment, error)
	ListPayments(ctx context.Context, req ListPaymentsRequest) ([]Payment, int, error)
}

// TxRepository defines operations within one disbursement transaction.
type TxRepository interface {
	FindPayment(ctx context.Context, staffID string, period PayPeriod) (Payment, error)
	InsertPurchase(ctx context.Context, rec purchases.Record) error
	InsertPayment(ctx context.Context, p Payment) error

	// Atomic runs fn inside a savepoint. When fn fails only its own writes
	// roll back; the surrounding transaction stays usable so a bulk run can
	// continue with the next member.
	Atomic(ctx context.Context, fn func(TxRepository) error) error
}

var _ Repository = (*pgRepository)(nil)
var _ TxRepository = (*pgTxRepository)(nil)

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &pgTxRepository{tx: tx})
	})
}

const paymentColumns = `id, staff_id, staff_name, amount, payment_date, purchase_id, year, month, status, notes, created_by, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPayment(row rowScanner) (Payment, error) {
	var p Payment
	err := row.Scan(&p.ID, &p.StaffID, &p.StaffName, &p.Amount, &p.PaymentDate,
		&p.PurchaseID, &p.Year, &p.Month, &p.Status, &p.Notes, &p.CreatedBy, &p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Payment{}, ErrPaymentNotFound
	}
	if err != nil {
		return Payment{}, err
	}
	return p, nil
}

const findPaymentSQL = `SELECT ` + paymentColumns + ` FROM salary_payments WHERE staff_id = $1 AND year = $2 AND month = $3`

func (r *pgRepository) FindPayment(ctx context.Context, staffID string, period PayPeriod) (Payment, error) {
	return scanPayment(r.pool.QueryRow(ctx, findPaymentSQL, staffID, period.Year, period.Month))
}

func (r *pgRepository) ListPayments(ctx context.Context, req ListPaymentsRequest) ([]Payment, int, error) {
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}

	// staff_id is a uuid column; an untyped '' comparison would pin $1 to
	// text at parse time and there is no uuid = text operator.
	const filter = ` WHERE (NULLIF($1, '') IS NULL OR staff_id = NULLIF($1, '')::uuid)
		AND ($2 = 0 OR year = $2) AND ($3 = 0 OR month = $3)`

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM salary_payments`+filter,
		req.StaffID, req.Year, req.Month).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+paymentColumns+` FROM salary_payments`+filter+
			` ORDER BY payment_date DESC, created_at DESC LIMIT $4 OFFSET $5`,
		req.StaffID, req.Year, req.Month, perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payments []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, 0, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

type pgTxRepository struct {
	tx pgx.Tx
}

// Atomic uses pgx nested transactions, which map to SAVEPOINT / RELEASE /
// ROLLBACK TO on the same connection.
func (r *pgTxRepository) Atomic(ctx context.Context, fn func(TxRepository) error) error {
	inner, err := r.tx.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(&pgTxRepository{tx: inner}); err != nil {
		_ = inner.Rollback(ctx)
		return err
	}
	return inner.Commit(ctx)
}

func (r *pgTxRepository) FindPayment(ctx context.Context, staffID string, period PayPeriod) (Payment, error) {
	return scanPayment(r.tx.QueryRow(ctx, findPaymentSQL, staffID, period.Year, period.Month))
}

func (r *pgTxRepository) InsertPurchase(ctx context.Context, rec purchases.Record) error {
	_, err := r.tx.Exec(ctx,
		`INSERT INTO purchases (id, name, description, total_amount, status, supplier, purchase_date, notes, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.Name, rec.Description, rec.TotalAmount, string(rec.Status),
		rec.Supplier, rec.PurchaseDate, rec.Notes, rec.CreatedBy, rec.CreatedAt)
	return err
}

// InsertPayment writes the salary payment row. A hit on the
// (staff_id, month, year) uniqueness constraint means another run paid this
// member concurrently; it surfaces as ErrAlreadyPaid so the engine can treat
// it like a pre-check hit instead of crashing the run.
func (r *pgTxRepository) InsertPayment(ctx context.Context, p Payment) error {
	_, err := r.tx.Exec(ctx,
		`INSERT INTO salary_payments (id, staff_id, staff_name, amount, payment_date, purchase_id, year, month, status, notes, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, p.StaffID, p.StaffName, p.Amount, p.PaymentDate, p.PurchaseID,
		p.Year, p.Month, string(p.Status), p.Notes, p.CreatedBy, p.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyPaid
		}
		return err
	}
	return nil
}
