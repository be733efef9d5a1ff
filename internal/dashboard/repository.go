package dashboard

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository aggregates dashboard figures.
type Repository interface {
	Summary(ctx context.Context, year, month int) (Summary, error)
}

var _ Repository = (*pgRepository)(nil)

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

func (r *pgRepository) Summary(ctx context.Context, year, month int) (Summary, error) {
	s := Summary{Year: year, Month: month}

	if err := r.pool.QueryRow(ctx,
		`SELECT
			COUNT(*) FILTER (WHERE status = 'active'),
			COUNT(*) FILTER (WHERE status = 'inactive')
		 FROM staff`).Scan(&s.ActiveStaff, &s.InactiveStaff); err != nil {
		return Summary{}, err
	}

	if err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0)
		 FROM purchases
		 WHERE status <> 'cancelled'
		   AND date_part('year', purchase_date) = $1
		   AND date_part('month', purchase_date) = $2`,
		year, month).Scan(&s.MonthPurchases); err != nil {
		return Summary{}, err
	}

	if err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0), COUNT(*)
		 FROM salary_payments
		 WHERE year = $1 AND month = $2 AND status = 'completed'`,
		year, month).Scan(&s.MonthPayroll, &s.MonthPayments); err != nil {
		return Summary{}, err
	}

	return s, nil
}
