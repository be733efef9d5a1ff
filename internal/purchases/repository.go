package purchases

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/platform/httpx"
)

// ErrNotFound indicates an unknown purchase id. It wraps the transport-level
// sentinel so handlers can map it without per-package switches.
var ErrNotFound = fmt.Errorf("purchase record: %w", httpx.ErrNotFound)

// Repository defines purchase ledger data access.
type Repository interface {
	Get(ctx context.Context, id string) (Record, error)
	List(ctx context.Context, req ListRequest) ([]Record, int, error)
	Create(ctx context.Context, rec Record) error
}

var _ Repository = (*pgRepository)(nil)

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const recordColumns = `id, name, description, total_amount, status, supplier, purchase_date, notes, created_by, created_at`

func (r *pgRepository) Get(ctx context.Context, id string) (Record, error) {
	var rec Record
	err := r.pool.QueryRow(ctx,
		`SELECT `+recordColumns+` FROM purchases WHERE id = $1`, id).
		Scan(&rec.ID, &rec.Name, &rec.Description, &rec.TotalAmount, &rec.Status,
			&rec.Supplier, &rec.PurchaseDate, &rec.Notes, &rec.CreatedBy, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (r *pgRepository) List(ctx context.Context, req ListRequest) ([]Record, int, error) {
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM purchases WHERE ($1 = '' OR status = $1)`,
		string(req.Status)).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+recordColumns+` FROM purchases
		 WHERE ($1 = '' OR status = $1)
		 ORDER BY purchase_date DESC, created_at DESC
		 LIMIT $2 OFFSET $3`,
		string(req.Status), perPage, (page-1)*perPage)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Description, &rec.TotalAmount, &rec.Status,
			&rec.Supplier, &rec.PurchaseDate, &rec.Notes, &rec.CreatedBy, &rec.CreatedAt); err != nil {
			return nil, 0, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

func (r *pgRepository) Create(ctx context.Context, rec Record) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO purchases (id, name, description, total_amount, status, supplier, purchase_date, notes, created_by, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID, rec.Name, rec.Description, rec.TotalAmount, string(rec.Status),
		rec.Supplier, rec.PurchaseDate, rec.Notes, rec.CreatedBy, rec.CreatedAt)
	return err
}
