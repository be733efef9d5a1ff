package staff

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/myominkyaw1661994/ltk-restaurant-sub000/internal/platform/httpx"
)

// ErrNotFound indicates an unknown staff id. It wraps the transport-level
// sentinel so handlers can map it without per-package switches.
var ErrNotFound = fmt.Errorf("staff member: %w", httpx.ErrNotFound)

// Repository defines staff data access.
type Repository interface {
	Get(ctx context.Context, id string) (Member, error)
	List(ctx context.Context, req ListRequest) ([]Member, int, error)
	ListActive(ctx context.Context) ([]Member, error)
	Create(ctx context.Context, m Member) error
	Update(ctx context.Context, m Member) error
	SetStatus(ctx context.Context, id string, status Status) error
}

var _ Repository = (*pgRepository)(nil)

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

const memberColumns = `id, name, position, salary, status, created_at, updated_at`

func scanMember(row pgx.Row) (Member, error) {
	var m Member
	err := row.Scan(&m.ID, &m.Name, &m.Position, &m.Salary, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Member{}, ErrNotFound
	}
	if err != nil {
		return Member{}, err
	}
	return m, nil
}

func (r *pgRepository) Get(ctx context.Context, id string) (Member, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM staff WHERE id = $1`, id)
	return scanMember(row)
}

func (r *pgRepository) List(ctx context.Context, req ListRequest) ([]Member, int, error) {
	perPage := req.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := req.Page
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * perPage

	var total int
	if err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM staff WHERE ($1 = '' OR status = $1)`,
		string(req.Status)).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+memberColumns+` FROM staff
		 WHERE ($1 = '' OR status = $1)
		 ORDER BY name
		 LIMIT $2 OFFSET $3`,
		string(req.Status), perPage, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Position, &m.Salary, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return members, total, nil
}

func (r *pgRepository) ListActive(ctx context.Context) ([]Member, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+memberColumns+` FROM staff WHERE status = $1 ORDER BY name`,
		string(StatusActive))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Position, &m.Salary, &m.Status, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return members, nil
}

func (r *pgRepository) Create(ctx context.Context, m Member) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO staff (id, name, position, salary, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.Name, m.Position, m.Salary, string(m.Status), m.CreatedAt, m.UpdatedAt)
	return err
}

func (r *pgRepository) Update(ctx context.Context, m Member) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE staff SET name = $2, position = $3, salary = $4, status = $5, updated_at = $6
		 WHERE id = $1`,
		m.ID, m.Name, m.Position, m.Salary, string(m.Status), m.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgRepository) SetStatus(ctx context.Context, id string, status Status) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE staff SET status = $2, updated_at = now() WHERE id = $1`,
		id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
