package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/srsedu/registrar-backend/internal/model"
)

const pgPrincipalColumns = `id::text, email, password_hash, full_name, role, created_at`

// PostgresPrincipalRepository stores principals in PostgreSQL.
type PostgresPrincipalRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPrincipalRepository creates a new PostgresPrincipalRepository.
func NewPostgresPrincipalRepository(pool *pgxpool.Pool) *PostgresPrincipalRepository {
	return &PostgresPrincipalRepository{pool: pool}
}

// List returns every principal of the given role ordered by creation time.
func (r *PostgresPrincipalRepository) List(ctx context.Context, role model.Role) ([]model.Principal, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+pgPrincipalColumns+` FROM `+table+` ORDER BY created_at, full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	principals := []model.Principal{}
	for rows.Next() {
		var p model.Principal
		if err := rows.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Role, &p.CreatedAt); err != nil {
			return nil, err
		}
		principals = append(principals, p)
	}
	return principals, rows.Err()
}

// GetByID retrieves a principal by ID. Malformed IDs are reported as not found.
func (r *PostgresPrincipalRepository) GetByID(ctx context.Context, role model.Role, id string) (*model.Principal, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	return r.getOne(ctx, role, "id", id)
}

// GetByEmail retrieves a principal by its unique email.
func (r *PostgresPrincipalRepository) GetByEmail(ctx context.Context, role model.Role, email string) (*model.Principal, error) {
	return r.getOne(ctx, role, "email", email)
}

// GetByFullName retrieves the first principal with the given full name.
func (r *PostgresPrincipalRepository) GetByFullName(ctx context.Context, role model.Role, fullName string) (*model.Principal, error) {
	return r.getOne(ctx, role, "full_name", fullName)
}

func (r *PostgresPrincipalRepository) getOne(ctx context.Context, role model.Role, column, value string) (*model.Principal, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}

	p := &model.Principal{}
	err = r.pool.QueryRow(ctx,
		`SELECT `+pgPrincipalColumns+` FROM `+table+` WHERE `+column+` = $1 LIMIT 1`, value,
	).Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Role, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a new principal.
func (r *PostgresPrincipalRepository) Create(ctx context.Context, p *model.Principal) error {
	table, err := tableFor(p.Role)
	if err != nil {
		return err
	}

	p.ID = uuid.NewString()
	err = r.pool.QueryRow(ctx,
		`INSERT INTO `+table+` (id, email, password_hash, full_name, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at`,
		p.ID, p.Email, p.PasswordHash, p.FullName, string(p.Role),
	).Scan(&p.CreatedAt)
	return mapPgError(err)
}

// Update writes email, full name and password hash of an existing principal.
func (r *PostgresPrincipalRepository) Update(ctx context.Context, p *model.Principal) error {
	table, err := tableFor(p.Role)
	if err != nil {
		return err
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE `+table+` SET email = $1, full_name = $2, password_hash = $3 WHERE id = $4`,
		p.Email, p.FullName, p.PasswordHash, p.ID,
	)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a principal by ID.
func (r *PostgresPrincipalRepository) Delete(ctx context.Context, role model.Role, id string) error {
	table, err := tableFor(role)
	if err != nil {
		return err
	}
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	tag, err := r.pool.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the number of principals of the given role.
func (r *PostgresPrincipalRepository) Count(ctx context.Context, role model.Role) (int, error) {
	table, err := tableFor(role)
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// Ping checks database connectivity.
func (r *PostgresPrincipalRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrDuplicate
	}
	return err
}
