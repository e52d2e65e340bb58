package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/srsedu/registrar-backend/internal/model"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const sqlitePrincipalColumns = `id, email, password_hash, full_name, role, created_at`

// SQLitePrincipalRepository stores principals in an embedded SQLite database.
type SQLitePrincipalRepository struct {
	db *sql.DB
}

// NewSQLitePrincipalRepository creates a new SQLitePrincipalRepository.
func NewSQLitePrincipalRepository(db *sql.DB) *SQLitePrincipalRepository {
	return &SQLitePrincipalRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSQLitePrincipal(row rowScanner) (*model.Principal, error) {
	p := &model.Principal{}
	var createdAt string
	if err := row.Scan(&p.ID, &p.Email, &p.PasswordHash, &p.FullName, &p.Role, &createdAt); err != nil {
		return nil, err
	}
	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	p.CreatedAt = t
	return p, nil
}

// List returns every principal of the given role ordered by creation time.
func (r *SQLitePrincipalRepository) List(ctx context.Context, role model.Role) ([]model.Principal, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sqlitePrincipalColumns+` FROM `+table+` ORDER BY created_at, full_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	principals := []model.Principal{}
	for rows.Next() {
		p, err := scanSQLitePrincipal(rows)
		if err != nil {
			return nil, err
		}
		principals = append(principals, *p)
	}
	return principals, rows.Err()
}

// GetByID retrieves a principal by ID.
func (r *SQLitePrincipalRepository) GetByID(ctx context.Context, role model.Role, id string) (*model.Principal, error) {
	return r.getOne(ctx, role, "id", id)
}

// GetByEmail retrieves a principal by its unique email.
func (r *SQLitePrincipalRepository) GetByEmail(ctx context.Context, role model.Role, email string) (*model.Principal, error) {
	return r.getOne(ctx, role, "email", email)
}

// GetByFullName retrieves the first principal with the given full name.
func (r *SQLitePrincipalRepository) GetByFullName(ctx context.Context, role model.Role, fullName string) (*model.Principal, error) {
	return r.getOne(ctx, role, "full_name", fullName)
}

func (r *SQLitePrincipalRepository) getOne(ctx context.Context, role model.Role, column, value string) (*model.Principal, error) {
	table, err := tableFor(role)
	if err != nil {
		return nil, err
	}

	row := r.db.QueryRowContext(ctx,
		`SELECT `+sqlitePrincipalColumns+` FROM `+table+` WHERE `+column+` = ? LIMIT 1`, value)
	p, err := scanSQLitePrincipal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// Create inserts a new principal.
func (r *SQLitePrincipalRepository) Create(ctx context.Context, p *model.Principal) error {
	table, err := tableFor(p.Role)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	createdAt := time.Now().UTC()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO `+table+` (id, email, password_hash, full_name, role, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, p.Email, p.PasswordHash, p.FullName, string(p.Role), createdAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return mapSQLiteError(err)
	}

	p.ID = id
	p.CreatedAt = createdAt
	return nil
}

// Update writes email, full name and password hash of an existing principal.
func (r *SQLitePrincipalRepository) Update(ctx context.Context, p *model.Principal) error {
	table, err := tableFor(p.Role)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx,
		`UPDATE `+table+` SET email = ?, full_name = ?, password_hash = ? WHERE id = ?`,
		p.Email, p.FullName, p.PasswordHash, p.ID,
	)
	if err != nil {
		return mapSQLiteError(err)
	}
	return requireAffected(res)
}

// Delete removes a principal by ID.
func (r *SQLitePrincipalRepository) Delete(ctx context.Context, role model.Role, id string) error {
	table, err := tableFor(role)
	if err != nil {
		return err
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// Count returns the number of principals of the given role.
func (r *SQLitePrincipalRepository) Count(ctx context.Context, role model.Role) (int, error) {
	table, err := tableFor(role)
	if err != nil {
		return 0, err
	}

	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", table, err)
	}
	return n, nil
}

// Ping checks database connectivity.
func (r *SQLitePrincipalRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func requireAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func mapSQLiteError(err error) error {
	var se *sqlite.Error
	if errors.As(err, &se) && se.Code()&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(se.Error(), "UNIQUE") {
		return ErrDuplicate
	}
	return err
}
