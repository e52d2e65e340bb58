package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/srsedu/registrar-backend/internal/model"
)

var (
	ErrNotFound    = errors.New("principal not found")
	ErrDuplicate   = errors.New("principal with this email already exists")
	ErrUnknownRole = errors.New("unknown role")
)

// PrincipalRepository is the credential store for admins and teachers.
// Every call is scoped to the table of the given role.
type PrincipalRepository interface {
	List(ctx context.Context, role model.Role) ([]model.Principal, error)
	GetByID(ctx context.Context, role model.Role, id string) (*model.Principal, error)
	GetByEmail(ctx context.Context, role model.Role, email string) (*model.Principal, error)
	GetByFullName(ctx context.Context, role model.Role, fullName string) (*model.Principal, error)
	// Create assigns p.ID and p.CreatedAt. p.Role selects the table.
	Create(ctx context.Context, p *model.Principal) error
	Update(ctx context.Context, p *model.Principal) error
	Delete(ctx context.Context, role model.Role, id string) error
	Count(ctx context.Context, role model.Role) (int, error)
	Ping(ctx context.Context) error
}

// tableFor resolves the table for role from a fixed set, never from input text.
func tableFor(role model.Role) (string, error) {
	if t := role.Table(); t != "" {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
}
