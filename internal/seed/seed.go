// Package seed inserts the initial accounts for a fresh database.
package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/srsedu/registrar-backend/internal/model"
	"github.com/srsedu/registrar-backend/internal/service"
)

// Account is one principal to create.
type Account struct {
	Role     model.Role
	Email    string
	Password string
	FullName string
}

// ProductionAdmin is the only account created in production.
var ProductionAdmin = Account{model.RoleAdmin, "admin@srs.edu", "adminsrs123", "Admin SRS"}

// DevelopmentAccounts are created outside production.
var DevelopmentAccounts = []Account{
	{model.RoleAdmin, "testadmin@srs.edu", "testadmin123", "Test Admin"},
	{model.RoleTeacher, "teacher1@srs.edu", "teacher123", "Juan Dela Cruz"},
	{model.RoleTeacher, "teacher2@srs.edu", "teacher123", "Maria Santos"},
	{model.RoleTeacher, "teacher3@srs.edu", "teacher123", "Pedro Garcia"},
}

// Accounts returns the seed set for the environment.
func Accounts(production bool) []Account {
	if production {
		return []Account{ProductionAdmin}
	}
	return DevelopmentAccounts
}

// Result counts what Run did per role.
type Result struct {
	Created map[model.Role]int
	Skipped map[model.Role]int
}

// Run creates the accounts for the environment. A role whose table already
// has rows is skipped entirely, so running twice is harmless.
func Run(ctx context.Context, svc *service.PrincipalService, production bool, log zerolog.Logger) (*Result, error) {
	res := &Result{Created: map[model.Role]int{}, Skipped: map[model.Role]int{}}
	populated := map[model.Role]bool{}

	for _, role := range model.Roles {
		n, err := svc.Count(ctx, role)
		if err != nil {
			return nil, fmt.Errorf("count %s: %w", role.Table(), err)
		}
		populated[role] = n > 0
	}

	for _, acc := range Accounts(production) {
		if populated[acc.Role] {
			res.Skipped[acc.Role]++
			continue
		}

		p, err := svc.Create(ctx, acc.Role, model.CreatePrincipalRequest{
			Email:    acc.Email,
			Password: acc.Password,
			FullName: acc.FullName,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s %s: %w", acc.Role, acc.Email, err)
		}
		res.Created[acc.Role]++
		log.Info().Str("role", string(p.Role)).Str("email", p.Email).Msg("Seeded account")
	}

	return res, nil
}
