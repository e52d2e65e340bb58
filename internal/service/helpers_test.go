package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/srsedu/registrar-backend/internal/database"
	"github.com/srsedu/registrar-backend/internal/model"
	"github.com/srsedu/registrar-backend/internal/repository"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func newTestRepo(t *testing.T) repository.PrincipalRepository {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "srs.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return repository.NewSQLitePrincipalRepository(db)
}

func newTestHasher() *PasswordHasher {
	return NewPasswordHasher(bcrypt.MinCost)
}

func seedPrincipal(t *testing.T, repo repository.PrincipalRepository, role model.Role, email, password, fullName string) *model.Principal {
	t.Helper()
	hash, err := newTestHasher().Hash(password)
	require.NoError(t, err)

	p := &model.Principal{Email: email, PasswordHash: hash, FullName: fullName, Role: role}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
