package repository

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/srsedu/registrar-backend/internal/config"
	"github.com/srsedu/registrar-backend/internal/database"
	"github.com/srsedu/registrar-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *SQLitePrincipalRepository {
	t.Helper()
	db, err := database.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "srs.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewSQLitePrincipalRepository(db)
}

func TestSQLiteCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := &model.Principal{Email: "a@srs.edu", PasswordHash: "hash", FullName: "Ada", Role: model.RoleAdmin}
	require.NoError(t, repo.Create(ctx, p))
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, model.RoleAdmin, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Email, got.Email)
	assert.Equal(t, model.RoleAdmin, got.Role)
	assert.Equal(t, "hash", got.PasswordHash)
	assert.True(t, p.CreatedAt.Equal(got.CreatedAt))

	got, err = repo.GetByEmail(ctx, model.RoleAdmin, "a@srs.edu")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	got, err = repo.GetByFullName(ctx, model.RoleAdmin, "Ada")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
}

func TestSQLiteTablesAreSeparate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	admin := &model.Principal{Email: "same@srs.edu", PasswordHash: "h1", FullName: "Admin One", Role: model.RoleAdmin}
	require.NoError(t, repo.Create(ctx, admin))

	_, err := repo.GetByEmail(ctx, model.RoleTeacher, "same@srs.edu")
	assert.ErrorIs(t, err, ErrNotFound)

	// Email uniqueness is per table.
	teacher := &model.Principal{Email: "same@srs.edu", PasswordHash: "h2", FullName: "Teacher One", Role: model.RoleTeacher}
	require.NoError(t, repo.Create(ctx, teacher))

	got, err := repo.GetByEmail(ctx, model.RoleTeacher, "same@srs.edu")
	require.NoError(t, err)
	assert.Equal(t, model.RoleTeacher, got.Role)
	assert.Equal(t, teacher.ID, got.ID)
}

func TestSQLiteDuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Principal{Email: "t@srs.edu", PasswordHash: "h", FullName: "T1", Role: model.RoleTeacher}))
	err := repo.Create(ctx, &model.Principal{Email: "t@srs.edu", PasswordHash: "h", FullName: "T2", Role: model.RoleTeacher})
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestSQLiteUpdateDeleteCountList(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := &model.Principal{Email: "t1@srs.edu", PasswordHash: "h", FullName: "Juan", Role: model.RoleTeacher}
	require.NoError(t, repo.Create(ctx, p))
	require.NoError(t, repo.Create(ctx, &model.Principal{Email: "t2@srs.edu", PasswordHash: "h", FullName: "Maria", Role: model.RoleTeacher}))

	n, err := repo.Count(ctx, model.RoleTeacher)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	p.FullName = "Juan Dela Cruz"
	require.NoError(t, repo.Update(ctx, p))
	got, err := repo.GetByID(ctx, model.RoleTeacher, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Juan Dela Cruz", got.FullName)

	list, err := repo.List(ctx, model.RoleTeacher)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, repo.Delete(ctx, model.RoleTeacher, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, model.RoleTeacher, p.ID), ErrNotFound)
	_, err = repo.GetByID(ctx, model.RoleTeacher, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	missing := &model.Principal{ID: "nope", Email: "x@srs.edu", Role: model.RoleTeacher}
	assert.ErrorIs(t, repo.Update(ctx, missing), ErrNotFound)
}

func TestSQLiteUnknownRole(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.List(context.Background(), model.Role("student"))
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestSQLiteListEmpty(t *testing.T) {
	repo := newTestRepo(t)

	list, err := repo.List(context.Background(), model.RoleAdmin)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestOpenPrincipalRepository(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{DBDriver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "open.db")}

	repo, closeFn, err := OpenPrincipalRepository(ctx, cfg, zerolog.Nop())
	require.NoError(t, err)
	defer closeFn()
	require.NoError(t, repo.Ping(ctx))

	_, _, err = OpenPrincipalRepository(ctx, &config.Config{DBDriver: "mysql"}, zerolog.Nop())
	assert.Error(t, err)
}
