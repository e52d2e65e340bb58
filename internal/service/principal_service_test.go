package service

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/srsedu/registrar-backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPrincipalService(t *testing.T) *PrincipalService {
	t.Helper()
	return NewPrincipalService(newTestRepo(t), newTestHasher(), zerolog.Nop())
}

func strPtr(s string) *string { return &s }

func TestCreateHashesPassword(t *testing.T) {
	svc := newTestPrincipalService(t)

	p, err := svc.Create(context.Background(), model.RoleAdmin, model.CreatePrincipalRequest{
		Email: "a@srs.edu", Password: "adminsrs123", FullName: " Admin SRS ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Admin SRS", p.FullName)
	assert.Equal(t, model.RoleAdmin, p.Role)
	assert.NotEqual(t, "adminsrs123", p.PasswordHash)
	assert.True(t, svc.hasher.Compare("adminsrs123", p.PasswordHash))
}

func TestCreateValidation(t *testing.T) {
	svc := newTestPrincipalService(t)

	_, err := svc.Create(context.Background(), model.RoleTeacher, model.CreatePrincipalRequest{
		Email: "t@srs.edu", Password: "short", FullName: "  ", Role: "ADMIN",
	})

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "fullName")
	assert.Contains(t, ve.Fields, "password")
	assert.Equal(t, "Role must be TEACHER", ve.Fields["role"])

	// 40 runes but 80 bytes: over bcrypt's limit.
	_, err = svc.Create(context.Background(), model.RoleTeacher, model.CreatePrincipalRequest{
		Email: "t@srs.edu", Password: strings.Repeat("é", 40), FullName: "Pedro Garcia",
	})
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Password must be at most 72 bytes long", ve.Fields["password"])

	_, err = svc.Create(context.Background(), model.RoleTeacher, model.CreatePrincipalRequest{
		Email: "t@srs.edu", Password: strings.Repeat("a", 72), FullName: "Pedro Garcia",
	})
	assert.NoError(t, err)
}

func TestCreateAcceptsMatchingRole(t *testing.T) {
	svc := newTestPrincipalService(t)

	_, err := svc.Create(context.Background(), model.RoleTeacher, model.CreatePrincipalRequest{
		Email: "t@srs.edu", Password: "teacher123", FullName: "Pedro Garcia", Role: "TEACHER",
	})
	assert.NoError(t, err)
}

func TestCreateDuplicates(t *testing.T) {
	svc := newTestPrincipalService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, model.RoleAdmin, model.CreatePrincipalRequest{
		Email: "a@srs.edu", Password: "adminsrs123", FullName: "Admin SRS",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, model.RoleAdmin, model.CreatePrincipalRequest{
		Email: "b@srs.edu", Password: "adminsrs123", FullName: "Admin SRS",
	})
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = svc.Create(ctx, model.RoleAdmin, model.CreatePrincipalRequest{
		Email: "A@srs.edu", Password: "adminsrs123", FullName: "Other Admin",
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// Names are unique per table only.
	_, err = svc.Create(ctx, model.RoleTeacher, model.CreatePrincipalRequest{
		Email: "a@srs.edu", Password: "teacher123", FullName: "Admin SRS",
	})
	assert.NoError(t, err)
}

func TestUpdate(t *testing.T) {
	svc := newTestPrincipalService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, model.RoleTeacher, model.CreatePrincipalRequest{
		Email: "t@srs.edu", Password: "teacher123", FullName: "Juan",
	})
	require.NoError(t, err)
	oldHash := p.PasswordHash

	updated, err := svc.Update(ctx, model.RoleTeacher, p.ID, model.UpdatePrincipalRequest{FullName: strPtr("Juan Dela Cruz")})
	require.NoError(t, err)
	assert.Equal(t, "Juan Dela Cruz", updated.FullName)
	assert.Equal(t, oldHash, updated.PasswordHash)

	updated, err = svc.Update(ctx, model.RoleTeacher, p.ID, model.UpdatePrincipalRequest{Password: strPtr("new-password")})
	require.NoError(t, err)
	assert.True(t, svc.hasher.Compare("new-password", updated.PasswordHash))

	_, err = svc.Update(ctx, model.RoleTeacher, p.ID, model.UpdatePrincipalRequest{Password: strPtr("short")})
	var ve *ValidationError
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Update(ctx, model.RoleTeacher, p.ID, model.UpdatePrincipalRequest{Password: strPtr(strings.Repeat("é", 40))})
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Update(ctx, model.RoleTeacher, p.ID, model.UpdatePrincipalRequest{FullName: strPtr("")})
	assert.ErrorAs(t, err, &ve)

	_, err = svc.Update(ctx, model.RoleTeacher, "missing", model.UpdatePrincipalRequest{})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Create(ctx, model.RoleTeacher, model.CreatePrincipalRequest{
		Email: "m@srs.edu", Password: "teacher123", FullName: "Maria Santos",
	})
	require.NoError(t, err)
	_, err = svc.Update(ctx, model.RoleTeacher, p.ID, model.UpdatePrincipalRequest{FullName: strPtr("Maria Santos")})
	assert.ErrorIs(t, err, ErrDuplicateName)
	_, err = svc.Update(ctx, model.RoleTeacher, p.ID, model.UpdatePrincipalRequest{Email: strPtr("m@srs.edu")})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestDelete(t *testing.T) {
	svc := newTestPrincipalService(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, model.RoleAdmin, model.CreatePrincipalRequest{
		Email: "a@srs.edu", Password: "adminsrs123", FullName: "Admin SRS",
	})
	require.NoError(t, err)

	self := &Claims{UserID: p.ID, Role: model.RoleAdmin}
	assert.ErrorIs(t, svc.Delete(ctx, self, model.RoleAdmin, p.ID), ErrSelfDelete)
	assert.ErrorIs(t, svc.Delete(ctx, self, model.RoleAdmin, strings.ToUpper(p.ID)), ErrSelfDelete)
	assert.ErrorIs(t, svc.Delete(ctx, self, model.RoleAdmin, "{"+p.ID+"}"), ErrSelfDelete)

	other := &Claims{UserID: "someone-else", Role: model.RoleAdmin}
	require.NoError(t, svc.Delete(ctx, other, model.RoleAdmin, p.ID))
	assert.ErrorIs(t, svc.Delete(ctx, other, model.RoleAdmin, p.ID), ErrNotFound)

	n, err := svc.Count(ctx, model.RoleAdmin)
	require.NoError(t, err)
	assert.Zero(t, n)
}
