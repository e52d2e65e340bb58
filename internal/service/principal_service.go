package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/srsedu/registrar-backend/internal/model"
	"github.com/srsedu/registrar-backend/internal/repository"
)

const minPasswordLength = 8

// maxPasswordBytes is bcrypt's input limit. Counted in bytes, not runes.
const maxPasswordBytes = 72

// PrincipalService manages admin and teacher accounts.
type PrincipalService struct {
	repo   repository.PrincipalRepository
	hasher *PasswordHasher
	log    zerolog.Logger
}

// NewPrincipalService creates a new PrincipalService.
func NewPrincipalService(repo repository.PrincipalRepository, hasher *PasswordHasher, log zerolog.Logger) *PrincipalService {
	return &PrincipalService{
		repo:   repo,
		hasher: hasher,
		log:    log.With().Str("component", "principals").Logger(),
	}
}

// List returns all principals of role.
func (s *PrincipalService) List(ctx context.Context, role model.Role) ([]model.Principal, error) {
	return s.repo.List(ctx, role)
}

// Get returns one principal of role by ID.
func (s *PrincipalService) Get(ctx context.Context, role model.Role, id string) (*model.Principal, error) {
	p, err := s.repo.GetByID(ctx, role, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return p, nil
}

// Count returns the number of principals of role.
func (s *PrincipalService) Count(ctx context.Context, role model.Role) (int, error) {
	return s.repo.Count(ctx, role)
}

// Create validates req, hashes the password and stores a new principal of role.
func (s *PrincipalService) Create(ctx context.Context, role model.Role, req model.CreatePrincipalRequest) (*model.Principal, error) {
	if fields := validateInput(role, req.FullName, &req.Password, req.Role); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	fullName := strings.TrimSpace(req.FullName)
	if err := s.ensureUniqueName(ctx, role, fullName, ""); err != nil {
		return nil, err
	}

	p := &model.Principal{
		Email:    NormalizeEmail(req.Email),
		FullName: fullName,
		Role:     role,
	}
	if err := s.hashPassword(p, req.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, mapRepoError(err)
	}

	s.log.Info().Str("id", p.ID).Str("role", string(role)).Msg("Principal created")
	return p, nil
}

// Update applies the non-nil fields of req to the principal id of role.
// Validation runs against the merged values; the password is rehashed only when supplied.
func (s *PrincipalService) Update(ctx context.Context, role model.Role, id string, req model.UpdatePrincipalRequest) (*model.Principal, error) {
	p, err := s.repo.GetByID(ctx, role, id)
	if err != nil {
		return nil, mapRepoError(err)
	}

	fullName := p.FullName
	if req.FullName != nil {
		fullName = *req.FullName
	}
	roleField := ""
	if req.Role != nil {
		roleField = *req.Role
	}

	if fields := validateInput(role, fullName, req.Password, roleField); fields != nil {
		return nil, &ValidationError{Fields: fields}
	}

	fullName = strings.TrimSpace(fullName)
	if fullName != p.FullName {
		if err := s.ensureUniqueName(ctx, role, fullName, p.ID); err != nil {
			return nil, err
		}
		p.FullName = fullName
	}
	if req.Email != nil {
		p.Email = NormalizeEmail(*req.Email)
	}
	if req.Password != nil {
		if err := s.hashPassword(p, *req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, mapRepoError(err)
	}

	s.log.Info().Str("id", p.ID).Str("role", string(role)).Msg("Principal updated")
	return p, nil
}

// Delete removes the principal id of role. An actor cannot delete its own account.
func (s *PrincipalService) Delete(ctx context.Context, actor *Claims, role model.Role, id string) error {
	if actor != nil && actor.Role == role && sameID(actor.UserID, id) {
		return ErrSelfDelete
	}
	if err := s.repo.Delete(ctx, role, id); err != nil {
		return mapRepoError(err)
	}

	s.log.Info().Str("id", id).Str("role", string(role)).Msg("Principal deleted")
	return nil
}

// hashPassword is the pre-persist step that replaces the plain password with its hash.
func (s *PrincipalService) hashPassword(p *model.Principal, plain string) error {
	hash, err := s.hasher.Hash(plain)
	if err != nil {
		return err
	}
	p.PasswordHash = hash
	return nil
}

func (s *PrincipalService) ensureUniqueName(ctx context.Context, role model.Role, fullName, selfID string) error {
	existing, err := s.repo.GetByFullName(ctx, role, fullName)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("check full name: %w", err)
	case existing.ID != selfID:
		return ErrDuplicateName
	}
	return nil
}

// validateInput checks the fields shared by create and update.
// A nil password means "unchanged" and is not checked.
func validateInput(role model.Role, fullName string, password *string, roleField string) map[string]string {
	fields := map[string]string{}

	if strings.TrimSpace(fullName) == "" {
		fields["fullName"] = "Full name is required"
	}
	if password != nil && len(*password) < minPasswordLength {
		fields["password"] = fmt.Sprintf("Password must be at least %d characters long", minPasswordLength)
	} else if password != nil && len(*password) > maxPasswordBytes {
		fields["password"] = fmt.Sprintf("Password must be at most %d bytes long", maxPasswordBytes)
	}
	if roleField != "" {
		if r, _ := model.ParseRole(roleField); r != role {
			fields["role"] = "Role must be " + strings.ToUpper(string(role))
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return fields
}

// sameID compares two principal ids. UUIDs compare by value so that
// uppercase or braced spellings of the same id match.
func sameID(a, b string) bool {
	ua, errA := uuid.Parse(a)
	ub, errB := uuid.Parse(b)
	if errA == nil && errB == nil {
		return ua == ub
	}
	return a == b
}

func mapRepoError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrDuplicateEmail
	default:
		return err
	}
}
