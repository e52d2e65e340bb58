package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/srsedu/registrar-backend/internal/model"
	"github.com/srsedu/registrar-backend/internal/repository"
)

// AuthService verifies credentials and resolves token holders.
type AuthService struct {
	repo   repository.PrincipalRepository
	hasher *PasswordHasher
	tokens *TokenService
	log    zerolog.Logger

	// dummyHash is compared against on unknown emails so both failure paths cost one bcrypt check.
	dummyHash string
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo repository.PrincipalRepository, hasher *PasswordHasher, tokens *TokenService, log zerolog.Logger) *AuthService {
	dummy, err := hasher.Hash("srs-dummy-password")
	if err != nil {
		log.Warn().Err(err).Msg("Failed to prepare dummy hash")
	}
	return &AuthService{
		repo:      repo,
		hasher:    hasher,
		tokens:    tokens,
		log:       log.With().Str("component", "auth").Logger(),
		dummyHash: dummy,
	}
}

// Login checks email and password against the table selected by role and issues a token.
// An unknown email and a wrong password both return ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string, role model.Role) (*model.LoginResult, error) {
	if !role.Valid() {
		return nil, ErrInvalidRole
	}
	email = NormalizeEmail(email)

	s.log.Debug().Str("email", email).Str("role", string(role)).Msg("Login attempt")

	p, err := s.repo.GetByEmail(ctx, role, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.Compare(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load principal: %w", err)
	}

	if !s.hasher.Compare(password, p.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(p.Info())
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", p.ID).Str("role", string(p.Role)).Msg("Login succeeded")

	return &model.LoginResult{Token: token, ExpiresAt: expiresAt, User: p.Info()}, nil
}

// Authenticate verifies a bearer token.
func (s *AuthService) Authenticate(token string) (*Claims, error) {
	return s.tokens.Verify(token)
}

// CurrentUser reloads the token holder from its table.
// Returns ErrNotFound once the account has been deleted.
func (s *AuthService) CurrentUser(ctx context.Context, claims *Claims) (*model.Principal, error) {
	if claims == nil {
		return nil, ErrInvalidToken
	}
	p, err := s.repo.GetByID(ctx, claims.Role, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load principal: %w", err)
	}
	return p, nil
}

// NormalizeEmail trims and lowercases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
