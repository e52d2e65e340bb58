package client

import (
	"context"
	"errors"

	"github.com/srsedu/registrar-backend/internal/model"
)

var (
	// ErrLoginRequired means the caller should be sent to the login flow.
	ErrLoginRequired = errors.New("login required")
	// ErrAlreadyAuthenticated means the caller should skip the login flow.
	ErrAlreadyAuthenticated = errors.New("already authenticated")
)

// Guard gates commands on the cached session.
type Guard struct {
	client *Client
}

// NewGuard creates a Guard over client.
func NewGuard(client *Client) *Guard {
	return &Guard{client: client}
}

// RequireAuth verifies the cached token with the server.
// Any failure clears the session and returns ErrLoginRequired.
func (g *Guard) RequireAuth(ctx context.Context) (*model.UserInfo, error) {
	user, err := g.client.Verify(ctx)
	if err != nil {
		_ = g.client.store.Clear()
		return nil, errors.Join(ErrLoginRequired, err)
	}
	return user, nil
}

// RequireGuest fails with ErrAlreadyAuthenticated when a token is cached.
// It does not contact the server.
func (g *Guard) RequireGuest() error {
	s, err := g.client.store.Load()
	if err != nil {
		return err
	}
	if s != nil && s.Token != "" {
		return ErrAlreadyAuthenticated
	}
	return nil
}
