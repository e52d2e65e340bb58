package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/srsedu/registrar-backend/internal/model"
)

// ErrNotLoggedIn is returned by calls that need a cached token when there is none.
var ErrNotLoggedIn = errors.New("not logged in")

// APIError is a non-2xx response from the server.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

// Client talks to the registrar API and caches the session in a SessionStore.
type Client struct {
	baseURL string
	http    *http.Client
	store   SessionStore
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New creates a Client for the API at baseURL.
func New(baseURL string, store SessionStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		store:   store,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Session returns the cached session, or nil.
func (c *Client) Session() (*Session, error) {
	return c.store.Load()
}

// Login authenticates and caches the returned token and user.
func (c *Client) Login(ctx context.Context, email, password string, role model.Role) (*Session, error) {
	body := map[string]string{"email": email, "password": password, "role": string(role)}

	var out struct {
		Token string         `json:"token"`
		User  model.UserInfo `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &out); err != nil {
		return nil, err
	}

	s := &Session{Token: out.Token, User: out.User}
	if err := c.store.Save(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Verify asks the server whether the cached token is still good.
// Any failure clears the cached session.
func (c *Client) Verify(ctx context.Context) (*model.UserInfo, error) {
	s, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNotLoggedIn
	}

	var out struct {
		User model.UserInfo `json:"user"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/auth/verify", s.Token, nil, &out); err != nil {
		_ = c.store.Clear()
		return nil, err
	}

	s.User = out.User
	if err := c.store.Save(s); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// Logout tells the server (best effort) and always clears the cached session.
func (c *Client) Logout(ctx context.Context) error {
	s, err := c.store.Load()
	if err == nil && s != nil {
		_ = c.do(ctx, http.MethodPost, "/api/auth/logout", s.Token, nil, nil)
	}
	return c.store.Clear()
}

// Admins lists admins. Requires an admin session.
func (c *Client) Admins(ctx context.Context) ([]model.Principal, error) {
	return c.listPrincipals(ctx, "/api/admins")
}

// Teachers lists teachers.
func (c *Client) Teachers(ctx context.Context) ([]model.Principal, error) {
	return c.listPrincipals(ctx, "/api/teachers")
}

func (c *Client) listPrincipals(ctx context.Context, path string) ([]model.Principal, error) {
	s, err := c.store.Load()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, ErrNotLoggedIn
	}

	var out struct {
		Data []model.Principal `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, path, s.Token, nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// HasRole reports whether the cached user has role. Advisory only; the server decides.
func (c *Client) HasRole(role model.Role) bool {
	return c.HasAnyRole(role)
}

// HasAnyRole reports whether the cached user has one of roles.
func (c *Client) HasAnyRole(roles ...model.Role) bool {
	s, err := c.store.Load()
	if err != nil || s == nil {
		return false
	}
	return slices.Contains(roles, s.User.Role)
}

func (c *Client) do(ctx context.Context, method, path, token string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var env struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &env) == nil {
			apiErr.Code = env.Code
			apiErr.Message = env.Message
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
