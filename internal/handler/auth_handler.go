package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/srsedu/registrar-backend/internal/middleware"
	"github.com/srsedu/registrar-backend/internal/model"
	"github.com/srsedu/registrar-backend/internal/response"
	"github.com/srsedu/registrar-backend/internal/service"
	"github.com/srsedu/registrar-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService *service.AuthService
	log         zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		log:         log.With().Str("handler", "auth").Logger(),
	}
}

// Login godoc
// POST /api/auth/login
// Checks email + password against the table selected by role and returns a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		code := response.ErrValidation
		if req.Email == "" || req.Password == "" || req.Role == "" {
			code = response.ErrMissingCredentials
		}
		response.FailWithFields(c, http.StatusBadRequest, code, fields)
		return
	}

	role, ok := model.ParseRole(req.Role)
	if !ok {
		response.Fail(c, http.StatusBadRequest, response.ErrInvalidRole)
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password, role)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		h.log.Error().Err(err).Str("role", string(role)).Msg("Login failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessFlat(c, http.StatusOK, gin.H{
		"token":     res.Token,
		"expiresAt": res.ExpiresAt,
		"user":      res.User,
	})
}

// Verify godoc
// GET /api/auth/verify
// Returns the identity behind the bearer token, reloaded from its table.
func (h *AuthHandler) Verify(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	p, err := h.authService.CurrentUser(c.Request.Context(), claims)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Fail(c, http.StatusUnauthorized, response.ErrUserNotFound)
			return
		}
		h.log.Error().Err(err).Str("user_id", claims.UserID).Msg("Verify failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.SuccessFlat(c, http.StatusOK, gin.H{"user": p.Info()})
}

// Logout godoc
// POST /api/auth/logout
// Tokens are stateless; the client discards its copy. Always succeeds once authenticated.
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims := middleware.GetClaims(c); claims != nil {
		h.log.Info().Str("user_id", claims.UserID).Str("role", string(claims.Role)).Msg("Logout")
	}
	response.SuccessWithMessage(c, http.StatusOK, "Logged out successfully", nil)
}
