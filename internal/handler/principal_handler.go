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

// PrincipalHandler serves CRUD for one principal table (admins or teachers).
type PrincipalHandler struct {
	role    model.Role
	service *service.PrincipalService
	log     zerolog.Logger
}

// NewPrincipalHandler creates a handler bound to the table of role.
func NewPrincipalHandler(role model.Role, svc *service.PrincipalService, log zerolog.Logger) *PrincipalHandler {
	return &PrincipalHandler{
		role:    role,
		service: svc,
		log:     log.With().Str("handler", role.Table()).Logger(),
	}
}

// List godoc
// GET /api/admins, GET /api/teachers
func (h *PrincipalHandler) List(c *gin.Context) {
	principals, err := h.service.List(c.Request.Context(), h.role)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, principals)
}

// Get godoc
// GET /api/admins/:id, GET /api/teachers/:id
func (h *PrincipalHandler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), h.role, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Create godoc
// POST /api/admins, POST /api/teachers
func (h *PrincipalHandler) Create(c *gin.Context) {
	var req model.CreatePrincipalRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	p, err := h.service.Create(c.Request.Context(), h.role, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusCreated, h.role.Label()+" created successfully", p)
}

// Update godoc
// PUT /api/admins/:id, PUT /api/teachers/:id
func (h *PrincipalHandler) Update(c *gin.Context) {
	var req model.UpdatePrincipalRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	p, err := h.service.Update(c.Request.Context(), h.role, c.Param("id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, h.role.Label()+" updated successfully", p)
}

// Delete godoc
// DELETE /api/admins/:id, DELETE /api/teachers/:id
func (h *PrincipalHandler) Delete(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), middleware.GetClaims(c), h.role, c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, h.role.Label()+" deleted successfully", nil)
}

func (h *PrincipalHandler) fail(c *gin.Context, err error) {
	label := h.role.Label()

	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, ve.Fields)
	case errors.Is(err, service.ErrNotFound):
		response.FailWithMessage(c, http.StatusNotFound, response.ErrNotFound, label+" not found")
	case errors.Is(err, service.ErrDuplicateName):
		response.FailWithMessage(c, http.StatusConflict, response.ErrConflict, label+" with this name already exists")
	case errors.Is(err, service.ErrDuplicateEmail):
		response.FailWithMessage(c, http.StatusConflict, response.ErrConflict, label+" with this email already exists")
	case errors.Is(err, service.ErrSelfDelete):
		response.FailWithMessage(c, http.StatusConflict, response.ErrActionForbidden, "You cannot delete your own account")
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
	}
}
