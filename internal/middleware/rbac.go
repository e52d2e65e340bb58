package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/srsedu/registrar-backend/internal/model"
	"github.com/srsedu/registrar-backend/internal/response"
	"github.com/srsedu/registrar-backend/internal/service"
)

// RequireRoles allows the request through only for the listed roles.
// Must run after Authenticate; requests without claims are forbidden.
func RequireRoles(roles ...model.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := service.Authorize(GetClaims(c), roles...); err != nil {
			response.AbortFail(c, http.StatusForbidden, response.ErrForbidden)
			return
		}
		c.Next()
	}
}

// RequirePermission allows the request through for roles granting perm.
func RequirePermission(perm model.Permission) gin.HandlerFunc {
	return RequireRoles(service.AllowedRoles(perm)...)
}
