package service

import (
	"slices"

	"github.com/srsedu/registrar-backend/internal/model"
)

// rolePermissions is the access matrix. Admins manage both tables;
// teachers may only read the teacher table.
var rolePermissions = map[model.Role][]model.Permission{
	model.RoleAdmin: {
		model.PermissionAdminsRead,
		model.PermissionAdminsWrite,
		model.PermissionTeachersRead,
		model.PermissionTeachersWrite,
	},
	model.RoleTeacher: {
		model.PermissionTeachersRead,
	},
}

// HasPermission reports whether role grants perm.
func HasPermission(role model.Role, perm model.Permission) bool {
	return slices.Contains(rolePermissions[role], perm)
}

// AllowedRoles lists the roles that grant perm.
func AllowedRoles(perm model.Permission) []model.Role {
	var roles []model.Role
	for _, r := range model.Roles {
		if HasPermission(r, perm) {
			roles = append(roles, r)
		}
	}
	return roles
}

// Authorize returns ErrForbidden unless claims carry one of the allowed roles.
// Nil claims are forbidden as well.
func Authorize(claims *Claims, allowed ...model.Role) error {
	if claims == nil || !slices.Contains(allowed, claims.Role) {
		return ErrForbidden
	}
	return nil
}

// AuthorizePermission is Authorize against the roles granting perm.
func AuthorizePermission(claims *Claims, perm model.Permission) error {
	return Authorize(claims, AllowedRoles(perm)...)
}
