package model

import "strings"

// Role identifies which principal table an account lives in.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
)

// Roles lists every known role in display order.
var Roles = []Role{RoleAdmin, RoleTeacher}

// ParseRole normalizes user input ("ADMIN", " Teacher ") into a Role.
// The second return value is false for anything other than admin or teacher.
func ParseRole(raw string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	return r, r.Valid()
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleTeacher
}

// Label is the capitalized name used in user-facing messages.
func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleTeacher:
		return "Teacher"
	default:
		return string(r)
	}
}

// Table returns the table holding principals of this role.
func (r Role) Table() string {
	switch r {
	case RoleAdmin:
		return "admins"
	case RoleTeacher:
		return "teachers"
	default:
		return ""
	}
}
