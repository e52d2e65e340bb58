package model

// Permission represents a string code for a specific system action.
type Permission string

const (
	// PermissionAdminsRead allows viewing admin lists and details.
	PermissionAdminsRead Permission = "admins:read"

	// PermissionAdminsWrite allows creating, updating, and deleting admins.
	PermissionAdminsWrite Permission = "admins:write"

	// PermissionTeachersRead allows viewing teacher lists and details.
	PermissionTeachersRead Permission = "teachers:read"

	// PermissionTeachersWrite allows creating, updating, and deleting teachers.
	PermissionTeachersWrite Permission = "teachers:write"
)

// ReadPermission returns the read permission for the table of role r.
func ReadPermission(r Role) Permission {
	return Permission(r.Table() + ":read")
}

// WritePermission returns the write permission for the table of role r.
func WritePermission(r Role) Permission {
	return Permission(r.Table() + ":write")
}
