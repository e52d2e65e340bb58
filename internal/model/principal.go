package model

import "time"

// Principal is an authenticated account: an admin or a teacher.
// Role always matches the table the row was loaded from.
type Principal struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"fullName"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserInfo is the public identity returned by login and verify.
type UserInfo struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// Info projects p onto its public identity.
func (p *Principal) Info() UserInfo {
	return UserInfo{ID: p.ID, FullName: p.FullName, Role: p.Role}
}

// CreatePrincipalRequest is the payload for POST /api/admins and /api/teachers.
// Role is optional; when present it must match the target table.
type CreatePrincipalRequest struct {
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,max=72"`
	FullName string `json:"fullName" binding:"required,notblank,max=255"`
	Role     string `json:"role" binding:"omitempty"`
}

// UpdatePrincipalRequest is the payload for PUT /api/admins/:id and /api/teachers/:id.
// Nil fields are left unchanged.
type UpdatePrincipalRequest struct {
	Email    *string `json:"email" binding:"omitempty,email,max=255"`
	Password *string `json:"password" binding:"omitempty,max=72"`
	FullName *string `json:"fullName" binding:"omitempty,max=255"`
	Role     *string `json:"role" binding:"omitempty"`
}
