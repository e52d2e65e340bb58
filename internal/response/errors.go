package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrMissingCredentials ErrCode = "MISSING_CREDENTIALS"
	ErrInvalidRole        ErrCode = "INVALID_ROLE"
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrUserNotFound       ErrCode = "USER_NOT_FOUND"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden ErrCode = "FORBIDDEN"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation ErrCode = "VALIDATION_ERROR"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrRouteNotFound   ErrCode = "ROUTE_NOT_FOUND"
	ErrConflict        ErrCode = "CONFLICT"
	ErrActionForbidden ErrCode = "ACTION_FORBIDDEN"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal    ErrCode = "INTERNAL_ERROR"
	ErrUnavailable ErrCode = "SERVICE_UNAVAILABLE"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrMissingCredentials:
		return "Email, password, and role are required"
	case ErrInvalidRole:
		return "Invalid role. Must be ADMIN or TEACHER"
	case ErrInvalidCredentials:
		return "Invalid credentials"
	case ErrTokenRequired:
		return "No token provided"
	case ErrTokenInvalid:
		return "Invalid or expired token"
	case ErrUserNotFound:
		return "User not found"

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "Insufficient permissions"

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed"

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found"
	case ErrRouteNotFound:
		return "Route not found"
	case ErrConflict:
		return "Resource already exists"
	case ErrActionForbidden:
		return "This action is not allowed"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later"

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "Internal server error"
	case ErrUnavailable:
		return "Service unavailable"
	default:
		return "An unexpected error occurred"
	}
}
