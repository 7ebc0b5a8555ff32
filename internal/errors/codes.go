package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Validation errors
const (
	// ErrCodeInvalidInput indicates the request body failed validation.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Resource errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeAlreadyExists indicates the resource already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	// ErrCodeRolesNotFound indicates none of the requested roles exist.
	ErrCodeRolesNotFound ErrorCode = "ROLES_NOT_FOUND"
	// ErrCodeUserNotFound indicates the referenced user account does not exist.
	ErrCodeUserNotFound ErrorCode = "USER_NOT_FOUND"
)

// Authentication errors
const (
	// ErrCodeInvalidCredential indicates a password mismatch on login.
	ErrCodeInvalidCredential ErrorCode = "INVALID_CREDENTIAL"
	// ErrCodeMissingToken indicates no bearer token was presented.
	ErrCodeMissingToken ErrorCode = "MISSING_TOKEN"
	// ErrCodeInvalidToken indicates the token is malformed or its signature is bad.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"
	// ErrCodeTokenExpired indicates the token lifetime has lapsed.
	ErrCodeTokenExpired ErrorCode = "TOKEN_EXPIRED"
	// ErrCodeUnauthorized indicates the request is unauthorized.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
)

// Internal errors
const (
	// ErrCodeHashing indicates password hashing failed.
	ErrCodeHashing ErrorCode = "HASHING_ERROR"
	// ErrCodeDatabaseError indicates a database error.
	ErrCodeDatabaseError ErrorCode = "DATABASE_ERROR"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeDatabaseError: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
