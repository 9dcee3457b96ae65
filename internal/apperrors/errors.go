package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicateEmail indicates that the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// ErrDuplicateUsername indicates that the username is already taken.
var ErrDuplicateUsername = errors.New("username already taken")

// ErrInvalidCredentials is returned for any failed local login attempt.
// Unknown email, passwordless (Google-only) account and wrong password all
// map to this error so callers cannot enumerate accounts.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrTokenExpired indicates that a bearer token is past its expiry.
var ErrTokenExpired = errors.New("token has expired")

// ErrTokenInvalid indicates a malformed token or a bad signature.
var ErrTokenInvalid = errors.New("invalid token")

// ErrMissingToken indicates the Authorization header was absent or malformed.
var ErrMissingToken = errors.New("access token required")

// ErrCorruptHash indicates a stored password hash that bcrypt cannot parse.
var ErrCorruptHash = errors.New("stored password hash is malformed")

// ErrProviderConflict indicates that an account with a matching email is
// already linked to a different provider subject. Linking is one-way and
// permanent, so the attempt is rejected instead of re-linked.
var ErrProviderConflict = errors.New("account already linked to a different google identity")

// ErrExternalIdentity indicates a malformed or unverifiable provider assertion.
var ErrExternalIdentity = errors.New("invalid google token")

// ErrForbidden indicates the authenticated user does not own the resource.
var ErrForbidden = errors.New("forbidden")

// AppError carries an HTTP status code alongside a user-facing message.
// Handlers can serialize it directly as a JSON body.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"message"`
	err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.err
}

// NewBadRequestError creates an AppError with a 400 status.
func NewBadRequestError(msg string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: msg}
}

// NewUnauthorizedError creates an AppError with a 401 status.
func NewUnauthorizedError(msg string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: msg}
}

// NewForbiddenError creates an AppError with a 403 status.
func NewForbiddenError(msg string) *AppError {
	return &AppError{Code: http.StatusForbidden, Message: msg}
}

// NewNotFoundError creates an AppError with a 404 status.
func NewNotFoundError(msg string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: msg}
}

// NewInternalServerError creates an AppError with a 500 status.
func NewInternalServerError(msg string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: msg}
}

// Wrap attaches an underlying cause for errors.Is/As chains.
func (e *AppError) Wrap(err error) *AppError {
	e.err = err
	return e
}

// StatusFor maps the sentinel error taxonomy to an HTTP status code.
// Unknown errors are treated as unexpected store or provider faults.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, ErrValidation),
		errors.Is(err, ErrDuplicateEmail),
		errors.Is(err, ErrDuplicateUsername),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrProviderConflict),
		errors.Is(err, ErrExternalIdentity):
		return http.StatusBadRequest
	case errors.Is(err, ErrMissingToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTokenExpired), errors.Is(err, ErrTokenInvalid), errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
