package errors

import (
	"errors"
	"fmt"
)

// Domain errors - Sentinel errors for use with errors.Is()
var (
	ErrInvalidRequest      = errors.New("invalid request")
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrInvalidCode         = errors.New("invalid access code")
	ErrInvalidState        = errors.New("invalid lifecycle state")
	ErrExpired             = errors.New("resource expired")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrConflict            = errors.New("resource already exists")
	ErrInternalServer      = errors.New("internal server error")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrEmailExists         = errors.New("email already exists")
)

// Custom error type with context
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Constructors
func InvalidRequest(msg string) *AppError {
	return &AppError{Code: "INVALID_REQUEST", Message: msg, Err: ErrInvalidRequest}
}

func NotFound(msg string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: msg, Err: ErrNotFound}
}

func Unauthorized(msg string) *AppError {
	return &AppError{Code: "UNAUTHORIZED", Message: msg, Err: ErrUnauthorized}
}

func Forbidden(msg string) *AppError {
	return &AppError{Code: "FORBIDDEN", Message: msg, Err: ErrForbidden}
}

func InvalidCode(msg string) *AppError {
	return &AppError{Code: "INVALID_CODE", Message: msg, Err: ErrInvalidCode}
}

func InvalidState(msg string) *AppError {
	return &AppError{Code: "INVALID_STATE", Message: msg, Err: ErrInvalidState}
}

func Expired(msg string) *AppError {
	return &AppError{Code: "EXPIRED", Message: msg, Err: ErrExpired}
}

func UpstreamUnavailable(msg string, err error) *AppError {
	if err == nil {
		return &AppError{Code: "UPSTREAM_UNAVAILABLE", Message: msg, Err: ErrUpstreamUnavailable}
	}
	return &AppError{Code: "UPSTREAM_UNAVAILABLE", Message: msg, Err: fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)}
}

func Conflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Err: ErrConflict}
}

func InternalServer(msg string, err error) *AppError {
	return &AppError{Code: "INTERNAL_SERVER_ERROR", Message: msg, Err: err}
}

func InvalidCredentials() *AppError {
	return &AppError{Code: "INVALID_CREDENTIALS", Message: "invalid email or password", Err: ErrInvalidCredentials}
}
