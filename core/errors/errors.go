package errors

import (
	stderrors "errors"
	"fmt"
)

type ErrorCode string

const (
	ErrInternalServer             ErrorCode = "INTERNAL_SERVER_ERROR"
	ErrInvalidInput               ErrorCode = "INVALID_INPUT"
	ErrInvalidRequestData         ErrorCode = "INVALID_REQUEST_DATA"
	ErrUnauthorized               ErrorCode = "UNAUTHORIZED"
	ErrTokenExpired               ErrorCode = "TOKEN_EXPIRED"
	ErrInvalidTokenFormat         ErrorCode = "INVALID_TOKEN_FORMAT"
	ErrMissingAuthorizationHeader ErrorCode = "MISSING_AUTHORIZATION_HEADER"
	ErrForbidden                  ErrorCode = "FORBIDDEN"
	ErrNotFound                   ErrorCode = "NOT_FOUND"
	ErrAlreadyExists              ErrorCode = "ALREADY_EXISTS"
	ErrGetFailed                  ErrorCode = "GET_FAILED"
	ErrCreateFailed               ErrorCode = "CREATE_FAILED"
	ErrUpdateFailed               ErrorCode = "UPDATE_FAILED"

	// Booking flow
	ErrInvalidCreatorAddress ErrorCode = "INVALID_CREATOR_ADDRESS"
	ErrNoSlotsSelected       ErrorCode = "NO_SLOTS_SELECTED"
	ErrSettlementFailed      ErrorCode = "SETTLEMENT_FAILED"
	ErrUpstreamUnavailable   ErrorCode = "UPSTREAM_UNAVAILABLE"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on code so callers can test against a bare &AppError{Code: ...}.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || t == nil {
		return false
	}
	return e.Code == t.Code
}

// IsValidation reports whether the code maps to a 400 response.
func (c ErrorCode) IsValidation() bool {
	switch c {
	case ErrInvalidInput, ErrInvalidRequestData, ErrInvalidCreatorAddress, ErrNoSlotsSelected:
		return true
	}
	return false
}

// CodeOf returns the AppError code carried by err, or ErrInternalServer.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if stderrors.As(err, &appErr) && appErr != nil {
		return appErr.Code
	}
	return ErrInternalServer
}

func New(message string) error {
	return stderrors.New(message)
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target any) bool {
	return stderrors.As(err, target)
}
