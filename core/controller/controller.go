package controller

import (
	"net/http"
	"time"

	"creator-ledger/core/errors"
	"creator-ledger/core/logger"

	"github.com/labstack/echo/v4"
)

// Response types
type (
	SuccessResponse struct {
		Status    int       `json:"status"`
		Message   string    `json:"message"`
		Data      any       `json:"data,omitempty"`
		Timestamp time.Time `json:"timestamp"`
	}

	// ErrorResponse is the only error shape that leaves the service.
	ErrorResponse struct {
		Error string           `json:"error"`
		Code  errors.ErrorCode `json:"code,omitempty"`
	}
)

type BaseController interface {
	BadRequest(appErrCode errors.ErrorCode, message string) *echo.HTTPError
	InternalServerError(appErrCode errors.ErrorCode, message string) *echo.HTTPError
	NotFound(appErrCode errors.ErrorCode, message string) *echo.HTTPError
	Unauthorized(appErrCode errors.ErrorCode, message string) *echo.HTTPError
	SuccessResponse(c echo.Context, data any, message string) error
	ErrorResponse(c echo.Context, err error) error
}

type responseHandler struct{}

func NewBaseController() BaseController {
	return &responseHandler{}
}

func NewSuccessResponse(httpStatusCode int, data any, message string) *SuccessResponse {
	return &SuccessResponse{
		Status:    httpStatusCode,
		Message:   message,
		Data:      data,
		Timestamp: time.Now(),
	}
}

func NewErrorResponse(httpStatusCode int, appErrCode errors.ErrorCode, message string) *echo.HTTPError {
	return echo.NewHTTPError(httpStatusCode, &ErrorResponse{Error: message, Code: appErrCode})
}

func (h *responseHandler) BadRequest(appErrCode errors.ErrorCode, message string) *echo.HTTPError {
	return NewErrorResponse(http.StatusBadRequest, appErrCode, message)
}

func (h *responseHandler) InternalServerError(appErrCode errors.ErrorCode, message string) *echo.HTTPError {
	return NewErrorResponse(http.StatusInternalServerError, appErrCode, message)
}

func (h *responseHandler) NotFound(appErrCode errors.ErrorCode, message string) *echo.HTTPError {
	return NewErrorResponse(http.StatusNotFound, appErrCode, message)
}

func (h *responseHandler) Unauthorized(appErrCode errors.ErrorCode, message string) *echo.HTTPError {
	return NewErrorResponse(http.StatusUnauthorized, appErrCode, message)
}

func (h *responseHandler) SuccessResponse(c echo.Context, data any, message string) error {
	return c.JSON(http.StatusOK, NewSuccessResponse(http.StatusOK, data, message))
}

func (h *responseHandler) ErrorResponse(c echo.Context, err error) error {
	status, body := Resolve(err)
	logger.Error("BaseController:ErrorResponse",
		"status", status,
		"code", body.Code,
		"message", body.Error,
	)
	return c.JSON(status, body)
}

// StatusFor maps application codes to HTTP statuses.
func StatusFor(code errors.ErrorCode) int {
	switch {
	case code.IsValidation():
		return http.StatusBadRequest
	}
	switch code {
	case errors.ErrUnauthorized, errors.ErrTokenExpired, errors.ErrInvalidTokenFormat, errors.ErrMissingAuthorizationHeader:
		return http.StatusUnauthorized
	case errors.ErrForbidden:
		return http.StatusForbidden
	case errors.ErrNotFound:
		return http.StatusNotFound
	case errors.ErrAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Resolve turns any error into a status and the uniform {error} body.
func Resolve(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, &ErrorResponse{Error: "internal server error", Code: errors.ErrInternalServer}
	}

	var appErr *errors.AppError
	if errors.As(err, &appErr) && appErr != nil {
		msg := appErr.Message
		if msg == "" {
			msg = "internal server error"
		}
		return StatusFor(appErr.Code), &ErrorResponse{Error: msg, Code: appErr.Code}
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		switch m := httpErr.Message.(type) {
		case *ErrorResponse:
			return httpErr.Code, m
		case string:
			return httpErr.Code, &ErrorResponse{Error: m}
		default:
			return httpErr.Code, &ErrorResponse{Error: http.StatusText(httpErr.Code)}
		}
	}

	return http.StatusInternalServerError, &ErrorResponse{Error: "internal server error", Code: errors.ErrInternalServer}
}

// HTTPErrorHandler is installed on the echo instance so nothing escapes without the {error} shape.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	status, body := Resolve(err)
	if status >= http.StatusInternalServerError {
		logger.Error("HTTP:Error", "path", c.Path(), "status", status, "error", err)
	}
	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	if writeErr := c.JSON(status, body); writeErr != nil {
		logger.Error("HTTP:Error:Write", "error", writeErr)
	}
}
