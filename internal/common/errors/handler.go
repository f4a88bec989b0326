// internal/common/errors/handler.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the JSON body written for every failed request.
type ErrorResponse struct {
	Detail string    `json:"detail"`
	Code   ErrorCode `json:"code"`
}

// ErrorHandler turns handler errors into JSON error responses.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// HandleHTTPError has the echo.HTTPErrorHandler signature.
func (h *ErrorHandler) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	stdErr := h.normalizeError(err)
	status := stdErr.HTTPStatus()

	h.logError(c, stdErr, status)

	body := ErrorResponse{Detail: stdErr.Message, Code: stdErr.Code}
	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		h.logger.Error("failed to write error response", map[string]interface{}{
			"error": writeErr.Error(),
		})
	}
}

// normalizeError ensures we always have a StandardError
func (h *ErrorHandler) normalizeError(err error) *StandardError {
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}

	var httpErr *echo.HTTPError
	if stderrors.As(err, &httpErr) {
		code := ErrCodeInternal
		switch {
		case httpErr.Code == http.StatusNotFound:
			code = ErrCodeRouteNotFound
		case httpErr.Code == http.StatusMethodNotAllowed:
			code = ErrCodeMethodNotAllowed
		case httpErr.Code >= 400 && httpErr.Code < 500:
			code = ErrCodeBadRequest
		}
		return &StandardError{
			Code:      code,
			Message:   fmt.Sprint(httpErr.Message),
			Timestamp: time.Now().UTC(),
			Status:    httpErr.Code,
		}
	}

	return NewInternalError(err)
}

func (h *ErrorHandler) logError(c echo.Context, stdErr *StandardError, status int) {
	fields := map[string]interface{}{
		"errorCode": string(stdErr.Code),
		"message":   stdErr.Message,
		"details":   stdErr.Details,
		"status":    status,
		"method":    c.Request().Method,
		"path":      c.Request().URL.Path,
		"requestId": c.Response().Header().Get(echo.HeaderXRequestID),
	}
	for k, v := range stdErr.Metadata {
		if _, taken := fields[k]; !taken {
			fields[k] = v
		}
	}
	if status < http.StatusInternalServerError {
		h.logger.Warn("request rejected", fields)
		return
	}
	h.logger.Error("request failed", fields)
}
