package middleware

import (
	"errors"
	"strconv"

	"gigmatch/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"
)

// DefaultRetryAfterSeconds is sent with 503 responses that do not set their own.
const DefaultRetryAfterSeconds = 5

type AppError struct {
	StatusCode int
	Message    string
	Data       interface{}
	Cause      error

	RetryAfter int
}

func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func NewAppError(statusCode int, message string, data interface{}, cause error) *AppError {
	return &AppError{StatusCode: statusCode, Message: message, Data: data, Cause: cause}
}

// NewUnavailableError reports a transient dependency failure the client may retry.
func NewUnavailableError(cause error) *AppError {
	return &AppError{
		StatusCode: fiber.StatusServiceUnavailable,
		Message:    response.MessageServiceUnavailable,
		Cause:      cause,
		RetryAfter: DefaultRetryAfterSeconds,
	}
}

type ErrorMiddleware struct {
	logger *zap.Logger
}

func NewErrorMiddleware(logger *zap.Logger) *ErrorMiddleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorMiddleware{logger: logger}
}

func (m *ErrorMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				m.logger.Error("panic recovered", zap.Any("panic", r), zap.String("path", c.Path()), zap.Stack("stack"))
				err = response.Error(c, fiber.StatusInternalServerError, response.MessageInternalServerError, nil)
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		out := normalizeError(err)
		if out.status >= fiber.StatusInternalServerError {
			m.logger.Error("request failed",
				zap.Int("status", out.status),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		if out.retryAfter > 0 {
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(out.retryAfter))
		}
		return response.Error(c, out.status, out.message, out.data)
	}
}

type normalized struct {
	status     int
	message    string
	data       interface{}
	retryAfter int
}

func internalError() normalized {
	return normalized{status: fiber.StatusInternalServerError, message: response.MessageInternalServerError}
}

func normalizeError(err error) normalized {
	if err == nil {
		return internalError()
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.StatusCode <= 0 {
			return internalError()
		}

		status := appErr.StatusCode
		if status == fiber.StatusServiceUnavailable {
			retry := appErr.RetryAfter
			if retry <= 0 {
				retry = DefaultRetryAfterSeconds
			}
			return normalized{status: status, message: response.MessageServiceUnavailable, retryAfter: retry}
		}
		if status >= 500 {
			return internalError()
		}

		msg := appErr.Message
		if msg == "" {
			msg = defaultMessageForStatus(status)
		}
		return normalized{status: status, message: msg, data: appErr.Data}
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		status := fiberErr.Code
		if status <= 0 || status >= 500 {
			return internalError()
		}

		msg := fiberErr.Message
		if msg == "" {
			msg = defaultMessageForStatus(status)
		}
		return normalized{status: status, message: msg}
	}

	return internalError()
}

func defaultMessageForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return response.MessageBadRequest
	case fiber.StatusUnauthorized:
		return response.MessageUnauthorized
	case fiber.StatusForbidden:
		return response.MessageForbidden
	case fiber.StatusNotFound:
		return response.MessageNotFound
	case fiber.StatusConflict:
		return response.MessageConflict
	case fiber.StatusUnprocessableEntity:
		return response.MessageUnprocessableEntity
	case fiber.StatusServiceUnavailable:
		return response.MessageServiceUnavailable
	default:
		if status >= 500 {
			return response.MessageInternalServerError
		}
		return response.MessageError
	}
}
