package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/tasker-app/tasker/internal/domain"
	"go.uber.org/zap"
)

// statusFor maps a domain error code to an HTTP status.
func statusFor(code domain.ErrorCode) int {
	switch code {
	case domain.CodeNotFound:
		return http.StatusNotFound
	case domain.CodeConflict, domain.CodeInvalidState:
		return http.StatusConflict
	case domain.CodeInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler renders every failure in the response envelope. Internal
// causes are logged and never returned to the caller.
func errorHandler(logger *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			status int
			body   envelope
		)
		var he *echo.HTTPError
		if errors.As(err, &he) {
			status = he.Code
			body = envelope{Success: false, Message: http.StatusText(he.Code)}
			if msg, ok := he.Message.(string); ok {
				body.Message = msg
			}
		} else {
			code := domain.CodeOf(err)
			status = statusFor(code)
			body = envelope{Success: false, Message: domain.MessageOf(err), Code: string(code)}
			if code == domain.CodeInternal {
				logger.Error("request failed",
					zap.String("method", c.Request().Method),
					zap.String("path", c.Path()),
					zap.Error(err),
				)
			}
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, body)
		}
		if werr != nil {
			logger.Warn("writing error response", zap.Error(werr))
		}
	}
}
