package apperror

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// codes names the statuses echo itself produces (routing, binding, limits).
var codes = map[int]string{
	http.StatusUnauthorized:          "unauthorized",
	http.StatusForbidden:             "forbidden",
	http.StatusNotFound:              "not_found",
	http.StatusMethodNotAllowed:      "method_not_allowed",
	http.StatusBadRequest:            "bad_request",
	http.StatusConflict:              "conflict",
	http.StatusRequestEntityTooLarge: "payload_too_large",
	http.StatusUnsupportedMediaType:  "unsupported_media_type",
	http.StatusTooManyRequests:       "rate_limited",
}

// Status is the HTTP status err is answered with.
func Status(err error) int {
	status, _ := render(err)
	return status
}

func render(err error) (int, Body) {
	var he *echo.HTTPError
	if errors.As(err, &he) && !errors.As(err, new(*Error)) {
		body := ErrInternal.body()
		if name, ok := codes[he.Code]; ok {
			body.Code = name
		}
		if msg, ok := he.Message.(string); ok {
			body.Message = msg
		}
		return he.Code, body
	}
	return Resolve(err)
}

// HTTPErrorHandler renders every error as an Envelope. Server errors are logged.
func HTTPErrorHandler(log *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				slog.Int("status", status),
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.String("error", err.Error()))
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, Envelope{Error: body})
	}
}
