package httpserver

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/logging"
)

var errorStatus = []struct {
	err    error
	status int
}{
	{domain.ErrNotAuthenticated, http.StatusForbidden},
	{domain.ErrInvalidScheme, http.StatusForbidden},
	{domain.ErrInvalidToken, http.StatusForbidden},
	{domain.ErrAccessTokenRequired, http.StatusForbidden},
	{domain.ErrRefreshTokenRequired, http.StatusForbidden},
	{domain.ErrInsufficientRole, http.StatusForbidden},
	{domain.ErrUserAlreadyExists, http.StatusConflict},
	{domain.ErrTagAlreadyExists, http.StatusConflict},
	{domain.ErrInvalidCredentials, http.StatusBadRequest},
	{domain.ErrPasswordsMismatch, http.StatusBadRequest},
	{domain.ErrValidation, http.StatusBadRequest},
	{domain.ErrUserNotFound, http.StatusNotFound},
	{domain.ErrBookNotFound, http.StatusNotFound},
	{domain.ErrReviewNotFound, http.StatusNotFound},
	{domain.ErrTagNotFound, http.StatusNotFound},
	{domain.ErrVerificationFailed, http.StatusInternalServerError},
}

// StatusFor maps an error to its HTTP status and client-facing message.
// Unknown errors become a bare 500 so internals never leak.
func StatusFor(err error) (int, any) {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, he.Message
	}
	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			return m.status, m.err.Error()
		}
	}
	return http.StatusInternalServerError, "internal server error"
}

// ErrorHandler is the echo.HTTPErrorHandler for the service. Every error a
// handler or middleware returns is rendered here.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, msg := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logging.FromContext(c.Request().Context()).Error("request_failed", "status", status, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(status)
		return
	}
	_ = c.JSON(status, echo.Map{"message": msg})
}
