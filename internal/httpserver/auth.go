package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/logging"
	"github.com/Skotchmaster/bookly/internal/middleware/auth"
	"github.com/Skotchmaster/bookly/internal/service"
	"github.com/Skotchmaster/bookly/internal/transport"
)

type AuthHTTP struct {
	Svc   *service.AuthService
	Users *service.UserService
}

func (h *AuthHTTP) Signup(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.signup")

	var req transport.SignupRequest
	if err := bind(c, &req); err != nil {
		l.Warn("signup_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	user, err := h.Svc.Signup(ctx, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, transport.SignupResult{
		Message: service.MsgAccountCreated,
		User:    user,
	})
}

func (h *AuthHTTP) Verify(c echo.Context) error {
	if err := h.Svc.Verify(c.Request().Context(), c.Param("token")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: service.MsgAccountVerified})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := bind(c, &req); err != nil {
		l.Warn("login_error", "status", 400, "reason", "invalid body", "error", err)
		return err
	}

	res, err := h.Svc.Login(ctx, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *AuthHTTP) Refresh(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return domain.ErrNotAuthenticated
	}

	access, err := h.Svc.Refresh(c.Request().Context(), claims)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.AccessTokenResult{AccessToken: access})
}

func (h *AuthHTTP) Me(c echo.Context) error {
	user, ok := auth.UserFrom(c)
	if !ok {
		return domain.ErrNotAuthenticated
	}

	profile, err := h.Users.Profile(c.Request().Context(), user.Email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	ctx := c.Request().Context()
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return domain.ErrNotAuthenticated
	}

	if err := h.Svc.Logout(ctx, claims); err != nil {
		return err
	}

	logging.FromContext(ctx).Info("logout_success", "jti", claims.ID)
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: service.MsgLoggedOut})
}

func (h *AuthHTTP) PasswordResetRequest(c echo.Context) error {
	var req transport.PasswordResetRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.Svc.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: service.MsgResetRequested})
}

func (h *AuthHTTP) PasswordResetConfirm(c echo.Context) error {
	var req transport.PasswordResetConfirm
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.Svc.ConfirmPasswordReset(c.Request().Context(), c.Param("token"), req); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: service.MsgPasswordReset})
}

func (h *AuthHTTP) SendMail(c echo.Context) error {
	var req transport.EmailRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	if err := h.Svc.SendWelcome(c.Request().Context(), req.Addresses); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, transport.MessageResponse{Message: service.MsgWelcomeMailsSent})
}
