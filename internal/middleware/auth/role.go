package auth

import (
	"context"
	"slices"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/logging"
	"github.com/Skotchmaster/bookly/internal/models"
)

type UserFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// CurrentUser resolves the account behind the verified claims. It must run
// after Guard.Require.
func CurrentUser(users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := ClaimsFrom(c)
			if !ok {
				return domain.ErrNotAuthenticated
			}

			user, err := users.FindByEmail(c.Request().Context(), claims.User.Email)
			if err != nil {
				return err
			}

			c.Set(ctxUser, user)
			return next(c)
		}
	}
}

// RoleChecker passes only users whose role is one of allowed.
func RoleChecker(allowed ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFrom(c)
			if !ok {
				return domain.ErrNotAuthenticated
			}
			if !slices.Contains(allowed, user.Role) {
				logging.FromContext(c.Request().Context()).Warn("role_denied",
					"status", 403, "role", user.Role, "allowed", allowed)
				return domain.ErrInsufficientRole
			}
			return next(c)
		}
	}
}
