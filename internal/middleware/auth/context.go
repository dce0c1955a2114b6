package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookly/internal/models"
	"github.com/Skotchmaster/bookly/internal/tokens"
)

const (
	ctxClaims = "auth.claims"
	ctxUser   = "auth.user"
)

func ClaimsFrom(c echo.Context) (*tokens.Claims, bool) {
	claims, ok := c.Get(ctxClaims).(*tokens.Claims)
	return claims, ok && claims != nil
}

func UserFrom(c echo.Context) (*models.User, bool) {
	user, ok := c.Get(ctxUser).(*models.User)
	return user, ok && user != nil
}
