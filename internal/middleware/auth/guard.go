package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/bookly/internal/blocklist"
	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/logging"
	"github.com/Skotchmaster/bookly/internal/tokens"
)

// Kind selects which token variant a route accepts.
type Kind int

const (
	Access Kind = iota
	Refresh
)

func (k Kind) String() string {
	if k == Refresh {
		return "refresh"
	}
	return "access"
}

type Guard struct {
	Codec     *tokens.Codec
	Blocklist blocklist.Store
}

func NewGuard(codec *tokens.Codec, store blocklist.Store) *Guard {
	return &Guard{Codec: codec, Blocklist: store}
}

// Check validates a raw token: signature and expiry, then revocation, then
// variant. Revoked and undecodable tokens are indistinguishable to callers.
func (g *Guard) Check(ctx context.Context, raw string, kind Kind) (*tokens.Claims, error) {
	claims, ok := g.Codec.Decode(ctx, raw)
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	revoked, err := g.Blocklist.Contains(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		logging.FromContext(ctx).Warn("auth_failed", "status", 403, "reason", "token revoked", "jti", claims.ID)
		return nil, domain.ErrInvalidToken
	}

	switch {
	case kind == Access && claims.Refresh:
		return nil, domain.ErrAccessTokenRequired
	case kind == Refresh && !claims.Refresh:
		return nil, domain.ErrRefreshTokenRequired
	}
	return claims, nil
}

// Require guards a route with the given token variant and stores the
// verified claims on the context.
func (g *Guard) Require(kind Kind) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			l := logging.FromContext(ctx).With("mw", "auth."+kind.String())

			raw, err := BearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				l.Warn("auth_failed", "status", 403, "reason", err.Error())
				return err
			}

			claims, err := g.Check(ctx, raw, kind)
			if err != nil {
				l.Warn("auth_failed", "reason", err.Error())
				return err
			}

			c.Set(ctxClaims, claims)
			return next(c)
		}
	}
}

// BearerToken extracts the credentials of an "Authorization: Bearer <token>"
// header. The scheme is case-insensitive.
func BearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", domain.ErrNotAuthenticated
	}
	scheme, token, found := strings.Cut(header, " ")
	if !strings.EqualFold(scheme, "bearer") {
		return "", domain.ErrInvalidScheme
	}
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return "", domain.ErrNotAuthenticated
	}
	return token, nil
}
