package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Skotchmaster/bookly/internal/logging"
)

const DefaultAccessTTL = 3600 * time.Second

type Config struct {
	Secret    string
	Algorithm string
	AccessTTL time.Duration
}

// Codec signs and verifies access/refresh tokens. It is built once at
// startup and never mutated.
type Codec struct {
	secret    []byte
	method    jwt.SigningMethod
	accessTTL time.Duration
	now       func() time.Time
}

func NewCodec(cfg Config) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, errors.New("tokens: secret is required")
	}
	alg := cfg.Algorithm
	if alg == "" {
		alg = jwt.SigningMethodHS256.Alg()
	}
	method, ok := jwt.GetSigningMethod(alg).(*jwt.SigningMethodHMAC)
	if !ok {
		return nil, fmt.Errorf("tokens: unsupported signing algorithm %q", alg)
	}
	ttl := cfg.AccessTTL
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}
	return &Codec{
		secret:    []byte(cfg.Secret),
		method:    method,
		accessTTL: ttl,
		now:       time.Now,
	}, nil
}

func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// Encode signs a new token for user. A zero expiry means the access TTL.
func (c *Codec) Encode(user UserClaims, expiry time.Duration, refresh bool) (string, error) {
	if expiry <= 0 {
		expiry = c.accessTTL
	}
	claims := Claims{
		User:    user,
		Refresh: refresh,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(c.now().Add(expiry)),
			ID:        uuid.NewString(),
		},
	}

	t := jwt.NewWithClaims(c.method, claims)
	return t.SignedString(c.secret)
}

// Decode returns the claims of a well-formed, correctly signed, unexpired
// token. Every failure collapses into ok == false; the cause is only logged.
func (c *Codec) Decode(ctx context.Context, token string) (*Claims, bool) {
	var claims Claims
	tkn, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != c.method.Alg() {
			return nil, errors.New("unexpected sign method")
		}
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{c.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil || !tkn.Valid {
		logging.FromContext(ctx).Warn("token_decode_failed", "error", err)
		return nil, false
	}
	return &claims, true
}
