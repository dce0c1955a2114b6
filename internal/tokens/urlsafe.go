package tokens

import (
	"context"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/logging"
)

// Purposes bound into the MAC of URL-safe tokens.
const (
	PurposeEmailVerification = "email-verification"
	PurposePasswordReset     = "password-reset"
)

type urlPayload struct {
	Email string `json:"email"`
}

// URLSerializer produces signed, timestamped, URL-safe tokens for links sent
// by mail. Unlike Codec tokens they carry no jti and use their own max age.
type URLSerializer struct {
	sc *securecookie.SecureCookie
}

func NewURLSerializer(secret string, maxAge time.Duration) *URLSerializer {
	sc := securecookie.New([]byte(secret), nil)
	sc.SetSerializer(securecookie.JSONEncoder{})
	sc.MaxAge(int(maxAge / time.Second))
	return &URLSerializer{sc: sc}
}

func (s *URLSerializer) Encode(purpose, email string) (string, error) {
	return s.sc.Encode(purpose, urlPayload{Email: email})
}

func (s *URLSerializer) Decode(ctx context.Context, purpose, token string) (string, error) {
	var p urlPayload
	if err := s.sc.Decode(purpose, token, &p); err != nil {
		logging.FromContext(ctx).Warn("url_token_decode_failed", "purpose", purpose, "error", err)
		return "", domain.ErrVerificationFailed
	}
	if p.Email == "" {
		return "", domain.ErrVerificationFailed
	}
	return p.Email, nil
}
