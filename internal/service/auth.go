package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Skotchmaster/bookly/internal/blocklist"
	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/hash"
	"github.com/Skotchmaster/bookly/internal/logging"
	"github.com/Skotchmaster/bookly/internal/mail"
	"github.com/Skotchmaster/bookly/internal/models"
	"github.com/Skotchmaster/bookly/internal/mykafka"
	"github.com/Skotchmaster/bookly/internal/tokens"
	"github.com/Skotchmaster/bookly/internal/transport"
)

const (
	DefaultRefreshTTL = 48 * time.Hour

	MsgAccountCreated   = "Account Created! Check email to verify your account"
	MsgAccountVerified  = "Account verified successfully"
	MsgLoginSuccessful  = "Login Successful"
	MsgLoggedOut        = "logged out successfully"
	MsgResetRequested   = "Please check your email for instructions to reset your password"
	MsgPasswordReset    = "Password reset Successfully"
	MsgWelcomeMailsSent = "Email sent successfully"

	publishTimeout = 5 * time.Second
)

type AuthService struct {
	Users      *UserService
	Hasher     *hash.Hasher
	Codec      *tokens.Codec
	URLTokens  *tokens.URLSerializer
	Blocklist  blocklist.Store
	Mailer     mail.Sender
	Events     mykafka.Publisher
	Domain     string
	RefreshTTL time.Duration

	dummyOnce   sync.Once
	dummyDigest string
}

// Signup creates an unverified account and mails a verification link.
// A mail failure is logged and does not fail the signup.
func (s *AuthService) Signup(ctx context.Context, req transport.SignupRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.signup")

	user, err := s.Users.Create(ctx, req)
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			l.Warn("signup_failed", "status", 409, "reason", "user already exists")
		} else {
			l.Error("signup_failed", "status", 500, "error", err)
		}
		return nil, err
	}

	token, err := s.URLTokens.Encode(tokens.PurposeEmailVerification, user.Email)
	if err != nil {
		l.Error("signup_mail_failed", "reason", "cannot encode verification token", "error", err)
	} else {
		link := fmt.Sprintf("http://%s/api/v1/auth/verify/%s", s.Domain, token)
		if err := s.Mailer.Send(ctx, mail.VerificationMessage(user.Email, link)); err != nil {
			l.Error("signup_mail_failed", "reason", "cannot send verification email", "error", err)
		}
	}

	s.publishUser(ctx, mykafka.EventUserRegistered, user)
	l.Info("signup_success", "user_uid", user.UID)
	return user, nil
}

func (s *AuthService) Verify(ctx context.Context, token string) error {
	l := logging.FromContext(ctx).With("svc", "auth.verify")

	email, err := s.URLTokens.Decode(ctx, tokens.PurposeEmailVerification, token)
	if err != nil {
		return err
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if _, err := s.Users.Update(ctx, user, map[string]any{"is_verified": true}); err != nil {
		l.Error("verify_failed", "status", 500, "error", err)
		return err
	}

	s.publishUser(ctx, mykafka.EventUserVerified, user)
	l.Info("verify_success", "user_uid", user.UID)
	return nil
}

// Login answers unknown email and wrong password identically, and spends a
// bcrypt comparison in both cases.
func (s *AuthService) Login(ctx context.Context, req transport.LoginRequest) (*transport.LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login")

	user, err := s.Users.FindByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			l.Error("login_failed", "status", 500, "error", err)
			return nil, err
		}
		s.Hasher.Verify(req.Password, s.dummy())
		l.Warn("login_failed", "status", 400, "reason", "invalid email or password")
		return nil, domain.ErrInvalidCredentials
	}

	if !s.Hasher.Verify(req.Password, user.PasswordHash) {
		l.Warn("login_failed", "status", 400, "reason", "invalid email or password")
		return nil, domain.ErrInvalidCredentials
	}

	uid := user.UID.String()
	access, err := s.Codec.Encode(tokens.UserClaims{Email: user.Email, UserUID: uid, Role: user.Role}, 0, false)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign access token", "error", err)
		return nil, err
	}
	refresh, err := s.Codec.Encode(tokens.UserClaims{Email: user.Email, UserUID: uid}, s.refreshTTL(), true)
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign refresh token", "error", err)
		return nil, err
	}

	s.publishUser(ctx, mykafka.EventUserLoggedIn, user)
	l.Info("login_success", "user_uid", uid)

	return &transport.LoginResult{
		Message:      MsgLoginSuccessful,
		AccessToken:  access,
		RefreshToken: refresh,
		User:         transport.LoginUser{Email: user.Email, UID: uid},
	}, nil
}

// Refresh mints a new access token from refresh-token claims that already
// passed the refresh guard. The embedded user claims are reused as is.
func (s *AuthService) Refresh(ctx context.Context, claims *tokens.Claims) (string, error) {
	if claims == nil || claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		return "", domain.ErrInvalidToken
	}

	access, err := s.Codec.Encode(claims.User, 0, false)
	if err != nil {
		logging.FromContext(ctx).Error("refresh_failed", "status", 500, "error", err)
		return "", err
	}
	return access, nil
}

// Logout revokes the presented access token. Revoking twice is harmless.
func (s *AuthService) Logout(ctx context.Context, claims *tokens.Claims) error {
	if err := s.Blocklist.Add(ctx, claims.ID); err != nil {
		logging.FromContext(ctx).Error("logout_failed", "status", 500, "reason", "cannot revoke token", "error", err)
		return err
	}
	return nil
}

// RequestPasswordReset mails a reset link when the account exists. Callers
// answer the same way either way.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	l := logging.FromContext(ctx).With("svc", "auth.password_reset_request")

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil
		}
		l.Error("password_reset_request_failed", "status", 500, "error", err)
		return err
	}

	token, err := s.URLTokens.Encode(tokens.PurposePasswordReset, user.Email)
	if err != nil {
		l.Error("password_reset_request_failed", "reason", "cannot encode reset token", "error", err)
		return nil
	}
	link := fmt.Sprintf("http://%s/api/v1/auth/password-reset-confirm/%s", s.Domain, token)
	if err := s.Mailer.Send(ctx, mail.PasswordResetMessage(user.Email, link)); err != nil {
		l.Error("password_reset_request_failed", "reason", "cannot send reset email", "error", err)
	}
	return nil
}

func (s *AuthService) ConfirmPasswordReset(ctx context.Context, token string, req transport.PasswordResetConfirm) error {
	l := logging.FromContext(ctx).With("svc", "auth.password_reset_confirm")

	if req.NewPassword != req.ConfirmPassword {
		return domain.ErrPasswordsMismatch
	}

	email, err := s.URLTokens.Decode(ctx, tokens.PurposePasswordReset, token)
	if err != nil {
		return err
	}

	user, err := s.Users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	if err := s.Users.SetPassword(ctx, user, req.NewPassword); err != nil {
		l.Error("password_reset_failed", "status", 500, "error", err)
		return err
	}

	s.publishUser(ctx, mykafka.EventPasswordReset, user)
	l.Info("password_reset_success", "user_uid", user.UID)
	return nil
}

func (s *AuthService) SendWelcome(ctx context.Context, addresses []string) error {
	if err := s.Mailer.Send(ctx, mail.WelcomeMessage(addresses)); err != nil {
		logging.FromContext(ctx).Error("send_mail_failed", "status", 500, "error", err)
		return err
	}
	return nil
}

func (s *AuthService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return DefaultRefreshTTL
}

// dummy returns a throwaway digest hashed at the service's cost.
func (s *AuthService) dummy() string {
	s.dummyOnce.Do(func() {
		d, err := s.Hasher.Hash("bookly-dummy-password")
		if err == nil {
			s.dummyDigest = d
		}
	})
	return s.dummyDigest
}

func (s *AuthService) publishUser(ctx context.Context, eventType string, user *models.User) {
	if s.Events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	event := mykafka.UserEvent{
		Type:    eventType,
		UserUID: user.UID.String(),
		Email:   user.Email,
		At:      time.Now().UTC(),
	}
	if err := s.Events.PublishEvent(ctx, mykafka.UserEventsTopic, event.UserUID, event); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_failed", "topic", mykafka.UserEventsTopic, "type", eventType, "error", err)
	}
}
