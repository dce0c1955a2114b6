package domain

import "errors"

// Authentication failures. Revoked, expired and forged tokens all share
// ErrInvalidToken.
var (
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrInvalidScheme        = errors.New("invalid authentication credentials")
	ErrInvalidToken         = errors.New("invalid or expired token")
	ErrAccessTokenRequired  = errors.New("please provide an access token")
	ErrRefreshTokenRequired = errors.New("please provide a refresh token")
)

var ErrInsufficientRole = errors.New("you are not allowed to perform this action")

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrPasswordsMismatch  = errors.New("passwords do not match")
	ErrVerificationFailed = errors.New("error occurred during verification")
	ErrValidation         = errors.New("invalid body")
)

var (
	ErrUserAlreadyExists = errors.New("user with this email already exists")
	ErrTagAlreadyExists  = errors.New("tag already exists")
)

var (
	ErrUserNotFound   = errors.New("user not found")
	ErrBookNotFound   = errors.New("book not found")
	ErrReviewNotFound = errors.New("review not found")
	ErrTagNotFound    = errors.New("tag not found")
)
