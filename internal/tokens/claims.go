package tokens

import "github.com/golang-jwt/jwt/v5"

// UserClaims is the identity subset embedded under the "user" claim.
// Refresh tokens carry no role.
type UserClaims struct {
	Email   string `json:"email"`
	UserUID string `json:"user_uid"`
	Role    string `json:"role,omitempty"`
}

type Claims struct {
	User    UserClaims `json:"user"`
	Refresh bool       `json:"refresh"`
	jwt.RegisteredClaims
}
