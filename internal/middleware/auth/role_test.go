package auth

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bookly/internal/domain"
	"github.com/Skotchmaster/bookly/internal/models"
)

type fakeUsers map[string]*models.User

func (f fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := f[email]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func TestRoleChecker(t *testing.T) {
	env := newGuardEnv(t)
	raw, _ := env.token(t, false)

	tests := []struct {
		name    string
		role    string
		allowed []string
		wantErr error
	}{
		{name: "user allowed", role: models.RoleUser, allowed: []string{models.RoleAdmin, models.RoleUser}},
		{name: "admin allowed", role: models.RoleAdmin, allowed: []string{models.RoleAdmin}},
		{name: "user denied", role: models.RoleUser, allowed: []string{models.RoleAdmin}, wantErr: domain.ErrInsufficientRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := fakeUsers{"bob@example.com": {Email: "bob@example.com", Role: tt.role}}
			chain := env.guard.Require(Access)(CurrentUser(users)(RoleChecker(tt.allowed...)(okHandler)))

			c, rec := env.context("Bearer " + raw)
			err := chain(c)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, rec.Code)

			u, ok := UserFrom(c)
			require.True(t, ok)
			assert.Equal(t, tt.role, u.Role)
		})
	}
}

func TestCurrentUser_UnknownUser(t *testing.T) {
	env := newGuardEnv(t)
	raw, _ := env.token(t, false)

	chain := env.guard.Require(Access)(CurrentUser(fakeUsers{})(okHandler))
	c, _ := env.context("Bearer " + raw)
	assert.ErrorIs(t, chain(c), domain.ErrUserNotFound)
}

func TestCurrentUser_WithoutGuard(t *testing.T) {
	env := newGuardEnv(t)
	c, _ := env.context("")
	assert.ErrorIs(t, CurrentUser(fakeUsers{})(okHandler)(c), domain.ErrNotAuthenticated)
	assert.ErrorIs(t, RoleChecker(models.RoleUser)(okHandler)(c), domain.ErrNotAuthenticated)
}
