package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/bookly/internal/blocklist"
	"github.com/Skotchmaster/bookly/internal/db/dbtest"
	"github.com/Skotchmaster/bookly/internal/hash"
	"github.com/Skotchmaster/bookly/internal/mail/mailtest"
	"github.com/Skotchmaster/bookly/internal/models"
	"github.com/Skotchmaster/bookly/internal/mykafka/kafkatest"
	"github.com/Skotchmaster/bookly/internal/repo"
	"github.com/Skotchmaster/bookly/internal/tokens"
	"github.com/Skotchmaster/bookly/internal/transport"
)

type testEnv struct {
	repo    *repo.GormRepo
	users   *UserService
	auth    *AuthService
	books   *BookService
	reviews *ReviewService
	tags    *TagService
	mailer  *mailtest.Recorder
	events  *kafkatest.Recorder
	store   *blocklist.RedisStore
	codec   *tokens.Codec
	urls    *tokens.URLSerializer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	r := repo.New(dbtest.Open(t))
	hasher := hash.New(bcrypt.MinCost)

	codec, err := tokens.NewCodec(tokens.Config{Secret: "test-jwt-secret"})
	require.NoError(t, err)
	urls := tokens.NewURLSerializer("test-jwt-secret", time.Hour)

	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := blocklist.NewRedisStore(client, codec.AccessTTL())

	mailer := &mailtest.Recorder{}
	events := &kafkatest.Recorder{}
	users := &UserService{Repo: r, Hasher: hasher}

	return &testEnv{
		repo:  r,
		users: users,
		auth: &AuthService{
			Users:     users,
			Hasher:    hasher,
			Codec:     codec,
			URLTokens: urls,
			Blocklist: store,
			Mailer:    mailer,
			Events:    events,
			Domain:    "localhost:8000",
		},
		books:   &BookService{Repo: r, Events: events},
		reviews: &ReviewService{Repo: r},
		tags:    &TagService{Repo: r},
		mailer:  mailer,
		events:  events,
		store:   store,
		codec:   codec,
		urls:    urls,
	}
}

func signupReq(email string) transport.SignupRequest {
	return transport.SignupRequest{
		FirstName: "Bob",
		LastName:  "Builder",
		Username:  "bob",
		Email:     email,
		Password:  "secret123",
	}
}

func (env *testEnv) signup(t *testing.T, email string) *models.User {
	t.Helper()
	u, err := env.auth.Signup(context.Background(), signupReq(email))
	require.NoError(t, err)
	return u
}

func (env *testEnv) makeAdmin(t *testing.T, u *models.User) {
	t.Helper()
	_, err := env.users.Update(context.Background(), u, map[string]any{"role": models.RoleAdmin})
	require.NoError(t, err)
}
