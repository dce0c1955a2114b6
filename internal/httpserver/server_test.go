package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/bookly/internal/blocklist"
	"github.com/Skotchmaster/bookly/internal/db/dbtest"
	"github.com/Skotchmaster/bookly/internal/hash"
	"github.com/Skotchmaster/bookly/internal/httpserver"
	"github.com/Skotchmaster/bookly/internal/logging"
	"github.com/Skotchmaster/bookly/internal/mail/mailtest"
	"github.com/Skotchmaster/bookly/internal/middleware/auth"
	"github.com/Skotchmaster/bookly/internal/models"
	"github.com/Skotchmaster/bookly/internal/mykafka/kafkatest"
	"github.com/Skotchmaster/bookly/internal/repo"
	"github.com/Skotchmaster/bookly/internal/service"
	"github.com/Skotchmaster/bookly/internal/tokens"
)

type testServer struct {
	e      *echo.Echo
	users  *service.UserService
	mailer *mailtest.Recorder
	events *kafkatest.Recorder
	redis  *miniredis.Miniredis
	codec  *tokens.Codec
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	r := repo.New(dbtest.Open(t))
	hasher := hash.New(bcrypt.MinCost)
	codec, err := tokens.NewCodec(tokens.Config{Secret: "test-jwt-secret"})
	require.NoError(t, err)

	mini := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mini.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := blocklist.NewRedisStore(client, codec.AccessTTL())

	mailer := &mailtest.Recorder{}
	events := &kafkatest.Recorder{}
	users := &service.UserService{Repo: r, Hasher: hasher}
	authSvc := &service.AuthService{
		Users:     users,
		Hasher:    hasher,
		Codec:     codec,
		URLTokens: tokens.NewURLSerializer("test-jwt-secret", time.Hour),
		Blocklist: store,
		Mailer:    mailer,
		Events:    events,
		Domain:    "localhost:8000",
	}

	e := httpserver.New(logging.NewWithWriter(io.Discard, "error"))
	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:   &httpserver.AuthHTTP{Svc: authSvc, Users: users},
		BookHandler:   &httpserver.BookHTTP{Svc: &service.BookService{Repo: r, Events: events}},
		ReviewHandler: &httpserver.ReviewHTTP{Svc: &service.ReviewService{Repo: r}},
		TagHandler:    &httpserver.TagHTTP{Svc: &service.TagService{Repo: r}},
		Guard:         auth.NewGuard(codec, store),
		Users:         users,
		Ready:         []func(ctx context.Context) error{store.Ping},
	})

	return &testServer{e: e, users: users, mailer: mailer, events: events, redis: mini, codec: codec}
}

type response struct {
	Code int
	Body []byte
}

func (r response) json(t *testing.T) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(r.Body, &m), string(r.Body))
	return m
}

func (r response) message(t *testing.T) string {
	t.Helper()
	msg, _ := r.json(t)["message"].(string)
	return msg
}

func (s *testServer) do(t *testing.T, method, target, token string, body any) response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return response{Code: rec.Code, Body: rec.Body.Bytes()}
}

func signupBody(email string) map[string]any {
	return map[string]any{
		"first_name": "Bob",
		"last_name":  "Builder",
		"username":   "bob",
		"email":      email,
		"password":   "secret123",
	}
}

// login signs a user up and returns its access and refresh tokens.
func (s *testServer) login(t *testing.T, email string) (string, string) {
	t.Helper()

	res := s.do(t, http.MethodPost, "/api/v1/auth/signup", "", signupBody(email))
	require.Equal(t, http.StatusCreated, res.Code, string(res.Body))

	res = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusOK, res.Code, string(res.Body))
	m := res.json(t)
	return m["access_token"].(string), m["refresh_token"].(string)
}

// loginAdmin promotes the account before logging in so the token carries the role.
func (s *testServer) loginAdmin(t *testing.T, email string) string {
	t.Helper()

	res := s.do(t, http.MethodPost, "/api/v1/auth/signup", "", signupBody(email))
	require.Equal(t, http.StatusCreated, res.Code, string(res.Body))

	u, err := s.users.FindByEmail(context.Background(), email)
	require.NoError(t, err)
	_, err = s.users.Update(context.Background(), u, map[string]any{"role": models.RoleAdmin})
	require.NoError(t, err)

	res = s.do(t, http.MethodPost, "/api/v1/auth/login", "", map[string]any{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusOK, res.Code, string(res.Body))
	return res.json(t)["access_token"].(string)
}

func newRequest(method, target, authorization string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	return req
}

func (s *testServer) serve(req *http.Request) response {
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return response{Code: rec.Code, Body: rec.Body.Bytes()}
}
