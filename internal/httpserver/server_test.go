package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Skotchmaster/pet_place/internal/db"
	"github.com/Skotchmaster/pet_place/internal/events"
	"github.com/Skotchmaster/pet_place/internal/hash"
	"github.com/Skotchmaster/pet_place/internal/metrics"
	authmw "github.com/Skotchmaster/pet_place/internal/middleware/auth"
	"github.com/Skotchmaster/pet_place/internal/repo"
	"github.com/Skotchmaster/pet_place/internal/service"
	"github.com/Skotchmaster/pet_place/internal/tokens"
)

func init() {
	hash.Cost = bcrypt.MinCost
}

type testServer struct {
	e       *echo.Echo
	repo    *repo.GormRepo
	auth    *service.AuthService
	adminID uint
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close(gdb) })

	r := repo.New(gdb)
	pub := events.Nop{}
	m := metrics.New()

	authSvc := &service.AuthService{Users: r, Tokens: tokens.NewManager([]byte("test-jwt-secret"), time.Hour), Events: pub}
	require.NoError(t, authSvc.SeedAdmin(ctx, "admin", "admin@x.com", "admin-pw"))
	admin, err := r.GetUserByUsername(ctx, "admin")
	require.NoError(t, err)

	e := New(zerolog.Nop(), &Deps{
		AuthHandler:    &AuthHTTP{Svc: authSvc, Metrics: m},
		CatalogHandler: &CatalogHTTP{Svc: &service.CatalogService{Products: r, Users: r, Events: pub}, Metrics: m},
		ChatHandler:    &ChatHTTP{Svc: &service.ChatService{Chat: r, Users: r, Events: pub}, Metrics: m},
		NewsHandler:    &NewsHTTP{Svc: &service.NewsService{News: r, Users: r, Events: pub}},
		Identity:       authmw.NewIdentity(authSvc, r, true),
		Metrics:        m,
		Ready:          func(ctx context.Context) error { return db.Ping(ctx, gdb) },
	})

	return &testServer{e: e, repo: r, auth: authSvc, adminID: admin.ID}
}

type header map[string]string

func asUser(id uint) header {
	return header{authmw.HeaderUserID: strconv.FormatUint(uint64(id), 10)}
}

func bearer(token string) header {
	return header{echo.HeaderAuthorization: "Bearer " + token}
}

func (s *testServer) do(t *testing.T, method, path string, body any, h header) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range h {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

type errorBody struct {
	Error string `json:"error"`
}

type authBody struct {
	Token    string `json:"token"`
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"isAdmin"`
}

func (s *testServer) register(t *testing.T, username string) authBody {
	t.Helper()

	rec := s.do(t, http.MethodPost, "/api/register", map[string]string{
		"username": username,
		"email":    username + "@x.com",
		"password": "pw123",
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[authBody](t, rec)
}
