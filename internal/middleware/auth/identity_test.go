package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pet_place/internal/models"
)

type stubVerifier struct{ users map[string]*models.User }

func (s stubVerifier) Verify(_ context.Context, raw string) (*models.User, error) {
	if u, ok := s.users[raw]; ok {
		return u, nil
	}
	return nil, errors.New("invalid token")
}

type stubUsers map[uint]*models.User

func (s stubUsers) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestIdentity(trust bool) *Identity {
	alice := &models.User{ID: 1, Username: "alice"}
	admin := &models.User{ID: 2, Username: "admin", IsAdmin: true}
	return NewIdentity(
		stubVerifier{users: map[string]*models.User{"alice-token": alice, "admin-token": admin}},
		stubUsers{1: alice, 2: admin},
		trust,
	)
}

func serve(mw echo.MiddlewareFunc, headers map[string]string) (int, uint) {
	e := echo.New()
	var seen uint
	e.GET("/", func(c echo.Context) error {
		seen = CallerID(c)
		if Caller(c) == nil {
			return c.NoContent(http.StatusInternalServerError)
		}
		return c.NoContent(http.StatusOK)
	}, mw)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code, seen
}

func TestRequireAuth(t *testing.T) {
	m := newTestIdentity(true)

	tests := []struct {
		name    string
		headers map[string]string
		code    int
		caller  uint
	}{
		{name: "bearer", headers: map[string]string{"Authorization": "Bearer alice-token"}, code: http.StatusOK, caller: 1},
		{name: "lowercase scheme", headers: map[string]string{"Authorization": "bearer admin-token"}, code: http.StatusOK, caller: 2},
		{name: "user id header", headers: map[string]string{HeaderUserID: "1"}, code: http.StatusOK, caller: 1},
		{name: "bad token beats header", headers: map[string]string{"Authorization": "Bearer nope", HeaderUserID: "1"}, code: http.StatusUnauthorized},
		{name: "basic scheme", headers: map[string]string{"Authorization": "Basic YWxpY2U6cHc="}, code: http.StatusUnauthorized},
		{name: "unknown user id", headers: map[string]string{HeaderUserID: "99"}, code: http.StatusUnauthorized},
		{name: "non numeric user id", headers: map[string]string{HeaderUserID: "alice"}, code: http.StatusUnauthorized},
		{name: "nothing", headers: nil, code: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, caller := serve(m.RequireAuth, tt.headers)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.caller, caller)
		})
	}
}

func TestRequireAuth_UntrustedHeader(t *testing.T) {
	m := newTestIdentity(false)

	code, _ := serve(m.RequireAuth, map[string]string{HeaderUserID: "1"})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, caller := serve(m.RequireAuth, map[string]string{"Authorization": "Bearer alice-token"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, uint(1), caller)
}

func TestRequireAdmin(t *testing.T) {
	m := newTestIdentity(true)

	code, _ := serve(m.RequireAdmin, map[string]string{HeaderUserID: "1"})
	assert.Equal(t, http.StatusForbidden, code)

	code, caller := serve(m.RequireAdmin, map[string]string{"Authorization": "Bearer admin-token"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, uint(2), caller)
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc.def")
	assert.True(t, ok)
	assert.Equal(t, "abc.def", tok)

	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
	_, ok = BearerToken("abc.def")
	assert.False(t, ok)
}
