package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/Skotchmaster/pet_place/internal/models"
)

const (
	userKey   = "user"
	userIDKey = "user_id"

	// HeaderUserID carries the caller id for clients that do not send a token.
	HeaderUserID = "User-Id"
)

type TokenVerifier interface {
	Verify(ctx context.Context, raw string) (*models.User, error)
}

type UserLookup interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// Identity resolves the caller of a request. A bearer token wins; the
// User-Id header is only consulted when TrustUserIDHeader is set and no
// Authorization header was sent.
type Identity struct {
	Verifier          TokenVerifier
	Users             UserLookup
	TrustUserIDHeader bool
}

func NewIdentity(v TokenVerifier, users UserLookup, trustHeader bool) *Identity {
	return &Identity{Verifier: v, Users: users, TrustUserIDHeader: trustHeader}
}

type checkFunc func(u *models.User) error

func (m *Identity) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireWith(next, nil)
}

func (m *Identity) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return m.requireWith(next, func(u *models.User) error {
		if !u.IsAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin access required")
		}
		return nil
	})
}

func (m *Identity) requireWith(next echo.HandlerFunc, check checkFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, err := m.resolve(c)
		if err != nil {
			return err
		}
		if check != nil {
			if err := check(user); err != nil {
				return err
			}
		}

		setUserContext(c, user)
		return next(c)
	}
}

func (m *Identity) resolve(c echo.Context) (*models.User, error) {
	ctx := c.Request().Context()

	if header := c.Request().Header.Get(echo.HeaderAuthorization); header != "" {
		raw, ok := BearerToken(header)
		if !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
		}
		user, err := m.Verifier.Verify(ctx, raw)
		if err != nil {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
		}
		return user, nil
	}

	if !m.TrustUserIDHeader {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}

	raw := strings.TrimSpace(c.Request().Header.Get(HeaderUserID))
	if raw == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing caller identity")
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid User-Id header")
	}

	user, err := m.Users.GetUserByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "unknown user").SetInternal(err)
		}
		return nil, err
	}
	return user, nil
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Caller returns the user stored by RequireAuth or RequireAdmin.
func Caller(c echo.Context) *models.User {
	u, _ := c.Get(userKey).(*models.User)
	return u
}

// CallerID is zero when the route is not behind the identity middleware.
func CallerID(c echo.Context) uint {
	id, _ := c.Get(userIDKey).(uint)
	return id
}

func setUserContext(c echo.Context, u *models.User) {
	c.Set(userKey, u)
	c.Set(userIDKey, u.ID)
}
