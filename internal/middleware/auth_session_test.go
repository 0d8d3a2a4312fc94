package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"storefront/internal/config"
)

const testSecret = "test-secret"

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	raw, err := tok.SignedString([]byte(secret))
	assert.NoError(t, err)
	return raw
}

func validClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub":      float64(42),
		"username": "taro",
		"role":     "USER",
		"iat":      now.Unix(),
		"exp":      now.Add(time.Hour).Unix(),
	}
}

func TestParseSessionToken_RoundTrip(t *testing.T) {
	raw := signTestToken(t, testSecret, validClaims())

	claims, ok := ParseSessionToken(raw, testSecret)
	assert.True(t, ok)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "taro", claims.Username)
	assert.Equal(t, "USER", claims.Role)
}

func TestParseSessionToken_WrongSecret(t *testing.T) {
	raw := signTestToken(t, testSecret, validClaims())

	_, ok := ParseSessionToken(raw, "other-secret")
	assert.False(t, ok)
}

func TestParseSessionToken_Expired(t *testing.T) {
	claims := validClaims()
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	raw := signTestToken(t, testSecret, claims)

	_, ok := ParseSessionToken(raw, testSecret)
	assert.False(t, ok)
}

func TestParseSessionToken_MissingSub(t *testing.T) {
	claims := validClaims()
	delete(claims, "sub")
	raw := signTestToken(t, testSecret, claims)

	_, ok := ParseSessionToken(raw, testSecret)
	assert.False(t, ok)
}

func TestParseSessionToken_Garbage(t *testing.T) {
	_, ok := ParseSessionToken("not-a-token", testSecret)
	assert.False(t, ok)
}

// AuthSessionを通ったらcontextにuser_id/roleが入っている
func TestAuthSession_SetsContext(t *testing.T) {
	e := echo.New()
	cfg := config.Config{SessionSecret: testSecret}

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: signTestToken(t, testSecret, validClaims())})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var gotUserID int64
	var gotRole string
	h := AuthSession(cfg)(func(c echo.Context) error {
		gotUserID, _ = c.Get(CtxUserIDKey).(int64)
		gotRole, _ = c.Get(CtxUserRoleKey).(string)
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), gotUserID)
	assert.Equal(t, "USER", gotRole)
}

func TestAuthSession_NoCookie(t *testing.T) {
	e := echo.New()
	cfg := config.Config{SessionSecret: testSecret}

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	h := AuthSession(cfg)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	assert.NoError(t, h(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
}

func TestAdminRoleGuard(t *testing.T) {
	e := echo.New()

	run := func(role interface{}) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if role != nil {
			c.Set(CtxUserRoleKey, role)
		}
		h := AdminRoleGuard()(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		assert.NoError(t, h(c))
		return rec
	}

	assert.Equal(t, http.StatusOK, run("ADMIN").Code)
	assert.Equal(t, http.StatusForbidden, run("USER").Code)
	assert.Equal(t, http.StatusUnauthorized, run(nil).Code)
}
