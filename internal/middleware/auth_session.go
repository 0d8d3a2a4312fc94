package middleware

import (
	"errors"
	"net/http"
	"strconv"

	"storefront/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	CtxUserIDKey   = "user_id"   // int64
	CtxUserRoleKey = "user_role" // string
	CtxUsernameKey = "username"  // string
)

// セッションクッキー名
const SessionCookieName = "session"

// セッションクッキー（HS256署名トークン）の検証ミドルウェア。
// 検証OKならuser_id/roleをリクエストのcontextに載せる。
func AuthSession(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			//クッキーを取得
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			claims, ok := ParseSessionToken(cookie.Value, cfg.SessionSecret)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorJSON("unauthorized"))
			}

			//contextへ保存
			c.Set(CtxUserIDKey, claims.UserID)
			c.Set(CtxUserRoleKey, claims.Role)
			c.Set(CtxUsernameKey, claims.Username)

			return next(c)
		}
	}
}

// セッショントークンのclaims
type SessionClaims struct {
	UserID   int64
	Username string
	Role     string
}

// トークンをパースして検証する
func ParseSessionToken(raw string, secret string) (SessionClaims, bool) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || token == nil || !token.Valid {
		return SessionClaims{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return SessionClaims{}, false
	}

	//user_idを取り出す
	userID, err := parseUserID(claims["sub"])
	if err != nil || userID <= 0 {
		return SessionClaims{}, false
	}

	//roleを取り出す（USER/ADMIN）
	role, err := parseString(claims["role"])
	if err != nil || role == "" {
		return SessionClaims{}, false
	}

	//usernameを取り出す
	username, err := parseString(claims["username"])
	if err != nil {
		return SessionClaims{}, false
	}

	return SessionClaims{UserID: userID, Username: username, Role: role}, true
}

type errorResponse struct {
	Error string `json:"error"`
}

func errorJSON(msg string) errorResponse {
	return errorResponse{Error: msg}
}

// user_idをint64に変換する
func parseUserID(v interface{}) (int64, error) {
	switch t := v.(type) {
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	default:
		return 0, errors.New("invalid sub")
	}
}

func parseString(v interface{}) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", errors.New("invalid string")
	}
	return s, nil
}
