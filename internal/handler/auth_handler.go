package handler

import (
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AuthHandler struct {
	cfg config.Config
	uc  *usecase.AuthUsecase
}

func NewAuthHandler(cfg config.Config, uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{cfg: cfg, uc: uc}
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/signup", h.signup)
	e.POST("/login", h.login)
	e.POST("/logout", h.logout)
	e.GET("/check-auth", h.checkAuth)
}

func (h *AuthHandler) signup(c echo.Context) error {
	var req usecase.SignupRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Signup(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	//サインアップ成功でそのままログイン状態にする
	c.SetCookie(h.newSessionCookie(out.SessionToken, usecase.SessionTTL))

	return c.JSON(http.StatusCreated, map[string]string{"message": "User created and logged in"})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req usecase.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Login(c.Request().Context(), req)
	if err != nil {
		return writeError(c, err)
	}

	c.SetCookie(h.newSessionCookie(out.SessionToken, usecase.SessionTTL))

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged in"})
}

func (h *AuthHandler) logout(c echo.Context) error {
	//クッキーを消すだけ（サーバー側の状態は持たない）
	c.SetCookie(h.newSessionCookie("", -time.Hour))

	return c.JSON(http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *AuthHandler) checkAuth(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return c.JSON(http.StatusOK, usecase.CheckAuthOutput{Authenticated: false})
	}

	claims, ok := middleware.ParseSessionToken(cookie.Value, h.cfg.SessionSecret)
	if !ok {
		return c.JSON(http.StatusOK, usecase.CheckAuthOutput{Authenticated: false})
	}

	out, err := h.uc.CheckAuth(c.Request().Context(), claims.UserID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// セッションクッキーを作る。ttl<0で削除用になる。
func (h *AuthHandler) newSessionCookie(token string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cfg.GoEnv == "prod",
		SameSite: http.SameSiteLaxMode,
	}
}
