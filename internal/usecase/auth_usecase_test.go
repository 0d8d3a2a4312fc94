package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"

	"storefront/internal/config"
	"storefront/internal/domain/model"
)

// 本物のvalidatorはusecaseをimportしているのでここでは簡易版を使う
type fakeAuthValidator struct {
	users *fakeUserRepo
}

func (v *fakeAuthValidator) ValidateSignup(ctx context.Context, username, password, confirm string) error {
	if strings.TrimSpace(username) == "" || password == "" || confirm == "" {
		return errors.New("missing fields")
	}
	if password != confirm {
		return errors.New("password mismatch")
	}
	if u, _ := v.users.FindByUsername(ctx, username); u != nil {
		return errors.New("username taken")
	}
	return nil
}

func (v *fakeAuthValidator) ValidateLogin(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return errors.New("missing fields")
	}
	return nil
}

func newAuthFixture(t *testing.T) (*memStore, *AuthUsecase) {
	t.Helper()
	s := newMemStore()
	users := &fakeUserRepo{s: s}
	cfg := config.Config{SessionSecret: "test-secret"}
	return s, NewAuthUsecase(cfg, users, &fakeAuthValidator{users: users})
}

func TestSignup_CreatesUserAndIssuesSession(t *testing.T) {
	s, uc := newAuthFixture(t)

	res, err := uc.Signup(context.Background(), SignupRequest{
		Username:        "taro",
		Password:        "secret123",
		ConfirmPassword: "secret123",
	})

	assert.NoError(t, err)
	assert.Equal(t, "taro", res.User.Username)
	assert.True(t, res.User.IsActive)
	assert.False(t, res.User.IsStaff)
	assert.NotEmpty(t, res.SessionToken)

	//平文パスワードは保存されない
	stored := s.users[res.User.ID]
	assert.NotEqual(t, "secret123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret123")))

	//トークンはHS256で検証可能、subとroleが入っている
	tok, err := jwt.Parse(res.SessionToken, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)
	claims := tok.Claims.(jwt.MapClaims)
	assert.Equal(t, "taro", claims["username"])
	assert.Equal(t, "USER", claims["role"])
}

func TestSignup_PasswordMismatch(t *testing.T) {
	_, uc := newAuthFixture(t)

	_, err := uc.Signup(context.Background(), SignupRequest{
		Username:        "taro",
		Password:        "a",
		ConfirmPassword: "b",
	})

	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestSignup_DuplicateUsername(t *testing.T) {
	_, uc := newAuthFixture(t)

	_, err := uc.Signup(context.Background(), SignupRequest{Username: "taro", Password: "x", ConfirmPassword: "x"})
	assert.NoError(t, err)

	_, err = uc.Signup(context.Background(), SignupRequest{Username: "taro", Password: "y", ConfirmPassword: "y"})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestLogin_Success(t *testing.T) {
	_, uc := newAuthFixture(t)

	_, err := uc.Signup(context.Background(), SignupRequest{Username: "taro", Password: "secret123", ConfirmPassword: "secret123"})
	assert.NoError(t, err)

	res, err := uc.Login(context.Background(), LoginRequest{Username: "taro", Password: "secret123"})
	assert.NoError(t, err)
	assert.Equal(t, "taro", res.User.Username)
	assert.NotEmpty(t, res.SessionToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	_, uc := newAuthFixture(t)

	_, err := uc.Signup(context.Background(), SignupRequest{Username: "taro", Password: "secret123", ConfirmPassword: "secret123"})
	assert.NoError(t, err)

	_, err = uc.Login(context.Background(), LoginRequest{Username: "taro", Password: "wrong"})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
	assert.Equal(t, "invalid credentials", he.Message)
}

func TestLogin_UnknownUser(t *testing.T) {
	_, uc := newAuthFixture(t)

	_, err := uc.Login(context.Background(), LoginRequest{Username: "nobody", Password: "x"})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Status)
}

func TestLogin_DisabledAccount(t *testing.T) {
	s, uc := newAuthFixture(t)

	res, err := uc.Signup(context.Background(), SignupRequest{Username: "taro", Password: "secret123", ConfirmPassword: "secret123"})
	assert.NoError(t, err)

	//管理者が停止した想定
	u := s.users[res.User.ID]
	u.IsActive = false
	s.users[u.ID] = u

	_, err = uc.Login(context.Background(), LoginRequest{Username: "taro", Password: "secret123"})
	he, ok := AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusForbidden, he.Status)
	assert.Equal(t, "account disabled", he.Message)
}

func TestCheckAuth(t *testing.T) {
	s, uc := newAuthFixture(t)

	res, err := uc.Signup(context.Background(), SignupRequest{Username: "taro", Password: "secret123", ConfirmPassword: "secret123"})
	assert.NoError(t, err)

	out, err := uc.CheckAuth(context.Background(), res.User.ID)
	assert.NoError(t, err)
	assert.True(t, out.Authenticated)
	assert.Equal(t, "taro", out.Username)
	assert.False(t, out.IsAdmin)

	//存在しないユーザーは未認証扱い（エラーではない）
	out, err = uc.CheckAuth(context.Background(), 9999)
	assert.NoError(t, err)
	assert.False(t, out.Authenticated)

	//停止ユーザーも未認証扱い
	u := s.users[res.User.ID]
	u.IsActive = false
	s.users[u.ID] = u

	out, err = uc.CheckAuth(context.Background(), res.User.ID)
	assert.NoError(t, err)
	assert.False(t, out.Authenticated)
}

func TestCheckAuth_AdminFlag(t *testing.T) {
	s, uc := newAuthFixture(t)

	admin := model.User{Username: "boss", Role: model.RoleAdmin, IsActive: true}
	admin.ID = s.id()
	s.users[admin.ID] = admin

	out, err := uc.CheckAuth(context.Background(), admin.ID)
	assert.NoError(t, err)
	assert.True(t, out.Authenticated)
	assert.True(t, out.IsAdmin)
}
