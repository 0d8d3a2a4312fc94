package usecase

import (
	"context"
	"net/http"
	"time"

	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// セッションクッキーの有効期限
const SessionTTL = 7 * 24 * time.Hour

// usecaseがValidatorInterfaceに依存する約束
type AuthValidator interface {
	ValidateSignup(ctx context.Context, username string, password string, confirmPassword string) error
	ValidateLogin(ctx context.Context, username string, password string) error
}

type UserDTO struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsActive bool   `json:"is_active"`
	IsStaff  bool   `json:"is_staff"`
}

type SignupRequest struct {
	Username        string `json:"username"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type CheckAuthOutput struct {
	Authenticated bool   `json:"authenticated"`
	Username      string `json:"username,omitempty"`
	IsAdmin       bool   `json:"is_admin,omitempty"`
}

// ログイン/サインアップの結果。
// SessionTokenはhandlerがHttpOnlyクッキーに載せる。
type AuthResult struct {
	User         UserDTO
	SessionToken string
}

type AuthUsecase struct {
	cfg       config.Config
	users     repository.UserRepository
	validator AuthValidator
}

func NewAuthUsecase(
	cfg config.Config,
	users repository.UserRepository,
	validator AuthValidator,
) *AuthUsecase {
	return &AuthUsecase{
		cfg:       cfg,
		users:     users,
		validator: validator,
	}
}

// サインアップ（成功したらそのままログイン状態にする）
func (u *AuthUsecase) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	//入力検証（validatorに寄せる）
	if err := u.validator.ValidateSignup(ctx, req.Username, req.Password, req.ConfirmPassword); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	//パスワードは必ずハッシュ化して保存（平文保存しない）
	pwHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	//ユーザー作成
	user := &model.User{
		Username:     req.Username,
		PasswordHash: string(pwHash),
		Role:         model.RoleUser,
		IsActive:     true,
	}

	if err := u.users.Create(ctx, user); err != nil {
		// unique制約に当たったら「使用済み」扱い
		return nil, NewHTTPError(http.StatusBadRequest, "username taken")
	}

	token, err := u.issueSessionToken(user)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &AuthResult{User: toUserDTO(user), SessionToken: token}, nil
}

// ログイン
func (u *AuthUsecase) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	if err := u.validator.ValidateLogin(ctx, req.Username, req.Password); err != nil {
		return nil, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	//ユーザー取得
	user, err := u.users.FindByUsername(ctx, req.Username)
	if err != nil || user == nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	//停止ユーザーはログイン不可
	if !user.IsActive {
		return nil, NewHTTPError(http.StatusForbidden, "account disabled")
	}

	//パスワード照合（bcrypt）
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	token, err := u.issueSessionToken(user)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	return &AuthResult{User: toUserDTO(user), SessionToken: token}, nil
}

// ログイン状態確認。ユーザーが消えていたり停止されていたら未認証扱い。
func (u *AuthUsecase) CheckAuth(ctx context.Context, userID int64) (CheckAuthOutput, error) {
	if userID <= 0 {
		return CheckAuthOutput{Authenticated: false}, nil
	}

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		return CheckAuthOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil || !user.IsActive {
		return CheckAuthOutput{Authenticated: false}, nil
	}

	return CheckAuthOutput{
		Authenticated: true,
		Username:      user.Username,
		IsAdmin:       user.IsStaff(),
	}, nil
}

// HS256署名のセッショントークンを発行する
func (u *AuthUsecase) issueSessionToken(user *model.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"jti":      uuid.NewString(),
		"iat":      now.Unix(),
		"exp":      now.Add(SessionTTL).Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(u.cfg.SessionSecret))
}

func toUserDTO(user *model.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Username: user.Username,
		IsActive: user.IsActive,
		IsStaff:  user.IsStaff(),
	}
}
