package validator

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/repository"
	"storefront/internal/usecase"
)

var (
	// 入力が不正
	ErrMissingFields = errors.New("missing fields")

	// パスワードが一致しない
	ErrPasswordMismatch = errors.New("password mismatch")

	// ユーザー名が既に使用済み
	ErrUsernameTaken = errors.New("username taken")
)

type authValidator struct {
	users repository.UserRepository
}

// Usecaseは interface を依存注入
func NewAuthValidator(users repository.UserRepository) usecase.AuthValidator {
	return &authValidator{users: users}
}

// サインアップの入力を検証
func (v *authValidator) ValidateSignup(ctx context.Context, username string, password string, confirmPassword string) error {
	username = strings.TrimSpace(username)

	// 必須チェック
	if username == "" || password == "" || confirmPassword == "" {
		return ErrMissingFields
	}

	// 確認用パスワードの一致
	if password != confirmPassword {
		return ErrPasswordMismatch
	}

	// ユーザー名重複チェック（DBが必要）
	u, err := v.users.FindByUsername(ctx, username)
	if err == nil && u != nil {
		return ErrUsernameTaken
	}

	return nil
}

// ログインの入力を検証
func (v *authValidator) ValidateLogin(ctx context.Context, username string, password string) error {
	username = strings.TrimSpace(username)

	// 必須チェック
	if username == "" || password == "" {
		return ErrMissingFields
	}

	return nil
}
