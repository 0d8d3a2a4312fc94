package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

// ユーザーが見つかりませんを統一
var ErrUserNotFound = errors.New("user not found")

// 保存・取得を約束
type UserRepository interface {
	//新規ユーザー作成
	Create(ctx context.Context, user *model.User) error
	// IDからユーザーを1件取得する。
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	//ユーザー名からユーザーを一件取得する。
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	//管理画面の顧客一覧
	List(ctx context.Context) ([]model.User, error)
	// ユーザー情報の更新=>アクティブかどうかの変更など
	Update(ctx context.Context, user *model.User) error
}
