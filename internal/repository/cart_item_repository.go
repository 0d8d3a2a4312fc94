package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type CartItemRepository interface {
	//ユーザーのカート明細（商品込み）を一覧取得
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)

	//本人所有の明細を1件取得。他人の明細はErrNotFound。
	FindOwnedByUser(ctx context.Context, cartItemID int64, userID int64) (model.CartItem, error)

	// 同一商品はプラス
	UpsertByUserAndProduct(ctx context.Context, userID int64, productID int64, addQty int64) (model.CartItem, error)

	UpdateQuantity(ctx context.Context, cartItemID int64, qty int64) error
	DeleteByID(ctx context.Context, cartItemID int64) error

	//チェックアウト後のカート全消し
	DeleteAllByUserID(ctx context.Context, userID int64) error
}
