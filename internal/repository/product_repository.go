package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	//新着順で全件返す（カテゴリ込み）
	List(ctx context.Context) ([]model.Product, error)

	FindByID(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	Delete(ctx context.Context, id int64) error

	//在庫減算（stock = stock - qty を1文で実行する）
	//チェックアウト中の同時更新でもロストアップデートしない。
	DecrementStock(ctx context.Context, productID int64, qty int64) error
}
