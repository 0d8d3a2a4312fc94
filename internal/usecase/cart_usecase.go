package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// カートは(user_id, product_id)で1行。同じ商品の追加は数量加算。
type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity *int64
}

// UpdateCartItemの結果。
// quantity<=0で明細が消えたときはRemoved=trueでItemは空。
type UpdateCartItemResult struct {
	Removed bool
	Item    model.CartItem
}

// カート一覧（商品込み）
func (u *CartUsecase) List(ctx context.Context, userID int64) ([]model.CartItem, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return items, nil
}

// カートに追加（同一商品は数量加算）。
func (u *CartUsecase) Add(ctx context.Context, userID int64, in AddCartInput) (model.CartItem, error) {
	if userID <= 0 {
		return model.CartItem{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return model.CartItem{}, NewHTTPError(http.StatusBadRequest, "product_id required")
	}
	if in.Quantity < 1 {
		return model.CartItem{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// 商品チェック
	if _, err := u.productRepo.FindByID(ctx, in.ProductID); err != nil {
		if err == repo.ErrNotFound {
			return model.CartItem{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.CartItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// Upsert（同一商品は加算）
	item, err := u.cartItemRepo.UpsertByUserAndProduct(ctx, userID, in.ProductID, in.Quantity)
	if err != nil {
		return model.CartItem{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return item, nil
}

// 数量変更（所有チェック付き）。
// quantity<=0は削除扱いで成功を返す。
func (u *CartUsecase) Update(ctx context.Context, userID int64, cartItemID int64, in UpdateCartItemInput) (UpdateCartItemResult, error) {
	if userID <= 0 {
		return UpdateCartItemResult{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return UpdateCartItemResult{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity == nil {
		return UpdateCartItemResult{}, NewHTTPError(http.StatusBadRequest, "quantity required")
	}

	//他人の明細は「存在しない扱い」にする
	item, err := u.cartItemRepo.FindOwnedByUser(ctx, cartItemID, userID)
	if err == repo.ErrNotFound {
		return UpdateCartItemResult{}, NewHTTPError(http.StatusNotFound, "cart item not found")
	}
	if err != nil {
		return UpdateCartItemResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	qty := *in.Quantity

	if qty <= 0 {
		//0以下は削除（エラーではなく成功）
		if err := u.cartItemRepo.DeleteByID(ctx, item.ID); err != nil {
			if err == repo.ErrNotFound {
				return UpdateCartItemResult{}, NewHTTPError(http.StatusNotFound, "cart item not found")
			}
			return UpdateCartItemResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return UpdateCartItemResult{Removed: true}, nil
	}

	if err := u.cartItemRepo.UpdateQuantity(ctx, item.ID, qty); err != nil {
		if err == repo.ErrNotFound {
			return UpdateCartItemResult{}, NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		return UpdateCartItemResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item.Quantity = qty
	return UpdateCartItemResult{Item: item}, nil
}

// 明細削除
func (u *CartUsecase) Remove(ctx context.Context, userID int64, cartItemID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	item, err := u.cartItemRepo.FindOwnedByUser(ctx, cartItemID, userID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "cart item not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, item.ID); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "cart item not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}
