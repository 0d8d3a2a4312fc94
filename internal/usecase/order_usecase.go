package usecase

import (
	"context"
	"net/http"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// OrderUsecase はチェックアウト（カート→注文の1回きりの遷移）と注文参照。
type OrderUsecase struct {
	tx        repo.TransactionManager
	orderRepo repo.OrderRepository
}

func NewOrderUsecase(tx repo.TransactionManager, orderRepo repo.OrderRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, orderRepo: orderRepo}
}

type PlaceOrderInput struct {
	AddressID int64
	//クライアント申告の支払い方法（"paypal"だけがpaid扱い）
	Payment string
}

type PlaceOrderOutput struct {
	Message string `json:"message"`
	OrderID int64  `json:"order_id"`
}

// PlaceOrder はカートを注文に変換する。
// 全ステップを1トランザクションで実行し、途中で失敗したら全部ロールバックする。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, userID int64, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if userID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.AddressID <= 0 {
		return PlaceOrderOutput{}, NewHTTPError(http.StatusBadRequest, "address_id required")
	}

	//payment=="paypal"だけがpaid。それ以外（cod等）はunpaid。
	//実際の決済検証はしない。
	paymentStatus := model.PaymentStatusUnpaid
	if in.Payment == "paypal" {
		paymentStatus = model.PaymentStatusPaid
	}

	var out PlaceOrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//address_idの存在確認＋所有チェック。他人の住所は「存在しない扱い」。
		addr, err := r.Addresses().FindByID(ctx, in.AddressID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "invalid address")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if addr.UserID != userID {
			return NewHTTPError(http.StatusNotFound, "invalid address")
		}

		//カート明細取得
		cartItems, err := r.CartItems().ListByUserID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		//注文作成（合計は後で入れる）
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:        userID,
			AddressID:     in.AddressID,
			Status:        model.OrderStatusPending,
			PaymentStatus: paymentStatus,
			TotalAmount:   0,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//明細ごとにスナップショットを作って合計を積む
		var total int64 = 0
		for _, ci := range cartItems {
			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "product not found")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			subtotal := ci.Quantity * p.Price

			//購入時点の商品名・単価を保存する。後からProductを変えても注文は変わらない。
			if _, err := r.OrderItems().Create(ctx, model.OrderItem{
				OrderID:     orderID,
				ProductID:   p.ID,
				ProductName: p.Name,
				UnitPrice:   p.Price,
				Quantity:    ci.Quantity,
				Subtotal:    subtotal,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			//paidのときだけ在庫減算。減算はstock = stock - qtyの1文で行う。
			if paymentStatus == model.PaymentStatusPaid {
				if err := r.Products().DecrementStock(ctx, p.ID, ci.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}

			total += subtotal
		}

		//合計金額の確定
		if err := r.Orders().UpdateTotalAmount(ctx, orderID, total); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートを空にする
		if err := r.CartItems().DeleteAllByUserID(ctx, userID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = PlaceOrderOutput{Message: "Order placed", OrderID: orderID}
		return nil
	})

	if err != nil {
		return PlaceOrderOutput{}, err
	}
	return out, nil
}

// 自分の注文一覧（新着順、明細込み）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64) ([]model.Order, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}
