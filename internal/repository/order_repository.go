package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)

	//自分の注文一覧（新着順、明細と住所込み）
	ListByUserID(ctx context.Context, userID int64) ([]model.Order, error)

	//管理者用の注文一覧（新着順）
	ListAll(ctx context.Context) ([]model.Order, error)

	Create(ctx context.Context, order model.Order) (int64, error)

	//チェックアウト確定時の合計金額反映
	UpdateTotalAmount(ctx context.Context, orderID int64, total int64) error

	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	UpdatePaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error
}
