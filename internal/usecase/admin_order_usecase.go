package usecase

import (
	"context"
	"net/http"
	"strings"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"
)

// 管理者用の注文操作。
type AdminOrderUsecase struct {
	orderRepo repo.OrderRepository
}

func NewAdminOrderUsecase(orderRepo repo.OrderRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{orderRepo: orderRepo}
}

type AdminUpdateOrderInput struct {
	Status        *string
	PaymentStatus *string
}

// 全注文一覧（新着順）
func (u *AdminOrderUsecase) List(ctx context.Context) ([]model.Order, error) {
	orders, err := u.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}

// ステータス更新（部分更新。遷移表の強制はしない）
func (u *AdminOrderUsecase) Update(ctx context.Context, orderID int64, in AdminUpdateOrderInput) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	//値チェックだけ先にやる
	if in.Status != nil {
		switch strings.TrimSpace(*in.Status) {
		case string(model.OrderStatusPending), string(model.OrderStatusShipped), string(model.OrderStatusCancelled):
		default:
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
	}
	if in.PaymentStatus != nil {
		switch strings.TrimSpace(*in.PaymentStatus) {
		case string(model.PaymentStatusPaid), string(model.PaymentStatusUnpaid):
		default:
			return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid payment_status")
		}
	}

	//注文の存在確認
	if _, err := u.orderRepo.FindByID(ctx, orderID); err != nil {
		if err == repo.ErrNotFound {
			return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
		}
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Status != nil {
		if err := u.orderRepo.UpdateStatus(ctx, orderID, model.OrderStatus(strings.TrimSpace(*in.Status))); err != nil {
			return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	if in.PaymentStatus != nil {
		if err := u.orderRepo.UpdatePaymentStatus(ctx, orderID, model.PaymentStatus(strings.TrimSpace(*in.PaymentStatus))); err != nil {
			return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return o, nil
}
