package repository

import (
	"context"

	"storefront/internal/domain/model"
)

type OrderItemRepository interface {
	Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error)
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error)
}
