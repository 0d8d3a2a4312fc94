package model

import "time"

// カートの明細
// (user_id, product_id) は1行だけ。同じ商品の追加は数量加算。
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID int64     `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	AddedAt   time.Time `gorm:"not null;autoCreateTime" json:"added_at"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}
