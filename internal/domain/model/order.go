package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentStatusPaid   PaymentStatus = "paid"
	PaymentStatusUnpaid PaymentStatus = "unpaid"
)

type Order struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        int64         `gorm:"not null;index" json:"user_id"`
	AddressID     int64         `gorm:"not null" json:"address_id"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null" json:"payment_status"`
	TotalAmount   int64         `gorm:"not null" json:"total_amount"`
	CreatedAt     time.Time     `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null;autoUpdateTime" json:"updated_at"`

	Address *Address    `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Items   []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
}
