package model

import "time"

// 配送先住所
type Address struct {
	ID     int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID int64 `gorm:"not null;index" json:"user_id"`

	//宛名
	FullName string `gorm:"type:varchar(255);not null" json:"full_name"`

	//電話番号
	Phone string `gorm:"type:varchar(30)" json:"phone"`

	//番地など
	Line1 string `gorm:"type:varchar(255);not null" json:"line1"`

	//建物名など
	Line2 string `gorm:"type:varchar(255)" json:"line2"`

	//市区町村
	City string `gorm:"type:varchar(255);not null" json:"city"`

	//郵便番号
	PostalCode string `gorm:"type:varchar(20);not null" json:"postal_code"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
