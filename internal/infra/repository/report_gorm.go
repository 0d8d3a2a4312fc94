package repository

import (
	"context"

	"storefront/internal/domain/model"
	repo "storefront/internal/repository"

	"gorm.io/gorm"
)

type ReportGormRepository struct {
	db *gorm.DB
}

// DI
func NewReportGormRepository(db *gorm.DB) *ReportGormRepository {
	return &ReportGormRepository{db: db}
}

// 商品ごとの販売数量と売上を集計する。
// 金額は注文時のunit_priceスナップショットで計算する（現在価格は見ない）。
func (r *ReportGormRepository) ProductSales(ctx context.Context) ([]repo.ProductSalesRow, error) {
	var rows []repo.ProductSalesRow

	err := r.db.WithContext(ctx).
		Model(&model.OrderItem{}).
		Select("product_id, product_name, SUM(quantity) AS total_quantity, SUM(quantity * unit_price) AS total_revenue").
		Group("product_id").
		Group("product_name").
		Order("total_quantity desc").
		Scan(&rows).Error

	if err != nil {
		return []repo.ProductSalesRow{}, err
	}
	return rows, nil
}
