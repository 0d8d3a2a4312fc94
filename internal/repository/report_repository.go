package repository

import "context"

// 商品ごとの売上集計1行。
type ProductSalesRow struct {
	ProductID     int64  `json:"product_id"`
	ProductName   string `json:"product_name"`
	TotalQuantity int64  `json:"total_quantity"`
	TotalRevenue  int64  `json:"total_revenue"`
}

// 売上レポートの集計クエリを約束。
type ReportRepository interface {
	//注文明細を商品単位でグルーピングして数量降順で返す
	ProductSales(ctx context.Context) ([]ProductSalesRow, error)
}
