package usecase

import (
	"context"
	"net/http"

	repo "storefront/internal/repository"
)

// 売上レポート（管理者のみ、handlerでガード済み）。
type ReportUsecase struct {
	reportRepo repo.ReportRepository
}

func NewReportUsecase(reportRepo repo.ReportRepository) *ReportUsecase {
	return &ReportUsecase{reportRepo: reportRepo}
}

// 商品別の販売数量・売上。数量降順。
func (u *ReportUsecase) ProductSales(ctx context.Context) ([]repo.ProductSalesRow, error) {
	rows, err := u.reportRepo.ProductSales(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}
