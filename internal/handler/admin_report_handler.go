package handler

import (
	"net/http"

	"storefront/internal/config"
	"storefront/internal/middleware"
	"storefront/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /admin/reports の管理者向けレポートAPI
type AdminReportHandler struct {
	uc *usecase.ReportUsecase
}

func NewAdminReportHandler(uc *usecase.ReportUsecase) *AdminReportHandler {
	return &AdminReportHandler{uc: uc}
}

func (h *AdminReportHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthSession(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("/reports/sales", h.sales)
}

func (h *AdminReportHandler) sales(c echo.Context) error {
	out, err := h.uc.ProductSales(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
