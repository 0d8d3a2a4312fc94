package server

import (
	"storefront/internal/config"
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

// Handlers はルート登録に必要なhandler一式。
type Handlers struct {
	Auth         *handler.AuthHandler
	Product      *handler.ProductHandler
	Category     *handler.CategoryHandler
	Cart         *handler.CartHandler
	Address      *handler.AddressHandler
	Order        *handler.OrderHandler
	AdminProduct *handler.AdminProductHandler
	AdminOrder   *handler.AdminOrderHandler
	AdminUser    *handler.AdminUserHandler
	AdminReport  *handler.AdminReportHandler
}

// RegisterRoutes は全ルートを登録する。
func RegisterRoutes(e *echo.Echo, cfg config.Config, h Handlers) {
	h.Auth.RegisterRoutes(e)

	h.Product.RegisterRoutes(e)
	h.Category.RegisterRoutes(e, cfg)

	h.Cart.RegisterRoutes(e, cfg)
	h.Address.RegisterRoutes(e, cfg)
	h.Order.RegisterRoutes(e, cfg)

	h.AdminProduct.RegisterRoutes(e, cfg)
	h.AdminOrder.RegisterRoutes(e, cfg)
	h.AdminUser.RegisterRoutes(e, cfg)
	h.AdminReport.RegisterRoutes(e, cfg)
}
