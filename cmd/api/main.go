package main

import (
	"storefront/internal/config"
	"storefront/internal/domain/model"
	"storefront/internal/handler"
	"storefront/internal/infra/db"
	infraRepo "storefront/internal/infra/repository"
	"storefront/internal/server"
	"storefront/internal/usecase"
	"storefront/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envは無ければ環境変数だけで動く
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.CartItem{},
		&model.Address{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	categoryRepo := infraRepo.NewCategoryGormRepository(gormDB)
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	addressRepo := infraRepo.NewAddressGormRepository(gormDB)
	orderRepo := infraRepo.NewOrderGormRepository(gormDB)
	reportRepo := infraRepo.NewReportGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, validator.NewAuthValidator(userRepo))
	productUC := usecase.NewProductUsecase(productRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUsecase(categoryRepo)
	cartUC := usecase.NewCartUsecase(cartItemRepo, productRepo)
	addressUC := usecase.NewAddressUsecase(addressRepo)
	orderUC := usecase.NewOrderUsecase(txManager, orderRepo)
	adminOrderUC := usecase.NewAdminOrderUsecase(orderRepo)
	adminUserUC := usecase.NewAdminUserUsecase(userRepo)
	reportUC := usecase.NewReportUsecase(reportRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:         handler.NewAuthHandler(cfg, authUC),
		Product:      handler.NewProductHandler(productUC),
		Category:     handler.NewCategoryHandler(categoryUC),
		Cart:         handler.NewCartHandler(cartUC),
		Address:      handler.NewAddressHandler(addressUC),
		Order:        handler.NewOrderHandler(orderUC),
		AdminProduct: handler.NewAdminProductHandler(productUC),
		AdminOrder:   handler.NewAdminOrderHandler(adminOrderUC),
		AdminUser:    handler.NewAdminUserHandler(adminUserUC),
		AdminReport:  handler.NewAdminReportHandler(reportUC),
	}

	//Server起動
	e := server.New(cfg)
	server.RegisterRoutes(e, cfg, handlers)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(e, addr); err != nil {
		panic(err)
	}
}
