package router

import (
	"github.com/oksasatya/go-commerce-api/internal/application"
	"github.com/oksasatya/go-commerce-api/internal/container"
	pginfra "github.com/oksasatya/go-commerce-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-commerce-api/internal/interface/http"
	"github.com/oksasatya/go-commerce-api/internal/router/modules"
)

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	pool := container.GetPGPool()

	userRepo := pginfra.NewUserRepository(pool)
	categoryRepo := pginfra.NewCategoryRepository(pool)
	productRepo := pginfra.NewProductRepository(pool)
	orderRepo := pginfra.NewOrderRepository(pool)

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), logger)
	catalogSvc := application.NewCatalogService(
		categoryRepo, productRepo,
		container.GetRedis(), logger,
		container.GetES(), cfg.ESProductsIndex,
		container.GetGCS(), cfg.GCSBucket,
	)
	orderSvc := application.NewOrderService(
		orderRepo, productRepo, userRepo,
		container.GetPayment(), container.GetRabbitPub(),
		logger, cfg.AppName,
	)

	authHandler := handlers.NewAuthHandler(authSvc, logger, cfg, container.GetRabbitPub())
	catalogHandler := handlers.NewCatalogHandler(catalogSvc, logger)
	orderHandler := handlers.NewOrderHandler(orderSvc, logger)

	r.Add(modules.NewAuthModule(authHandler, userRepo))
	r.Add(modules.NewCatalogModule(catalogHandler, userRepo))
	r.Add(modules.NewOrderModule(orderHandler, userRepo))
	r.Add(modules.NewDebugModule())
}
