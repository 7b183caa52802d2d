package main

import (
	"log"
	"net/http"

	"gomitas-be/internal/api"
	"gomitas-be/internal/config"
	"gomitas-be/internal/db"
	"gomitas-be/internal/inventory"
	"gomitas-be/internal/logger"
	"gomitas-be/internal/metrics"
	"gomitas-be/internal/middleware"
	"gomitas-be/internal/order"
	"gomitas-be/internal/policy"
	"gomitas-be/internal/product"
	"gomitas-be/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	pol := policy.NewRolePolicy()
	orderMetrics := metrics.NewOrderMetrics()

	userRepo := user.NewRepository(database)
	userSvc := user.NewService(userRepo)

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo, pol)

	stockRepo := inventory.NewRepository(database)
	stockSvc := inventory.NewService(stockRepo, pol)

	orderRepo := order.NewRepository(database, stockRepo)
	orderSvc := order.NewService(orderRepo, pol, orderMetrics)

	handler := api.NewHandler(userSvc, productSvc, stockSvc, orderSvc, pol, orderMetrics)

	srv := logger.RequestIDMiddleware(
		logger.LoggingMiddleware(
			middleware.CORS(
				middleware.AuthMiddleware(
					middleware.RateLimitMiddleware(
						handler.Router(),
					),
				),
			),
		),
	)

	log.Printf("🚀 API server running at http://localhost:%s/", cfg.AppPort)
	log.Fatal(http.ListenAndServe(":"+cfg.AppPort, srv))
}
