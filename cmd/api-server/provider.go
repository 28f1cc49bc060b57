package main

import (
	"context"

	"base97/config"
	"base97/dao"
	"base97/handler"
	"base97/middleware"
	"base97/notify"
	"base97/pkg/client"
	"base97/pkg/database"
	"base97/pkg/encrypt"
	"base97/pkg/log"
	"base97/pkg/mail"
	"base97/pkg/server"
	"base97/queue"
	"base97/service"

	"go.uber.org/zap"
)

// InitServer 组装全部依赖: dao -> service -> handler -> engine。
func InitServer(cfg *config.Config) *server.AppProvider {
	db := database.NewDB(cfg)
	if err := database.Migrate(db); err != nil {
		log.L.Fatal("migrate database", zap.Error(err))
	}

	rdb := client.NewRedisClient(cfg)
	publisher := queue.NewPublisher(cfg)

	users := dao.NewUsers(db)
	products := dao.NewProducts(db)
	reviews := dao.NewReviews(db)
	affiliates := dao.NewAffiliateRequests(db)
	orders := dao.NewOrders(db)

	seedAdmin(cfg, users)

	authService := &service.AuthService{Config: cfg, Users: users, Queue: publisher}
	productService := &service.ProductService{Products: products}
	reviewService := &service.ReviewService{Reviews: reviews, Products: products, Users: users, Queue: publisher}
	affiliateService := &service.AffiliateService{Requests: affiliates, Reviews: reviews, Users: users, Queue: publisher}
	orderService := &service.OrderService{Orders: orders, Products: products, Codes: affiliates, Users: users, Queue: publisher}
	adminService := &service.AdminService{Orders: orders, Users: users}

	handlers := &server.Handlers{
		Auth: &handler.Auth{
			Config:      cfg,
			AuthService: authService,
			RateLimit:   middleware.NewTokenBucket(cfg.RateLimit, rdb),
		},
		Product:   &handler.Product{Config: cfg, ProductService: productService},
		Review:    &handler.Review{Config: cfg, ReviewService: reviewService},
		Affiliate: &handler.Affiliate{Config: cfg, AffiliateService: affiliateService},
		Order:     &handler.Order{Config: cfg, OrderService: orderService},
		Admin:     &handler.Admin{Config: cfg, AdminService: adminService, OrderService: orderService},
		Upload:    &handler.Upload{Config: cfg},
	}

	mailer := mail.NewMailer(cfg)
	go notify.NewConsumer(cfg, mailer).Start()

	return &server.AppProvider{
		Config: cfg,
		Engine: server.NewGinEngine(cfg, handlers),
	}
}

func seedAdmin(cfg *config.Config, users *dao.Users) {
	if cfg.Store.AdminEmail == "" {
		return
	}
	hash, err := encrypt.HashPassword(cfg.Store.AdminPassword)
	if err != nil {
		log.L.Fatal("hash admin password", zap.Error(err))
	}
	if err := users.EnsureAdmin(context.Background(), cfg.Store.AdminName, cfg.Store.AdminEmail, hash); err != nil {
		log.L.Fatal("seed admin user", zap.Error(err))
	}
}
