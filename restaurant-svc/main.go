package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"restaurant-backend/config"
	httpapi "restaurant-backend/restaurant-svc/internal/api/http"
	"restaurant-backend/restaurant-svc/internal/service"
	"restaurant-backend/restaurant-svc/internal/storage"

	"github.com/shopspring/decimal"
)

func main() {
	// prices go over the wire as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true

	cfg := config.Load()
	log := config.NewLogger("restaurant-svc", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db := config.MustInitPostgres(cfg, log)
	defer db.Close()

	repo := storage.NewPostgresRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		log.WithError(err).Fatal("failed to ensure schema")
	}

	var (
		menuCache service.MenuCache
		qrCache   service.QRCache
		sales     service.SalesReader
		publisher service.LinePublisher
	)
	if cfg.RedisEnabled() {
		client := config.MustInitRedis(cfg, log)
		defer client.Close()
		cache := storage.NewRedisCache(client, cfg.CacheTTL)
		menuCache, qrCache, sales = cache, cache, cache
	} else {
		log.Warn("REDIS_HOST not set, running without cache and sales counters")
	}
	if cfg.KafkaEnabled() {
		writer := config.NewKafkaWriter(cfg)
		defer writer.Close()
		publisher = storage.NewKafkaPublisher(writer)
	} else {
		log.Warn("KAFKA_BROKER not set, order line events are not published")
	}

	handler := httpapi.NewHandler(httpapi.Services{
		Customers:    service.NewCustomerService(repo),
		Tables:       service.NewTableService(repo),
		Dishes:       service.NewDishService(repo, menuCache, log),
		SetMeals:     service.NewSetMealService(repo, menuCache, log),
		SetDishes:    service.NewSetDishService(repo, menuCache, log),
		Orders:       service.NewOrderService(repo, service.DefaultQRGenerator{BaseURL: cfg.QRBaseURL}, qrCache, publisher, log),
		OrderDetails: service.NewOrderDetailsService(repo, publisher, log),
		Sales:        service.NewSalesService(sales),
	}, log)

	router := httpapi.NewRouter(handler, cfg.CORSAllowedOrigin)
	if err := httpapi.StartServer(ctx, cfg.HTTPAddr, router, log); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
