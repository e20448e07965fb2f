package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"restaurant-backend/agg-svc/internal/service"
	"restaurant-backend/agg-svc/internal/storage"
	"restaurant-backend/config"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger("agg-svc", cfg.LogLevel)

	if !cfg.KafkaEnabled() || !cfg.RedisEnabled() {
		log.Fatal("agg-svc needs KAFKA_BROKER and REDIS_HOST")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rdb := config.MustInitRedis(cfg, log)
	defer rdb.Close()

	reader := config.NewKafkaReader(cfg)
	defer reader.Close()

	consumer := service.NewConsumer(reader, storage.NewStore(rdb), log)
	consumer.Start(ctx)
}
