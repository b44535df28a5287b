package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tulsagolf/teetimes/config"
	"github.com/tulsagolf/teetimes/internal/bootstrap"
	"github.com/tulsagolf/teetimes/internal/cache"
	"github.com/tulsagolf/teetimes/internal/foreup"
	"github.com/tulsagolf/teetimes/internal/kafka"
	"github.com/tulsagolf/teetimes/internal/registry"
	"github.com/tulsagolf/teetimes/internal/repository"
	"github.com/tulsagolf/teetimes/internal/service/alerts"
	"github.com/tulsagolf/teetimes/internal/service/teetimes"
)

func main() {
	logger := bootstrap.NewLogger()

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		logger.Error("load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Error("connect postgres", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	var schedules, times cache.Store
	if cfg.Redis.Addr != "" {
		store := cache.NewRedisStore(cfg.Redis)
		schedules, times = store, store
	} else {
		schedules, times = cache.NewMemoryStore(), cache.NewMemoryStore()
	}

	client := foreup.NewClient(cfg.ForeUp.BookingHost, cfg.ForeUp.UserAgent, cfg.ForeUp.Timeout())
	reg := registry.New(cfg.Courses...)
	searchSvc := teetimes.NewService(reg, client, schedules, times, cfg.Cache.ScheduleTTL(), cfg.Cache.TimesTTL(), logger)

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	alertRepo := repository.NewAlertRepository(pool)
	alertSvc := alerts.NewService(alertRepo, reg, searchSvc, producer, cfg.Kafka.NotificationsTopic, logger)

	if err := bootstrap.Run(ctx, cfg, searchSvc, alertSvc, logger); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
