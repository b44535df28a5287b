package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tulsagolf/teetimes/config"
	"github.com/tulsagolf/teetimes/internal/bootstrap"
	"github.com/tulsagolf/teetimes/internal/cache"
	"github.com/tulsagolf/teetimes/internal/foreup"
	"github.com/tulsagolf/teetimes/internal/kafka"
	"github.com/tulsagolf/teetimes/internal/notify"
	"github.com/tulsagolf/teetimes/internal/registry"
	"github.com/tulsagolf/teetimes/internal/repository"
	"github.com/tulsagolf/teetimes/internal/service/alerts"
	"github.com/tulsagolf/teetimes/internal/service/teetimes"
)

// The worker sweeps active alerts against current availability on a timer
// and delivers the notification events the sweep publishes.
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

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	sender := notify.NewSender(logger)
	go func() {
		if err := consumer.Consume(ctx, sender.Send); err != nil {
			logger.Warn("consumer stopped", "error", err)
		}
	}()

	sweepTicker := time.NewTicker(cfg.Worker.SweepInterval())
	defer sweepTicker.Stop()

	for {
		select {
		case <-sweepTicker.C:
			notified, err := alertSvc.Sweep(ctx)
			if err != nil {
				logger.Error("alert sweep failed", "error", err)
				continue
			}
			if notified > 0 {
				logger.Info("alert sweep finished", "notified", notified)
			}
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		}
	}
}
