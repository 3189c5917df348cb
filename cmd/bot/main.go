package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/vanshgehlot9/nikkifashionbot/internal/application/alerting"
	"github.com/vanshgehlot9/nikkifashionbot/internal/application/forecast"
	"github.com/vanshgehlot9/nikkifashionbot/internal/application/orderops"
	"github.com/vanshgehlot9/nikkifashionbot/internal/application/reconcile"
	"github.com/vanshgehlot9/nikkifashionbot/internal/domain/shared"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/config"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/feed"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/jsonstore"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/ledger"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/logger"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/ratelimit"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/scheduler"
	"github.com/vanshgehlot9/nikkifashionbot/internal/infrastructure/shopify"
	adminhttp "github.com/vanshgehlot9/nikkifashionbot/internal/interfaces/http"
	"github.com/vanshgehlot9/nikkifashionbot/internal/interfaces/telegram"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Nikki Fashion bot",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	// Flat-file stores
	dataPath := func(name string) string { return filepath.Join(cfg.Data.Dir, name) }

	processedLedger, err := ledger.Open(dataPath(cfg.Data.LedgerFile))
	if err != nil {
		log.Fatal("Failed to open tracking ledger", zap.Error(err))
	}
	thresholds, err := jsonstore.OpenSKUQuantityStore(dataPath(cfg.Data.AlertsFile))
	if err != nil {
		log.Fatal("Failed to open alerts store", zap.Error(err))
	}
	autoRestock, err := jsonstore.OpenSKUQuantityStore(dataPath(cfg.Data.AutoRestockFile))
	if err != nil {
		log.Fatal("Failed to open auto-restock store", zap.Error(err))
	}
	tickets, err := jsonstore.OpenTicketStore(dataPath(cfg.Data.TicketsFile))
	if err != nil {
		log.Fatal("Failed to open ticket store", zap.Error(err))
	}
	notifications, err := jsonstore.OpenNotificationStore(dataPath(cfg.Data.NotificationsFile))
	if err != nil {
		log.Fatal("Failed to open notifications store", zap.Error(err))
	}

	// Store and feed adapters
	store := shopify.NewClient(cfg.Shopify, log)
	trackingFeed := feed.NewFetcher(cfg.Feed.URL, cfg.Feed.Timeout, log)
	pacer := ratelimit.NewTokenBucket(cfg.Reconcile.Throttle)

	// Application services
	reconciler := reconcile.NewService(store, trackingFeed, processedLedger, pacer, cfg.Reconcile.CarrierName, log)
	alerts := alerting.NewEngine(store, thresholds, autoRestock, log)
	predictor := forecast.NewPredictor(store, log)
	orderOps := orderops.NewService(store, log)

	// Job runner
	runnerCfg := scheduler.DefaultConfig()
	runnerCfg.JobTimeout = cfg.Reconcile.JobTimeout
	runnerCfg.Interval = cfg.Reconcile.Interval
	runner, err := scheduler.NewRunner(runnerCfg, reconcile.NewJobExecutor(reconciler, processedLedger), log)
	if err != nil {
		log.Fatal("Failed to create job runner", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := runner.Start(ctx); err != nil {
		log.Fatal("Failed to start job runner", zap.Error(err))
	}

	// Admin HTTP surface
	var admin *adminhttp.Server
	if cfg.Admin.Enabled {
		admin = adminhttp.NewServer(cfg.Admin.Addr, runner, reconciler, processedLedger, log)
		go func() {
			if err := admin.Start(); err != nil {
				log.Error("Admin server failed", zap.Error(err))
			}
		}()
	}

	// Telegram operator surface
	bot, err := telegram.New(cfg.Telegram, cfg.Shopify.CustomDomain, telegram.Deps{
		Store:         store,
		Reconciler:    reconciler,
		Alerts:        alerts,
		Forecast:      predictor,
		OrderOps:      orderOps,
		Tickets:       tickets,
		Notifications: notifications,
		Zones:         shared.DefaultZoneTable(),
		Currency:      shared.DefaultCurrencyTable(),
	}, log)
	if err != nil {
		log.Fatal("Failed to start Telegram bot", zap.Error(err))
	}

	botDone := make(chan struct{})
	go func() {
		defer close(botDone)
		if err := bot.Run(ctx); err != nil && ctx.Err() == nil {
			log.Error("Bot update loop exited", zap.Error(err))
		}
	}()
	go bot.RunReportBroadcasts(ctx, cfg.Telegram.ReportInterval)

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if admin != nil {
		if err := admin.Shutdown(shutdownCtx); err != nil {
			log.Warn("Admin server shutdown failed", zap.Error(err))
		}
	}
	if err := runner.Stop(shutdownCtx); err != nil {
		log.Warn("Job runner shutdown failed", zap.Error(err))
	}
	<-botDone

	log.Info("Shutdown complete")
}
