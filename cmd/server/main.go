package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"shopbot/internal/bot"
	"shopbot/internal/catalog"
	catalogrepo "shopbot/internal/catalog/repository"
	"shopbot/internal/config"
	"shopbot/internal/infrastructure/logger"
	"shopbot/internal/infrastructure/telegram"
	"shopbot/internal/instance"
	"shopbot/internal/order"
	"shopbot/internal/ratelimit"
	"shopbot/internal/region"
	"shopbot/internal/server"
	"shopbot/internal/session"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level)
	if err != nil {
		log.Fatalf("creating logger: %v", err)
	}
	defer zapLogger.Sync()

	lock := instance.New(filepath.Join(cfg.Storage.DataDir, "bot.lock"), zapLogger)
	acquired, err := lock.Acquire()
	if err != nil {
		zapLogger.Fatal("acquiring instance lock", zap.Error(err))
	}
	if !acquired {
		zapLogger.Fatal("another instance is already running")
	}
	defer lock.Release()

	tg, err := telegram.NewClient(cfg.Bot.Token, zapLogger)
	if err != nil {
		zapLogger.Fatal("connecting to telegram", zap.Error(err))
	}

	sessions := session.NewStore()
	gate := ratelimit.NewGate(cfg.RateLimit.Window, cfg.RateLimit.Max, cfg.RateLimit.Cooldown)

	classifier := region.NewClassifier()
	if cfg.Storage.RegionsFile != "" {
		classifier, err = region.NewClassifierFromFile(cfg.Storage.RegionsFile)
		if err != nil {
			zapLogger.Fatal("loading regions file", zap.Error(err))
		}
	}

	orderCtrl, orderUC, err := order.NewModule(cfg, sessions, classifier, tg, zapLogger)
	if err != nil {
		zapLogger.Fatal("assembling order module", zap.Error(err))
	}

	catalogCtrl := catalog.NewController(
		catalogrepo.NewFileCatalogRepository(filepath.Join(cfg.Storage.DataDir, "products.json")),
		cfg.Bot.AdminID,
		zapLogger,
	)
	sessionCtrl := session.NewController(sessions, zapLogger)

	handler := bot.NewHandler(tg, sessions, gate, orderUC, cfg.Bot.WebAppURL, zapLogger)
	webhook := telegram.NewWebhook(handler, zapLogger)

	router := server.NewRouter(
		catalogCtrl,
		orderCtrl,
		sessionCtrl,
		telegram.WebhookPath(cfg.Bot.Token),
		webhook.HandleUpdate,
		zapLogger,
	)

	srv := server.New(cfg.Server.Port, router, zapLogger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil {
			zapLogger.Fatal("server error", zap.Error(err))
		}
	}()

	// Webhook registration failing is not fatal: the API surface still works
	// and the webhook can be registered out of band.
	if cfg.Server.PublicURL != "" {
		if err := tg.RegisterWebhook(cfg.Server.PublicURL); err != nil {
			zapLogger.Error("registering webhook", zap.Error(err))
		}
	} else {
		zapLogger.Warn("SERVER_URL not set, webhook not registered")
	}

	<-quit
	zapLogger.Info("received shutdown signal")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Fatal("server shutdown failed", zap.Error(err))
	}

	zapLogger.Info("server stopped gracefully")
}
