package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dvogel/gatewarden/internal/bot"
	"github.com/dvogel/gatewarden/internal/captcha"
	"github.com/dvogel/gatewarden/internal/config"
	"github.com/dvogel/gatewarden/internal/database"
	"github.com/dvogel/gatewarden/internal/gate"
	"github.com/dvogel/gatewarden/internal/logging"
	"github.com/dvogel/gatewarden/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := logging.Setup(cfg.LogLevel)

	db, err := database.Open(cfg.StoreURL, cfg.StoreAuthToken)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	renderer, err := captcha.NewRenderer()
	if err != nil {
		log.Fatalf("init renderer: %v", err)
	}

	users := store.NewUserStore(db)
	sessions := store.NewSessionStore(db)
	messages := store.NewMessageLogStore(db)

	challenger := captcha.NewChallenger(sessions, renderer, logger)
	pending := gate.NewPendingSessions()

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatalf("connect bot api: %v", err)
	}
	logger.Info("bot authorized", "username", api.Self.UserName)

	b := bot.New(api, users, messages, challenger, pending,
		bot.NewAdminList(cfg.AdminIDs), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Abandoned challenges age out of the advisory mapping.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				pending.Sweep()
			}
		}
	}()

	updateCfg := tgbotapi.NewUpdate(0)
	updateCfg.Timeout = cfg.UpdateTimeout
	updates := api.GetUpdatesChan(updateCfg)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info("shutting down")
		api.StopReceivingUpdates()
		cancel()
	}()

	b.Run(ctx, updates)
}
