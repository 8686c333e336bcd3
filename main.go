package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"carleadbot/pkg/applog"
	"carleadbot/pkg/bot"
	"carleadbot/pkg/bot/telegramadapter"
	"carleadbot/pkg/config"
	"carleadbot/pkg/content"
	"carleadbot/pkg/fsm"
	"carleadbot/pkg/notify"
	"carleadbot/pkg/ports/notifyport"
	"carleadbot/pkg/state"
	"carleadbot/pkg/webhook"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Panicf("Failed to load configuration: %v", err)
	}
	log.Println("Configuration loaded successfully.")

	texts, err := config.LoadTexts(cfg.TextsFile)
	if err != nil {
		log.Panicf("Failed to load reply texts: %v", err)
	}

	db, err := gorm.Open(postgres.Open(cfg.Storage.DatabaseDSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Panicf("Failed to connect to database: %v", err)
	}
	store, err := state.NewGormStore(db)
	if err != nil {
		log.Panicf("Failed to initialize session store: %v", err)
	}
	log.Println("Session store ready.")

	botClient, err := bot.NewClient(cfg.Telegram.Token)
	if err != nil {
		log.Panicf("Failed to initialize bot client: %v", err)
	}
	log.Printf("Authorized on account %s", botClient.Self.UserName)

	botPort, err := telegramadapter.New(botClient, log.Default())
	if err != nil {
		log.Panicf("Failed to create telegram adapter: %v", err)
	}

	mailer, err := notify.NewMailer(
		cfg.Manager.SMTPHost,
		cfg.Manager.SMTPPort,
		cfg.Manager.SMTPFrom,
		cfg.Manager.Email,
		cfg.Manager.SMTPUser,
		cfg.Manager.SMTPPass,
	)
	if err != nil {
		log.Panicf("Failed to initialize mailer: %v", err)
	}

	var appLogger notifyport.AppLogger = applog.Nop{}
	if cfg.ApplicationLog.Enabled {
		fileLogger, err := applog.NewFileLogger(cfg.ApplicationLog.Path)
		if err != nil {
			log.Panicf("Failed to initialize application log: %v", err)
		}
		appLogger = fileLogger
		log.Printf("Application log enabled at %s", cfg.ApplicationLog.Path)
	}

	fetcher := content.NewFetcher(cfg.TurnTimeout)
	engine := fsm.NewEngine(texts)
	dispatcher := fsm.NewDispatcher(store, engine, botPort, mailer, fetcher, appLogger, cfg.ConditionsFileURL)

	if err := botClient.RegisterWebhook(cfg.Telegram.WebhookURL); err != nil {
		log.Panicf("Failed to register webhook: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	server := webhook.NewServer(ctx, dispatcher, cfg.Telegram.WebhookPath, cfg.Telegram.WebhookSecret, cfg.TurnTimeout)
	httpServer := &http.Server{
		Addr:    cfg.Telegram.WebhookListen,
		Handler: server.Router(),
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Println("Shutdown signal received...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("HTTP server shutdown error: %v", err)
		}
	}()

	log.Printf("Listening on %s, webhook path %s", cfg.Telegram.WebhookListen, cfg.Telegram.WebhookPath)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Panicf("HTTP server failed: %v", err)
	}
	log.Println("Server stopped.")
}
