package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"checkbot/config"
	_ "checkbot/docs" // Swagger docs
	"checkbot/internal/checkbox"
	miniappHTTP "checkbot/internal/checklist/delivery/http"
	tgDelivery "checkbot/internal/checklist/delivery/telegram"
	tgRepo "checkbot/internal/checklist/repository/telegram"
	"checkbot/internal/checklist/usecase"
	"checkbot/internal/httpserver"
	"checkbot/internal/location"
	"checkbot/internal/middleware"
	"checkbot/internal/userconfig"
	"checkbot/pkg/log"
	"checkbot/pkg/ngrok"
	"checkbot/pkg/telegram"
)

// @title       Checklist Bot API
// @description Mini app endpoints and Telegram webhook of the checklist bot.
// @version     1
// @host        localhost:8080
// @schemes     http https
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load config:", err)
		os.Exit(1)
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Errorf(ctx, "%v", err)
		os.Exit(1)
	}
	logger.Info(ctx, "Server stopped gracefully")
}

// run wires the bot and serves until ctx is done. Any error is fatal.
func run(ctx context.Context, cfg *config.Config, logger log.Logger) error {
	logger.Info(ctx, "Starting checklist bot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Telegram Bot client
	bot := telegram.NewBot(cfg.Telegram.BotToken)
	if cfg.Telegram.APIURL != "" {
		bot.SetAPIURL(strings.TrimRight(cfg.Telegram.APIURL, "/") + "/bot" + cfg.Telegram.BotToken)
	}
	bot.SetRateLimit(cfg.Telegram.RateLimitPerSec, int(cfg.Telegram.RateLimitPerSec))

	me, err := bot.GetMe(ctx)
	if err != nil {
		return fmt.Errorf("failed to reach the Bot API: %w", err)
	}
	botUsername := cfg.Telegram.BotUsername
	if botUsername == "" {
		botUsername = me.Username
	}
	logger.Infof(ctx, "Running as @%s (%d)", botUsername, me.ID)

	// 4. User config store
	sqliteStore, err := userconfig.OpenSQLite(ctx, cfg.Storage.SQLitePath)
	if err != nil {
		return fmt.Errorf("failed to open user config store: %w", err)
	}
	defer sqliteStore.Close()
	configs := userconfig.WithCache(sqliteStore, cfg.Storage.CacheSize, cfg.Storage.CacheTTL)

	// 5. Location signing
	signer, err := location.NewSigner(cfg.Checklist.HMACSecret)
	if err != nil {
		return fmt.Errorf("invalid HMAC secret: %w", err)
	}
	codec := location.NewCodec(signer)
	checkboxSvc := checkbox.New()

	// 6. Checklist UseCase
	reader := tgRepo.New(logger, bot, me.ID)
	checklistUC := usecase.New(logger, bot, reader, configs, codec, checkboxSvc, usecase.Config{
		BotUsername: botUsername,
		WebAppURL:   cfg.Checklist.WebAppURL,
		WebAppName:  cfg.Checklist.WebAppName,
	})

	// 7. Delivery
	telegramHandler := tgDelivery.New(logger, checklistUC, checkboxSvc, configs, bot, tgDelivery.Config{
		BotID:       me.ID,
		BotUsername: botUsername,
		BotName:     me.FirstName,
		WebAppURL:   cfg.Checklist.WebAppURL,
	})
	miniAppHandler := miniappHTTP.New(logger, checklistUC)
	mw := middleware.New(logger, middleware.Config{
		WebhookSecret:   cfg.Telegram.WebhookSecret,
		BotToken:        cfg.Telegram.BotToken,
		InitDataMaxAge:  cfg.Checklist.InitDataMaxAge,
		RateLimitPerMin: cfg.Webhook.RateLimitPerMin,
	})

	// 8. Register webhook: configured URL, or the ngrok tunnel in development
	webhookURL := cfg.Telegram.WebhookURL
	if webhookURL == "" && cfg.Telegram.NgrokAPIURL != "" {
		ngrokURL, ngrokErr := ngrok.DetectURL(ctx, cfg.Telegram.NgrokAPIURL, ngrok.Options{})
		if ngrokErr != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
		} else {
			webhookURL = ngrokURL + "/webhook/telegram"
			logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
		}
	}
	if webhookURL != "" {
		if whErr := bot.SetWebhook(ctx, webhookURL, cfg.Telegram.WebhookSecret); whErr != nil {
			logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
		} else {
			logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
		}
	} else {
		logger.Warn(ctx, "No webhook URL configured; run `setup webhook set` to register one")
	}

	// 9. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		Middleware:      mw,
		ReadyCheck:      sqliteStore.Ping,
		TelegramHandler: telegramHandler,
		MiniAppHandler:  miniAppHandler,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize HTTP server: %w", err)
	}

	// 10. Run
	if err := httpServer.Run(ctx); err != nil {
		return fmt.Errorf("failed to run server: %w", err)
	}
	return nil
}
