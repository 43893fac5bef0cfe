package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	t.Run("Values and defaults", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "")
		t.Setenv("CHECKBOX_HMAC_SECRET", "")
		path := writeConfig(t, `
telegram:
  bot_token: "1:abc"
  bot_username: "@CheckBot"
  webhook_secret: "s3cret"
checklist:
  hmac_secret: "hmac"
  web_app_url: "https://app.example.com"
storage:
  cache_ttl: 1m
`)
		cfg, err := LoadFile(path)
		if err != nil {
			t.Fatalf("LoadFile: %v", err)
		}
		if cfg.Telegram.BotToken != "1:abc" || cfg.Telegram.BotUsername != "CheckBot" || cfg.Telegram.WebhookSecret != "s3cret" {
			t.Errorf("unexpected telegram config %+v", cfg.Telegram)
		}
		if cfg.Checklist.HMACSecret != "hmac" || cfg.Checklist.WebAppURL != "app.example.com" {
			t.Errorf("unexpected checklist config %+v", cfg.Checklist)
		}
		if cfg.Checklist.InitDataMaxAge != 24*time.Hour {
			t.Errorf("expected default max age, got %v", cfg.Checklist.InitDataMaxAge)
		}
		if cfg.Storage.CacheTTL != time.Minute || cfg.Storage.CacheSize != 10000 || cfg.Storage.SQLitePath != "checkbot.db" {
			t.Errorf("unexpected storage config %+v", cfg.Storage)
		}
		if cfg.HTTPServer.Port != 8080 || cfg.Webhook.RateLimitPerMin != 60 || cfg.Telegram.RateLimitPerSec != 25 {
			t.Errorf("unexpected defaults %+v %+v", cfg.HTTPServer, cfg.Webhook)
		}
	})

	t.Run("Env shortcuts", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "2:env")
		t.Setenv("CHECKBOX_HMAC_SECRET", "env-secret")
		cfg, err := LoadFile(writeConfig(t, "environment:\n  name: production\n"))
		if err != nil {
			t.Fatalf("LoadFile: %v", err)
		}
		if cfg.Telegram.BotToken != "2:env" || cfg.Checklist.HMACSecret != "env-secret" {
			t.Errorf("env shortcuts not applied: %+v %+v", cfg.Telegram, cfg.Checklist)
		}
		if cfg.Environment.Name != "production" {
			t.Errorf("unexpected environment %q", cfg.Environment.Name)
		}
	})

	t.Run("Missing bot token", func(t *testing.T) {
		t.Setenv("TELEGRAM_BOT_TOKEN", "")
		_, err := LoadFile(writeConfig(t, "checklist:\n  hmac_secret: x\n"))
		if !errors.Is(err, ErrMissingBotToken) {
			t.Errorf("expected ErrMissingBotToken, got %v", err)
		}
	})

	t.Run("Missing secret", func(t *testing.T) {
		t.Setenv("CHECKBOX_HMAC_SECRET", "")
		_, err := LoadFile(writeConfig(t, "telegram:\n  bot_token: x\n"))
		if !errors.Is(err, ErrMissingHMACSecret) {
			t.Errorf("expected ErrMissingHMACSecret, got %v", err)
		}
	})

	t.Run("Missing file", func(t *testing.T) {
		if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
			t.Error("expected error")
		}
	})
}
