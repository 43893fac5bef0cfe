package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

var (
	ErrMissingBotToken   = errors.New("telegram.bot_token (TELEGRAM_BOT_TOKEN) is required")
	ErrMissingHMACSecret = errors.New("checklist.hmac_secret (CHECKBOX_HMAC_SECRET) is required")
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Checklist bot specifics
	Telegram  TelegramConfig
	Checklist ChecklistConfig
	Storage   StorageConfig

	// Webhooks
	Webhook WebhookConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type TelegramConfig struct {
	BotToken        string
	BotUsername     string // filled from getMe when empty
	WebhookURL      string
	WebhookSecret   string
	NgrokAPIURL     string // polled for a public URL when WebhookURL is empty
	APIURL          string // Bot API base, for a local server
	RateLimitPerSec float64
}

type ChecklistConfig struct {
	HMACSecret     string
	WebAppURL      string // mini app host without scheme; empty hides the editor
	WebAppName     string
	InitDataMaxAge time.Duration
}

type StorageConfig struct {
	SQLitePath string
	CacheSize  int
	CacheTTL   time.Duration
}

type WebhookConfig struct {
	RateLimitPerMin int
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, . and /etc/app/
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/app/")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}
	return load(v)
}

// LoadFile reads configuration from an explicit file, as the setup CLI does.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}
	return load(v)
}

func load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")

	// Telegram
	cfg.Telegram.BotToken = v.GetString("telegram.bot_token")
	cfg.Telegram.BotUsername = strings.TrimPrefix(v.GetString("telegram.bot_username"), "@")
	cfg.Telegram.WebhookURL = v.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = v.GetString("telegram.webhook_secret")
	cfg.Telegram.NgrokAPIURL = v.GetString("telegram.ngrok_api_url")
	cfg.Telegram.APIURL = v.GetString("telegram.api_url")
	cfg.Telegram.RateLimitPerSec = v.GetFloat64("telegram.rate_limit_per_sec")
	if tgToken := v.GetString("telegram_bot_token"); tgToken != "" {
		cfg.Telegram.BotToken = tgToken
	}

	// Checklist
	cfg.Checklist.HMACSecret = v.GetString("checklist.hmac_secret")
	cfg.Checklist.WebAppURL = strings.TrimPrefix(v.GetString("checklist.web_app_url"), "https://")
	cfg.Checklist.WebAppName = v.GetString("checklist.web_app_name")
	cfg.Checklist.InitDataMaxAge = v.GetDuration("checklist.init_data_max_age")
	if secret := v.GetString("checkbox_hmac_secret"); secret != "" {
		cfg.Checklist.HMACSecret = secret
	}

	// Storage
	cfg.Storage.SQLitePath = v.GetString("storage.sqlite_path")
	cfg.Storage.CacheSize = v.GetInt("storage.cache_size")
	cfg.Storage.CacheTTL = v.GetDuration("storage.cache_ttl")

	// Webhooks
	cfg.Webhook.RateLimitPerMin = v.GetInt("webhook.rate_limit_per_min")

	if cfg.Telegram.BotToken == "" {
		return nil, ErrMissingBotToken
	}
	if cfg.Checklist.HMACSecret == "" {
		return nil, ErrMissingHMACSecret
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("telegram.rate_limit_per_sec", 25)
	v.SetDefault("checklist.init_data_max_age", "24h")
	v.SetDefault("storage.sqlite_path", "checkbot.db")
	v.SetDefault("storage.cache_size", 10000)
	v.SetDefault("storage.cache_ttl", "10m")
	v.SetDefault("webhook.rate_limit_per_min", 60)
}
