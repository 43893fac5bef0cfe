package middleware

import (
	"time"

	"checkbot/pkg/log"
)

// Config holds the secrets and limits the middleware enforces.
type Config struct {
	WebhookSecret   string        // expected X-Telegram-Bot-Api-Secret-Token; empty disables the check
	BotToken        string        // signs mini app init data
	InitDataMaxAge  time.Duration // 0 accepts init data of any age
	RateLimitPerMin int           // per Telegram user; 0 disables limiting
}

type Middleware struct {
	l       log.Logger
	cfg     Config
	limiter *rateLimiter
	now     func() time.Time
}

func New(l log.Logger, cfg Config) Middleware {
	return Middleware{
		l:       l,
		cfg:     cfg,
		limiter: newRateLimiter(cfg.RateLimitPerMin),
		now:     time.Now,
	}
}
