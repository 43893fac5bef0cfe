package httpserver

import (
	"context"
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	miniappHTTP "checkbot/internal/checklist/delivery/http"
	tgDelivery "checkbot/internal/checklist/delivery/telegram"
	"checkbot/internal/middleware"
	"checkbot/pkg/log"
)

const shutdownTimeout = 10 * time.Second

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	mw    middleware.Middleware
	ready func(ctx context.Context) error

	// Checklist domain
	telegramHandler tgDelivery.Handler
	miniAppHandler  miniappHTTP.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	Middleware middleware.Middleware
	// ReadyCheck backs /ready; nil always reports ready.
	ReadyCheck func(ctx context.Context) error

	// Checklist domain
	TelegramHandler tgDelivery.Handler
	MiniAppHandler  miniappHTTP.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		mw:              cfg.Middleware,
		ready:           cfg.ReadyCheck,
		telegramHandler: cfg.TelegramHandler,
		miniAppHandler:  cfg.MiniAppHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
