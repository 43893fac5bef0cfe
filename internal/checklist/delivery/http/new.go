package http

import (
	"github.com/gin-gonic/gin"

	"checkbot/internal/checklist"
	pkgLog "checkbot/pkg/log"
)

// Handler serves the mini app API.
type Handler interface {
	Message(c *gin.Context)
	UpdateMessage(c *gin.Context)
	CreateMessage(c *gin.Context)
}

type handler struct {
	l  pkgLog.Logger
	uc checklist.UseCase
}

// New creates a new HTTP handler for the mini app.
func New(l pkgLog.Logger, uc checklist.UseCase) Handler {
	return &handler{
		l:  l,
		uc: uc,
	}
}
