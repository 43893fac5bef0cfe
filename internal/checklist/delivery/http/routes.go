package http

import (
	"github.com/gin-gonic/gin"

	"checkbot/internal/middleware"
)

// RegisterRoutes maps the mini app endpoints. Every route requires valid
// init data.
func RegisterRoutes(rg *gin.RouterGroup, h Handler, mw middleware.Middleware) {
	api := rg.Group("", mw.WebAppAuth())
	{
		api.POST("/message", h.Message)
		api.POST("/update-message", h.UpdateMessage)
		api.POST("/create-message", h.CreateMessage)
	}
}
