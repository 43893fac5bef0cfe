package http

import (
	"github.com/gin-gonic/gin"

	"checkbot/internal/middleware"
	"checkbot/internal/model"
)

// scope builds the caller scope from the validated init data. The mini app
// user's private chat is the scratch chat.
func (h *handler) scope(c *gin.Context) (model.Scope, bool) {
	user, ok := middleware.GetWebAppUser(c)
	if !ok {
		return model.Scope{}, false
	}
	sc := model.NewScope(user.ID)
	sc.LanguageCode = user.LanguageCode
	return sc, true
}

// processMessageReq binds the read request body.
func (h *handler) processMessageReq(c *gin.Context) (messageReq, model.Scope, error) {
	var req messageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, model.Scope{}, err
	}
	sc, ok := h.scope(c)
	if !ok {
		return req, sc, errMissingUser
	}
	return req, sc, nil
}

// processLinesReq binds the update and create request bodies.
func (h *handler) processLinesReq(c *gin.Context) (linesReq, model.Scope, error) {
	var req linesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, model.Scope{}, err
	}
	sc, ok := h.scope(c)
	if !ok {
		return req, sc, errMissingUser
	}
	return req, sc, nil
}
