package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"checkbot/pkg/response"
)

// Message godoc
// @Summary     Read a checklist
// @Description Returns the current lines of the checklist at the given location.
// @Tags        MiniApp
// @Accept      json
// @Produce     json
// @Param       body body messageReq true "Init data and escaped location"
// @Success     200 {object} response.APIResp{result=[]lineDTO}
// @Failure     400 {object} response.APIResp "Bad Request"
// @Failure     403 {object} response.APIResp "Not allowed to edit"
// @Router      /api/message [POST]
func (h *handler) Message(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processMessageReq(c)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, msgBadRequest)
		return
	}

	output, err := h.uc.Read(ctx, sc, req.toInput())
	if err != nil {
		h.l.Warnf(ctx, "uc.Read: %v", err)
		status, description := h.mapError(err)
		response.Fail(c, status, description)
		return
	}

	response.Result(c, newMessageResp(output))
}

// UpdateMessage godoc
// @Summary     Update a checklist
// @Description Replaces the lines of the checklist and edits every copy.
// @Tags        MiniApp
// @Accept      json
// @Produce     json
// @Param       body body linesReq true "Init data, escaped location and new lines"
// @Success     200 {object} response.APIResp
// @Failure     400 {object} response.APIResp "Bad Request"
// @Failure     403 {object} response.APIResp "Not allowed to edit"
// @Failure     502 {object} response.APIResp "Telegram refused the edit"
// @Router      /api/update-message [POST]
func (h *handler) UpdateMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processLinesReq(c)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, msgBadRequest)
		return
	}

	if err := h.uc.Update(ctx, sc, req.toInput()); err != nil {
		h.l.Warnf(ctx, "uc.Update: %v", err)
		status, description := h.mapError(err)
		response.Fail(c, status, description)
		return
	}

	response.Result(c, nil)
}

// CreateMessage godoc
// @Summary     Create a checklist
// @Description Sends a checklist composed in the mini app into an unsent location.
// @Tags        MiniApp
// @Accept      json
// @Produce     json
// @Param       body body linesReq true "Init data, escaped draft location and lines"
// @Success     200 {object} response.APIResp
// @Failure     400 {object} response.APIResp "Bad Request"
// @Failure     409 {object} response.APIResp "Checklist already sent"
// @Router      /api/create-message [POST]
func (h *handler) CreateMessage(c *gin.Context) {
	ctx := c.Request.Context()

	req, sc, err := h.processLinesReq(c)
	if err != nil {
		response.Fail(c, http.StatusBadRequest, msgBadRequest)
		return
	}

	if _, err := h.uc.CreateFromWebApp(ctx, sc, req.toInput()); err != nil {
		h.l.Warnf(ctx, "uc.CreateFromWebApp: %v", err)
		status, description := h.mapError(err)
		response.Fail(c, status, description)
		return
	}

	response.Result(c, nil)
}
