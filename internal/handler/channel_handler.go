package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/streamops/channel-control/internal/errs"
	"github.com/streamops/channel-control/internal/model"
	"github.com/streamops/channel-control/internal/service"
	"go.uber.org/zap"
)

// ChannelHandler handles REST API for channels (D: принимает Servicer-интерфейсы).
type ChannelHandler struct {
	channels service.ChannelServicer
	schedule service.ScheduleServicer
	log      *zap.Logger
}

// NewChannelHandler creates a channel handler.
func NewChannelHandler(channels service.ChannelServicer, schedule service.ScheduleServicer, log *zap.Logger) *ChannelHandler {
	return &ChannelHandler{channels: channels, schedule: schedule, log: log}
}

// List godoc
// GET /channels
func (h *ChannelHandler) List(c *gin.Context) {
	channels, err := h.channels.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, model.ChannelsResponse{Channels: channels})
}

// Get godoc
// GET /channels/:id
func (h *ChannelHandler) Get(c *gin.Context) {
	detail, err := h.channels.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// UpdateStatus godoc
// PUT /channels/:id/status/:status
func (h *ChannelHandler) UpdateStatus(c *gin.Context) {
	status := strings.ToLower(c.Param("status"))
	if status != "start" && status != "stop" {
		respondError(c, h.log, fmt.Errorf("status %q: %w", status, errs.ErrInvalidInput))
		return
	}
	resp, err := h.channels.UpdateStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SwitchInput godoc
// PUT /channels/:id/activeinput/:name
func (h *ChannelHandler) SwitchInput(c *gin.Context) {
	name, err := h.schedule.SwitchInput(c.Request.Context(), c.Param("id"), c.Param("name"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, model.ActiveInputResponse{ActiveInput: name})
}

// PrepareInput godoc
// POST /channels/:id/prepareinput/:name
func (h *ChannelHandler) PrepareInput(c *gin.Context) {
	if err := h.schedule.PrepareInput(c.Request.Context(), c.Param("id"), c.Param("name")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusOK)
}
