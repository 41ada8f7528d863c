package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/streamops/channel-control/internal/errs"
	"github.com/streamops/channel-control/internal/model"
	"github.com/streamops/channel-control/internal/service"
	"go.uber.org/zap"
)

// GraphicsHandler handles graphic overlay rows and overlay start/stop.
type GraphicsHandler struct {
	metadata service.MetadataServicer
	schedule service.ScheduleServicer
	log      *zap.Logger
}

// NewGraphicsHandler creates a graphics handler.
func NewGraphicsHandler(metadata service.MetadataServicer, schedule service.ScheduleServicer, log *zap.Logger) *GraphicsHandler {
	return &GraphicsHandler{metadata: metadata, schedule: schedule, log: log}
}

// Create godoc
// POST /channels/:id/graphics
func (h *GraphicsHandler) Create(c *gin.Context) {
	var req model.CreateAttachmentRequest
	if err := bindStrict(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	if req.URL == nil || req.Name == nil {
		respondError(c, h.log, fmt.Errorf("graphic body: %w", errs.ErrInvalidInput))
		return
	}
	view, err := h.metadata.CreateGraphic(c.Request.Context(), c.Param("id"), *req.URL, *req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Delete godoc
// DELETE /channels/:id/graphics/:gid
func (h *GraphicsHandler) Delete(c *gin.Context) {
	if err := h.metadata.DeleteGraphic(c.Request.Context(), c.Param("id"), c.Param("gid")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Start godoc
// POST /channels/:id/graphics/:gid/start
func (h *GraphicsHandler) Start(c *gin.Context) {
	var req model.StartGraphicsRequest
	if err := bindStrict(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	duration := 0
	if req.Duration != nil {
		duration = *req.Duration
	}
	if err := h.schedule.StartGraphics(c.Request.Context(), c.Param("id"), c.Param("gid"), duration); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusOK)
}

// Stop godoc
// POST /channels/:id/graphics/stop
// Registered under the :gid param because gin's route tree cannot hold the
// static "stop" segment next to the :gid routes; any other value is no route.
func (h *GraphicsHandler) Stop(c *gin.Context) {
	if c.Param("gid") != "stop" {
		c.Status(http.StatusNotFound)
		return
	}
	if err := h.schedule.StopGraphics(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusOK)
}
