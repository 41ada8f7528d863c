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

// OutputHandler handles output rows and packaging discovery.
type OutputHandler struct {
	metadata service.MetadataServicer
	log      *zap.Logger
}

// NewOutputHandler creates an output handler.
func NewOutputHandler(metadata service.MetadataServicer, log *zap.Logger) *OutputHandler {
	return &OutputHandler{metadata: metadata, log: log}
}

// Create godoc
// POST /channels/:id/outputs
func (h *OutputHandler) Create(c *gin.Context) {
	var req model.CreateAttachmentRequest
	if err := bindStrict(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	if req.URL == nil || req.Name == nil {
		respondError(c, h.log, fmt.Errorf("output body: %w", errs.ErrInvalidInput))
		return
	}
	view, err := h.metadata.CreateOutput(c.Request.Context(), c.Param("id"), *req.URL, *req.Name)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// Delete godoc
// DELETE /channels/:id/outputs/:oid
func (h *OutputHandler) Delete(c *gin.Context) {
	if err := h.metadata.DeleteOutput(c.Request.Context(), c.Param("id"), c.Param("oid")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Discover godoc
// GET /channels/:id/outputs/discover
func (h *OutputHandler) Discover(c *gin.Context) {
	outputs, err := h.metadata.DiscoverOutputs(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, model.DiscoveredOutputsResponse{Outputs: outputs})
}
