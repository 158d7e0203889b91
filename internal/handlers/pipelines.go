package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vincecoscia/retriever-ai/internal/dto"
	apierrors "github.com/vincecoscia/retriever-ai/internal/errors"
	"github.com/vincecoscia/retriever-ai/internal/services"
	"go.uber.org/zap"
)

// PipelinesHandler serves the pipeline listing and the activation toggle.
type PipelinesHandler struct {
	adminService *services.AdminService
	log          *zap.Logger
}

// NewPipelinesHandler creates a new PipelinesHandler.
func NewPipelinesHandler(adminService *services.AdminService, log *zap.Logger) *PipelinesHandler {
	return &PipelinesHandler{
		adminService: adminService,
		log:          log,
	}
}

// ListPipelines returns every location with its ownership chain and active
// flag, newest first.
func (h *PipelinesHandler) ListPipelines(c *gin.Context) {
	locations, err := h.adminService.ListPipelines()
	if err != nil {
		h.log.Error("failed to list pipelines", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch pipelines")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"pipelines": dto.ToPipelineDTOs(locations),
	})
}

// ToggleLocation flips a location's active flag relative to the status the
// caller last saw. Activation is the only signal the ingestion pipeline
// consumes; there is no other trigger to fire here.
func (h *PipelinesHandler) ToggleLocation(c *gin.Context) {
	locationID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid location id"})
		return
	}

	type ToggleRequest struct {
		CurrentStatus *bool `json:"current_status" binding:"required"`
	}

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	if err := h.adminService.ToggleLocationStatus(locationID, *req.CurrentStatus); err != nil {
		switch {
		case errors.Is(err, services.ErrLocationNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			h.log.Error("failed to toggle location", zap.Error(err), zap.Uint64("location_id", locationID))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update location status."})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
