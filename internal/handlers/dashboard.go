package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/vincecoscia/retriever-ai/internal/errors"
	"github.com/vincecoscia/retriever-ai/internal/middleware"
	"github.com/vincecoscia/retriever-ai/internal/services"
	"go.uber.org/zap"
)

// DashboardHandler serves the per-organization analytics read views.
type DashboardHandler struct {
	dashboardService *services.DashboardService
	log              *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService *services.DashboardService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		log:              log,
	}
}

// resolveOrg determines the organization for the current request and writes
// the response itself when resolution fails. A user with no memberships is
// not an error condition; they get a setup prompt instead of data.
func (h *DashboardHandler) resolveOrg(c *gin.Context) (uint64, bool) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return 0, false
	}

	sessionOrgID := middleware.GetActiveOrgID(c)
	orgID, err := h.dashboardService.ResolveActiveOrg(userID, sessionOrgID)
	if err != nil {
		if errors.Is(err, services.ErrNoOrganization) {
			c.JSON(http.StatusOK, gin.H{
				"needs_setup": true,
				"message":     "You are not a member of any organization yet.",
			})
			return 0, false
		}
		h.log.Error("failed to resolve organization", zap.Error(err), zap.Uint64("user_id", userID))
		apierrors.InternalError(c, "Failed to resolve organization")
		return 0, false
	}
	return orgID, true
}

// Overview returns the dashboard home payload: latest weather, recent
// reviews, and review aggregates.
func (h *DashboardHandler) Overview(c *gin.Context) {
	orgID, ok := h.resolveOrg(c)
	if !ok {
		return
	}

	overview, err := h.dashboardService.GetOverview(orgID)
	if err != nil {
		h.log.Error("failed to build dashboard overview", zap.Error(err), zap.Uint64("organization_id", orgID))
		apierrors.InternalError(c, "Failed to load dashboard")
		return
	}

	c.JSON(http.StatusOK, overview)
}

// Weather returns the weather history series, oldest first.
func (h *DashboardHandler) Weather(c *gin.Context) {
	orgID, ok := h.resolveOrg(c)
	if !ok {
		return
	}

	samples, err := h.dashboardService.GetWeatherSeries(orgID)
	if err != nil {
		h.log.Error("failed to load weather series", zap.Error(err), zap.Uint64("organization_id", orgID))
		apierrors.InternalError(c, "Failed to load weather data")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"samples": samples,
	})
}

// Competitors returns the competitor intelligence payload.
func (h *DashboardHandler) Competitors(c *gin.Context) {
	orgID, ok := h.resolveOrg(c)
	if !ok {
		return
	}

	report, err := h.dashboardService.GetCompetitorReport(orgID)
	if err != nil {
		h.log.Error("failed to load competitor report", zap.Error(err), zap.Uint64("organization_id", orgID))
		apierrors.InternalError(c, "Failed to load competitor data")
		return
	}

	c.JSON(http.StatusOK, report)
}
