package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vincecoscia/retriever-ai/internal/dto"
	apierrors "github.com/vincecoscia/retriever-ai/internal/errors"
	"github.com/vincecoscia/retriever-ai/internal/middleware"
	"github.com/vincecoscia/retriever-ai/internal/services"
	"go.uber.org/zap"
)

// OnboardingHandler drives the onboard-client workflow.
type OnboardingHandler struct {
	onboardingService *services.OnboardingService
	log               *zap.Logger
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(onboardingService *services.OnboardingService, log *zap.Logger) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingService: onboardingService,
		log:               log,
	}
}

// OnboardClient creates an organization, company, and location atomically
// with the caller as the organization's owner.
func (h *OnboardingHandler) OnboardClient(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	// Coordinates are pointers so a value of exactly 0 (equator, prime
	// meridian) still satisfies the required binding.
	type OnboardRequest struct {
		OrgName      string   `json:"org_name" binding:"required,min=2"`
		CompanyName  string   `json:"company_name" binding:"required,min=2"`
		LocationName string   `json:"location_name" binding:"required,min=2"`
		City         string   `json:"city" binding:"required,min=2"`
		Latitude     *float64 `json:"latitude" binding:"required"`
		Longitude    *float64 `json:"longitude" binding:"required"`
	}

	var req OnboardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	org, err := h.onboardingService.OnboardClient(services.OnboardClientInput{
		OwnerID:      userID,
		OrgName:      req.OrgName,
		CompanyName:  req.CompanyName,
		LocationName: req.LocationName,
		City:         req.City,
		Latitude:     *req.Latitude,
		Longitude:    *req.Longitude,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotAuthenticated):
			apierrors.Unauthorized(c, "")
		case errors.Is(err, services.ErrInvalidInput):
			apierrors.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrSlugTaken):
			apierrors.Conflict(c, err.Error())
		default:
			h.log.Error("onboarding failed", zap.Error(err))
			apierrors.InternalError(c, "Failed to onboard client")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":      true,
		"organization": dto.ToOrganizationDTO(*org),
	})
}
