package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vincecoscia/retriever-ai/internal/dto"
	apierrors "github.com/vincecoscia/retriever-ai/internal/errors"
	"github.com/vincecoscia/retriever-ai/internal/services"
	"go.uber.org/zap"
)

// AdminHandler serves the admin overview, the clients listing, and the
// single-entity create actions. Create actions return {error} bodies instead
// of raising, matching the contract of the forms that invoke them.
type AdminHandler struct {
	adminService *services.AdminService
	log          *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(adminService *services.AdminService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		log:          log,
	}
}

// Overview returns the admin landing page counters.
func (h *AdminHandler) Overview(c *gin.Context) {
	stats, err := h.adminService.Overview()
	if err != nil {
		h.log.Error("failed to compute overview", zap.Error(err))
		apierrors.InternalError(c, "Failed to compute overview")
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ListClients returns all client organizations with companies, locations,
// and members.
func (h *AdminHandler) ListClients(c *gin.Context) {
	orgs, err := h.adminService.ListClients(c.Request.Context())
	if err != nil {
		h.log.Error("failed to list clients", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch clients")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"clients": dto.ToClientDTOs(orgs),
	})
}

// CreateOrganization creates a bare client organization.
func (h *AdminHandler) CreateOrganization(c *gin.Context) {
	type CreateOrgRequest struct {
		Name string `json:"name" binding:"required"`
		Slug string `json:"slug" binding:"required"`
	}

	var req CreateOrgRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	if _, err := h.adminService.CreateOrganization(req.Name, req.Slug); err != nil {
		h.respondActionError(c, err, "Failed to create organization. Slug might be taken.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// CreateCompany creates a company under an organization.
func (h *AdminHandler) CreateCompany(c *gin.Context) {
	type CreateCompanyRequest struct {
		OrganizationID uint64 `json:"organization_id" binding:"required"`
		Name           string `json:"name" binding:"required"`
	}

	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	if _, err := h.adminService.CreateCompany(req.OrganizationID, req.Name); err != nil {
		h.respondActionError(c, err, "Failed to create company.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// CreateLocation creates a location under a company.
func (h *AdminHandler) CreateLocation(c *gin.Context) {
	type CreateLocationRequest struct {
		CompanyID uint64 `json:"company_id" binding:"required"`
		Name      string `json:"name" binding:"required"`
		Address   string `json:"address"`
		City      string `json:"city"`
		State     string `json:"state"`
		Zip       string `json:"zip"`
	}

	var req CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	_, err := h.adminService.CreateLocation(services.CreateLocationInput{
		CompanyID: req.CompanyID,
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Zip:       req.Zip,
	})
	if err != nil {
		h.respondActionError(c, err, "Failed to create location.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// respondActionError converts a domain error into the {error} body the admin
// forms expect. Unexpected errors are logged and replaced by the generic
// message to avoid leaking internals.
func (h *AdminHandler) respondActionError(c *gin.Context, err error, generic string) {
	switch {
	case errors.Is(err, services.ErrInvalidName), errors.Is(err, services.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
	case errors.Is(err, services.ErrSlugTaken):
		c.JSON(http.StatusConflict, gin.H{"error": generic})
	case errors.Is(err, services.ErrOrganizationNotFound),
		errors.Is(err, services.ErrCompanyNotFound),
		errors.Is(err, services.ErrLocationNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.log.Error("admin action failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": generic})
	}
}
