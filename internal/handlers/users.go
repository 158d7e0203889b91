package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vincecoscia/retriever-ai/internal/dto"
	apierrors "github.com/vincecoscia/retriever-ai/internal/errors"
	"github.com/vincecoscia/retriever-ai/internal/models"
	"github.com/vincecoscia/retriever-ai/internal/services"
	"go.uber.org/zap"
)

// UsersHandler serves the admin users listing and the user provisioning
// workflow.
type UsersHandler struct {
	adminService        *services.AdminService
	provisioningService *services.ProvisioningService
	log                 *zap.Logger
}

// NewUsersHandler creates a new UsersHandler.
func NewUsersHandler(adminService *services.AdminService, provisioningService *services.ProvisioningService, log *zap.Logger) *UsersHandler {
	return &UsersHandler{
		adminService:        adminService,
		provisioningService: provisioningService,
		log:                 log,
	}
}

// ListUsers returns all users with their memberships, newest first.
func (h *UsersHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers()
	if err != nil {
		h.log.Error("failed to list users", zap.Error(err))
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	items := make([]dto.UserListItemDTO, len(users))
	for i, u := range users {
		items[i] = dto.ToUserListItemDTO(u)
	}

	c.JSON(http.StatusOK, gin.H{
		"users": items,
	})
}

// CreateUserForOrg provisions a user into an organization. New users get a
// generated temporary password, returned once in this response and nowhere
// else; the caller transmits it out-of-band.
func (h *UsersHandler) CreateUserForOrg(c *gin.Context) {
	type CreateUserRequest struct {
		Email          string `json:"email" binding:"required,email"`
		OrganizationID uint64 `json:"organization_id" binding:"required"`
		Role           string `json:"role" binding:"required,oneof=owner admin member"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid request body",
		})
		return
	}

	result, err := h.provisioningService.ProvisionUser(services.ProvisionUserInput{
		Email:          req.Email,
		OrganizationID: req.OrganizationID,
		Role:           models.MemberRole(req.Role),
	})
	if err != nil {
		status := http.StatusInternalServerError
		message := "Failed to create user"

		switch {
		case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidRole):
			status = http.StatusBadRequest
			message = err.Error()
		case errors.Is(err, services.ErrOrganizationNotFound):
			status = http.StatusNotFound
			message = err.Error()
		case errors.Is(err, services.ErrAlreadyMember):
			status = http.StatusConflict
			message = err.Error()
		default:
			// Original error stays server-side only.
			h.log.Error("user provisioning failed", zap.Error(err))
		}

		c.JSON(status, gin.H{
			"success": false,
			"error":   message,
		})
		return
	}

	resp := gin.H{
		"success":     true,
		"is_new_user": result.IsNewUser,
		"user":        dto.ToUserDTO(*result.User),
	}
	if result.IsNewUser {
		resp["password"] = result.Password
	}

	c.JSON(http.StatusCreated, resp)
}
