package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vincecoscia/retriever-ai/internal/models"
	"github.com/vincecoscia/retriever-ai/internal/repository"
	"github.com/vincecoscia/retriever-ai/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrAlreadyMember         = errors.New("user is already a member of this organization")
	ErrInvalidRole           = errors.New("role must be owner, admin, or member")
	ErrOrganizationNotFound  = errors.New("organization not found")
	ErrFailedToGeneratePwd   = errors.New("failed to generate temporary password")
	ErrFailedToProvisionUser = errors.New("failed to provision user")
)

// ProvisioningService attaches users to organizations, creating them through
// the auth gateway when they do not exist yet.
type ProvisioningService struct {
	gateway  AuthGateway
	userRepo repository.UserRepository
	orgRepo  repository.OrganizationRepository
}

// NewProvisioningService creates a new ProvisioningService.
func NewProvisioningService(gateway AuthGateway, userRepo repository.UserRepository, orgRepo repository.OrganizationRepository) *ProvisioningService {
	return &ProvisioningService{
		gateway:  gateway,
		userRepo: userRepo,
		orgRepo:  orgRepo,
	}
}

// ProvisionUserInput identifies the target user, organization, and role.
type ProvisionUserInput struct {
	Email          string
	OrganizationID uint64
	Role           models.MemberRole
}

// ProvisionUserResult distinguishes "new user created" from "existing user
// attached". Password is set only for new users and is never persisted in
// plaintext; this result payload is the one place it ever appears.
type ProvisionUserResult struct {
	User      *models.User
	IsNewUser bool
	Password  string
}

// ProvisionUser looks the user up by email, creates them with a generated
// temporary password when absent, and inserts the membership with the
// requested role. Duplicate membership is a conflict, not a mutation.
func (s *ProvisioningService) ProvisionUser(input ProvisionUserInput) (*ProvisionUserResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrInvalidInput)
	}
	if !models.ValidRole(input.Role) {
		return nil, ErrInvalidRole
	}

	if _, err := s.orgRepo.FindByID(input.OrganizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	result := &ProvisionUserResult{}

	user, err := s.userRepo.FindByEmail(email)
	switch {
	case err == nil:
		result.User = user
	case errors.Is(err, gorm.ErrRecordNotFound):
		password, err := utils.GenerateTempPassword()
		if err != nil {
			return nil, ErrFailedToGeneratePwd
		}

		_, err = s.gateway.Signup(SignupInput{
			Email:    email,
			Password: password,
			Name:     strings.SplitN(email, "@", 2)[0],
		})
		switch {
		case err == nil:
			result.IsNewUser = true
			result.Password = password
		case errors.Is(err, ErrEmailTaken):
			// A concurrent request created the user between our lookup and
			// the signup. Their credential is not ours; attach them as an
			// existing user and return no password.
		default:
			return nil, fmt.Errorf("%w: %v", ErrFailedToProvisionUser, err)
		}

		// Re-fetch to obtain the durable id.
		user, err = s.userRepo.FindByEmail(email)
		if err != nil {
			return nil, fmt.Errorf("%w: user missing after signup", ErrFailedToProvisionUser)
		}

		result.User = user
	default:
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if _, err := s.orgRepo.FindMember(input.OrganizationID, user.ID); err == nil {
		return nil, ErrAlreadyMember
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to verify membership: %w", err)
	}

	member := &models.Member{
		OrganizationID: input.OrganizationID,
		UserID:         user.ID,
		Role:           input.Role,
		JoinedAt:       time.Now(),
	}

	if err := s.orgRepo.AddMember(member); err != nil {
		// The composite primary key closes the double-insert race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyMember
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return result, nil
}
