package services

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/vincecoscia/retriever-ai/internal/constants"
	"github.com/vincecoscia/retriever-ai/internal/models"
	"github.com/vincecoscia/retriever-ai/internal/repository"
	"github.com/vincecoscia/retriever-ai/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrNotAuthenticated = errors.New("authentication required")
	ErrInvalidInput     = errors.New("invalid input")
	ErrSlugTaken        = errors.New("organization slug already in use")
)

// OnboardingService creates a full client hierarchy in one shot.
type OnboardingService struct {
	orgRepo repository.OrganizationRepository
}

// NewOnboardingService creates a new OnboardingService.
func NewOnboardingService(orgRepo repository.OrganizationRepository) *OnboardingService {
	return &OnboardingService{
		orgRepo: orgRepo,
	}
}

// OnboardClientInput holds everything needed to provision a new client:
// organization, first company, and first location.
type OnboardClientInput struct {
	OwnerID      uint64
	OrgName      string
	CompanyName  string
	LocationName string
	City         string
	Latitude     float64
	Longitude    float64
}

func (in *OnboardClientInput) validate() error {
	for _, f := range []struct{ label, value string }{
		{"organization name", in.OrgName},
		{"company name", in.CompanyName},
		{"location name", in.LocationName},
		{"city", in.City},
	} {
		if len(strings.TrimSpace(f.value)) < constants.MinClientNameLength {
			return fmt.Errorf("%w: %s must be at least %d characters",
				ErrInvalidInput, f.label, constants.MinClientNameLength)
		}
	}

	for _, c := range []struct {
		label string
		value float64
	}{
		{"latitude", in.Latitude},
		{"longitude", in.Longitude},
	} {
		if math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidInput, c.label)
		}
	}

	return nil
}

// OnboardClient creates the organization (with the caller as sole owner), the
// company, and the location as one all-or-nothing transaction. The new
// location starts active with coordinates set, which is what the external
// weather pipeline picks up.
func (s *OnboardingService) OnboardClient(input OnboardClientInput) (*models.Organization, error) {
	if input.OwnerID == 0 {
		return nil, ErrNotAuthenticated
	}
	if err := input.validate(); err != nil {
		return nil, err
	}

	orgName := strings.TrimSpace(input.OrgName)
	slug := utils.Slugify(orgName)

	if _, err := s.orgRepo.FindBySlug(slug); err == nil {
		return nil, ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check slug: %w", err)
	}

	org := &models.Organization{
		Name: orgName,
		Slug: slug,
	}

	member := &models.Member{
		UserID:   input.OwnerID,
		Role:     models.RoleOwner,
		JoinedAt: time.Now(),
	}

	company := &models.Company{
		Name: strings.TrimSpace(input.CompanyName),
	}

	lat := input.Latitude
	lon := input.Longitude
	location := &models.Location{
		Name:      strings.TrimSpace(input.LocationName),
		City:      strings.TrimSpace(input.City),
		Latitude:  &lat,
		Longitude: &lon,
		IsActive:  true,
	}

	if err := s.orgRepo.OnboardClient(org, member, company, location); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to onboard client: %w", err)
	}

	return org, nil
}
