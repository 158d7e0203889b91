package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vincecoscia/retriever-ai/internal/constants"
	"github.com/vincecoscia/retriever-ai/internal/models"
	"github.com/vincecoscia/retriever-ai/internal/repository"
	"github.com/vincecoscia/retriever-ai/internal/viewcache"
	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound  = errors.New("company not found")
	ErrLocationNotFound = errors.New("location not found")
	ErrInvalidName      = errors.New("name cannot be empty")
)

// AdminService implements the admin-area CRUD actions and read views. Every
// write invalidates the cached clients listing so the next read reflects it.
type AdminService struct {
	userRepo     repository.UserRepository
	orgRepo      repository.OrganizationRepository
	companyRepo  repository.CompanyRepository
	locationRepo repository.LocationRepository
	listing      *viewcache.ClientListing
}

// NewAdminService creates a new AdminService.
func NewAdminService(
	userRepo repository.UserRepository,
	orgRepo repository.OrganizationRepository,
	companyRepo repository.CompanyRepository,
	locationRepo repository.LocationRepository,
	listing *viewcache.ClientListing,
) *AdminService {
	return &AdminService{
		userRepo:     userRepo,
		orgRepo:      orgRepo,
		companyRepo:  companyRepo,
		locationRepo: locationRepo,
		listing:      listing,
	}
}

// CreateOrganization creates a bare client organization.
func (s *AdminService) CreateOrganization(name, slug string) (*models.Organization, error) {
	name = strings.TrimSpace(name)
	slug = strings.TrimSpace(slug)
	if name == "" || slug == "" {
		return nil, ErrInvalidName
	}

	org := &models.Organization{
		Name: name,
		Slug: slug,
	}

	if err := s.orgRepo.Create(org); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("failed to create organization: %w", err)
	}

	s.listing.Invalidate()
	return org, nil
}

// CreateCompany creates a company under an existing organization.
func (s *AdminService) CreateCompany(organizationID uint64, name string) (*models.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}

	if _, err := s.orgRepo.FindByID(organizationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrganizationNotFound
		}
		return nil, fmt.Errorf("failed to find organization: %w", err)
	}

	company := &models.Company{
		Name:           name,
		OrganizationID: organizationID,
	}

	if err := s.companyRepo.Create(company); err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}

	s.listing.Invalidate()
	return company, nil
}

// CreateLocationInput holds the admin create-location form fields. Address
// details are optional; coordinates are not collected here, so locations
// created this way start inactive and outside the pipeline's view.
type CreateLocationInput struct {
	CompanyID uint64
	Name      string
	Address   string
	City      string
	State     string
	Zip       string
}

// CreateLocation creates a location under an existing company.
func (s *AdminService) CreateLocation(input CreateLocationInput) (*models.Location, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrInvalidName
	}

	if _, err := s.companyRepo.FindByID(input.CompanyID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}

	location := &models.Location{
		Name:      name,
		CompanyID: input.CompanyID,
		Address:   strings.TrimSpace(input.Address),
		City:      strings.TrimSpace(input.City),
		State:     strings.TrimSpace(input.State),
		Zip:       strings.TrimSpace(input.Zip),
	}

	if err := s.locationRepo.Create(location); err != nil {
		return nil, fmt.Errorf("failed to create location: %w", err)
	}

	s.listing.Invalidate()
	return location, nil
}

// ToggleLocationStatus flips the active flag relative to the status the
// caller saw, matching the form's optimistic contract.
func (s *AdminService) ToggleLocationStatus(locationID uint64, currentStatus bool) error {
	if _, err := s.locationRepo.FindByID(locationID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLocationNotFound
		}
		return fmt.Errorf("failed to find location: %w", err)
	}

	if err := s.locationRepo.SetActive(locationID, !currentStatus); err != nil {
		return fmt.Errorf("failed to update location status: %w", err)
	}

	s.listing.Invalidate()
	return nil
}

// OverviewStats are the admin landing page counters.
type OverviewStats struct {
	ClientCount         int64 `json:"client_count"`
	UserCount           int64 `json:"user_count"`
	ActiveLocationCount int64 `json:"active_location_count"`
}

// Overview computes the admin landing page aggregates. The admin sentinel
// organization is not a client and is excluded from the count.
func (s *AdminService) Overview() (*OverviewStats, error) {
	clients, err := s.orgRepo.CountClients(constants.AdminOrgSlug)
	if err != nil {
		return nil, fmt.Errorf("failed to count clients: %w", err)
	}

	users, err := s.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	active, err := s.locationRepo.CountActive()
	if err != nil {
		return nil, fmt.Errorf("failed to count active locations: %w", err)
	}

	return &OverviewStats{
		ClientCount:         clients,
		UserCount:           users,
		ActiveLocationCount: active,
	}, nil
}

// ListClients returns the client organizations with their full hierarchy,
// served from the listing cache.
func (s *AdminService) ListClients(ctx context.Context) ([]models.Organization, error) {
	return s.listing.GetOrFetch(ctx, func(ctx context.Context) ([]models.Organization, error) {
		return s.orgRepo.ListClients(constants.AdminOrgSlug)
	})
}

// ListUsers returns all users with memberships, newest first.
func (s *AdminService) ListUsers() ([]models.User, error) {
	return s.userRepo.List()
}

// ListPipelines returns all locations with their company and organization,
// newest first.
func (s *AdminService) ListPipelines() ([]models.Location, error) {
	return s.locationRepo.ListWithHierarchy()
}

// SeedAdminOrganization ensures the reserved admin organization exists.
// Called once at startup; safe to call repeatedly.
func (s *AdminService) SeedAdminOrganization() error {
	_, err := s.orgRepo.FindBySlug(constants.AdminOrgSlug)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up admin organization: %w", err)
	}

	org := &models.Organization{
		Name:      "Platform Administration",
		Slug:      constants.AdminOrgSlug,
		CreatedAt: time.Now(),
	}
	if err := s.orgRepo.Create(org); err != nil && !errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("failed to seed admin organization: %w", err)
	}
	return nil
}
