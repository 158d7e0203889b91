package repository

import (
	"github.com/vincecoscia/retriever-ai/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// List returns all users with memberships preloaded, newest first
	List() ([]models.User, error)

	// Count returns the total number of users
	Count() (int64, error)
}

// OrganizationRepository defines the interface for organization and
// membership data access
type OrganizationRepository interface {
	// Create creates a new organization
	Create(org *models.Organization) error

	// FindByID finds an organization by ID
	FindByID(id uint64) (*models.Organization, error)

	// FindBySlug finds an organization by its display slug
	FindBySlug(slug string) (*models.Organization, error)

	// OnboardClient creates an organization with its owner membership, a
	// company, and a location within a single transaction.
	OnboardClient(org *models.Organization, member *models.Member, company *models.Company, location *models.Location) error

	// AddMember adds a member to an organization
	AddMember(member *models.Member) error

	// FindMember finds a specific organization member
	FindMember(organizationID, userID uint64) (*models.Member, error)

	// ListMembershipsByUserID lists a user's memberships with organizations
	// preloaded, ordered by joined_at then organization id.
	ListMembershipsByUserID(userID uint64) ([]models.Member, error)

	// ListClients returns organizations except the one with excludeSlug,
	// with companies, locations, and members preloaded, newest first.
	ListClients(excludeSlug string) ([]models.Organization, error)

	// CountClients counts organizations except the one with excludeSlug
	CountClients(excludeSlug string) (int64, error)
}

// CompanyRepository defines the interface for company data access
type CompanyRepository interface {
	// Create creates a new company
	Create(company *models.Company) error

	// FindByID finds a company by ID
	FindByID(id uint64) (*models.Company, error)
}

// LocationRepository defines the interface for location data access
type LocationRepository interface {
	// Create creates a new location
	Create(location *models.Location) error

	// FindByID finds a location by ID
	FindByID(id uint64) (*models.Location, error)

	// SetActive updates a location's active flag
	SetActive(id uint64, active bool) error

	// ListWithHierarchy returns locations with company and organization
	// preloaded, newest first.
	ListWithHierarchy() ([]models.Location, error)

	// CountActive counts locations with the active flag set
	CountActive() (int64, error)
}

// AnalyticsRepository reads the tables populated by the external ingestion
// pipeline. This system never writes them.
type AnalyticsRepository interface {
	// LatestWeather returns the most recent weather sample for an organization
	LatestWeather(organizationID uint64) (*models.WeatherSample, error)

	// ListWeather returns up to limit samples ascending by measured_at
	ListWeather(organizationID uint64, limit int) ([]models.WeatherSample, error)

	// ListRecentReviews returns up to limit reviews, newest first
	ListRecentReviews(organizationID uint64, limit int) ([]models.Review, error)

	// CountReviews counts reviews for an organization
	CountReviews(organizationID uint64) (int64, error)

	// AverageRating returns the mean review rating, 0 when there are none
	AverageRating(organizationID uint64) (float64, error)

	// ListCompetitors returns all tracked competitors for an organization
	ListCompetitors(organizationID uint64) ([]models.Competitor, error)
}
