package repository

import (
	"errors"
	"fmt"

	"github.com/vincecoscia/retriever-ai/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrCreateOrganization is returned when creating the organization fails inside the onboarding transaction.
	ErrCreateOrganization = errors.New("organization repository: create organization failed")
	// ErrCreateMember is returned when creating the owner membership fails inside the onboarding transaction.
	ErrCreateMember = errors.New("organization repository: create member failed")
	// ErrCreateCompany is returned when creating the company fails inside the onboarding transaction.
	ErrCreateCompany = errors.New("organization repository: create company failed")
	// ErrCreateLocation is returned when creating the location fails inside the onboarding transaction.
	ErrCreateLocation = errors.New("organization repository: create location failed")
)

// GormOrganizationRepository is a GORM implementation of OrganizationRepository
type GormOrganizationRepository struct {
	db *gorm.DB
}

// NewOrganizationRepository creates a new OrganizationRepository
func NewOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &GormOrganizationRepository{db: db}
}

// Create creates a new organization
func (r *GormOrganizationRepository) Create(org *models.Organization) error {
	return r.db.Create(org).Error
}

// FindByID finds an organization by ID
func (r *GormOrganizationRepository) FindByID(id uint64) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.First(&org, id).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// FindBySlug finds an organization by its display slug
func (r *GormOrganizationRepository) FindBySlug(slug string) (*models.Organization, error) {
	var org models.Organization
	if err := r.db.Where("slug = ?", slug).First(&org).Error; err != nil {
		return nil, err
	}
	return &org, nil
}

// OnboardClient creates the organization, its owner membership, the first
// company, and the first location atomically. Either all four rows persist or
// none of them do.
func (r *GormOrganizationRepository) OnboardClient(org *models.Organization, member *models.Member, company *models.Company, location *models.Location) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOrganization, err)
		}

		member.OrganizationID = org.ID
		if err := tx.Create(member).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateMember, err)
		}

		company.OrganizationID = org.ID
		if err := tx.Create(company).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateCompany, err)
		}

		location.CompanyID = company.ID
		if err := tx.Create(location).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateLocation, err)
		}

		return nil
	})
}

// AddMember adds a member to an organization
func (r *GormOrganizationRepository) AddMember(member *models.Member) error {
	return r.db.Create(member).Error
}

// FindMember finds a specific organization member
func (r *GormOrganizationRepository) FindMember(organizationID, userID uint64) (*models.Member, error) {
	var member models.Member
	if err := r.db.Where("organization_id = ? AND user_id = ?", organizationID, userID).
		First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// ListMembershipsByUserID lists a user's memberships with organizations
// preloaded. The ordering is the contract behind the dashboard's "first
// membership" fallback, so it must stay deterministic.
func (r *GormOrganizationRepository) ListMembershipsByUserID(userID uint64) ([]models.Member, error) {
	var memberships []models.Member
	if err := r.db.Preload("Organization").
		Where("user_id = ?", userID).
		Order("joined_at ASC, organization_id ASC").
		Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// ListClients returns organizations except the excluded slug with the full
// hierarchy preloaded, newest first.
func (r *GormOrganizationRepository) ListClients(excludeSlug string) ([]models.Organization, error) {
	var orgs []models.Organization
	if err := r.db.
		Preload("Companies.Locations").
		Preload("Members.User").
		Where("slug <> ?", excludeSlug).
		Order("created_at DESC").
		Find(&orgs).Error; err != nil {
		return nil, err
	}
	return orgs, nil
}

// CountClients counts organizations except the one with excludeSlug
func (r *GormOrganizationRepository) CountClients(excludeSlug string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Organization{}).
		Where("slug <> ?", excludeSlug).
		Count(&count).Error
	return count, err
}
