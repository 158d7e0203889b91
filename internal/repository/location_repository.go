package repository

import (
	"github.com/vincecoscia/retriever-ai/internal/models"
	"gorm.io/gorm"
)

// GormLocationRepository is a GORM implementation of LocationRepository
type GormLocationRepository struct {
	db *gorm.DB
}

// NewLocationRepository creates a new LocationRepository
func NewLocationRepository(db *gorm.DB) LocationRepository {
	return &GormLocationRepository{db: db}
}

// Create creates a new location
func (r *GormLocationRepository) Create(location *models.Location) error {
	return r.db.Create(location).Error
}

// FindByID finds a location by ID
func (r *GormLocationRepository) FindByID(id uint64) (*models.Location, error) {
	var location models.Location
	if err := r.db.First(&location, id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}

// SetActive updates a location's active flag
func (r *GormLocationRepository) SetActive(id uint64, active bool) error {
	return r.db.Model(&models.Location{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

// ListWithHierarchy returns locations with company and organization
// preloaded, newest first.
func (r *GormLocationRepository) ListWithHierarchy() ([]models.Location, error) {
	var locations []models.Location
	if err := r.db.
		Preload("Company.Organization").
		Order("created_at DESC").
		Find(&locations).Error; err != nil {
		return nil, err
	}
	return locations, nil
}

// CountActive counts locations with the active flag set
func (r *GormLocationRepository) CountActive() (int64, error) {
	var count int64
	err := r.db.Model(&models.Location{}).
		Where("is_active = ?", true).
		Count(&count).Error
	return count, err
}
