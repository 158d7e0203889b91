package repository

import (
	"github.com/vincecoscia/retriever-ai/internal/models"
	"gorm.io/gorm"
)

// GormAnalyticsRepository is a GORM implementation of AnalyticsRepository
type GormAnalyticsRepository struct {
	db *gorm.DB
}

// NewAnalyticsRepository creates a new AnalyticsRepository
func NewAnalyticsRepository(db *gorm.DB) AnalyticsRepository {
	return &GormAnalyticsRepository{db: db}
}

// LatestWeather returns the most recent weather sample for an organization
func (r *GormAnalyticsRepository) LatestWeather(organizationID uint64) (*models.WeatherSample, error) {
	var sample models.WeatherSample
	if err := r.db.Where("client_id = ?", organizationID).
		Order("measured_at DESC").
		First(&sample).Error; err != nil {
		return nil, err
	}
	return &sample, nil
}

// ListWeather returns up to limit samples ascending by measured_at
func (r *GormAnalyticsRepository) ListWeather(organizationID uint64, limit int) ([]models.WeatherSample, error) {
	var samples []models.WeatherSample
	if err := r.db.Where("client_id = ?", organizationID).
		Order("measured_at ASC").
		Limit(limit).
		Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}

// ListRecentReviews returns up to limit reviews, newest first
func (r *GormAnalyticsRepository) ListRecentReviews(organizationID uint64, limit int) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("client_id = ?", organizationID).
		Order("review_date DESC").
		Limit(limit).
		Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// CountReviews counts reviews for an organization
func (r *GormAnalyticsRepository) CountReviews(organizationID uint64) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("client_id = ?", organizationID).
		Count(&count).Error
	return count, err
}

// AverageRating returns the mean review rating, 0 when there are none
func (r *GormAnalyticsRepository) AverageRating(organizationID uint64) (float64, error) {
	var avg float64
	err := r.db.Model(&models.Review{}).
		Where("client_id = ?", organizationID).
		Select("COALESCE(AVG(rating), 0)").
		Scan(&avg).Error
	return avg, err
}

// ListCompetitors returns all tracked competitors for an organization
func (r *GormAnalyticsRepository) ListCompetitors(organizationID uint64) ([]models.Competitor, error) {
	var competitors []models.Competitor
	if err := r.db.Where("client_id = ?", organizationID).
		Find(&competitors).Error; err != nil {
		return nil, err
	}
	return competitors, nil
}
