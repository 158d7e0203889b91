package services

import (
	"errors"
	"fmt"

	"github.com/vincecoscia/retriever-ai/internal/models"
	"github.com/vincecoscia/retriever-ai/internal/repository"
	"gorm.io/gorm"
)

var ErrNoOrganization = errors.New("user is not a member of any organization")

// DashboardService serves the per-organization analytics read views. All of
// its data is written by the external ingestion pipeline; this service only
// reads.
type DashboardService struct {
	orgRepo       repository.OrganizationRepository
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(orgRepo repository.OrganizationRepository, analyticsRepo repository.AnalyticsRepository) *DashboardService {
	return &DashboardService{
		orgRepo:       orgRepo,
		analyticsRepo: analyticsRepo,
	}
}

// ResolveActiveOrg picks the organization a dashboard request operates on:
// the session's recorded organization when present, otherwise the user's
// earliest membership (joined_at, then organization id — a deliberate,
// documented tie-break rather than storage order).
func (s *DashboardService) ResolveActiveOrg(userID, sessionOrgID uint64) (uint64, error) {
	if sessionOrgID != 0 {
		return sessionOrgID, nil
	}

	memberships, err := s.orgRepo.ListMembershipsByUserID(userID)
	if err != nil {
		return 0, fmt.Errorf("failed to list memberships: %w", err)
	}
	if len(memberships) == 0 {
		return 0, ErrNoOrganization
	}
	return memberships[0].OrganizationID, nil
}

// Overview is the dashboard home payload.
type Overview struct {
	Weather       *models.WeatherSample `json:"weather"`
	RecentReviews []models.Review       `json:"recent_reviews"`
	ReviewCount   int64                 `json:"review_count"`
	AverageRating float64               `json:"average_rating"`
}

// GetOverview assembles the dashboard home view. Missing weather data is not
// an error; the pipeline may simply not have run yet.
func (s *DashboardService) GetOverview(organizationID uint64) (*Overview, error) {
	overview := &Overview{}

	weather, err := s.analyticsRepo.LatestWeather(organizationID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to fetch weather: %w", err)
	}
	overview.Weather = weather

	reviews, err := s.analyticsRepo.ListRecentReviews(organizationID, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}
	overview.RecentReviews = reviews

	count, err := s.analyticsRepo.CountReviews(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reviews: %w", err)
	}
	overview.ReviewCount = count

	avg, err := s.analyticsRepo.AverageRating(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings: %w", err)
	}
	overview.AverageRating = avg

	return overview, nil
}

// GetWeatherSeries returns up to 30 samples for the weather chart, oldest
// first.
func (s *DashboardService) GetWeatherSeries(organizationID uint64) ([]models.WeatherSample, error) {
	samples, err := s.analyticsRepo.ListWeather(organizationID, 30)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch weather series: %w", err)
	}
	return samples, nil
}

// CompetitorReport is the competitor intelligence payload.
type CompetitorReport struct {
	Competitors   []models.Competitor `json:"competitors"`
	RecentReviews []models.Review     `json:"recent_reviews"`
}

// GetCompetitorReport assembles the competitor page view.
func (s *DashboardService) GetCompetitorReport(organizationID uint64) (*CompetitorReport, error) {
	competitors, err := s.analyticsRepo.ListCompetitors(organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch competitors: %w", err)
	}

	reviews, err := s.analyticsRepo.ListRecentReviews(organizationID, 5)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch reviews: %w", err)
	}

	return &CompetitorReport{
		Competitors:   competitors,
		RecentReviews: reviews,
	}, nil
}
