package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/vincecoscia/retriever-ai/internal/models"
	"github.com/vincecoscia/retriever-ai/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type dashboardTestEnv struct {
	db      *gorm.DB
	service *DashboardService
	user    *models.User
}

func setupDashboardTestEnv(t *testing.T) dashboardTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Member{},
		&models.WeatherSample{},
		&models.Review{},
		&models.Competitor{},
	)
	require.NoError(t, err)

	user := &models.User{Name: "U", Email: "u@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)

	orgRepo := repository.NewOrganizationRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	service := NewDashboardService(orgRepo, analyticsRepo)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return dashboardTestEnv{
		db:      db,
		service: service,
		user:    user,
	}
}

func (env dashboardTestEnv) addMembership(t *testing.T, slug string, joinedAt time.Time) *models.Organization {
	t.Helper()

	org := &models.Organization{Name: slug, Slug: slug}
	require.NoError(t, env.db.Create(org).Error)
	require.NoError(t, env.db.Create(&models.Member{
		OrganizationID: org.ID,
		UserID:         env.user.ID,
		Role:           models.RoleMember,
		JoinedAt:       joinedAt,
	}).Error)
	return org
}

func TestDashboardService_ResolveActiveOrg_SessionWins(t *testing.T) {
	env := setupDashboardTestEnv(t)

	env.addMembership(t, "first", time.Now().Add(-time.Hour))
	second := env.addMembership(t, "second", time.Now())

	orgID, err := env.service.ResolveActiveOrg(env.user.ID, second.ID)
	require.NoError(t, err)
	require.Equal(t, second.ID, orgID)
}

func TestDashboardService_ResolveActiveOrg_FallsBackToEarliestMembership(t *testing.T) {
	env := setupDashboardTestEnv(t)

	// Later membership inserted first; joined_at decides the fallback.
	env.addMembership(t, "second", time.Now())
	first := env.addMembership(t, "first", time.Now().Add(-time.Hour))

	orgID, err := env.service.ResolveActiveOrg(env.user.ID, 0)
	require.NoError(t, err)
	require.Equal(t, first.ID, orgID)
}

func TestDashboardService_ResolveActiveOrg_NoMemberships(t *testing.T) {
	env := setupDashboardTestEnv(t)

	_, err := env.service.ResolveActiveOrg(env.user.ID, 0)
	require.ErrorIs(t, err, ErrNoOrganization)
}

func TestDashboardService_GetOverview(t *testing.T) {
	env := setupDashboardTestEnv(t)
	org := env.addMembership(t, "acme", time.Now())

	now := time.Now()
	require.NoError(t, env.db.Create(&models.WeatherSample{
		OrganizationID: org.ID, MeasuredAt: now.Add(-2 * time.Hour), TemperatureF: 61.2, Description: "cloudy",
	}).Error)
	require.NoError(t, env.db.Create(&models.WeatherSample{
		OrganizationID: org.ID, MeasuredAt: now, TemperatureF: 66.8, Description: "sunny",
	}).Error)

	for i, rating := range []float64{5, 4, 3, 2} {
		require.NoError(t, env.db.Create(&models.Review{
			OrganizationID: org.ID,
			ReviewDate:     now.Add(-time.Duration(i) * time.Hour),
			Rating:         rating,
			Author:         "A",
			Source:         "google",
		}).Error)
	}

	overview, err := env.service.GetOverview(org.ID)
	require.NoError(t, err)

	require.NotNil(t, overview.Weather)
	require.Equal(t, "sunny", overview.Weather.Description)
	require.Len(t, overview.RecentReviews, 3, "home view shows only the newest reviews")
	require.Equal(t, float64(5), overview.RecentReviews[0].Rating)
	require.Equal(t, int64(4), overview.ReviewCount)
	require.InDelta(t, 3.5, overview.AverageRating, 1e-9)
}

func TestDashboardService_GetOverview_NoPipelineData(t *testing.T) {
	env := setupDashboardTestEnv(t)
	org := env.addMembership(t, "acme", time.Now())

	overview, err := env.service.GetOverview(org.ID)
	require.NoError(t, err)
	require.Nil(t, overview.Weather)
	require.Empty(t, overview.RecentReviews)
	require.Zero(t, overview.ReviewCount)
	require.Zero(t, overview.AverageRating)
}

func TestDashboardService_GetOverview_ScopedToOrganization(t *testing.T) {
	env := setupDashboardTestEnv(t)
	mine := env.addMembership(t, "mine", time.Now())
	theirs := env.addMembership(t, "theirs", time.Now())

	require.NoError(t, env.db.Create(&models.Review{
		OrganizationID: theirs.ID, ReviewDate: time.Now(), Rating: 1, Author: "B", Source: "yelp",
	}).Error)

	overview, err := env.service.GetOverview(mine.ID)
	require.NoError(t, err)
	require.Zero(t, overview.ReviewCount, "another organization's rows must not leak in")
}

func TestDashboardService_GetWeatherSeries(t *testing.T) {
	env := setupDashboardTestEnv(t)
	org := env.addMembership(t, "acme", time.Now())

	base := time.Now().Add(-40 * time.Hour)
	for i := 0; i < 35; i++ {
		require.NoError(t, env.db.Create(&models.WeatherSample{
			OrganizationID: org.ID,
			MeasuredAt:     base.Add(time.Duration(i) * time.Hour),
			TemperatureF:   50 + float64(i),
		}).Error)
	}

	samples, err := env.service.GetWeatherSeries(org.ID)
	require.NoError(t, err)
	require.Len(t, samples, 30)
	require.True(t, samples[0].MeasuredAt.Before(samples[len(samples)-1].MeasuredAt), "series is oldest first")
}

func TestDashboardService_GetCompetitorReport(t *testing.T) {
	env := setupDashboardTestEnv(t)
	org := env.addMembership(t, "acme", time.Now())

	require.NoError(t, env.db.Create(&models.Competitor{
		OrganizationID: org.ID, Name: "Rival Roasters", ReviewCount: 120, AvgRating: 4.1,
	}).Error)
	for i := 0; i < 7; i++ {
		require.NoError(t, env.db.Create(&models.Review{
			OrganizationID: org.ID,
			ReviewDate:     time.Now().Add(-time.Duration(i) * time.Hour),
			Rating:         4,
			Author:         "A",
			Source:         "google",
		}).Error)
	}

	report, err := env.service.GetCompetitorReport(org.ID)
	require.NoError(t, err)
	require.Len(t, report.Competitors, 1)
	require.Equal(t, "Rival Roasters", report.Competitors[0].Name)
	require.Len(t, report.RecentReviews, 5)
}
