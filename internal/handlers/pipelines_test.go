package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/vincecoscia/retriever-ai/internal/models"
	"github.com/vincecoscia/retriever-ai/internal/repository"
	"github.com/vincecoscia/retriever-ai/internal/services"
	"github.com/vincecoscia/retriever-ai/internal/viewcache"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type pipelinesTestEnv struct {
	db           *gorm.DB
	handler      *PipelinesHandler
	adminService *services.AdminService
	location     *models.Location
}

func setupPipelinesTestEnv(t *testing.T) pipelinesTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Member{},
		&models.Company{},
		&models.Location{},
	)
	require.NoError(t, err)

	org := &models.Organization{Name: "Acme Coffee", Slug: "acme-coffee"}
	require.NoError(t, db.Create(org).Error)
	company := &models.Company{Name: "Acme Coffee LLC", OrganizationID: org.ID}
	require.NoError(t, db.Create(company).Error)
	location := &models.Location{Name: "Downtown Roastery", CompanyID: company.ID, City: "Portland"}
	require.NoError(t, db.Create(location).Error)

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	listing := viewcache.NewClientListing()

	adminService := services.NewAdminService(userRepo, orgRepo, companyRepo, locationRepo, listing)
	handler := NewPipelinesHandler(adminService, zap.NewNop())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return pipelinesTestEnv{
		db:           db,
		handler:      handler,
		adminService: adminService,
		location:     location,
	}
}

func toggleRequest(t *testing.T, r *gin.Engine, locationID uint64, currentStatus bool) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(map[string]interface{}{
		"current_status": currentStatus,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost,
		fmt.Sprintf("/admin/pipelines/%d/toggle", locationID), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPipelinesHandler_ToggleLocation(t *testing.T) {
	env := setupPipelinesTestEnv(t)

	r := gin.New()
	r.POST("/admin/pipelines/:id/toggle", env.handler.ToggleLocation)

	w := toggleRequest(t, r, env.location.ID, false)
	require.Equal(t, http.StatusOK, w.Code)

	var location models.Location
	require.NoError(t, env.db.First(&location, env.location.ID).Error)
	require.True(t, location.IsActive)
}

func TestPipelinesHandler_ToggleLocation_DoubleToggleRestores(t *testing.T) {
	env := setupPipelinesTestEnv(t)

	r := gin.New()
	r.POST("/admin/pipelines/:id/toggle", env.handler.ToggleLocation)

	w := toggleRequest(t, r, env.location.ID, false)
	require.Equal(t, http.StatusOK, w.Code)
	w = toggleRequest(t, r, env.location.ID, true)
	require.Equal(t, http.StatusOK, w.Code)

	var location models.Location
	require.NoError(t, env.db.First(&location, env.location.ID).Error)
	require.False(t, location.IsActive, "two toggles must restore the original state")
}

func TestPipelinesHandler_ToggleLocation_NotFound(t *testing.T) {
	env := setupPipelinesTestEnv(t)

	r := gin.New()
	r.POST("/admin/pipelines/:id/toggle", env.handler.ToggleLocation)

	w := toggleRequest(t, r, 9999, false)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPipelinesHandler_ToggleLocation_RefreshesClientListing(t *testing.T) {
	// The clients listing is cached; a toggle must invalidate it so the
	// next read already shows the new status.
	env := setupPipelinesTestEnv(t)

	r := gin.New()
	r.POST("/admin/pipelines/:id/toggle", env.handler.ToggleLocation)

	ctx := context.Background()
	clients, err := env.adminService.ListClients(ctx)
	require.NoError(t, err)
	require.Len(t, clients, 1)
	require.False(t, clients[0].Companies[0].Locations[0].IsActive)

	w := toggleRequest(t, r, env.location.ID, false)
	require.Equal(t, http.StatusOK, w.Code)

	clients, err = env.adminService.ListClients(ctx)
	require.NoError(t, err)
	require.True(t, clients[0].Companies[0].Locations[0].IsActive)
}

func TestPipelinesHandler_ListPipelines(t *testing.T) {
	env := setupPipelinesTestEnv(t)

	r := gin.New()
	r.GET("/admin/pipelines", env.handler.ListPipelines)

	req := httptest.NewRequest(http.MethodGet, "/admin/pipelines", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Pipelines []struct {
			LocationName     string `json:"location_name"`
			CompanyName      string `json:"company_name"`
			OrganizationName string `json:"organization_name"`
			IsActive         bool   `json:"is_active"`
		} `json:"pipelines"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Len(t, response.Pipelines, 1)
	require.Equal(t, "Downtown Roastery", response.Pipelines[0].LocationName)
	require.Equal(t, "Acme Coffee LLC", response.Pipelines[0].CompanyName)
	require.Equal(t, "Acme Coffee", response.Pipelines[0].OrganizationName)
	require.False(t, response.Pipelines[0].IsActive)
}
