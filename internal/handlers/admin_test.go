package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/vincecoscia/retriever-ai/internal/constants"
	"github.com/vincecoscia/retriever-ai/internal/models"
	"github.com/vincecoscia/retriever-ai/internal/repository"
	"github.com/vincecoscia/retriever-ai/internal/services"
	"github.com/vincecoscia/retriever-ai/internal/viewcache"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type adminTestEnv struct {
	db      *gorm.DB
	handler *AdminHandler
	router  *gin.Engine
}

func setupAdminTestEnv(t *testing.T) adminTestEnv {
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

	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	listing := viewcache.NewClientListing()

	adminService := services.NewAdminService(userRepo, orgRepo, companyRepo, locationRepo, listing)
	handler := NewAdminHandler(adminService, zap.NewNop())

	r := gin.New()
	r.GET("/admin", handler.Overview)
	r.GET("/admin/clients", handler.ListClients)
	r.POST("/admin/clients", handler.CreateOrganization)
	r.POST("/admin/companies", handler.CreateCompany)
	r.POST("/admin/locations", handler.CreateLocation)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return adminTestEnv{
		db:      db,
		handler: handler,
		router:  r,
	}
}

func adminPost(t *testing.T, r *gin.Engine, path string, payload map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func listClients(t *testing.T, r *gin.Engine) []map[string]interface{} {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/admin/clients", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Clients []map[string]interface{} `json:"clients"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	return response.Clients
}

func TestAdminHandler_CreateOrganization(t *testing.T) {
	env := setupAdminTestEnv(t)

	w := adminPost(t, env.router, "/admin/clients", map[string]interface{}{
		"name": "Acme Coffee",
		"slug": "acme-coffee",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var org models.Organization
	require.NoError(t, env.db.First(&org, "slug = ?", "acme-coffee").Error)
	require.Equal(t, "Acme Coffee", org.Name)
}

func TestAdminHandler_CreateOrganization_SlugTaken(t *testing.T) {
	env := setupAdminTestEnv(t)

	require.NoError(t, env.db.Create(&models.Organization{Name: "Acme", Slug: "acme-coffee"}).Error)

	w := adminPost(t, env.router, "/admin/clients", map[string]interface{}{
		"name": "Acme Coffee",
		"slug": "acme-coffee",
	})
	require.Equal(t, http.StatusConflict, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Contains(t, body, "error")
}

func TestAdminHandler_ListClients_ReflectsWrites(t *testing.T) {
	// The listing is cached; every write must invalidate it so the next
	// read already includes the change.
	env := setupAdminTestEnv(t)

	require.Empty(t, listClients(t, env.router))

	w := adminPost(t, env.router, "/admin/clients", map[string]interface{}{
		"name": "Acme Coffee",
		"slug": "acme-coffee",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	clients := listClients(t, env.router)
	require.Len(t, clients, 1)
	require.Equal(t, "Acme Coffee", clients[0]["name"])
}

func TestAdminHandler_ListClients_ExcludesAdminOrg(t *testing.T) {
	env := setupAdminTestEnv(t)

	require.NoError(t, env.db.Create(&models.Organization{
		Name: "Platform Administration",
		Slug: constants.AdminOrgSlug,
	}).Error)
	require.NoError(t, env.db.Create(&models.Organization{Name: "Acme Coffee", Slug: "acme-coffee"}).Error)

	clients := listClients(t, env.router)
	require.Len(t, clients, 1)
	require.Equal(t, "acme-coffee", clients[0]["slug"])
}

func TestAdminHandler_CreateCompany_UnknownOrganization(t *testing.T) {
	env := setupAdminTestEnv(t)

	w := adminPost(t, env.router, "/admin/companies", map[string]interface{}{
		"organization_id": 9999,
		"name":            "Ghost Co",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminHandler_CreateLocation(t *testing.T) {
	env := setupAdminTestEnv(t)

	org := &models.Organization{Name: "Acme Coffee", Slug: "acme-coffee"}
	require.NoError(t, env.db.Create(org).Error)
	company := &models.Company{Name: "Acme Coffee LLC", OrganizationID: org.ID}
	require.NoError(t, env.db.Create(company).Error)

	w := adminPost(t, env.router, "/admin/locations", map[string]interface{}{
		"company_id": company.ID,
		"name":       "Downtown Roastery",
		"city":       "Portland",
		"state":      "OR",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var location models.Location
	require.NoError(t, env.db.First(&location, "company_id = ?", company.ID).Error)
	require.Equal(t, "Downtown Roastery", location.Name)
	require.False(t, location.IsActive, "admin-created locations start inactive")
	require.Nil(t, location.Latitude)
}

func TestAdminHandler_Overview(t *testing.T) {
	env := setupAdminTestEnv(t)

	require.NoError(t, env.db.Create(&models.Organization{
		Name: "Platform Administration",
		Slug: constants.AdminOrgSlug,
	}).Error)
	org := &models.Organization{Name: "Acme Coffee", Slug: "acme-coffee"}
	require.NoError(t, env.db.Create(org).Error)
	company := &models.Company{Name: "Acme Coffee LLC", OrganizationID: org.ID}
	require.NoError(t, env.db.Create(company).Error)
	require.NoError(t, env.db.Create(&models.Location{Name: "A", CompanyID: company.ID, IsActive: true}).Error)
	require.NoError(t, env.db.Create(&models.Location{Name: "B", CompanyID: company.ID}).Error)
	require.NoError(t, env.db.Create(&models.User{Name: "U", Email: "u@example.com", PasswordHash: "x"}).Error)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var stats services.OverviewStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	require.Equal(t, int64(1), stats.ClientCount, "admin organization is not a client")
	require.Equal(t, int64(1), stats.UserCount)
	require.Equal(t, int64(1), stats.ActiveLocationCount)
}
