package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/vincecoscia/retriever-ai/internal/constants"
	"github.com/vincecoscia/retriever-ai/internal/database"
	"github.com/vincecoscia/retriever-ai/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAdminGateTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Organization{},
		&models.Member{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func adminGateRouter(userID uint64) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin", func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}, RequirePlatformAdmin(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"reached": true})
	})
	return r
}

func TestRequirePlatformAdmin_AdminMember(t *testing.T) {
	db := setupAdminGateTestDB(t)

	admin := &models.User{Name: "Admin", Email: "admin@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(admin).Error)
	adminOrg := &models.Organization{Name: "Platform Administration", Slug: constants.AdminOrgSlug}
	require.NoError(t, db.Create(adminOrg).Error)
	require.NoError(t, db.Create(&models.Member{
		OrganizationID: adminOrg.ID,
		UserID:         admin.ID,
		Role:           models.RoleAdmin,
		JoinedAt:       time.Now(),
	}).Error)

	r := adminGateRouter(admin.ID)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequirePlatformAdmin_RegularMemberRedirected(t *testing.T) {
	db := setupAdminGateTestDB(t)

	user := &models.User{Name: "U", Email: "u@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.Organization{
		Name: "Platform Administration",
		Slug: constants.AdminOrgSlug,
	}).Error)
	org := &models.Organization{Name: "Acme Coffee", Slug: "acme-coffee"}
	require.NoError(t, db.Create(org).Error)
	require.NoError(t, db.Create(&models.Member{
		OrganizationID: org.ID,
		UserID:         user.ID,
		Role:           models.RoleOwner,
		JoinedAt:       time.Now(),
	}).Error)

	r := adminGateRouter(user.ID)
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/dashboard", w.Header().Get("Location"))
}
