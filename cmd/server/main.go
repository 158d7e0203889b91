package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/vincecoscia/retriever-ai/internal/config"
	"github.com/vincecoscia/retriever-ai/internal/constants"
	"github.com/vincecoscia/retriever-ai/internal/database"
	"github.com/vincecoscia/retriever-ai/internal/handlers"
	"github.com/vincecoscia/retriever-ai/internal/logger"
	"github.com/vincecoscia/retriever-ai/internal/metrics"
	"github.com/vincecoscia/retriever-ai/internal/middleware"
	"github.com/vincecoscia/retriever-ai/internal/repository"
	"github.com/vincecoscia/retriever-ai/internal/services"
	"github.com/vincecoscia/retriever-ai/internal/viewcache"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if err := logger.Init(cfg.LogLevel, cfg.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	zlog := logger.Get()
	defer zlog.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		zlog.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		zlog.Fatal("Failed to run migrations", zap.Error(err))
	}
	db := database.GetDB()
	if err := database.AddIndexes(db); err != nil {
		zlog.Fatal("Failed to add indexes", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	orgRepo := repository.NewOrganizationRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	locationRepo := repository.NewLocationRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Services
	listing := viewcache.NewClientListing()
	authService := services.NewAuthService(userRepo, orgRepo)
	onboardingService := services.NewOnboardingService(orgRepo)
	provisioningService := services.NewProvisioningService(authService, userRepo, orgRepo)
	adminService := services.NewAdminService(userRepo, orgRepo, companyRepo, locationRepo, listing)
	dashboardService := services.NewDashboardService(orgRepo, analyticsRepo)

	if err := adminService.SeedAdminOrganization(); err != nil {
		zlog.Fatal("Failed to seed admin organization", zap.Error(err))
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(metrics.Middleware())

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		zlog.Fatal("Failed to create Redis store", zap.Error(err))
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	onboardingHandler := handlers.NewOnboardingHandler(onboardingService, zlog)
	adminHandler := handlers.NewAdminHandler(adminService, zlog)
	usersHandler := handlers.NewUsersHandler(adminService, provisioningService, zlog)
	pipelinesHandler := handlers.NewPipelinesHandler(adminService, zlog)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, zlog)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", metrics.Handler())

	// Redirect target for unauthenticated page requests
	r.GET("/sign-in", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Sign in required",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.GET("/organizations", middleware.RequireAuth(), authHandler.ListOrganizations)
			auth.POST("/active-organization", middleware.RequireAuth(), authHandler.SetActiveOrganization)
		}
	}

	// Admin area: cheap cookie check at the edge, then full session
	// resolution, then admin-org membership.
	admin := r.Group("/admin")
	admin.Use(middleware.RequireSessionCookie())
	admin.Use(middleware.RequireSession())
	admin.Use(middleware.RequirePlatformAdmin())
	{
		admin.GET("", adminHandler.Overview)
		admin.GET("/clients", adminHandler.ListClients)
		admin.POST("/clients", adminHandler.CreateOrganization)
		admin.POST("/clients/onboard", onboardingHandler.OnboardClient)
		admin.POST("/companies", adminHandler.CreateCompany)
		admin.POST("/locations", adminHandler.CreateLocation)
		admin.GET("/users", usersHandler.ListUsers)
		admin.POST("/users", usersHandler.CreateUserForOrg)
		admin.GET("/pipelines", pipelinesHandler.ListPipelines)
		admin.POST("/pipelines/:id/toggle", pipelinesHandler.ToggleLocation)
	}

	// Dashboard area: any authenticated member.
	dashboard := r.Group("/dashboard")
	dashboard.Use(middleware.RequireSessionCookie())
	dashboard.Use(middleware.RequireSession())
	{
		dashboard.GET("", dashboardHandler.Overview)
		dashboard.GET("/weather", dashboardHandler.Weather)
		dashboard.GET("/competitors", dashboardHandler.Competitors)
	}

	// Start server
	zlog.Info("Server starting", zap.String("port", cfg.ServerPort))
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		zlog.Fatal("Failed to start server", zap.Error(err))
	}
}
