package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"property-portal/internal/auth"
	"property-portal/internal/cache"
	"property-portal/internal/config"
	"property-portal/internal/database"
	"property-portal/internal/finance"
	"property-portal/internal/handlers"
	"property-portal/internal/logger"
	"property-portal/internal/occupancy"
	"property-portal/internal/scheduler"
	"property-portal/internal/search"
	"property-portal/internal/stats"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	configPath := getEnv("CONFIG_PATH", "config/config.yaml")
	appConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load config from %s: %v", configPath, err)
	}

	zapLog, err := logger.New(appConfig.Logging.Level, appConfig.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLog.Sync()

	loc, err := time.LoadLocation(appConfig.Timezone)
	if err != nil {
		zapLog.Warn("unknown timezone, using UTC", zap.String("timezone", appConfig.Timezone))
		loc = time.UTC
	}

	// Database
	dbType := appConfig.Database.Type
	if dbType == "" {
		dbType = getEnv("DB_TYPE", "mysql")
	}

	var gormDB *database.GormDB
	if dbType == "postgres" {
		zapLog.Info("using PostgreSQL")
		pgCfg := appConfig.Database.Postgres
		portStr := ""
		if pgCfg.Port > 0 {
			portStr = fmt.Sprintf("%d", pgCfg.Port)
		}
		gormDB, err = database.NewPostgresDB(
			getEnvOrConfig(pgCfg.Host, "DB_HOST", "db"),
			getEnvOrConfig(portStr, "DB_PORT", "5432"),
			getEnvOrConfig(pgCfg.User, "DB_USER", "portal_user"),
			getEnvOrConfig(pgCfg.Password, "DB_PASSWORD", "portal_pass"),
			getEnvOrConfig(pgCfg.Database, "DB_NAME", "portal_db"),
			getEnvOrConfig(pgCfg.SSLMode, "DB_SSLMODE", "disable"),
		)
	} else {
		zapLog.Info("using MySQL")
		mysqlCfg := appConfig.Database.MySQL
		portStr := ""
		if mysqlCfg.Port > 0 {
			portStr = fmt.Sprintf("%d", mysqlCfg.Port)
		}
		gormDB, err = database.NewGormDB(
			getEnvOrConfig(mysqlCfg.Host, "DB_HOST", "mysql"),
			getEnvOrConfig(portStr, "DB_PORT", "3306"),
			getEnvOrConfig(mysqlCfg.User, "DB_USER", "portal_user"),
			getEnvOrConfig(mysqlCfg.Password, "DB_PASSWORD", "portal_pass"),
			getEnvOrConfig(mysqlCfg.Database, "DB_NAME", "portal_db"),
		)
	}
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer gormDB.Close()

	if err := gormDB.InitSchema(); err != nil {
		zapLog.Fatal("failed to initialize schema", zap.Error(err))
	}
	db := gormDB.DB()

	// Meilisearch (optional; the public search falls back to the
	// database when unavailable)
	var searchClient *search.SearchClient
	meilisearchHost := appConfig.Search.Meilisearch.Host
	if meilisearchHost == "" {
		meilisearchHost = os.Getenv("MEILISEARCH_HOST")
	}
	if meilisearchHost != "" {
		meilisearchKey := appConfig.Search.Meilisearch.APIKey
		if meilisearchKey == "" {
			meilisearchKey = os.Getenv("MEILISEARCH_KEY")
		}
		searchClient = search.NewSearchClient(meilisearchHost, meilisearchKey)
		if err := searchClient.InitIndex(); err != nil {
			zapLog.Warn("failed to initialize search index", zap.Error(err))
		}
	} else {
		zapLog.Info("meilisearch not configured, vacancy search served from database")
	}

	// Redis (optional)
	appCache := cache.Disabled()
	if appConfig.Redis.Enabled {
		appCache, err = cache.NewCache(appConfig.Redis.Addr, appConfig.Redis.Password, appConfig.Redis.DB)
		if err != nil {
			zapLog.Warn("failed to connect to redis, continuing without cache", zap.Error(err))
			appCache = cache.Disabled()
		} else {
			defer appCache.Close()
		}
	}

	// Services
	jwtSecret := appConfig.Auth.JWTSecret
	if jwtSecret == "" {
		jwtSecret = getEnv("JWT_SECRET", "")
	}
	if jwtSecret == "" {
		zapLog.Fatal("jwt secret is not configured")
	}
	tokenService := auth.NewTokenService(jwtSecret, appConfig.Auth.TokenTTL())
	authService := auth.NewService(db, tokenService, zapLog)

	defaultAdminPassword := appConfig.Auth.DefaultAdminPassword
	if defaultAdminPassword == "" {
		defaultAdminPassword = os.Getenv("DEFAULT_ADMIN_PASSWORD")
	}
	if defaultAdminPassword != "" {
		if err := authService.EnsureDefaultAdmin(appConfig.Auth.DefaultAdminEmail, defaultAdminPassword); err != nil {
			zapLog.Fatal("failed to ensure default admin", zap.Error(err))
		}
	}

	occupancyService := occupancy.NewService(db, zapLog)
	statsService := stats.NewService(db)
	financeService := finance.NewService(db, loc)

	// Scheduler
	cronSecret := appConfig.Scheduler.CronSecret
	if cronSecret == "" {
		cronSecret = os.Getenv("CRON_SECRET")
	}
	appScheduler := scheduler.NewScheduler(db, searchClient, appConfig, zapLog)
	if err := appScheduler.Start(); err != nil {
		zapLog.Warn("failed to start scheduler", zap.Error(err))
	}
	defer appScheduler.Stop()

	// Handlers
	propertyHandler := handlers.NewPropertyHandler(db, searchClient, zapLog)
	roomHandler := handlers.NewRoomHandler(db, occupancyService, searchClient, zapLog)
	tenantHandler := handlers.NewTenantHandler(db, occupancyService, searchClient, appCache, zapLog)
	historyHandler := handlers.NewHistoryHandler(db)
	maintenanceHandler := handlers.NewMaintenanceHandler(db, zapLog)
	inquiryHandler := handlers.NewInquiryHandler(db, zapLog)
	financeHandler := handlers.NewFinanceHandler(db, financeService, zapLog)
	dashboardHandler := handlers.NewDashboardHandler(statsService, appCache, loc, zapLog)
	authHandler := handlers.NewAuthHandler(db, authService, tokenService, appCache)
	adminAccountHandler := handlers.NewAdminAccountHandler(db, zapLog)
	publicHandler := handlers.NewPublicHandler(db, searchClient, zapLog)
	systemHandler := handlers.NewSystemHandler(appScheduler, cronSecret, zapLog)

	// Router
	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     appConfig.Server.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/health", systemHandler.Health)
	r.GET("/api/cron/keep-alive", systemHandler.KeepAlive)

	// Public listing site
	public := r.Group("/api/public")
	{
		public.GET("/vacancies", publicHandler.SearchVacancies)
		public.GET("/properties/:id", publicHandler.GetProperty)
		public.POST("/inquiries", publicHandler.CreateInquiry)
	}

	r.POST("/api/auth/login", authHandler.Login)

	// Admin API (authenticated)
	api := r.Group("/api", auth.Middleware(tokenService, appCache))
	{
		api.POST("/auth/logout", authHandler.Logout)
		api.GET("/auth/me", authHandler.Me)

		api.GET("/dashboard", dashboardHandler.Get)

		api.GET("/properties", propertyHandler.List)
		api.POST("/properties", propertyHandler.Create)
		api.GET("/properties/:id", propertyHandler.Get)
		api.PUT("/properties/:id", propertyHandler.Update)
		api.DELETE("/properties/:id", propertyHandler.Delete)

		api.GET("/properties/:id/rooms", roomHandler.ListByProperty)
		api.POST("/properties/:id/rooms", roomHandler.Create)
		api.GET("/rooms/:id", roomHandler.Get)
		api.PUT("/rooms/:id", roomHandler.Update)
		api.DELETE("/rooms/:id", roomHandler.Delete)

		api.GET("/tenants", tenantHandler.List)
		api.POST("/tenants/move-in", tenantHandler.MoveIn)
		api.GET("/tenants/:id", tenantHandler.Get)
		api.PUT("/tenants/:id", tenantHandler.Update)
		api.POST("/tenants/:id/move-out", tenantHandler.MoveOut)
		api.DELETE("/tenants/:id", tenantHandler.Delete)

		api.GET("/move-histories", historyHandler.List)

		api.GET("/maintenances", maintenanceHandler.List)
		api.POST("/maintenances", maintenanceHandler.Create)
		api.GET("/maintenances/:id", maintenanceHandler.Get)
		api.PUT("/maintenances/:id", maintenanceHandler.Update)
		api.DELETE("/maintenances/:id", maintenanceHandler.Delete)

		api.GET("/inquiries", inquiryHandler.List)
		api.POST("/inquiries", inquiryHandler.Create)
		api.GET("/inquiries/:id", inquiryHandler.Get)
		api.POST("/inquiries/:id/respond", inquiryHandler.Respond)
		api.PATCH("/inquiries/:id/status", inquiryHandler.UpdateStatus)
		api.DELETE("/inquiries/:id", inquiryHandler.Delete)

		api.GET("/finances", financeHandler.Monthly)
		api.GET("/finances/export", financeHandler.Export)
		api.GET("/finances/categories", financeHandler.Categories)
		api.POST("/finances", financeHandler.Create)
		api.PUT("/finances/:id", financeHandler.Update)
		api.DELETE("/finances/:id", financeHandler.Delete)

		api.POST("/search/reindex", systemHandler.Reindex)

		// Account management (super admin only)
		admins := api.Group("/admins", auth.RequireSuperAdmin())
		{
			admins.GET("", adminAccountHandler.List)
			admins.POST("", adminAccountHandler.Create)
			admins.PUT("/:id", adminAccountHandler.Update)
			admins.DELETE("/:id", adminAccountHandler.Delete)
		}
	}

	port := appConfig.Server.Port
	if port == "" {
		port = getEnv("PORT", "8084")
	}
	zapLog.Info("server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		zapLog.Fatal("failed to start server", zap.Error(err))
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvOrConfig returns config value if set, otherwise falls back to environment variable, then default
func getEnvOrConfig(configValue, envKey, defaultValue string) string {
	if configValue != "" {
		return configValue
	}
	return getEnv(envKey, defaultValue)
}
