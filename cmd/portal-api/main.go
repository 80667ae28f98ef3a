package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/elitehub/portal-api/api/swagger"
	"github.com/elitehub/portal-api/internal/handler"
	"github.com/elitehub/portal-api/internal/middleware"
	"github.com/elitehub/portal-api/internal/models"
	"github.com/elitehub/portal-api/internal/repository"
	"github.com/elitehub/portal-api/internal/service"
	"github.com/elitehub/portal-api/pkg/cache"
	"github.com/elitehub/portal-api/pkg/config"
	"github.com/elitehub/portal-api/pkg/database"
	"github.com/elitehub/portal-api/pkg/logger"
	corsmiddleware "github.com/elitehub/portal-api/pkg/middleware/cors"
	reqidmiddleware "github.com/elitehub/portal-api/pkg/middleware/requestid"
	"github.com/elitehub/portal-api/pkg/storage"
)

// @title Elite Hub Portal API
// @version 1.0.0
// @description Academy marketing and student portal backend
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to postgres", "error", err)
	}
	defer db.Close() //nolint:errcheck

	// Redis is optional: without it snapshot caching is simply disabled
	// and reads go straight to the database.
	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, snapshot cache disabled", "error", err)
		redisClient = nil
	}

	store, err := storage.NewLocalStorage(cfg.Resources.StorageDir)
	if err != nil {
		logr.Sugar().Fatalw("failed to prepare resource storage", "error", err)
	}
	signer := storage.NewSignedURLSigner(cfg.Resources.SignedURLSecret, cfg.Resources.SignedURLTTL)

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	contentRepo := repository.NewContentRepository(db)
	resourceRepo := repository.NewResourceRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	qnaRepo := repository.NewQnARepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	metricsSvc := service.NewMetricsService()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.TTL, logr, cfg.Cache.Enabled && redisClient != nil)
	authSvc := service.NewAuthService(userRepo, settingsRepo, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            "portal-api",
		MinPasswordLength: cfg.Auth.MinPasswordLength,
	})
	userSvc := service.NewUserService(userRepo, logr)
	settingsSvc := service.NewSettingsService(settingsRepo, userRepo, cacheSvc, validate, logr, cfg.Branding.DefaultBrandName)
	sloganSvc := service.NewSloganService(service.SloganConfig{
		Endpoint: cfg.Slogan.Endpoint,
		APIKey:   cfg.Slogan.APIKey,
		Timeout:  cfg.Slogan.Timeout,
	}, logr)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, metricsSvc, validate, logr)
	contentSvc := service.NewContentService(contentRepo, userRepo, cacheSvc, validate, logr)
	videoSvc := service.NewVideoService(videoRepo, userRepo, cacheSvc, validate, logr)
	resourceSvc := service.NewResourceService(resourceRepo, userRepo, cacheSvc, store, signer, analyticsSvc, service.ResourceConfig{
		MaxFileSizeBytes:  cfg.Resources.MaxFileSizeBytes,
		AllowedExtensions: cfg.Resources.AllowedExtensions,
	}, logr)
	qnaSvc := service.NewQnAService(qnaRepo, analyticsSvc, validate, logr)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	settingsHandler := handler.NewSettingsHandler(settingsSvc, sloganSvc)
	contentHandler := handler.NewContentHandler(contentSvc)
	resourceHandler := handler.NewResourceHandler(resourceSvc)
	videoHandler := handler.NewVideoHandler(videoSvc)
	qnaHandler := handler.NewQnAHandler(qnaSvc)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", metricsHandler.Health)
	r.GET("/ready", metricsHandler.Health)
	r.GET("/metrics", middleware.JWT(authSvc), middleware.RequireAdmin(), metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/admin/login", authHandler.AdminLogin)
		auth.GET("/me", middleware.JWT(authSvc), authHandler.Me)
		auth.POST("/logout", middleware.JWT(authSvc), authHandler.Logout)
	}

	settings := api.Group("/settings")
	{
		settings.GET("/branding", settingsHandler.GetBranding)
		settings.GET("/instructor", settingsHandler.GetInstructor)
	}

	student := api.Group("")
	student.Use(middleware.JWT(authSvc), middleware.RequireAccess())
	{
		student.GET("/contents", contentHandler.List)
		student.GET("/resources", resourceHandler.List)
		student.GET("/resources/:id/download", resourceHandler.IssueDownload)
		student.GET("/videos", videoHandler.List)
		student.GET("/qna", qnaHandler.List)
		student.POST("/qna", qnaHandler.Create)
	}

	// The token itself carries the grant; no session is required to redeem.
	api.GET("/downloads/:token", resourceHandler.RedeemDownload)

	api.POST("/analytics/track", middleware.OptionalJWT(authSvc), analyticsHandler.Track)

	admin := api.Group("/admin")
	admin.Use(middleware.JWT(authSvc), middleware.RequireAdmin())
	{
		admin.PUT("/settings/branding", settingsHandler.SaveBranding)
		admin.PUT("/settings/instructor", settingsHandler.SaveInstructor)
		admin.POST("/settings/slogan", settingsHandler.GenerateSlogan)

		admin.POST("/contents", contentHandler.Create)
		admin.DELETE("/contents/:id", contentHandler.Delete)
		admin.POST("/resources", resourceHandler.Upload)
		admin.DELETE("/resources/:id", resourceHandler.Delete)
		admin.POST("/videos", videoHandler.Create)
		admin.DELETE("/videos/:id", videoHandler.Delete)

		admin.POST("/qna/:id/replies", middleware.Audit(userRepo, models.AuditActionReplyQnA, "qna_post"), qnaHandler.Reply)

		admin.GET("/users", userHandler.List)
		admin.POST("/users/:id/approve", userHandler.Approve)
		admin.DELETE("/users/:id", userHandler.Reject)

		admin.GET("/analytics", analyticsHandler.Snapshot)
		admin.GET("/analytics/export", middleware.Audit(userRepo, models.AuditActionExport, "analytics"), analyticsHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
