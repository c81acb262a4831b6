package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"lesson-market/pkg/config"
	"lesson-market/pkg/jwt"
	"lesson-market/pkg/logger"
	"lesson-market/pkg/middleware"
	"lesson-market/pkg/queue"
	"lesson-market/pkg/s3"
	"lesson-market/pkg/vimeo"
	marketHTTP "lesson-market/services/marketplace/internal/controller/http"
	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/repo/persistent"
	"lesson-market/services/marketplace/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "lesson-market/services/marketplace/docs" // Swagger docs
)

const (
	defaultRequestsPerMinute = 300
	shutdownTimeout          = 5 * time.Second
)

// Deps are the optional external clients. Nil fields disable the matching feature.
type Deps struct {
	Redis *redis.Client
	S3    *s3.Client
	Queue *queue.Client
}

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, deps Deps) {
	r := NewRouter(cfg, log, db, deps)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	go func() {
		log.Info("Marketplace service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down marketplace service...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if deps.Redis != nil {
		if err := deps.Redis.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	if deps.Queue != nil {
		deps.Queue.Close()
	}

	log.Info("Marketplace service exited")
	log.Sync()
}

// NewRouter wires repositories, use cases and handlers onto a gin engine.
func NewRouter(cfg *config.Config, log *logger.Logger, db *gorm.DB, deps Deps) *gin.Engine {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// Initialize repositories
	videoRepo := persistent.NewVideoRepository(db)
	courseRepo := persistent.NewCourseRepository(db)
	promptRepo := persistent.NewPromptRepository(db)
	purchaseRepo := persistent.NewPurchaseRepository(db)
	historyRepo := persistent.NewViewHistoryRepository(db, cfg.ProgressMonotonic)
	profileRepo := persistent.NewProfileRepository(db)
	interactionRepo := persistent.NewInteractionRepository(db)

	// Optional clients are handed over as untyped nil so the use cases' nil checks work.
	var store usecase.ObjectStore
	if deps.S3 != nil {
		store = deps.S3
	}
	var publisher usecase.PurchasePublisher
	if deps.Queue != nil {
		publisher = deps.Queue
	}
	var throttler usecase.Throttler = usecase.NewLocalThrottler(cfg.ProgressThrottle)
	if deps.Redis != nil {
		throttler = usecase.NewRedisThrottler(deps.Redis, cfg.ProgressThrottle, log)
	}

	// Initialize use cases
	entitlementUseCase := usecase.NewEntitlementUseCase(purchaseRepo, profileRepo)
	progressUseCase := usecase.NewProgressUseCase(historyRepo, throttler, vimeo.NewClient(cfg.VimeoOEmbedURL, deps.Redis), log)
	catalogUseCase := usecase.NewCatalogUseCase(videoRepo, courseRepo, promptRepo, entitlementUseCase, progressUseCase, store, usecase.CatalogOptions{
		ViewCountRequiresAccess: cfg.ViewCountRequiresAccess,
		PresignTTL:              cfg.S3PresignTTL,
	}, log)
	purchaseUseCase := usecase.NewPurchaseUseCase(videoRepo, courseRepo, promptRepo, purchaseRepo, publisher, log)
	interactionUseCase := usecase.NewInteractionUseCase(interactionRepo, videoRepo, profileRepo, historyRepo, purchaseRepo, log)
	revenueUseCase := usecase.NewRevenueUseCase(purchaseRepo, cfg.Location(), log)

	// Initialize HTTP handlers
	catalogHandler := marketHTTP.NewCatalogHandler(catalogUseCase, cfg.LoginURL, log)
	purchaseHandler := marketHTTP.NewPurchaseHandler(purchaseUseCase, cfg.LoginURL, log)
	progressHandler := marketHTTP.NewProgressHandler(progressUseCase, catalogUseCase, cfg.LoginURL, log)
	interactionHandler := marketHTTP.NewInteractionHandler(interactionUseCase, cfg.LoginURL, log)
	adminHandler := marketHTTP.NewAdminHandler(catalogUseCase, cfg.LoginURL, log)
	revenueHandler := marketHTTP.NewRevenueHandler(revenueUseCase, cfg.LoginURL, log)

	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	requestsPerMinute := cfg.RateLimitPerMinute
	if requestsPerMinute <= 0 {
		requestsPerMinute = defaultRequestsPerMinute
	}
	// Runs after auth so signed-in callers are counted by user id.
	rateLimit := middleware.RateLimitMiddleware(deps.Redis, requestsPerMinute, time.Minute)

	api := r.Group("/api/v1")

	// Anonymous visitors are allowed. Purchases answer 401 with a login URL themselves.
	public := api.Group("")
	public.Use(middleware.OptionalAuthMiddleware(jwtService), rateLimit)
	{
		public.GET("/videos", catalogHandler.ListVideos)
		public.GET("/videos/:id", catalogHandler.GetVideo)
		public.GET("/videos/:id/comments", interactionHandler.ListComments)
		public.GET("/courses", catalogHandler.ListCourses)
		public.GET("/courses/:id", catalogHandler.GetCourse)
		public.GET("/prompts", catalogHandler.ListPrompts)
		public.GET("/prompts/:id", catalogHandler.GetPrompt)

		public.POST("/videos/:id/purchase", purchaseHandler.PurchaseVideo)
		public.POST("/courses/:id/purchase", purchaseHandler.PurchaseCourse)
		public.POST("/prompts/:id/purchase", purchaseHandler.PurchasePrompt)
	}

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(jwtService), rateLimit)
	{
		authed.POST("/videos/:id/play", progressHandler.StartPlayback)
		authed.POST("/videos/:id/progress", progressHandler.RecordProgress)
		authed.GET("/videos/:id/resume", progressHandler.ResumePosition)
		authed.POST("/videos/:id/favorite", interactionHandler.ToggleFavorite)
		authed.POST("/videos/:id/comments", interactionHandler.CreateComment)
		authed.DELETE("/comments/:id", interactionHandler.DeleteComment)

		authed.GET("/me", interactionHandler.GetMe)
		authed.GET("/me/history", interactionHandler.ListHistory)
		authed.GET("/me/purchases", interactionHandler.ListPurchases)
		authed.GET("/me/favorites", interactionHandler.ListFavorites)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(jwtService), rateLimit, middleware.RequireRole(profileRepo, string(entity.RoleAdmin)))
	{
		admin.POST("/videos", adminHandler.CreateVideo)
		admin.PUT("/videos/:id", adminHandler.UpdateVideo)
		admin.DELETE("/videos/:id", adminHandler.DeleteVideo)

		admin.POST("/courses", adminHandler.CreateCourse)
		admin.PUT("/courses/:id", adminHandler.UpdateCourse)
		admin.DELETE("/courses/:id", adminHandler.DeleteCourse)
		admin.PUT("/courses/:id/contents", adminHandler.ReplaceCourseContents)

		admin.POST("/prompts", adminHandler.CreatePrompt)
		admin.PUT("/prompts/:id", adminHandler.UpdatePrompt)
		admin.DELETE("/prompts/:id", adminHandler.DeletePrompt)
		admin.POST("/prompts/:id/attachments", adminHandler.UploadPromptAttachment)

		admin.GET("/revenue/summary", revenueHandler.Summary)
		admin.GET("/export/revenue", revenueHandler.ExportRevenue)
		admin.GET("/export/revenue-breakdown", revenueHandler.ExportBreakdown)
		admin.GET("/export/revenue-ranking", revenueHandler.ExportRanking)
	}

	return r
}
