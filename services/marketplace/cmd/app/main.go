package main

import (
	"context"
	"time"

	"lesson-market/pkg/cache"
	"lesson-market/pkg/config"
	"lesson-market/pkg/database"
	"lesson-market/pkg/logger"
	"lesson-market/pkg/queue"
	"lesson-market/pkg/s3"
	marketplaceApp "lesson-market/services/marketplace/internal/app"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           Lesson Market API
// @version         1.0
// @description     Marketplace for lesson videos, courses and AI prompts
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	// Validate JWT_SECRET for services that use JWT
	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}

	log, err := logger.NewWithMode(cfg.LogMode)
	if err != nil {
		panic(err)
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Migrations are handled by goose - see cmd/migrate/main.go

	var deps marketplaceApp.Deps

	// Redis backs rate limiting, the progress throttle and the Vimeo duration cache
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Warn("Failed to connect to redis: %v (continuing with in-process throttling)", err)
	} else {
		deps.Redis = redisClient
	}

	if cfg.AWSAccessKeyID != "" {
		s3Client, err := s3.NewClient(cfg)
		if err != nil {
			log.Error("Failed to create S3 client: %v", err)
			panic(err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := s3Client.EnsureBucket(ctx); err != nil {
			log.Warn("Failed to ensure bucket %s: %v", cfg.S3BucketName, err)
		}
		cancel()
		deps.S3 = s3Client
	} else {
		log.Warn("AWS credentials not set, prompt attachments are disabled")
	}

	if cfg.RabbitMQHost != "" {
		queueClient, err := queue.NewRabbitMQClient(cfg, log)
		if err != nil {
			log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		} else {
			deps.Queue = queueClient
		}
	}

	marketplaceApp.Run(cfg, log, db, deps)
}
