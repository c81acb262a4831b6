package main

import (
	"context"
	"flag"
	"fmt"

	"lesson-market/pkg/config"
	"lesson-market/pkg/database"
	"lesson-market/pkg/jwt"
	"lesson-market/pkg/logger"
	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/model"
	"lesson-market/services/marketplace/internal/repo/persistent"

	"gorm.io/gorm"
)

// Fixed ids keep the seed idempotent.
const (
	adminID = "00000000-0000-4000-8000-000000000001"
	aliceID = "00000000-0000-4000-8000-000000000002"
	bobID   = "00000000-0000-4000-8000-000000000003"
)

func main() {
	var migrate bool
	flag.BoolVar(&migrate, "automigrate", false, "create tables with gorm instead of goose")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if migrate {
		if err := db.AutoMigrate(model.All()...); err != nil {
			log.Error("Failed to migrate: %v", err)
			panic(err)
		}
	}

	if err := seedDatabase(context.Background(), db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	// Tokens for trying the API locally
	tokens := jwt.NewService(cfg.JWTSecret)
	for _, u := range []struct{ id, role string }{{adminID, "admin"}, {aliceID, "user"}, {bobID, "user"}} {
		token, err := tokens.GenerateToken(u.id, u.role)
		if err != nil {
			log.Error("Failed to sign token for %s: %v", u.id, err)
			continue
		}
		log.Info("%s (%s): %s", u.id, u.role, token)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(ctx context.Context, db *gorm.DB, log *logger.Logger) error {
	profiles := persistent.NewProfileRepository(db)
	videos := persistent.NewVideoRepository(db)
	courses := persistent.NewCourseRepository(db)
	prompts := persistent.NewPromptRepository(db)
	purchases := persistent.NewPurchaseRepository(db)

	for _, p := range []*entity.Profile{
		{ID: adminID, Role: entity.RoleAdmin, Name: "管理者", Email: "admin@example.com"},
		{ID: aliceID, Role: entity.RoleUser, Name: "Alice", Email: "alice@example.com"},
		{ID: bobID, Role: entity.RoleUser, Name: "Bob", Email: "bob@example.com"},
	} {
		if err := profiles.Upsert(ctx, p); err != nil {
			return fmt.Errorf("failed to upsert profile %s: %w", p.Email, err)
		}
	}

	var count int64
	if err := db.WithContext(ctx).Model(&model.VideoModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Content already present (%d videos), skipping", count)
		return nil
	}

	seedVideos := []*entity.Video{
		{Title: "Go言語入門", Description: "変数、関数、エラー処理", Price: 0, IsPublished: true, VimeoID: "76979871", Genre: "programming", Tags: []string{"go", "beginner"}},
		{Title: "並行処理の基礎", Description: "goroutine と channel", Price: 1500, IsPublished: true, VimeoID: "22439234", Genre: "programming", Tags: []string{"go", "concurrency"}},
		{Title: "HTTP サーバー実践", Description: "gin で API を作る", Price: 2500, IsPublished: true, VimeoID: "1084537", Genre: "programming", Tags: []string{"go", "web"}},
		{Title: "画像生成のコツ", Description: "構図とライティング", Price: 800, IsPublished: true, VimeoID: "148751763", Genre: "ai", Tags: []string{"image"}},
		{Title: "下書き動画", Description: "未公開", Price: 500, IsPublished: false, Genre: "programming"},
	}
	for _, v := range seedVideos {
		if err := videos.Create(ctx, v); err != nil {
			return fmt.Errorf("failed to create video %s: %w", v.Title, err)
		}
		log.Info("Created video: %s (%s)", v.Title, v.ID)
	}

	seedPrompts := []*entity.Prompt{
		{Title: "ロゴデザイン", Category: entity.PromptCategoryImage, AITool: "Midjourney", Price: 300, PromptText: "minimal flat logo, {brand}, vector, white background", IsPublished: true},
		{Title: "コードレビュー", Category: entity.PromptCategoryCode, AITool: "Claude", Price: 0, PromptText: "Review this Go code for error handling and concurrency bugs:", IsPublished: true},
		{Title: "BGM 作曲", Category: entity.PromptCategoryMusic, AITool: "Suno", Price: 500, PromptText: "lo-fi hip hop, 80 bpm, rainy night", IsPublished: true},
	}
	for _, p := range seedPrompts {
		if err := prompts.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to create prompt %s: %w", p.Title, err)
		}
		log.Info("Created prompt: %s (%s)", p.Title, p.ID)
	}

	course := &entity.Course{Title: "Go バックエンド講座", Description: "入門から API 開発まで", Price: 3500, IsPublished: true}
	if err := courses.Create(ctx, course); err != nil {
		return fmt.Errorf("failed to create course: %w", err)
	}
	if err := courses.ReplaceContents(ctx, course.ID,
		[]string{seedVideos[0].ID, seedVideos[1].ID, seedVideos[2].ID},
		[]string{seedPrompts[1].ID},
	); err != nil {
		return fmt.Errorf("failed to fill course: %w", err)
	}
	log.Info("Created course: %s (%s)", course.Title, course.ID)

	for _, p := range []*entity.Purchase{
		{Kind: entity.KindVideo, ContentID: seedVideos[1].ID, UserID: aliceID, Amount: 1500, Status: entity.PurchaseStatusActive},
		{Kind: entity.KindCourse, ContentID: course.ID, UserID: bobID, Amount: 3500, Status: entity.PurchaseStatusActive},
		{Kind: entity.KindPrompt, ContentID: seedPrompts[0].ID, UserID: aliceID, Amount: 300, Status: entity.PurchaseStatusActive},
		{Kind: entity.KindVideo, ContentID: seedVideos[3].ID, UserID: bobID, Amount: 800, Status: entity.PurchaseStatusCancelled},
	} {
		if err := purchases.Create(ctx, p); err != nil {
			return fmt.Errorf("failed to create purchase: %w", err)
		}
	}
	log.Info("Created test purchases")
	return nil
}
