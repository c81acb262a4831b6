package usecase

import (
	"context"
	"fmt"
	"time"

	"lesson-market/pkg/logger"
	"lesson-market/pkg/queue"
	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/repo/persistent"
)

// PurchasePublisher receives committed purchases. *queue.Client implements it.
type PurchasePublisher interface {
	PublishPurchase(ctx context.Context, event queue.PurchaseEvent) error
}

type PurchaseUseCase interface {
	PurchaseVideo(ctx context.Context, userID, videoID string, amount *int) (*entity.Purchase, error)
	PurchaseCourse(ctx context.Context, userID, courseID string) (*entity.Purchase, error)
	PurchasePrompt(ctx context.Context, userID, promptID string) (*entity.Purchase, error)
}

type purchaseUseCase struct {
	videoRepo    persistent.VideoRepository
	courseRepo   persistent.CourseRepository
	promptRepo   persistent.PromptRepository
	purchaseRepo persistent.PurchaseRepository
	publisher    PurchasePublisher
	logger       *logger.Logger
}

func NewPurchaseUseCase(
	videoRepo persistent.VideoRepository,
	courseRepo persistent.CourseRepository,
	promptRepo persistent.PromptRepository,
	purchaseRepo persistent.PurchaseRepository,
	publisher PurchasePublisher,
	logger *logger.Logger,
) PurchaseUseCase {
	return &purchaseUseCase{
		videoRepo:    videoRepo,
		courseRepo:   courseRepo,
		promptRepo:   promptRepo,
		purchaseRepo: purchaseRepo,
		publisher:    publisher,
		logger:       logger,
	}
}

// PurchaseVideo charges the catalog price unless the caller supplies a custom amount.
func (uc *purchaseUseCase) PurchaseVideo(ctx context.Context, userID, videoID string, amount *int) (*entity.Purchase, error) {
	if userID == "" {
		return nil, entity.ErrUnauthenticated
	}
	if amount != nil && *amount < 0 {
		return nil, entity.ErrInvalidAmount
	}

	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !video.IsPublished {
		return nil, fmt.Errorf("video %s: %w", videoID, entity.ErrNotFound)
	}

	price := video.Price
	if amount != nil {
		price = *amount
	}
	return uc.record(ctx, entity.KindVideo, videoID, userID, price)
}

func (uc *purchaseUseCase) PurchaseCourse(ctx context.Context, userID, courseID string) (*entity.Purchase, error) {
	if userID == "" {
		return nil, entity.ErrUnauthenticated
	}

	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if !course.IsPublished {
		return nil, fmt.Errorf("course %s: %w", courseID, entity.ErrNotFound)
	}
	return uc.record(ctx, entity.KindCourse, courseID, userID, course.Price)
}

func (uc *purchaseUseCase) PurchasePrompt(ctx context.Context, userID, promptID string) (*entity.Purchase, error) {
	if userID == "" {
		return nil, entity.ErrUnauthenticated
	}

	prompt, err := uc.promptRepo.GetByID(ctx, promptID)
	if err != nil {
		return nil, err
	}
	if !prompt.IsPublished {
		return nil, fmt.Errorf("prompt %s: %w", promptID, entity.ErrNotFound)
	}
	return uc.record(ctx, entity.KindPrompt, promptID, userID, prompt.Price)
}

func (uc *purchaseUseCase) record(ctx context.Context, kind entity.ContentKind, contentID, userID string, amount int) (*entity.Purchase, error) {
	if amount < 0 {
		return nil, entity.ErrInvalidAmount
	}

	purchase := &entity.Purchase{
		Kind:      kind,
		ContentID: contentID,
		UserID:    userID,
		Amount:    amount,
		Status:    entity.PurchaseStatusActive,
	}
	if err := uc.purchaseRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to record %s purchase: %w", kind, err)
	}

	uc.logger.Info("Recorded %s purchase %s for user %s (amount %d)", kind, purchase.ID, userID, amount)
	uc.publish(ctx, purchase)
	return purchase, nil
}

func (uc *purchaseUseCase) publish(ctx context.Context, purchase *entity.Purchase) {
	if uc.publisher == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	occurredAt := purchase.CreatedAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}
	event := queue.PurchaseEvent{
		PurchaseID: purchase.ID,
		Kind:       string(purchase.Kind),
		ContentID:  purchase.ContentID,
		UserID:     purchase.UserID,
		Amount:     purchase.Amount,
		OccurredAt: occurredAt,
	}
	if err := uc.publisher.PublishPurchase(ctx, event); err != nil {
		uc.logger.Warn("Failed to publish purchase %s: %v", purchase.ID, err)
	}
}
