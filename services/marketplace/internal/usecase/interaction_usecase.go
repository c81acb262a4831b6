package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"lesson-market/pkg/logger"
	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/repo/persistent"
)

const maxCommentLength = 2000

type InteractionUseCase interface {
	ToggleFavorite(ctx context.Context, userID, videoID string) (bool, error)
	ListFavorites(ctx context.Context, userID string, limit, offset int) ([]*entity.Favorite, error)
	ListComments(ctx context.Context, videoID string, limit, offset int) ([]*entity.Comment, error)
	CreateComment(ctx context.Context, userID, videoID, body string) (*entity.Comment, error)
	DeleteComment(ctx context.Context, userID, commentID string) error
	GetProfile(ctx context.Context, userID string) (*entity.Profile, error)
	ListHistory(ctx context.Context, userID string, limit, offset int) ([]*entity.HistoryEntry, error)
	ListPurchases(ctx context.Context, userID string) ([]*entity.Purchase, error)
}

type interactionUseCase struct {
	interactionRepo persistent.InteractionRepository
	videoRepo       persistent.VideoRepository
	profileRepo     persistent.ProfileRepository
	historyRepo     persistent.ViewHistoryRepository
	purchaseRepo    persistent.PurchaseRepository
	logger          *logger.Logger
}

func NewInteractionUseCase(
	interactionRepo persistent.InteractionRepository,
	videoRepo persistent.VideoRepository,
	profileRepo persistent.ProfileRepository,
	historyRepo persistent.ViewHistoryRepository,
	purchaseRepo persistent.PurchaseRepository,
	logger *logger.Logger,
) InteractionUseCase {
	return &interactionUseCase{
		interactionRepo: interactionRepo,
		videoRepo:       videoRepo,
		profileRepo:     profileRepo,
		historyRepo:     historyRepo,
		purchaseRepo:    purchaseRepo,
		logger:          logger,
	}
}

// ToggleFavorite flips the favorite flag and returns the new state.
func (uc *interactionUseCase) ToggleFavorite(ctx context.Context, userID, videoID string) (bool, error) {
	if userID == "" {
		return false, entity.ErrUnauthenticated
	}
	if err := uc.requirePublishedVideo(ctx, videoID); err != nil {
		return false, err
	}

	favorite, err := uc.interactionRepo.IsFavorite(ctx, userID, videoID)
	if err != nil {
		return false, err
	}
	if favorite {
		if err := uc.interactionRepo.RemoveFavorite(ctx, userID, videoID); err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}
	if err := uc.interactionRepo.AddFavorite(ctx, userID, videoID); err != nil {
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}
	return true, nil
}

func (uc *interactionUseCase) ListFavorites(ctx context.Context, userID string, limit, offset int) ([]*entity.Favorite, error) {
	if userID == "" {
		return nil, entity.ErrUnauthenticated
	}
	f := normalizeFilter(entity.ContentFilter{Limit: limit, Offset: offset})
	return uc.interactionRepo.ListFavorites(ctx, userID, f.Limit, f.Offset)
}

func (uc *interactionUseCase) ListComments(ctx context.Context, videoID string, limit, offset int) ([]*entity.Comment, error) {
	if err := uc.requirePublishedVideo(ctx, videoID); err != nil {
		return nil, err
	}
	f := normalizeFilter(entity.ContentFilter{Limit: limit, Offset: offset})
	return uc.interactionRepo.ListComments(ctx, videoID, f.Limit, f.Offset)
}

func (uc *interactionUseCase) CreateComment(ctx context.Context, userID, videoID, body string) (*entity.Comment, error) {
	if userID == "" {
		return nil, entity.ErrUnauthenticated
	}
	body = strings.TrimSpace(body)
	if body == "" || utf8.RuneCountInString(body) > maxCommentLength {
		return nil, fmt.Errorf("comment must be 1 to %d characters: %w", maxCommentLength, entity.ErrInvalidInput)
	}
	if err := uc.requirePublishedVideo(ctx, videoID); err != nil {
		return nil, err
	}

	comment := &entity.Comment{VideoID: videoID, UserID: userID, Body: body}
	if err := uc.interactionRepo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

// DeleteComment allows the author or an admin.
func (uc *interactionUseCase) DeleteComment(ctx context.Context, userID, commentID string) error {
	if userID == "" {
		return entity.ErrUnauthenticated
	}
	comment, err := uc.interactionRepo.GetComment(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.UserID != userID {
		role, err := uc.profileRepo.GetRole(ctx, userID)
		if err != nil && !errors.Is(err, entity.ErrNotFound) {
			return err
		}
		if role != string(entity.RoleAdmin) {
			return entity.ErrForbidden
		}
	}
	if err := uc.interactionRepo.DeleteComment(ctx, commentID); err != nil {
		return err
	}
	uc.logger.Info("Comment %s deleted by %s", commentID, userID)
	return nil
}

func (uc *interactionUseCase) GetProfile(ctx context.Context, userID string) (*entity.Profile, error) {
	if userID == "" {
		return nil, entity.ErrUnauthenticated
	}
	return uc.profileRepo.GetByID(ctx, userID)
}

func (uc *interactionUseCase) ListHistory(ctx context.Context, userID string, limit, offset int) ([]*entity.HistoryEntry, error) {
	if userID == "" {
		return nil, entity.ErrUnauthenticated
	}
	f := normalizeFilter(entity.ContentFilter{Limit: limit, Offset: offset})
	return uc.historyRepo.ListByUser(ctx, userID, f.Limit, f.Offset)
}

func (uc *interactionUseCase) ListPurchases(ctx context.Context, userID string) ([]*entity.Purchase, error) {
	if userID == "" {
		return nil, entity.ErrUnauthenticated
	}
	return uc.purchaseRepo.ListByUser(ctx, userID)
}

func (uc *interactionUseCase) requirePublishedVideo(ctx context.Context, videoID string) error {
	video, err := uc.videoRepo.GetByID(ctx, videoID)
	if err != nil {
		return err
	}
	if !video.IsPublished {
		return fmt.Errorf("video %s: %w", videoID, entity.ErrNotFound)
	}
	return nil
}
