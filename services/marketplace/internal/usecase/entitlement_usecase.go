package usecase

import (
	"context"
	"errors"
	"fmt"

	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/repo/persistent"
)

// EntitlementUseCase answers read-only access questions. Lookup failures are returned as
// errors; callers decide whether to degrade them to a denial.
type EntitlementUseCase interface {
	CanWatchVideo(ctx context.Context, viewer *entity.Viewer, video *entity.Video) (bool, error)
	CanViewPrompt(ctx context.Context, viewer *entity.Viewer, prompt *entity.Prompt) (bool, error)
	CanAccessCourse(ctx context.Context, viewer *entity.Viewer, course *entity.Course) (bool, error)
}

type entitlementUseCase struct {
	purchaseRepo persistent.PurchaseRepository
	profileRepo  persistent.ProfileRepository
}

func NewEntitlementUseCase(purchaseRepo persistent.PurchaseRepository, profileRepo persistent.ProfileRepository) EntitlementUseCase {
	return &entitlementUseCase{
		purchaseRepo: purchaseRepo,
		profileRepo:  profileRepo,
	}
}

func (uc *entitlementUseCase) CanWatchVideo(ctx context.Context, viewer *entity.Viewer, video *entity.Video) (bool, error) {
	if video.IsFree || video.Price == 0 {
		return true, nil
	}
	if viewer.Anonymous() {
		return false, nil
	}

	admin, err := uc.isAdmin(ctx, viewer.UserID)
	if err != nil {
		return false, err
	}
	if admin {
		return true, nil
	}

	ok, err := uc.purchaseRepo.HasActiveVideoPurchase(ctx, video.ID, viewer.UserID)
	if err != nil {
		return false, fmt.Errorf("check video purchase: %w", err)
	}
	if ok {
		return true, nil
	}

	ok, err = uc.purchaseRepo.HasActiveCoursePurchaseForVideo(ctx, video.ID, viewer.UserID)
	if err != nil {
		return false, fmt.Errorf("check course purchase: %w", err)
	}
	return ok, nil
}

// CanViewPrompt has no price or role shortcut. Free prompts are unlocked by a zero-price claim.
func (uc *entitlementUseCase) CanViewPrompt(ctx context.Context, viewer *entity.Viewer, prompt *entity.Prompt) (bool, error) {
	if viewer.Anonymous() {
		return false, nil
	}
	ok, err := uc.purchaseRepo.HasActivePromptPurchase(ctx, prompt.ID, viewer.UserID)
	if err != nil {
		return false, fmt.Errorf("check prompt purchase: %w", err)
	}
	return ok, nil
}

func (uc *entitlementUseCase) CanAccessCourse(ctx context.Context, viewer *entity.Viewer, course *entity.Course) (bool, error) {
	if course.Price == 0 {
		return true, nil
	}
	if viewer.Anonymous() {
		return false, nil
	}

	admin, err := uc.isAdmin(ctx, viewer.UserID)
	if err != nil {
		return false, err
	}
	if admin {
		return true, nil
	}

	ok, err := uc.purchaseRepo.HasActiveCoursePurchase(ctx, course.ID, viewer.UserID)
	if err != nil {
		return false, fmt.Errorf("check course purchase: %w", err)
	}
	return ok, nil
}

// isAdmin treats a missing profile as a regular user.
func (uc *entitlementUseCase) isAdmin(ctx context.Context, userID string) (bool, error) {
	role, err := uc.profileRepo.GetRole(ctx, userID)
	if errors.Is(err, entity.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load profile role: %w", err)
	}
	return role == string(entity.RoleAdmin), nil
}
