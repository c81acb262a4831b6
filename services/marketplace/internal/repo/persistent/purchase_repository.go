package persistent

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/model"

	"gorm.io/gorm"
)

type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	HasActiveVideoPurchase(ctx context.Context, videoID, userID string) (bool, error)
	HasActiveCoursePurchaseForVideo(ctx context.Context, videoID, userID string) (bool, error)
	HasActiveCoursePurchase(ctx context.Context, courseID, userID string) (bool, error)
	HasActivePromptPurchase(ctx context.Context, promptID, userID string) (bool, error)
	ListRecords(ctx context.Context, kind entity.ContentKind, since *time.Time) ([]entity.PurchaseRecord, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Purchase, error)
	Titles(ctx context.Context, kind entity.ContentKind, ids []string) (map[string]string, error)
}

type purchaseRepository struct {
	db *gorm.DB
}

func NewPurchaseRepository(db *gorm.DB) PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	if purchase.Status == "" {
		purchase.Status = entity.PurchaseStatusActive
	}
	db := r.db.WithContext(ctx)
	switch purchase.Kind {
	case entity.KindVideo:
		row := &model.VideoPurchaseModel{VideoID: purchase.ContentID, UserID: purchase.UserID, PricePaid: purchase.Amount, Status: string(purchase.Status)}
		if err := db.Create(row).Error; err != nil {
			return err
		}
		purchase.ID, purchase.CreatedAt = row.ID, row.CreatedAt
	case entity.KindCourse:
		row := &model.CoursePurchaseModel{CourseID: purchase.ContentID, UserID: purchase.UserID, PricePaid: purchase.Amount, Status: string(purchase.Status)}
		if err := db.Create(row).Error; err != nil {
			return err
		}
		purchase.ID, purchase.CreatedAt = row.ID, row.CreatedAt
	case entity.KindPrompt:
		row := &model.PromptPurchaseModel{PromptID: purchase.ContentID, UserID: purchase.UserID, Price: purchase.Amount, Status: string(purchase.Status)}
		if err := db.Create(row).Error; err != nil {
			return err
		}
		purchase.ID, purchase.CreatedAt = row.ID, row.CreatedAt
	default:
		return fmt.Errorf("purchase kind %q: %w", purchase.Kind, entity.ErrInvalidInput)
	}
	return nil
}

func (r *purchaseRepository) HasActiveVideoPurchase(ctx context.Context, videoID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.VideoPurchaseModel{}).
		Where("video_id = ? AND user_id = ? AND status = ?", videoID, userID, entity.PurchaseStatusActive).
		Count(&count).Error
	return count > 0, err
}

// HasActiveCoursePurchaseForVideo reports whether the user holds an active purchase of
// any course that contains the video.
func (r *purchaseRepository) HasActiveCoursePurchaseForVideo(ctx context.Context, videoID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CoursePurchaseModel{}).
		Joins("JOIN course_videos ON course_videos.course_id = course_purchases.course_id").
		Where("course_videos.video_id = ? AND course_purchases.user_id = ? AND course_purchases.status = ?",
			videoID, userID, entity.PurchaseStatusActive).
		Count(&count).Error
	return count > 0, err
}

func (r *purchaseRepository) HasActiveCoursePurchase(ctx context.Context, courseID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.CoursePurchaseModel{}).
		Where("course_id = ? AND user_id = ? AND status = ?", courseID, userID, entity.PurchaseStatusActive).
		Count(&count).Error
	return count > 0, err
}

func (r *purchaseRepository) HasActivePromptPurchase(ctx context.Context, promptID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PromptPurchaseModel{}).
		Where("prompt_id = ? AND user_id = ? AND status = ?", promptID, userID, entity.PurchaseStatusActive).
		Count(&count).Error
	return count > 0, err
}

// ListRecords returns every purchase row of a kind regardless of status. A non-nil
// since keeps rows created at or after it.
func (r *purchaseRepository) ListRecords(ctx context.Context, kind entity.ContentKind, since *time.Time) ([]entity.PurchaseRecord, error) {
	query := r.db.WithContext(ctx).Order("created_at ASC")
	if since != nil {
		query = query.Where("created_at >= ?", *since)
	}

	var records []entity.PurchaseRecord
	switch kind {
	case entity.KindVideo:
		var rows []model.VideoPurchaseModel
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			records = append(records, entity.PurchaseRecord{Kind: kind, ContentID: row.VideoID, Amount: row.PricePaid, Status: entity.PurchaseStatus(row.Status), CreatedAt: row.CreatedAt})
		}
	case entity.KindCourse:
		var rows []model.CoursePurchaseModel
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			records = append(records, entity.PurchaseRecord{Kind: kind, ContentID: row.CourseID, Amount: row.PricePaid, Status: entity.PurchaseStatus(row.Status), CreatedAt: row.CreatedAt})
		}
	case entity.KindPrompt:
		var rows []model.PromptPurchaseModel
		if err := query.Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, row := range rows {
			records = append(records, entity.PurchaseRecord{Kind: kind, ContentID: row.PromptID, Amount: row.Price, Status: entity.PurchaseStatus(row.Status), CreatedAt: row.CreatedAt})
		}
	default:
		return nil, fmt.Errorf("purchase kind %q: %w", kind, entity.ErrInvalidInput)
	}
	return records, nil
}

// ListByUser merges the user's purchases of every kind, newest first.
func (r *purchaseRepository) ListByUser(ctx context.Context, userID string) ([]*entity.Purchase, error) {
	db := r.db.WithContext(ctx)
	var purchases []*entity.Purchase

	var videoRows []model.VideoPurchaseModel
	if err := db.Where("user_id = ?", userID).Find(&videoRows).Error; err != nil {
		return nil, err
	}
	for _, row := range videoRows {
		purchases = append(purchases, &entity.Purchase{ID: row.ID, Kind: entity.KindVideo, ContentID: row.VideoID, UserID: row.UserID, Amount: row.PricePaid, Status: entity.PurchaseStatus(row.Status), CreatedAt: row.CreatedAt})
	}

	var courseRows []model.CoursePurchaseModel
	if err := db.Where("user_id = ?", userID).Find(&courseRows).Error; err != nil {
		return nil, err
	}
	for _, row := range courseRows {
		purchases = append(purchases, &entity.Purchase{ID: row.ID, Kind: entity.KindCourse, ContentID: row.CourseID, UserID: row.UserID, Amount: row.PricePaid, Status: entity.PurchaseStatus(row.Status), CreatedAt: row.CreatedAt})
	}

	var promptRows []model.PromptPurchaseModel
	if err := db.Where("user_id = ?", userID).Find(&promptRows).Error; err != nil {
		return nil, err
	}
	for _, row := range promptRows {
		purchases = append(purchases, &entity.Purchase{ID: row.ID, Kind: entity.KindPrompt, ContentID: row.PromptID, UserID: row.UserID, Amount: row.Price, Status: entity.PurchaseStatus(row.Status), CreatedAt: row.CreatedAt})
	}

	sort.SliceStable(purchases, func(i, j int) bool {
		if !purchases[i].CreatedAt.Equal(purchases[j].CreatedAt) {
			return purchases[i].CreatedAt.After(purchases[j].CreatedAt)
		}
		return purchases[i].ID < purchases[j].ID
	})
	return purchases, nil
}

// Titles resolves content ids of one kind to titles. Missing ids are absent from the map.
func (r *purchaseRepository) Titles(ctx context.Context, kind entity.ContentKind, ids []string) (map[string]string, error) {
	out := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var table string
	switch kind {
	case entity.KindVideo:
		table = model.VideoModel{}.TableName()
	case entity.KindCourse:
		table = model.CourseModel{}.TableName()
	case entity.KindPrompt:
		table = model.PromptModel{}.TableName()
	default:
		return nil, fmt.Errorf("content kind %q: %w", kind, entity.ErrInvalidInput)
	}

	var rows []struct {
		ID    string
		Title string
	}
	if err := r.db.WithContext(ctx).Table(table).Select("id", "title").Where("id IN ?", ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.Title
	}
	return out, nil
}
