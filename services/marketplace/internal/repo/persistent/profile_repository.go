package persistent

import (
	"context"
	"errors"
	"fmt"

	"lesson-market/services/marketplace/internal/entity"
	"lesson-market/services/marketplace/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetRole(ctx context.Context, id string) (string, error)
	Upsert(ctx context.Context, profile *entity.Profile) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*entity.Profile, error) {
	var profileModel model.ProfileModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&profileModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("profile %s: %w", id, entity.ErrNotFound)
		}
		return nil, err
	}
	return ToProfileEntity(&profileModel), nil
}

// GetRole reads the role from the profile row rather than the token.
func (r *profileRepository) GetRole(ctx context.Context, id string) (string, error) {
	profile, err := r.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	return string(profile.Role), nil
}

func (r *profileRepository) Upsert(ctx context.Context, profile *entity.Profile) error {
	if profile.Role == "" {
		profile.Role = entity.RoleUser
	}
	profileModel := ToProfileModel(profile)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"role", "name", "email", "avatar_url", "updated_at"}),
	}).Create(profileModel).Error
}
