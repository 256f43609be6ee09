package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"devconnector/internal/model"
)

// ProfileRepository defines profile persistence operations. Reads populate
// the owning user.
type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)
	List(ctx context.Context) ([]model.Profile, error)
	Create(ctx context.Context, profile *model.Profile) error
	Save(ctx context.Context, profile *model.Profile) error
	// DeleteAccount removes the user's posts, profile and user row in one
	// transaction and returns the ids of the removed posts.
	DeleteAccount(ctx context.Context, userID string) ([]string, error)
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) withUser(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User", func(tx *gorm.DB) *gorm.DB {
		return tx.Select("id", "name", "avatar")
	})
}

// FindByUserID finds the profile owned by userID.
func (r *profileRepository) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	var profile model.Profile
	if err := r.withUser(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

// List lists every profile.
func (r *profileRepository) List(ctx context.Context) ([]model.Profile, error) {
	profiles := []model.Profile{}
	if err := r.withUser(ctx).Order("date DESC").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

// Create inserts a new profile without touching the owning user.
func (r *profileRepository) Create(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error
}

// Save writes the whole profile back without touching the owning user.
func (r *profileRepository) Save(ctx context.Context, profile *model.Profile) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error
}

// DeleteAccount removes the user's posts, profile and user row in one transaction.
func (r *profileRepository) DeleteAccount(ctx context.Context, userID string) ([]string, error) {
	var postIDs []string
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Post{}).Where("user_id = ?", userID).Pluck("id", &postIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Post{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Profile{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", userID).Delete(&model.User{}).Error
	})
	if err != nil {
		return nil, err
	}
	return postIDs, nil
}
