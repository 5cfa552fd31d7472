package repository

import (
	"context"
	"errors"

	"devhub/internal/cache"
	"devhub/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository defines persistence operations for profiles and their
// experience and education entries.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	GetByUserIDCached(ctx context.Context, userID uint) (*models.Profile, error)
	List(ctx context.Context, limit, offset int) ([]*models.Profile, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	AddExperience(ctx context.Context, profile *models.Profile, exp *models.Experience) error
	DeleteExperience(ctx context.Context, profile *models.Profile, expID uint) error
	AddEducation(ctx context.Context, profile *models.Profile, edu *models.Education) error
	DeleteEducation(ctx context.Context, profile *models.Profile, eduID uint) error
	DeleteAccount(ctx context.Context, userID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new ProfileRepository.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// withDetails preloads the owner's public fields and the entries newest first.
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "avatar")
		}).
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := withDetails(r.db.WithContext(ctx)).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, notFoundOr(err, "Profile not found")
	}
	return &profile, nil
}

// GetByUserIDCached serves public reads through the Redis cache.
func (r *profileRepository) GetByUserIDCached(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := cache.Aside(ctx, cache.ProfileByUserKey(userID), &profile, cache.ProfileTTL, func() error {
		found, err := r.GetByUserID(ctx, userID)
		if err != nil {
			return err
		}
		profile = *found
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) List(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := withDetails(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&profiles).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return profiles, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(profile).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewConflictError("Profile already exists")
		}
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(profile).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) AddExperience(ctx context.Context, profile *models.Profile, exp *models.Experience) error {
	exp.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(exp).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

// DeleteExperience removes the entry only when it belongs to profile.
func (r *profileRepository) DeleteExperience(ctx context.Context, profile *models.Profile, expID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", expID, profile.ID).
		Delete(&models.Experience{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Experience not found")
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

func (r *profileRepository) AddEducation(ctx context.Context, profile *models.Profile, edu *models.Education) error {
	edu.ProfileID = profile.ID
	if err := r.db.WithContext(ctx).Create(edu).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

// DeleteEducation removes the entry only when it belongs to profile.
func (r *profileRepository) DeleteEducation(ctx context.Context, profile *models.Profile, eduID uint) error {
	res := r.db.WithContext(ctx).
		Where("id = ? AND profile_id = ?", eduID, profile.ID).
		Delete(&models.Education{})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Education not found")
	}
	cache.InvalidateProfile(ctx, profile.UserID)
	return nil
}

// DeleteAccount removes the user's posts (with their likes and comments), the
// profile with its entries, and the user in a single transaction. Likes and
// comments the user left on other posts are kept.
func (r *profileRepository) DeleteAccount(ctx context.Context, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, userID).Error; err != nil {
			return err
		}

		ownPosts := tx.Table("posts").Select("id").Where("user_id = ?", userID)
		if err := tx.Where("post_id IN (?)", ownPosts).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN (?)", ownPosts).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Post{}).Error; err != nil {
			return err
		}

		ownProfile := tx.Table("profiles").Select("id").Where("user_id = ?", userID)
		if err := tx.Where("profile_id IN (?)", ownProfile).Delete(&models.Experience{}).Error; err != nil {
			return err
		}
		if err := tx.Where("profile_id IN (?)", ownProfile).Delete(&models.Education{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Profile{}).Error; err != nil {
			return err
		}

		return tx.Delete(&models.User{}, userID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User not found")
		}
		return models.NewInternalError(err)
	}

	cache.InvalidateProfile(ctx, userID)
	return nil
}
