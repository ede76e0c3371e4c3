// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"github.com/andomorphia/devconnector/internal/models"

	"gorm.io/gorm"
)

// ProfileRepository defines persistence operations for profiles and their
// embedded experience/education lists.
type ProfileRepository interface {
	GetByUserID(ctx context.Context, userID uint) (*models.Profile, error)
	GetByHandle(ctx context.Context, handle string) (*models.Profile, error)
	GetAll(ctx context.Context) ([]*models.Profile, error)
	HandleTaken(ctx context.Context, handle string) (bool, error)
	Create(ctx context.Context, profile *models.Profile) error
	Update(ctx context.Context, profile *models.Profile) error
	DeleteByUserID(ctx context.Context, userID uint) error
	AddExperience(ctx context.Context, exp *models.Experience) error
	RemoveExperience(ctx context.Context, profileID, expID uint) error
	AddEducation(ctx context.Context, edu *models.Education) error
	RemoveEducation(ctx context.Context, profileID, eduID uint) error
}

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository returns a new ProfileRepository implementation.
func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// normalizeProfileLists replaces nil slices so empty skills, experience, and
// education lists serialize as [] rather than null.
func normalizeProfileLists(profile *models.Profile) {
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	if profile.Experience == nil {
		profile.Experience = []models.Experience{}
	}
	if profile.Education == nil {
		profile.Education = []models.Education{}
	}
}

// withDetails preloads the joined user and the embedded lists. Experience and
// education are ordered newest-insert-first, which realizes the prepend
// semantics of the mutation operations.
func (r *profileRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("User").
		Preload("Experience", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		}).
		Preload("Education", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		})
}

func (r *profileRepository) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.withDetails(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	normalizeProfileLists(&profile)
	return &profile, nil
}

func (r *profileRepository) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	var profile models.Profile
	err := r.withDetails(r.db.WithContext(ctx)).
		Where("handle = ?", handle).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	normalizeProfileLists(&profile)
	return &profile, nil
}

func (r *profileRepository) GetAll(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := r.withDetails(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	for _, profile := range profiles {
		normalizeProfileLists(profile)
	}
	return profiles, nil
}

func (r *profileRepository) HandleTaken(ctx context.Context, handle string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("handle = ?", handle).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *profileRepository) Update(ctx context.Context, profile *models.Profile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *profileRepository) DeleteByUserID(ctx context.Context, userID uint) error {
	var profile models.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&profile).Error
}

func (r *profileRepository) AddExperience(ctx context.Context, exp *models.Experience) error {
	return r.db.WithContext(ctx).Create(exp).Error
}

// RemoveExperience deletes the matching entry. Removing an id that does not
// exist on the profile is a no-op, not an error.
func (r *profileRepository) RemoveExperience(ctx context.Context, profileID, expID uint) error {
	return r.db.WithContext(ctx).
		Where("profile_id = ? AND id = ?", profileID, expID).
		Delete(&models.Experience{}).Error
}

func (r *profileRepository) AddEducation(ctx context.Context, edu *models.Education) error {
	return r.db.WithContext(ctx).Create(edu).Error
}

// RemoveEducation deletes the matching entry, silently doing nothing when the
// id is absent.
func (r *profileRepository) RemoveEducation(ctx context.Context, profileID, eduID uint) error {
	return r.db.WithContext(ctx).
		Where("profile_id = ? AND id = ?", profileID, eduID).
		Delete(&models.Education{}).Error
}
