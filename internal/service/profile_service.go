// Package service implements the profile and post domain rules on top of the
// repository layer.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/andomorphia/devconnector/internal/cache"
	"github.com/andomorphia/devconnector/internal/models"
	"github.com/andomorphia/devconnector/internal/observability"
	"github.com/andomorphia/devconnector/internal/repository"
	"github.com/andomorphia/devconnector/internal/validation"

	"gorm.io/gorm"
)

// ProfileService owns the rules for creating and updating profiles and for
// mutating their embedded experience and education lists.
type ProfileService struct {
	profileRepo repository.ProfileRepository
	userRepo    repository.UserRepository
}

// NewProfileService returns a ProfileService backed by the given repositories.
func NewProfileService(profileRepo repository.ProfileRepository, userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo, userRepo: userRepo}
}

func noProfileErr() *models.AppError {
	return models.NewNotFoundError("noProfile", "There is no profile for this user")
}

// translateProfileErr keeps missing-record and infrastructure failures
// distinct internally; the handler layer collapses them on the wire.
func translateProfileErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return noProfileErr()
	}
	return models.NewInternalError(err)
}

// GetOwn returns the caller's profile joined with the user's name and avatar.
func (s *ProfileService) GetOwn(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, translateProfileErr(err)
	}
	return profile, nil
}

// GetAll returns every profile. An empty store yields an empty list, not an
// error.
func (s *ProfileService) GetAll(ctx context.Context) ([]*models.Profile, error) {
	var profiles []*models.Profile
	err := cache.Aside(ctx, cache.ProfilesListKey(), &profiles, cache.ListTTL, func() error {
		fetched, fetchErr := s.profileRepo.GetAll(ctx)
		if fetchErr != nil {
			return fetchErr
		}
		profiles = fetched
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if profiles == nil {
		profiles = []*models.Profile{}
	}
	return profiles, nil
}

// GetByHandle returns the profile with the given public handle.
func (s *ProfileService) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	var profile models.Profile
	err := cache.Aside(ctx, cache.ProfileHandleKey(handle), &profile, cache.ProfileTTL, func() error {
		fetched, fetchErr := s.profileRepo.GetByHandle(ctx, handle)
		if fetchErr != nil {
			return fetchErr
		}
		profile = *fetched
		return nil
	})
	if err != nil {
		return nil, translateProfileErr(err)
	}
	return &profile, nil
}

// GetByUserID returns the profile owned by the given user.
func (s *ProfileService) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, translateProfileErr(err)
	}
	return profile, nil
}

// SplitSkills turns the comma-separated skills string into an ordered list of
// trimmed tokens, dropping empty entries.
func SplitSkills(skills string) []string {
	parts := strings.Split(skills, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// setIfProvided overwrites dst only when the submitted value is non-empty.
// An omitted optional field therefore keeps its stored value; clearing a
// field is not expressible through this endpoint.
func setIfProvided(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

// Upsert creates the caller's profile or merges the submitted fields into the
// existing one. On create, a taken handle fails with a conflict; on update the
// handle is overwritten without a uniqueness re-check, preserving the source
// behavior (the unique index still rejects true duplicates).
func (s *ProfileService) Upsert(ctx context.Context, userID uint, in validation.ProfileInput) (*models.Profile, error) {
	fields := models.Profile{
		UserID:         userID,
		Handle:         in.Handle,
		Company:        in.Company,
		Website:        in.Website,
		Location:       in.Location,
		Status:         in.Status,
		Skills:         SplitSkills(in.Skills),
		Bio:            in.Bio,
		GithubUsername: in.GithubUsername,
		Social: models.SocialLinks{
			Youtube:   in.Youtube,
			Twitter:   in.Twitter,
			Facebook:  in.Facebook,
			Linkedin:  in.Linkedin,
			Instagram: in.Instagram,
		},
	}

	existing, err := s.profileRepo.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		// Required keys always overwrite; optional keys are merged only when
		// submitted, so omitting company or bio does not erase the stored value.
		oldHandle := existing.Handle
		existing.Handle = fields.Handle
		existing.Status = fields.Status
		existing.Skills = fields.Skills
		setIfProvided(&existing.Company, fields.Company)
		setIfProvided(&existing.Website, fields.Website)
		setIfProvided(&existing.Location, fields.Location)
		setIfProvided(&existing.Bio, fields.Bio)
		setIfProvided(&existing.GithubUsername, fields.GithubUsername)
		setIfProvided(&existing.Social.Youtube, fields.Social.Youtube)
		setIfProvided(&existing.Social.Twitter, fields.Social.Twitter)
		setIfProvided(&existing.Social.Facebook, fields.Social.Facebook)
		setIfProvided(&existing.Social.Linkedin, fields.Social.Linkedin)
		setIfProvided(&existing.Social.Instagram, fields.Social.Instagram)
		if err := s.profileRepo.Update(ctx, existing); err != nil {
			if repository.IsUniqueConstraintError(err) {
				return nil, models.NewConflictError("handle", "That handle already exists")
			}
			return nil, models.NewInternalError(err)
		}
		cache.InvalidateProfile(ctx, existing.Handle)
		if oldHandle != existing.Handle {
			cache.InvalidateProfile(ctx, oldHandle)
		}
		observability.ProfileMutations.WithLabelValues("upsert").Inc()
		return s.GetOwn(ctx, userID)

	case errors.Is(err, gorm.ErrRecordNotFound):
		taken, err := s.profileRepo.HandleTaken(ctx, fields.Handle)
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		if taken {
			return nil, models.NewConflictError("handle", "That handle already exists")
		}
		if err := s.profileRepo.Create(ctx, &fields); err != nil {
			if repository.IsUniqueConstraintError(err) {
				return nil, models.NewConflictError("handle", "That handle already exists")
			}
			return nil, models.NewInternalError(err)
		}
		cache.InvalidateProfile(ctx, fields.Handle)
		observability.ProfileMutations.WithLabelValues("upsert").Inc()
		return s.GetOwn(ctx, userID)

	default:
		return nil, models.NewInternalError(err)
	}
}

// AddExperience prepends a new experience entry to the caller's profile.
func (s *ProfileService) AddExperience(ctx context.Context, userID uint, in validation.ExperienceInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, translateProfileErr(err)
	}

	exp := models.Experience{
		ProfileID:   profile.ID,
		Title:       in.Title,
		Company:     in.Company,
		Location:    in.Location,
		From:        in.From,
		To:          in.To,
		Current:     in.Current,
		Description: in.Description,
	}
	if err := s.profileRepo.AddExperience(ctx, &exp); err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.Handle)
	observability.ProfileMutations.WithLabelValues("experience").Inc()

	return s.GetOwn(ctx, userID)
}

// RemoveExperience removes the entry with the given id from the caller's
// profile. A missing id is a no-op and still succeeds.
func (s *ProfileService) RemoveExperience(ctx context.Context, userID, expID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, translateProfileErr(err)
	}

	if err := s.profileRepo.RemoveExperience(ctx, profile.ID, expID); err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.Handle)
	observability.ProfileMutations.WithLabelValues("experience").Inc()

	return s.GetOwn(ctx, userID)
}

// AddEducation prepends a new education entry to the caller's profile.
func (s *ProfileService) AddEducation(ctx context.Context, userID uint, in validation.EducationInput) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, translateProfileErr(err)
	}

	edu := models.Education{
		ProfileID:    profile.ID,
		School:       in.School,
		Degree:       in.Degree,
		FieldOfStudy: in.FieldOfStudy,
		From:         in.From,
		To:           in.To,
		Current:      in.Current,
		Description:  in.Description,
	}
	if err := s.profileRepo.AddEducation(ctx, &edu); err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.Handle)
	observability.ProfileMutations.WithLabelValues("education").Inc()

	return s.GetOwn(ctx, userID)
}

// RemoveEducation removes the entry with the given id, silently doing nothing
// when the id is absent.
func (s *ProfileService) RemoveEducation(ctx context.Context, userID, eduID uint) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, translateProfileErr(err)
	}

	if err := s.profileRepo.RemoveEducation(ctx, profile.ID, eduID); err != nil {
		return nil, models.NewInternalError(err)
	}
	cache.InvalidateProfile(ctx, profile.Handle)
	observability.ProfileMutations.WithLabelValues("education").Inc()

	return s.GetOwn(ctx, userID)
}

// DeleteAccount deletes the caller's profile and then the user record. The two
// deletes are independent; no transactional guarantee is promised.
func (s *ProfileService) DeleteAccount(ctx context.Context, userID uint) error {
	var handle string
	if profile, err := s.profileRepo.GetByUserID(ctx, userID); err == nil {
		handle = profile.Handle
	}

	if err := s.profileRepo.DeleteByUserID(ctx, userID); err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewInternalError(err)
	}
	if handle != "" {
		cache.InvalidateProfile(ctx, handle)
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		return models.NewInternalError(err)
	}
	observability.ProfileMutations.WithLabelValues("delete").Inc()
	return nil
}
