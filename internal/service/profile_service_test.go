package service

import (
	"context"
	"errors"
	"testing"

	"github.com/andomorphia/devconnector/internal/models"
	"github.com/andomorphia/devconnector/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByUserIDFn      func(context.Context, uint) (*models.Profile, error)
	getByHandleFn      func(context.Context, string) (*models.Profile, error)
	getAllFn           func(context.Context) ([]*models.Profile, error)
	handleTakenFn      func(context.Context, string) (bool, error)
	createFn           func(context.Context, *models.Profile) error
	updateFn           func(context.Context, *models.Profile) error
	deleteByUserIDFn   func(context.Context, uint) error
	addExperienceFn    func(context.Context, *models.Experience) error
	removeExperienceFn func(context.Context, uint, uint) error
	addEducationFn     func(context.Context, *models.Education) error
	removeEducationFn  func(context.Context, uint, uint) error
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) GetByHandle(ctx context.Context, handle string) (*models.Profile, error) {
	return s.getByHandleFn(ctx, handle)
}
func (s *profileRepoStub) GetAll(ctx context.Context) ([]*models.Profile, error) {
	return s.getAllFn(ctx)
}
func (s *profileRepoStub) HandleTaken(ctx context.Context, handle string) (bool, error) {
	return s.handleTakenFn(ctx, handle)
}
func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) DeleteByUserID(ctx context.Context, userID uint) error {
	return s.deleteByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) AddExperience(ctx context.Context, exp *models.Experience) error {
	return s.addExperienceFn(ctx, exp)
}
func (s *profileRepoStub) RemoveExperience(ctx context.Context, profileID, expID uint) error {
	return s.removeExperienceFn(ctx, profileID, expID)
}
func (s *profileRepoStub) AddEducation(ctx context.Context, edu *models.Education) error {
	return s.addEducationFn(ctx, edu)
}
func (s *profileRepoStub) RemoveEducation(ctx context.Context, profileID, eduID uint) error {
	return s.removeEducationFn(ctx, profileID, eduID)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByUserIDFn:      func(_ context.Context, _ uint) (*models.Profile, error) { return &models.Profile{}, nil },
		getByHandleFn:      func(_ context.Context, _ string) (*models.Profile, error) { return &models.Profile{}, nil },
		getAllFn:           func(_ context.Context) ([]*models.Profile, error) { return nil, nil },
		handleTakenFn:      func(_ context.Context, _ string) (bool, error) { return false, nil },
		createFn:           func(_ context.Context, _ *models.Profile) error { return nil },
		updateFn:           func(_ context.Context, _ *models.Profile) error { return nil },
		deleteByUserIDFn:   func(_ context.Context, _ uint) error { return nil },
		addExperienceFn:    func(_ context.Context, _ *models.Experience) error { return nil },
		removeExperienceFn: func(_ context.Context, _, _ uint) error { return nil },
		addEducationFn:     func(_ context.Context, _ *models.Education) error { return nil },
		removeEducationFn:  func(_ context.Context, _, _ uint) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
	deleteFn     func(context.Context, uint) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn:    func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:     func(_ context.Context, _ uint) error { return nil },
	}
}

func TestSplitSkills(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"plain list", "Go,SQL,Docker", []string{"Go", "SQL", "Docker"}},
		{"trims whitespace", " Go , SQL ,  Docker", []string{"Go", "SQL", "Docker"}},
		{"drops empty tokens", "Go,,SQL,", []string{"Go", "SQL"}},
		{"single token", "Go", []string{"Go"}},
		{"preserves order", "c, b, a", []string{"c", "b", "a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitSkills(tt.input))
		})
	}
}

func TestGetOwn_MissingProfile(t *testing.T) {
	repo := noopProfileRepo()
	repo.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewProfileService(repo, noopUserRepo())

	_, err := svc.GetOwn(context.Background(), 1)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeNotFound, appErr.Code)
	assert.Equal(t, "noProfile", appErr.Key)
}

func TestGetAll_EmptyStoreYieldsEmptyList(t *testing.T) {
	svc := NewProfileService(noopProfileRepo(), noopUserRepo())

	profiles, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	require.NotNil(t, profiles)
	assert.Empty(t, profiles)
}

func TestUpsert_CreatesWithSplitSkills(t *testing.T) {
	repo := noopProfileRepo()
	var created *models.Profile
	repo.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) {
		if created == nil {
			return nil, gorm.ErrRecordNotFound
		}
		return created, nil
	}
	repo.createFn = func(_ context.Context, p *models.Profile) error {
		created = p
		return nil
	}
	svc := NewProfileService(repo, noopUserRepo())

	profile, err := svc.Upsert(context.Background(), 1, validation.ProfileInput{
		Handle: "johndoe",
		Status: "Developer",
		Skills: " Go , SQL,Docker ",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "SQL", "Docker"}, profile.Skills)
	assert.Equal(t, "johndoe", profile.Handle)
}

func TestUpsert_TakenHandleConflictsWithoutCreating(t *testing.T) {
	repo := noopProfileRepo()
	repo.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) {
		return nil, gorm.ErrRecordNotFound
	}
	repo.handleTakenFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
	createCalled := false
	repo.createFn = func(_ context.Context, _ *models.Profile) error {
		createCalled = true
		return nil
	}
	svc := NewProfileService(repo, noopUserRepo())

	_, err := svc.Upsert(context.Background(), 1, validation.ProfileInput{
		Handle: "taken", Status: "Developer", Skills: "Go",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.Equal(t, "handle", appErr.Key)
	assert.False(t, createCalled)
}

func TestUpsert_UpdateOverwritesFields(t *testing.T) {
	repo := noopProfileRepo()
	existing := &models.Profile{ID: 3, UserID: 1, Handle: "old", Status: "Student", Skills: []string{"PHP"}}
	repo.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) { return existing, nil }
	var saved *models.Profile
	repo.updateFn = func(_ context.Context, p *models.Profile) error {
		saved = p
		return nil
	}
	svc := NewProfileService(repo, noopUserRepo())

	_, err := svc.Upsert(context.Background(), 1, validation.ProfileInput{
		Handle: "newhandle", Status: "Developer", Skills: "Go,SQL",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "newhandle", saved.Handle)
	assert.Equal(t, "Developer", saved.Status)
	assert.Equal(t, []string{"Go", "SQL"}, saved.Skills)
	assert.Equal(t, uint(3), saved.ID)
}

func TestUpsert_UpdateRetainsOmittedOptionalFields(t *testing.T) {
	repo := noopProfileRepo()
	existing := &models.Profile{
		ID:             3,
		UserID:         1,
		Handle:         "johndoe",
		Status:         "Developer",
		Skills:         []string{"Go"},
		Company:        "Acme",
		Bio:            "hi there",
		GithubUsername: "johndoe",
		Social:         models.SocialLinks{Twitter: "https://twitter.com/johndoe"},
	}
	repo.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) { return existing, nil }
	var saved *models.Profile
	repo.updateFn = func(_ context.Context, p *models.Profile) error {
		saved = p
		return nil
	}
	svc := NewProfileService(repo, noopUserRepo())

	_, err := svc.Upsert(context.Background(), 1, validation.ProfileInput{
		Handle: "johndoe", Status: "Senior Developer", Skills: "Go,SQL",
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Senior Developer", saved.Status)
	assert.Equal(t, "Acme", saved.Company)
	assert.Equal(t, "hi there", saved.Bio)
	assert.Equal(t, "johndoe", saved.GithubUsername)
	assert.Equal(t, "https://twitter.com/johndoe", saved.Social.Twitter)

	// A submitted value still overwrites.
	_, err = svc.Upsert(context.Background(), 1, validation.ProfileInput{
		Handle: "johndoe", Status: "Senior Developer", Skills: "Go,SQL",
		Company: "Globex",
	})
	require.NoError(t, err)
	assert.Equal(t, "Globex", saved.Company)
	assert.Equal(t, "hi there", saved.Bio)
}

func TestAddExperience_RequiresProfile(t *testing.T) {
	repo := noopProfileRepo()
	repo.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) {
		return nil, gorm.ErrRecordNotFound
	}
	svc := NewProfileService(repo, noopUserRepo())

	_, err := svc.AddExperience(context.Background(), 1, validation.ExperienceInput{
		Title: "Engineer", Company: "Acme", From: "2020-01-01",
	})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "noProfile", appErr.Key)
}

func TestAddExperience_BindsToProfile(t *testing.T) {
	repo := noopProfileRepo()
	repo.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) {
		return &models.Profile{ID: 3, UserID: 1, Handle: "johndoe"}, nil
	}
	var added *models.Experience
	repo.addExperienceFn = func(_ context.Context, exp *models.Experience) error {
		added = exp
		return nil
	}
	svc := NewProfileService(repo, noopUserRepo())

	_, err := svc.AddExperience(context.Background(), 1, validation.ExperienceInput{
		Title: "Engineer", Company: "Acme", From: "2020-01-01",
	})
	require.NoError(t, err)
	require.NotNil(t, added)
	assert.Equal(t, uint(3), added.ProfileID)
	assert.Equal(t, "Engineer", added.Title)
}

func TestRemoveExperience_AbsentIDIsNoOp(t *testing.T) {
	repo := noopProfileRepo()
	repo.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) {
		return &models.Profile{ID: 3, UserID: 1, Handle: "johndoe"}, nil
	}
	// Deleting a row that does not exist is not an error at the repo layer.
	svc := NewProfileService(repo, noopUserRepo())

	profile, err := svc.RemoveExperience(context.Background(), 1, 9999)
	require.NoError(t, err)
	assert.NotNil(t, profile)
}

func TestRemoveEducation_AbsentIDIsNoOp(t *testing.T) {
	repo := noopProfileRepo()
	repo.getByUserIDFn = func(_ context.Context, _ uint) (*models.Profile, error) {
		return &models.Profile{ID: 3, UserID: 1, Handle: "johndoe"}, nil
	}
	svc := NewProfileService(repo, noopUserRepo())

	profile, err := svc.RemoveEducation(context.Background(), 1, 9999)
	require.NoError(t, err)
	assert.NotNil(t, profile)
}

func TestDeleteAccount(t *testing.T) {
	t.Run("deletes profile then user", func(t *testing.T) {
		repo := noopProfileRepo()
		users := noopUserRepo()
		var order []string
		repo.deleteByUserIDFn = func(_ context.Context, _ uint) error {
			order = append(order, "profile")
			return nil
		}
		users.deleteFn = func(_ context.Context, _ uint) error {
			order = append(order, "user")
			return nil
		}
		svc := NewProfileService(repo, users)

		require.NoError(t, svc.DeleteAccount(context.Background(), 1))
		assert.Equal(t, []string{"profile", "user"}, order)
	})

	t.Run("tolerates a user without a profile", func(t *testing.T) {
		repo := noopProfileRepo()
		repo.deleteByUserIDFn = func(_ context.Context, _ uint) error {
			return gorm.ErrRecordNotFound
		}
		svc := NewProfileService(repo, noopUserRepo())

		assert.NoError(t, svc.DeleteAccount(context.Background(), 1))
	})

	t.Run("surfaces user delete failures", func(t *testing.T) {
		users := noopUserRepo()
		users.deleteFn = func(_ context.Context, _ uint) error {
			return errors.New("connection refused")
		}
		svc := NewProfileService(noopProfileRepo(), users)

		err := svc.DeleteAccount(context.Background(), 1)
		assert.Equal(t, models.CodeInternal, appErrCode(t, err))
	})
}
