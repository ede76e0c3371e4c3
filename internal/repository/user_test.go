package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/andomorphia/devconnector/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestUserRepository_GetByEmail_Mocked(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	query := regexp.QuoteMeta(`SELECT * FROM "users" WHERE email = $1 AND "users"."deleted_at" IS NULL ORDER BY "users"."id" LIMIT $2`)

	t.Run("found", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "email"}).
			AddRow(1, "John Doe", "john@example.com")
		mock.ExpectQuery(query).WithArgs("john@example.com", 1).WillReturnRows(rows)

		user, err := repo.GetByEmail(ctx, "john@example.com")
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "John Doe", user.Name)
	})

	t.Run("not found is nil without error", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("nobody@example.com", 1).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		user, err := repo.GetByEmail(ctx, "nobody@example.com")
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("infrastructure error surfaces", func(t *testing.T) {
		mock.ExpectQuery(query).WithArgs("john@example.com", 1).
			WillReturnError(errors.New("connection refused"))

		_, err := repo.GetByEmail(ctx, "john@example.com")
		assert.Error(t, err)
	})
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "John Doe", Email: "john@example.com", Password: "hashed", Avatar: "http://a/b.png"}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "john@example.com", got.Email)
}

func TestUserRepository_DuplicateEmailIsConflict(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &models.User{Name: "John", Email: "john@example.com", Password: "x"}))

	err := repo.Create(ctx, &models.User{Name: "Jane", Email: "john@example.com", Password: "y"})
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, models.CodeConflict, appErr.Code)
	assert.Equal(t, "email", appErr.Key)
}

func TestUserRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{Name: "John", Email: "john@example.com", Password: "x"}
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestIsUniqueConstraintError(t *testing.T) {
	assert.False(t, IsUniqueConstraintError(nil))
	assert.False(t, IsUniqueConstraintError(errors.New("connection refused")))
	assert.True(t, IsUniqueConstraintError(errors.New(`duplicate key value violates unique constraint "users_email_key"`)))
	assert.True(t, IsUniqueConstraintError(errors.New("UNIQUE constraint failed: users.email")))
	assert.True(t, IsUniqueConstraintError(errors.New("ERROR: duplicate key (SQLSTATE 23505)")))
}
