// Package repository implements the data access layer for the application.
package repository

import (
	"context"

	"github.com/andomorphia/devconnector/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PostRepository defines persistence operations for posts and their embedded
// like and comment lists.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	Delete(ctx context.Context, id uint) error
	IsLiked(ctx context.Context, userID, postID uint) (bool, error)
	Like(ctx context.Context, userID, postID uint) error
	Unlike(ctx context.Context, userID, postID uint) error
	AddComment(ctx context.Context, comment *models.Comment) error
	GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error)
	DeleteComment(ctx context.Context, commentID uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository returns a new PostRepository implementation.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// normalizePostLists replaces nil association slices so an empty likes or
// comments list serializes as [] rather than null.
func normalizePostLists(post *models.Post) {
	if post.Likes == nil {
		post.Likes = []models.Like{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
}

// withDetails preloads likes and comments newest-first, matching the
// prepend semantics of the mutation operations.
func (r *postRepository) withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Likes", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		}).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("id DESC")
		})
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.withDetails(r.db.WithContext(ctx)).First(&post, id).Error
	if err != nil {
		return nil, err
	}
	normalizePostLists(&post)
	return &post, nil
}

func (r *postRepository) List(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.withDetails(r.db.WithContext(ctx)).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		normalizePostLists(post)
	}
	return posts, nil
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

func (r *postRepository) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Like inserts a like row; the (post_id, user_id) unique index plus
// ON CONFLICT DO NOTHING keeps the set free of duplicates under races.
func (r *postRepository) Like(ctx context.Context, userID, postID uint) error {
	like := models.Like{PostID: postID, UserID: userID}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&like).Error
}

func (r *postRepository) Unlike(ctx context.Context, userID, postID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Like{}).Error
}

func (r *postRepository) AddComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *postRepository) GetComment(ctx context.Context, postID, commentID uint) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND id = ?", postID, commentID).
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *postRepository) DeleteComment(ctx context.Context, commentID uint) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, commentID).Error
}
