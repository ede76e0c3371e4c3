package service

import (
	"context"
	"errors"

	"github.com/andomorphia/devconnector/internal/cache"
	"github.com/andomorphia/devconnector/internal/models"
	"github.com/andomorphia/devconnector/internal/observability"
	"github.com/andomorphia/devconnector/internal/repository"

	"gorm.io/gorm"
)

// PostService owns the rules for creating posts and mutating their embedded
// like and comment lists with ownership checks.
type PostService struct {
	postRepo repository.PostRepository
}

// NewPostService returns a PostService backed by the given repository.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

func noPostErr() *models.AppError {
	return models.NewNotFoundError("noPostFound", "No post found with that Id")
}

func translatePostErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return noPostErr()
	}
	return models.NewInternalError(err)
}

// CreatePostInput carries the author identity snapshot and the post body.
type CreatePostInput struct {
	UserID uint
	Name   string
	Avatar string
	Text   string
}

// CreatePost persists a new post snapshotting the caller's current name and
// avatar; later changes to the user do not retroactively change the post.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		UserID: in.UserID,
		Name:   in.Name,
		Avatar: in.Avatar,
		Text:   in.Text,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.PostInteractions.WithLabelValues("create").Inc()
	cache.InvalidatePost(ctx, post.ID)

	return s.GetPost(ctx, post.ID)
}

// ListPosts returns all posts newest-first. An empty store yields an empty
// list, not an error.
func (s *PostService) ListPosts(ctx context.Context) ([]*models.Post, error) {
	var posts []*models.Post
	err := cache.Aside(ctx, cache.PostsListKey(), &posts, cache.ListTTL, func() error {
		fetched, fetchErr := s.postRepo.List(ctx)
		if fetchErr != nil {
			return fetchErr
		}
		posts = fetched
		return nil
	})
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// GetPost returns a single post.
func (s *PostService) GetPost(ctx context.Context, postID uint) (*models.Post, error) {
	var post models.Post
	err := cache.Aside(ctx, cache.PostKey(postID), &post, cache.PostTTL, func() error {
		fetched, fetchErr := s.postRepo.GetByID(ctx, postID)
		if fetchErr != nil {
			return fetchErr
		}
		post = *fetched
		return nil
	})
	if err != nil {
		return nil, translatePostErr(err)
	}
	return &post, nil
}

// DeletePost deletes the post only when the caller owns it. A wrong owner is
// a FORBIDDEN error internally; the handler reports it with the same 404 the
// legacy API used for a missing post.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("noPostFound", "Post not found")
		}
		return models.NewInternalError(err)
	}

	if post.UserID != userID {
		return models.NewForbiddenError("noPostFound", "Post not found")
	}

	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return models.NewInternalError(err)
	}
	observability.PostInteractions.WithLabelValues("delete").Inc()
	cache.InvalidatePost(ctx, postID)
	return nil
}

// ToggleLike likes the post when the caller is not in the likes set and
// unlikes it otherwise. Two consecutive invocations restore the original set.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, translatePostErr(err)
	}

	liked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	if liked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, models.NewInternalError(err)
		}
		observability.PostInteractions.WithLabelValues("unlike").Inc()
	} else {
		if err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, models.NewInternalError(err)
		}
		observability.PostInteractions.WithLabelValues("like").Inc()
	}
	cache.InvalidatePost(ctx, postID)

	return s.GetPost(ctx, postID)
}

// AddCommentInput carries the commenter identity snapshot and the comment body.
type AddCommentInput struct {
	UserID uint
	PostID uint
	Name   string
	Avatar string
	Text   string
}

// AddComment prepends a comment to the post, snapshotting the caller's name
// and avatar.
func (s *PostService) AddComment(ctx context.Context, in AddCommentInput) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, in.PostID); err != nil {
		return nil, translatePostErr(err)
	}

	comment := models.Comment{
		PostID: in.PostID,
		UserID: in.UserID,
		Name:   in.Name,
		Avatar: in.Avatar,
		Text:   in.Text,
	}
	if err := s.postRepo.AddComment(ctx, &comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.PostInteractions.WithLabelValues("comment").Inc()
	cache.InvalidatePost(ctx, in.PostID)

	return s.GetPost(ctx, in.PostID)
}

// RemoveComment removes the caller's own comment. A missing comment is 404;
// someone else's comment is 401.
func (s *PostService) RemoveComment(ctx context.Context, userID, postID, commentID uint) (*models.Post, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, translatePostErr(err)
	}

	comment, err := s.postRepo.GetComment(ctx, postID, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("commentNotFound", "Comment does not exist")
		}
		return nil, models.NewInternalError(err)
	}

	if comment.UserID != userID {
		return nil, models.NewUnauthorizedError("notAuthorized", "User not authorized")
	}

	if err := s.postRepo.DeleteComment(ctx, comment.ID); err != nil {
		return nil, models.NewInternalError(err)
	}
	observability.PostInteractions.WithLabelValues("uncomment").Inc()
	cache.InvalidatePost(ctx, postID)

	return s.GetPost(ctx, postID)
}
