package server

import (
	"github.com/andomorphia/devconnector/internal/models"
	"github.com/andomorphia/devconnector/internal/service"
	"github.com/andomorphia/devconnector/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
// @Summary List posts
// @Description Return all posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} models.Post
// @Router /posts [get]
func (s *Server) GetPosts(c *fiber.Ctx) error {
	posts, err := s.postService.ListPosts(c.UserContext())
	if err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.JSON(posts)
}

// GetPost handles GET /api/posts/:post_id
// @Summary Get post
// @Description Return a single post with its likes and comments
// @Tags posts
// @Produce json
// @Param post_id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} object{noPostFound=string}
// @Router /posts/{post_id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	// A malformed id looks the same as a missing post on the wire.
	postID, err := c.ParamsInt("post_id")
	if err != nil || postID <= 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("noPostFound", "No post found with that Id"))
	}

	post, err := s.postService.GetPost(c.UserContext(), uint(postID))
	if err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.JSON(post)
}

// CreatePost handles POST /api/posts
// @Summary Create post
// @Description Create a post stamped with the caller's name and avatar
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.PostInput true "Post text"
// @Success 201 {object} models.Post
// @Failure 400 {object} object{text=string}
// @Router /posts [post]
func (s *Server) CreatePost(c *fiber.Ctx) error {
	userID, name, avatar := s.identity(c)

	var req validation.PostInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.ValidationErrors{"error": "Invalid request body"})
	}

	if errs, ok := validation.ValidatePost(req); !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest, errs)
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		UserID: userID,
		Name:   name,
		Avatar: avatar,
		Text:   req.Text,
	})
	if err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// DeletePost handles DELETE /api/posts/:post_id
// @Summary Delete post
// @Description Delete a post owned by the caller
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "Post ID"
// @Success 200 {object} object{success=bool}
// @Failure 404 {object} object{noPostFound=string}
// @Router /posts/{post_id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx) error {
	userID, _, _ := s.identity(c)

	postID, err := s.parseID(c, "post_id", "post id")
	if err != nil {
		return nil
	}

	// Ownership failures surface as 404 so non-owners cannot distinguish a
	// post they may not touch from one that does not exist.
	if err := s.postService.DeletePost(c.UserContext(), userID, postID); err != nil {
		return s.respondServiceError(c, err, true)
	}

	return c.JSON(fiber.Map{"success": true})
}

// ToggleLike handles POST /api/posts/like/:post_id
// @Summary Toggle like
// @Description Like the post, or remove the caller's existing like
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "Post ID"
// @Success 200 {object} models.Post
// @Failure 404 {object} object{noPostFound=string}
// @Router /posts/like/{post_id} [post]
func (s *Server) ToggleLike(c *fiber.Ctx) error {
	userID, _, _ := s.identity(c)

	postID, err := s.parseID(c, "post_id", "post id")
	if err != nil {
		return nil
	}

	post, err := s.postService.ToggleLike(c.UserContext(), userID, postID)
	if err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.JSON(post)
}

// AddComment handles POST /api/posts/comment/:post_id
// @Summary Add comment
// @Description Prepend a comment to the post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "Post ID"
// @Param request body validation.PostInput true "Comment text"
// @Success 200 {object} models.Post
// @Failure 400 {object} object{text=string}
// @Failure 404 {object} object{noPostFound=string}
// @Router /posts/comment/{post_id} [post]
func (s *Server) AddComment(c *fiber.Ctx) error {
	userID, name, avatar := s.identity(c)

	postID, err := s.parseID(c, "post_id", "post id")
	if err != nil {
		return nil
	}

	var req validation.PostInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.ValidationErrors{"error": "Invalid request body"})
	}

	if errs, ok := validation.ValidatePost(req); !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest, errs)
	}

	post, err := s.postService.AddComment(c.UserContext(), service.AddCommentInput{
		UserID: userID,
		PostID: postID,
		Name:   name,
		Avatar: avatar,
		Text:   req.Text,
	})
	if err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.JSON(post)
}

// RemoveComment handles DELETE /api/posts/comment/:post_id/:comment_id
// @Summary Remove comment
// @Description Remove a comment owned by the caller
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Param post_id path int true "Post ID"
// @Param comment_id path int true "Comment ID"
// @Success 200 {object} models.Post
// @Failure 401 {object} object{notAuthorized=string}
// @Failure 404 {object} object{commentNotFound=string}
// @Router /posts/comment/{post_id}/{comment_id} [delete]
func (s *Server) RemoveComment(c *fiber.Ctx) error {
	userID, _, _ := s.identity(c)

	postID, err := s.parseID(c, "post_id", "post id")
	if err != nil {
		return nil
	}
	commentID, err := s.parseID(c, "comment_id", "comment id")
	if err != nil {
		return nil
	}

	post, err := s.postService.RemoveComment(c.UserContext(), userID, postID, commentID)
	if err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.JSON(post)
}
