package server

import (
	"errors"
	"log/slog"

	"github.com/andomorphia/devconnector/internal/middleware"
	"github.com/andomorphia/devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint. On failure
// it writes a 400 JSON response and returns errResponseWritten; callers
// should check: if err != nil { return nil }.
func (s *Server) parseID(c *fiber.Ctx, param, label string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.ValidationErrors{param: "Invalid " + label})
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// identity returns the authenticated caller's id plus the name/avatar
// snapshot fields decoded from the token.
func (s *Server) identity(c *fiber.Ctx) (uint, string, string) {
	userID, _ := c.Locals("userID").(uint)
	name, _ := c.Locals("userName").(string)
	avatar, _ := c.Locals("userAvatar").(string)
	return userID, name, avatar
}

// respondServiceError maps a service error onto the wire. Infrastructure
// failures keep their own code internally but are reported with the legacy
// 404 the original API used for every store-level failure; ownership
// failures on post deletion collapse to 404 as well when asked.
func (s *Server) respondServiceError(c *fiber.Ctx, err error, notFoundForForbidden bool) error {
	status := models.StatusForError(err, notFoundForForbidden)

	var appErr *models.AppError
	if errors.As(err, &appErr) && appErr.Code == models.CodeInternal {
		middleware.Logger.ErrorContext(c.UserContext(), "service failure",
			slog.String("path", c.Path()),
			slog.String("error", appErr.Error()),
		)
		status = fiber.StatusNotFound
	}

	return models.RespondWithError(c, status, err)
}
