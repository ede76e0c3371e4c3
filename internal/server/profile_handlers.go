package server

import (
	"github.com/andomorphia/devconnector/internal/models"
	"github.com/andomorphia/devconnector/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// GetCurrentProfile handles GET /api/profile
// @Summary Current user's profile
// @Description Return the authenticated user's developer profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.Profile
// @Failure 404 {object} object{noProfile=string}
// @Router /profile [get]
func (s *Server) GetCurrentProfile(c *fiber.Ctx) error {
	userID, _, _ := s.identity(c)

	profile, err := s.profileService.GetOwn(c.UserContext(), userID)
	if err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.JSON(profile)
}

// GetAllProfiles handles GET /api/profile/all
// @Summary List profiles
// @Description Return every developer profile
// @Tags profile
// @Produce json
// @Success 200 {array} models.Profile
// @Router /profile/all [get]
func (s *Server) GetAllProfiles(c *fiber.Ctx) error {
	profiles, err := s.profileService.GetAll(c.UserContext())
	if err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.JSON(profiles)
}

// GetProfileByHandle handles GET /api/profile/handle/:handle
// @Summary Profile by handle
// @Description Return the profile with the given handle slug
// @Tags profile
// @Produce json
// @Param handle path string true "Profile handle"
// @Success 200 {object} models.Profile
// @Failure 404 {object} object{noProfile=string}
// @Router /profile/handle/{handle} [get]
func (s *Server) GetProfileByHandle(c *fiber.Ctx) error {
	handle := c.Params("handle")

	profile, err := s.profileService.GetByHandle(c.UserContext(), handle)
	if err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.JSON(profile)
}

// GetProfileByUserID handles GET /api/profile/user/:user_id
// @Summary Profile by user id
// @Description Return the profile belonging to the given user
// @Tags profile
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} object{noProfile=string}
// @Router /profile/user/{user_id} [get]
func (s *Server) GetProfileByUserID(c *fiber.Ctx) error {
	// A malformed id looks the same as an unknown user on the wire.
	userID, err := c.ParamsInt("user_id")
	if err != nil || userID <= 0 {
		return models.RespondWithError(c, fiber.StatusNotFound,
			models.NewNotFoundError("noProfile", "There is no profile for this user"))
	}

	profile, err := s.profileService.GetByUserID(c.UserContext(), uint(userID))
	if err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.JSON(profile)
}

// UpsertProfile handles POST /api/profile
// @Summary Create or update profile
// @Description Create the caller's profile, or merge fields into the existing one
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.ProfileInput true "Profile fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} object{handle=string}
// @Router /profile [post]
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	userID, _, _ := s.identity(c)

	var req validation.ProfileInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.ValidationErrors{"error": "Invalid request body"})
	}

	if errs, ok := validation.ValidateProfile(req); !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest, errs)
	}

	profile, err := s.profileService.Upsert(c.UserContext(), userID, req)
	if err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.JSON(profile)
}

// AddExperience handles POST /api/profile/experience
// @Summary Add experience
// @Description Prepend a work experience entry to the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.ExperienceInput true "Experience entry"
// @Success 200 {object} models.Profile
// @Failure 400 {object} object{title=string,company=string,from=string}
// @Failure 404 {object} object{noProfile=string}
// @Router /profile/experience [post]
func (s *Server) AddExperience(c *fiber.Ctx) error {
	userID, _, _ := s.identity(c)

	var req validation.ExperienceInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.ValidationErrors{"error": "Invalid request body"})
	}

	if errs, ok := validation.ValidateExperience(req); !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest, errs)
	}

	profile, err := s.profileService.AddExperience(c.UserContext(), userID, req)
	if err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.JSON(profile)
}

// AddEducation handles POST /api/profile/education
// @Summary Add education
// @Description Prepend an education entry to the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body validation.EducationInput true "Education entry"
// @Success 200 {object} models.Profile
// @Failure 400 {object} object{school=string,degree=string,field_of_study=string,from=string}
// @Failure 404 {object} object{noProfile=string}
// @Router /profile/education [post]
func (s *Server) AddEducation(c *fiber.Ctx) error {
	userID, _, _ := s.identity(c)

	var req validation.EducationInput
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.ValidationErrors{"error": "Invalid request body"})
	}

	if errs, ok := validation.ValidateEducation(req); !ok {
		return models.RespondWithError(c, fiber.StatusBadRequest, errs)
	}

	profile, err := s.profileService.AddEducation(c.UserContext(), userID, req)
	if err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.JSON(profile)
}

// RemoveExperience handles DELETE /api/profile/experience/:exp_id
// @Summary Remove experience
// @Description Remove an experience entry; removing an absent id is a no-op
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param exp_id path int true "Experience ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} object{noProfile=string}
// @Router /profile/experience/{exp_id} [delete]
func (s *Server) RemoveExperience(c *fiber.Ctx) error {
	userID, _, _ := s.identity(c)

	expID, err := s.parseID(c, "exp_id", "experience id")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.RemoveExperience(c.UserContext(), userID, expID)
	if err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.JSON(profile)
}

// RemoveEducation handles DELETE /api/profile/education/:edu_id
// @Summary Remove education
// @Description Remove an education entry; removing an absent id is a no-op
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param edu_id path int true "Education ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} object{noProfile=string}
// @Router /profile/education/{edu_id} [delete]
func (s *Server) RemoveEducation(c *fiber.Ctx) error {
	userID, _, _ := s.identity(c)

	eduID, err := s.parseID(c, "edu_id", "education id")
	if err != nil {
		return nil
	}

	profile, err := s.profileService.RemoveEducation(c.UserContext(), userID, eduID)
	if err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile
// @Summary Delete account
// @Description Delete the caller's profile and user account
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} object{success=bool}
// @Router /profile [delete]
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	userID, _, _ := s.identity(c)

	if err := s.profileService.DeleteAccount(c.UserContext(), userID); err != nil {
		return s.respondServiceError(c, err, false)
	}

	return c.JSON(fiber.Map{"success": true})
}
