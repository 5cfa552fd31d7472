package server

import (
	"devhub/internal/middleware"
	"devhub/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ListProfiles handles GET /api/profile
// @Summary List profiles
// @Tags profile
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {array} models.Profile
// @Router /profile [get]
func (s *Server) ListProfiles(c *fiber.Ctx) error {
	page := parsePagination(c, defaultPageSize)
	profiles, err := s.profileService.List(c.UserContext(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profiles)
}

// UpsertProfile handles POST /api/profile
// @Summary Create or update own profile
// @Description Omitted fields keep their stored values
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.UpsertProfileInput true "Profile fields"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Router /profile [post]
func (s *Server) UpsertProfile(c *fiber.Ctx) error {
	var req service.UpsertProfileInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}
	req.UserID = middleware.UserID(c)

	profile, err := s.profileService.Upsert(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// MyProfile handles GET /api/profile/me
// @Summary Own profile
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/me [get]
func (s *Server) MyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.Mine(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// ProfileByUser handles GET /api/profile/user/:user_id
// @Summary Profile by user id
// @Tags profile
// @Produce json
// @Param user_id path int true "User ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/user/{user_id} [get]
func (s *Server) ProfileByUser(c *fiber.Ctx) error {
	userID, err := parseID(c, "user_id", "Profile not found")
	if err != nil {
		return respondError(c, err)
	}

	profile, err := s.profileService.ByUser(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteAccount handles DELETE /api/profile
// @Summary Delete account
// @Description Removes the caller's posts, profile and user record
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} object{msg=string}
// @Failure 404 {object} models.ErrorResponse
// @Router /profile [delete]
func (s *Server) DeleteAccount(c *fiber.Ctx) error {
	if err := s.profileService.DeleteAccount(c.UserContext(), middleware.UserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"msg": "User deleted"})
}

// AddExperience handles PUT /api/profile/experience
// @Summary Add experience
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.ExperienceInput true "Experience entry"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/experience [put]
func (s *Server) AddExperience(c *fiber.Ctx) error {
	var req service.ExperienceInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	profile, err := s.profileService.AddExperience(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteExperience handles DELETE /api/profile/experience/:exp_id
// @Summary Delete experience
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Param exp_id path int true "Experience ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/experience/{exp_id} [delete]
func (s *Server) DeleteExperience(c *fiber.Ctx) error {
	expID, err := parseID(c, "exp_id", "Experience not found")
	if err != nil {
		return respondError(c, err)
	}

	profile, err := s.profileService.DeleteExperience(c.UserContext(), middleware.UserID(c), expID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// AddEducation handles PUT /api/profile/education
// @Summary Add education
// @Tags profile
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body service.EducationInput true "Education entry"
// @Success 200 {object} models.Profile
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/education [put]
func (s *Server) AddEducation(c *fiber.Ctx) error {
	var req service.EducationInput
	if err := parseBody(c, &req); err != nil {
		return respondError(c, err)
	}

	profile, err := s.profileService.AddEducation(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}

// DeleteEducation handles DELETE /api/profile/education/:edu_id
// @Summary Delete education
// @Tags profile
// @Produce json
// @Security ApiKeyAuth
// @Param edu_id path int true "Education ID"
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/education/{edu_id} [delete]
func (s *Server) DeleteEducation(c *fiber.Ctx) error {
	eduID, err := parseID(c, "edu_id", "Education not found")
	if err != nil {
		return respondError(c, err)
	}

	profile, err := s.profileService.DeleteEducation(c.UserContext(), middleware.UserID(c), eduID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(profile)
}
