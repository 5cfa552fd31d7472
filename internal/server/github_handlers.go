package server

import (
	"devhub/internal/featureflags"
	"devhub/internal/middleware"
	"devhub/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GitHubRepos handles GET /api/profile/github/:username
// @Summary Latest GitHub repositories
// @Description Proxies the five most recent public repositories of a GitHub user
// @Tags profile
// @Produce json
// @Param username path string true "GitHub username"
// @Success 200 {array} service.GitHubRepo
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /profile/github/{username} [get]
func (s *Server) GitHubRepos(c *fiber.Ctx) error {
	// Percentage rollouts bucket by caller; anonymous callers only see a fully enabled flag.
	if !s.featureFlags.Enabled(featureflags.GitHubProxy, middleware.UserID(c)) {
		return respondError(c, models.NewNotFoundError("No Github profile found"))
	}

	repos, err := s.githubService.Repos(c.UserContext(), c.Params("username"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(repos)
}
