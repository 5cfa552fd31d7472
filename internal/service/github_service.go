package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"devhub/internal/cache"
	"devhub/internal/models"
	"devhub/internal/observability"
	"devhub/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel/attribute"
)

const githubTimeout = 5 * time.Second

// GitHubRepo is the subset of a GitHub repository shown on a profile.
type GitHubRepo struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	FullName        string    `json:"full_name"`
	HTMLURL         string    `json:"html_url"`
	Description     string    `json:"description"`
	Language        string    `json:"language"`
	StargazersCount int       `json:"stargazers_count"`
	WatchersCount   int       `json:"watchers_count"`
	ForksCount      int       `json:"forks_count"`
	CreatedAt       time.Time `json:"created_at"`
}

type GitHubService struct {
	baseURL      string
	clientID     string
	clientSecret string
	timeout      time.Duration
}

func NewGitHubService(baseURL, clientID, clientSecret string) *GitHubService {
	if baseURL == "" {
		baseURL = "https://api.github.com"
	}
	return &GitHubService{
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		timeout:      githubTimeout,
	}
}

// Repos lists the five oldest repositories of a GitHub user.
func (s *GitHubService) Repos(ctx context.Context, username string) ([]GitHubRepo, error) {
	username = strings.TrimSpace(username)
	if err := validation.ValidateGitHubUsername(username); err != nil {
		return nil, models.NewFieldValidationError([]models.FieldError{{Msg: err.Error(), Param: "username"}})
	}

	span, ctx := observability.NewSpan(ctx, "github.repos")
	defer span.End()
	span.AddAttributes(attribute.String("github.username", username))

	repos := []GitHubRepo{}
	err := cache.Aside(ctx, cache.GitHubReposKey(username), &repos, cache.GitHubReposTTL, func() error {
		return s.fetch(username, &repos)
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return repos, nil
}

func (s *GitHubService) fetch(username string, dest *[]GitHubRepo) error {
	q := url.Values{}
	q.Set("per_page", "5")
	q.Set("sort", "created:asc")
	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", s.baseURL, url.PathEscape(username), q.Encode())

	agent := fiber.Get(endpoint).
		UserAgent("devhub-api").
		Set(fiber.HeaderAccept, "application/vnd.github+json").
		Timeout(s.timeout)
	if s.clientID != "" {
		agent.BasicAuth(s.clientID, s.clientSecret)
	}

	status, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return models.NewInternalError(fmt.Errorf("github request: %w", errs[0]))
	}
	if status != fiber.StatusOK {
		return models.NewNotFoundError("No Github profile found")
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return models.NewInternalError(fmt.Errorf("decode github repos: %w", err))
	}
	return nil
}
