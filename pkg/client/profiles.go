package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"devhub/internal/models"
	"devhub/internal/service"
)

// UpsertProfile creates or merges the caller's profile. Nil fields are left unchanged.
func (c *Client) UpsertProfile(ctx context.Context, in service.UpsertProfileInput) (*models.Profile, error) {
	return c.profileCall(ctx, http.MethodPost, "/profile", in)
}

// MyProfile returns the caller's profile.
func (c *Client) MyProfile(ctx context.Context) (*models.Profile, error) {
	return c.profileCall(ctx, http.MethodGet, "/profile/me", nil)
}

// Profile returns the profile of userID.
func (c *Client) Profile(ctx context.Context, userID uint) (*models.Profile, error) {
	return c.profileCall(ctx, http.MethodGet, fmt.Sprintf("/profile/user/%d", userID), nil)
}

// Profiles lists profiles newest first.
func (c *Client) Profiles(ctx context.Context, limit, offset int) ([]models.Profile, error) {
	var out []models.Profile
	if err := c.do(ctx, http.MethodGet, "/profile"+pageQuery(limit, offset), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddExperience(ctx context.Context, in service.ExperienceInput) (*models.Profile, error) {
	return c.profileCall(ctx, http.MethodPut, "/profile/experience", in)
}

func (c *Client) DeleteExperience(ctx context.Context, id uint) (*models.Profile, error) {
	return c.profileCall(ctx, http.MethodDelete, fmt.Sprintf("/profile/experience/%d", id), nil)
}

func (c *Client) AddEducation(ctx context.Context, in service.EducationInput) (*models.Profile, error) {
	return c.profileCall(ctx, http.MethodPut, "/profile/education", in)
}

func (c *Client) DeleteEducation(ctx context.Context, id uint) (*models.Profile, error) {
	return c.profileCall(ctx, http.MethodDelete, fmt.Sprintf("/profile/education/%d", id), nil)
}

// DeleteAccount removes the caller's account and clears the token.
func (c *Client) DeleteAccount(ctx context.Context) error {
	var out messageResponse
	if err := c.do(ctx, http.MethodDelete, "/profile", nil, &out); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

// GitHubRepos lists the latest public repositories of a GitHub user.
func (c *Client) GitHubRepos(ctx context.Context, username string) ([]service.GitHubRepo, error) {
	var out []service.GitHubRepo
	if err := c.do(ctx, http.MethodGet, "/profile/github/"+url.PathEscape(username), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) profileCall(ctx context.Context, method, path string, body any) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
