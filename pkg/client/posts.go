package client

import (
	"context"
	"fmt"
	"net/http"

	"devhub/internal/models"
	"devhub/internal/service"
)

// CreatePost publishes a post as the caller.
func (c *Client) CreatePost(ctx context.Context, text string) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodPost, "/posts", service.CreatePostInput{Text: text}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Posts lists posts newest first.
func (c *Client) Posts(ctx context.Context, limit, offset int) ([]models.Post, error) {
	var out []models.Post
	if err := c.do(ctx, http.MethodGet, "/posts"+pageQuery(limit, offset), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Post(ctx context.Context, id uint) (*models.Post, error) {
	var out models.Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/posts/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeletePost(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/posts/%d", id), nil, &messageResponse{})
}

// Like returns the post's likes after liking it.
func (c *Client) Like(ctx context.Context, postID uint) ([]models.Like, error) {
	return c.likes(ctx, fmt.Sprintf("/posts/like/%d", postID))
}

// Unlike returns the post's likes after removing the caller's like.
func (c *Client) Unlike(ctx context.Context, postID uint) ([]models.Like, error) {
	return c.likes(ctx, fmt.Sprintf("/posts/unlike/%d", postID))
}

func (c *Client) likes(ctx context.Context, path string) ([]models.Like, error) {
	var out []models.Like
	if err := c.do(ctx, http.MethodPut, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Comment adds a comment and returns the post's comments, newest first.
func (c *Client) Comment(ctx context.Context, postID uint, text string) ([]models.Comment, error) {
	var out []models.Comment
	path := fmt.Sprintf("/posts/comment/%d", postID)
	if err := c.do(ctx, http.MethodPost, path, service.CreateCommentInput{Text: text}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DeleteComment removes one of the caller's comments.
func (c *Client) DeleteComment(ctx context.Context, postID, commentID uint) ([]models.Comment, error) {
	var out []models.Comment
	path := fmt.Sprintf("/posts/comment/%d/%d", postID, commentID)
	if err := c.do(ctx, http.MethodDelete, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
