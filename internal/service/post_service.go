package service

import (
	"context"
	"strings"

	"devhub/internal/models"
	"devhub/internal/notifications"
	"devhub/internal/repository"
	"devhub/internal/validation"
)

type PostService struct {
	postRepo  repository.PostRepository
	userRepo  repository.UserRepository
	publisher ActivityPublisher
}

type CreatePostInput struct {
	UserID uint   `json:"-"`
	Text   string `json:"text"`
}

func NewPostService(postRepo repository.PostRepository, userRepo repository.UserRepository) *PostService {
	return &PostService{postRepo: postRepo, userRepo: userRepo}
}

// WithPublisher enables like notifications to post authors.
func (s *PostService) WithPublisher(p ActivityPublisher) *PostService {
	s.publisher = p
	return s
}

// CreatePost stores a post carrying a snapshot of the author's name and avatar.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	var v validation.Errors
	v.Required("text", in.Text, "Text is required")
	if err := v.Err(); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		UserID:   author.ID,
		Text:     strings.TrimSpace(in.Text),
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []models.Like{},
		Comments: []models.Comment{},
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.List(ctx, limit, offset)
}

func (s *PostService) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	return s.postRepo.GetByID(ctx, id)
}

// DeletePost removes a post owned by userID.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) error {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != userID {
		return models.NewForbiddenError("User not authorized")
	}
	return s.postRepo.Delete(ctx, postID)
}

// Like adds userID to the post's likes and returns them newest first.
func (s *PostService) Like(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.postRepo.Like(ctx, postID, userID); err != nil {
		return nil, err
	}
	if s.publisher != nil {
		ev := notifications.Event{Type: notifications.EventPostLiked, ActorID: userID}
		if actor, err := s.userRepo.GetByID(ctx, userID); err == nil {
			ev.ActorName = actor.Name
		}
		notifyAuthor(ctx, s.publisher, s.postRepo, postID, ev)
	}
	return s.postRepo.Likes(ctx, postID)
}

// Unlike removes userID from the post's likes.
func (s *PostService) Unlike(ctx context.Context, userID, postID uint) ([]models.Like, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.postRepo.Unlike(ctx, postID, userID); err != nil {
		return nil, err
	}
	return s.postRepo.Likes(ctx, postID)
}

func (s *PostService) requirePost(ctx context.Context, postID uint) error {
	ok, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Post not found")
	}
	return nil
}
