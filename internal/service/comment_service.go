package service

import (
	"context"
	"strings"

	"devhub/internal/models"
	"devhub/internal/notifications"
	"devhub/internal/repository"
	"devhub/internal/validation"
)

type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	userRepo    repository.UserRepository
	publisher   ActivityPublisher
}

type CreateCommentInput struct {
	UserID uint   `json:"-"`
	PostID uint   `json:"-"`
	Text   string `json:"text"`
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
) *CommentService {
	return &CommentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

// WithPublisher enables comment notifications to post authors.
func (s *CommentService) WithPublisher(p ActivityPublisher) *CommentService {
	s.publisher = p
	return s
}

// CreateComment adds a comment with the commenter's snapshot and returns the
// post's comments newest first.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) ([]models.Comment, error) {
	var v validation.Errors
	v.Required("text", in.Text, "Text is required")
	if err := v.Err(); err != nil {
		return nil, err
	}

	if err := s.requirePost(ctx, in.PostID); err != nil {
		return nil, err
	}

	author, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	comment := &models.Comment{
		PostID: in.PostID,
		UserID: author.ID,
		Text:   strings.TrimSpace(in.Text),
		Name:   author.Name,
		Avatar: author.Avatar,
		Email:  author.Email,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}
	notifyAuthor(ctx, s.publisher, s.postRepo, in.PostID, notifications.Event{
		Type:      notifications.EventPostCommented,
		ActorID:   author.ID,
		ActorName: author.Name,
	})
	return s.commentRepo.ListByPost(ctx, in.PostID)
}

// DeleteComment removes the caller's own comment. A comment by someone else
// is reported as missing.
func (s *CommentService) DeleteComment(ctx context.Context, userID, postID, commentID uint) ([]models.Comment, error) {
	if err := s.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.commentRepo.Delete(ctx, postID, commentID, userID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

func (s *CommentService) requirePost(ctx context.Context, postID uint) error {
	ok, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return err
	}
	if !ok {
		return models.NewNotFoundError("Post not found")
	}
	return nil
}
