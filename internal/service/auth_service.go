// Package service holds the business rules behind the HTTP handlers.
package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"strings"
	"time"

	"devhub/internal/models"
	"devhub/internal/repository"
	"devhub/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs session tokens for a user id.
type TokenIssuer interface {
	Issue(userID uint) (string, time.Time, error)
}

type AuthService struct {
	userRepo   repository.UserRepository
	tokens     TokenIssuer
	bcryptCost int
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func NewAuthService(userRepo repository.UserRepository, tokens TokenIssuer, bcryptCost int) *AuthService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &AuthService{userRepo: userRepo, tokens: tokens, bcryptCost: bcryptCost}
}

// GravatarURL returns the avatar for email: 200px, pg rated, mystery-man fallback.
func GravatarURL(email string) string {
	sum := md5.Sum([]byte(validation.NormalizeEmail(email)))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}

// Register creates an account and returns a session token for it.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := validation.NormalizeEmail(in.Email)

	var v validation.Errors
	v.Required("name", in.Name, "Name is required")
	if !validation.IsEmail(email) {
		v.Add("email", "Please provide a valid email")
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		v.Add("password", err.Error())
	}
	if err := v.Err(); err != nil {
		return "", err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", models.NewConflictError("User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return "", models.NewInternalError(err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: string(hash),
		Avatar:   GravatarURL(email),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}

	return s.issue(user.ID)
}

// Login exchanges credentials for a token. Unknown email and wrong password
// produce the same error.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, error) {
	email := validation.NormalizeEmail(in.Email)

	var v validation.Errors
	if !validation.IsEmail(email) {
		v.Add("email", "Please provide a valid email")
	}
	if in.Password == "" {
		v.Add("password", "Password is required")
	}
	if err := v.Err(); err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", models.NewInvalidCredentialsError()
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return "", models.NewInvalidCredentialsError()
	}

	return s.issue(user.ID)
}

// CurrentUser returns the account behind a verified token.
func (s *AuthService) CurrentUser(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func (s *AuthService) issue(userID uint) (string, error) {
	token, _, err := s.tokens.Issue(userID)
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return token, nil
}
