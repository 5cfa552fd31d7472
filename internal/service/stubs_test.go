package service

import (
	"context"
	"time"

	"devhub/internal/models"
	"devhub/internal/notifications"
	"devhub/internal/repository"
)

// The stubs implement the repository interfaces exactly.
var (
	_ repository.UserRepository    = (*userRepoStub)(nil)
	_ repository.ProfileRepository = (*profileRepoStub)(nil)
	_ repository.PostRepository    = (*postRepoStub)(nil)
	_ repository.CommentRepository = (*commentRepoStub)(nil)
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.User, error)
	getByEmailFn func(context.Context, string) (*models.User, error)
	createFn     func(context.Context, *models.User) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Name: "Ada", Email: "ada@example.com", Avatar: "avatar.png"}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			return nil
		},
	}
}

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByUserIDFn       func(context.Context, uint) (*models.Profile, error)
	getByUserIDCachedFn func(context.Context, uint) (*models.Profile, error)
	listFn              func(context.Context, int, int) ([]*models.Profile, error)
	createFn            func(context.Context, *models.Profile) error
	updateFn            func(context.Context, *models.Profile) error
	addExperienceFn     func(context.Context, *models.Profile, *models.Experience) error
	deleteExperienceFn  func(context.Context, *models.Profile, uint) error
	addEducationFn      func(context.Context, *models.Profile, *models.Education) error
	deleteEducationFn   func(context.Context, *models.Profile, uint) error
	deleteAccountFn     func(context.Context, uint) error
}

func (s *profileRepoStub) GetByUserID(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDFn(ctx, userID)
}
func (s *profileRepoStub) GetByUserIDCached(ctx context.Context, userID uint) (*models.Profile, error) {
	return s.getByUserIDCachedFn(ctx, userID)
}
func (s *profileRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Profile, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *profileRepoStub) Create(ctx context.Context, p *models.Profile) error {
	return s.createFn(ctx, p)
}
func (s *profileRepoStub) Update(ctx context.Context, p *models.Profile) error {
	return s.updateFn(ctx, p)
}
func (s *profileRepoStub) AddExperience(ctx context.Context, p *models.Profile, e *models.Experience) error {
	return s.addExperienceFn(ctx, p, e)
}
func (s *profileRepoStub) DeleteExperience(ctx context.Context, p *models.Profile, id uint) error {
	return s.deleteExperienceFn(ctx, p, id)
}
func (s *profileRepoStub) AddEducation(ctx context.Context, p *models.Profile, e *models.Education) error {
	return s.addEducationFn(ctx, p, e)
}
func (s *profileRepoStub) DeleteEducation(ctx context.Context, p *models.Profile, id uint) error {
	return s.deleteEducationFn(ctx, p, id)
}
func (s *profileRepoStub) DeleteAccount(ctx context.Context, userID uint) error {
	return s.deleteAccountFn(ctx, userID)
}

// memProfileRepo returns a stub backed by a single in-memory profile slot.
func memProfileRepo(initial *models.Profile) *profileRepoStub {
	current := initial
	get := func(_ context.Context, _ uint) (*models.Profile, error) {
		if current == nil {
			return nil, models.NewNotFoundError("Profile not found")
		}
		cp := *current
		return &cp, nil
	}
	store := func(_ context.Context, p *models.Profile) error {
		cp := *p
		current = &cp
		return nil
	}
	return &profileRepoStub{
		getByUserIDFn:       get,
		getByUserIDCachedFn: get,
		listFn:              func(_ context.Context, _, _ int) ([]*models.Profile, error) { return nil, nil },
		createFn:            store,
		updateFn:            store,
		addExperienceFn: func(_ context.Context, _ *models.Profile, e *models.Experience) error {
			current.Experience = append([]models.Experience{*e}, current.Experience...)
			return nil
		},
		deleteExperienceFn: func(_ context.Context, _ *models.Profile, _ uint) error {
			return models.NewNotFoundError("Experience not found")
		},
		addEducationFn: func(_ context.Context, _ *models.Profile, e *models.Education) error {
			current.Education = append([]models.Education{*e}, current.Education...)
			return nil
		},
		deleteEducationFn: func(_ context.Context, _ *models.Profile, _ uint) error { return nil },
		deleteAccountFn:   func(_ context.Context, _ uint) error { return nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn  func(context.Context, *models.Post) error
	getByIDFn func(context.Context, uint) (*models.Post, error)
	existsFn  func(context.Context, uint) (bool, error)
	listFn    func(context.Context, int, int) ([]*models.Post, error)
	deleteFn  func(context.Context, uint) error
	isLikedFn func(context.Context, uint, uint) (bool, error)
	likeFn    func(context.Context, uint, uint) error
	unlikeFn  func(context.Context, uint, uint) error
	likesFn   func(context.Context, uint) ([]models.Like, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, postID, userID uint) (bool, error) {
	return s.isLikedFn(ctx, postID, userID)
}
func (s *postRepoStub) Like(ctx context.Context, postID, userID uint) error {
	return s.likeFn(ctx, postID, userID)
}
func (s *postRepoStub) Unlike(ctx context.Context, postID, userID uint) error {
	return s.unlikeFn(ctx, postID, userID)
}
func (s *postRepoStub) Likes(ctx context.Context, postID uint) ([]models.Like, error) {
	return s.likesFn(ctx, postID)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) { return &models.Post{ID: id}, nil },
		existsFn:  func(_ context.Context, _ uint) (bool, error) { return true, nil },
		listFn:    func(_ context.Context, _, _ int) ([]*models.Post, error) { return nil, nil },
		deleteFn:  func(_ context.Context, _ uint) error { return nil },
		isLikedFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:    func(_ context.Context, _, _ uint) error { return nil },
		unlikeFn:  func(_ context.Context, _, _ uint) error { return nil },
		likesFn:   func(_ context.Context, _ uint) ([]models.Like, error) { return []models.Like{}, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	listByPostFn func(context.Context, uint) ([]models.Comment, error)
	deleteFn     func(context.Context, uint, uint, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, c *models.Comment) error {
	return s.createFn(ctx, c)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) Delete(ctx context.Context, postID, commentID, userID uint) error {
	return s.deleteFn(ctx, postID, commentID, userID)
}

type tokenIssuerStub struct {
	issued []uint
	err    error
}

func (s *tokenIssuerStub) Issue(userID uint) (string, time.Time, error) {
	if s.err != nil {
		return "", time.Time{}, s.err
	}
	s.issued = append(s.issued, userID)
	return "signed-token", time.Now().Add(time.Hour), nil
}

type publishedEvent struct {
	userID uint
	ev     notifications.Event
}

// publisherStub records events instead of publishing them.
type publisherStub struct {
	events []publishedEvent
	err    error
}

func (s *publisherStub) PublishUser(_ context.Context, userID uint, ev notifications.Event) error {
	s.events = append(s.events, publishedEvent{userID, ev})
	return s.err
}
