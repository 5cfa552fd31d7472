// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"strings"
	"time"

	"devhub/internal/models"
	"devhub/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is the password of every seeded account.
const DefaultPassword = "password123"

var skillPool = []string{
	"Go", "PostgreSQL", "Redis", "Docker", "Kubernetes", "TypeScript", "React",
	"GraphQL", "Terraform", "Rust", "Python", "gRPC", "Linux", "AWS",
}

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db           *gorm.DB
	faker        *gofakeit.Faker
	passwordHash string
}

// NewFactory creates a Factory. A zero seed picks a random one.
func NewFactory(db *gorm.DB, seed int64) (*Factory, error) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	// One hash shared by every seeded user keeps large runs fast.
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}

	return &Factory{db: db, faker: gofakeit.New(seed), passwordHash: string(hash)}, nil
}

// CreateUser constructs and persists a sample user.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	first, last := f.faker.FirstName(), f.faker.LastName()
	email := strings.ToLower(fmt.Sprintf("%s.%s%d@%s", first, last, f.faker.Number(10, 9999), f.faker.DomainName()))

	user := &models.User{
		Name:     first + " " + last,
		Email:    email,
		Password: f.passwordHash,
		Avatar:   service.GravatarURL(email),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreateProfile persists a profile for user with a few experience and
// education entries.
func (f *Factory) CreateProfile(user *models.User, overrides ...func(*models.Profile)) (*models.Profile, error) {
	handle := strings.ToLower(strings.ReplaceAll(user.Name, " ", ""))

	profile := &models.Profile{
		UserID:         user.ID,
		Status:         f.faker.RandomString([]string{"Developer", "Senior Developer", "Student", "Instructor", "Manager"}),
		Company:        f.faker.Company(),
		Website:        f.faker.URL(),
		Location:       f.faker.City() + ", " + f.faker.StateAbr(),
		Bio:            f.faker.Sentence(14),
		GitHubUsername: handle,
		Skills:         f.skills(),
		Social: models.SocialLinks{
			Twitter:  "https://twitter.com/" + handle,
			LinkedIn: "https://linkedin.com/in/" + handle,
		},
	}

	for i := f.faker.Number(1, 3); i > 0; i-- {
		from := f.faker.DateRange(time.Now().AddDate(-12, 0, 0), time.Now().AddDate(-1, 0, 0))
		exp := models.Experience{
			Title:       f.faker.JobTitle(),
			Company:     f.faker.Company(),
			Location:    f.faker.City(),
			From:        from,
			Description: f.faker.Sentence(10),
		}
		if i == 1 {
			exp.Current = true
		} else {
			to := from.AddDate(f.faker.Number(1, 3), 0, 0)
			exp.To = &to
		}
		profile.Experience = append(profile.Experience, exp)
	}

	from := f.faker.DateRange(time.Now().AddDate(-20, 0, 0), time.Now().AddDate(-10, 0, 0))
	to := from.AddDate(4, 0, 0)
	profile.Education = []models.Education{{
		School:       f.faker.Company() + " University",
		Degree:       f.faker.RandomString([]string{"BSc", "MSc", "BA", "PhD"}),
		FieldOfStudy: f.faker.RandomString([]string{"Computer Science", "Mathematics", "Physics", "Design"}),
		From:         from,
		To:           &to,
	}}

	for _, override := range overrides {
		override(profile)
	}

	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

func (f *Factory) skills() []string {
	n := f.faker.Number(2, 5)
	seen := make(map[string]bool, n)
	out := make([]string, 0, n)
	for len(out) < n {
		s := f.faker.RandomString(skillPool)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// CreatePost persists a post authored by user.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	post := &models.Post{
		UserID: user.ID,
		Text:   f.faker.Paragraph(1, 3, 12, " "),
		Name:   user.Name,
		Avatar: user.Avatar,
	}
	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// CreateComment persists a comment by user on post.
func (f *Factory) CreateComment(user *models.User, post *models.Post) (*models.Comment, error) {
	comment := &models.Comment{
		PostID: post.ID,
		UserID: user.ID,
		Text:   f.faker.Sentence(8),
		Name:   user.Name,
		Avatar: user.Avatar,
		Email:  user.Email,
	}
	if err := f.db.Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

// CreateLike persists a like from user on post.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	return f.db.Create(&models.Like{PostID: post.ID, UserID: user.ID}).Error
}
