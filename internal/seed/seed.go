package seed

import (
	"fmt"
	"log"

	"devhub/internal/database"
	"devhub/internal/models"

	"gorm.io/gorm"
)

// Options controls the size of a seeding run.
type Options struct {
	NumUsers     int
	PostsPerUser int
	ShouldClean  bool
	// Seed makes runs reproducible; zero picks a random seed.
	Seed int64
}

// Summary counts what a run created.
type Summary struct {
	Users    int
	Profiles int
	Posts    int
	Likes    int
	Comments int
}

// Seeder fills the database with a connected set of demo data.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder returns a Seeder bound to db.
func NewSeeder(db *gorm.DB, seed int64) (*Seeder, error) {
	factory, err := NewFactory(db, seed)
	if err != nil {
		return nil, err
	}
	return &Seeder{db: db, factory: factory}, nil
}

// ClearAll deletes every row, children first.
func (s *Seeder) ClearAll() error {
	all := database.PersistentModels()
	for i := len(all) - 1; i >= 0; i-- {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(all[i]).Error; err != nil {
			return fmt.Errorf("clear %T: %w", all[i], err)
		}
	}
	log.Println("🧹 Cleared existing data")
	return nil
}

// Run creates users with profiles, their posts, and cross-user likes and comments.
func (s *Seeder) Run(opts Options) (*Summary, error) {
	if opts.ShouldClean {
		if err := s.ClearAll(); err != nil {
			return nil, err
		}
	}

	sum := &Summary{}
	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return nil, fmt.Errorf("create user: %w", err)
		}
		users = append(users, user)
		sum.Users++

		if _, err := s.factory.CreateProfile(user); err != nil {
			return nil, fmt.Errorf("create profile: %w", err)
		}
		sum.Profiles++
	}
	log.Printf("👥 Created %d users with profiles", sum.Users)

	faker := s.factory.faker
	for _, author := range users {
		for j := 0; j < opts.PostsPerUser; j++ {
			post, err := s.factory.CreatePost(author)
			if err != nil {
				return nil, fmt.Errorf("create post: %w", err)
			}
			sum.Posts++

			for _, other := range users {
				if other.ID == author.ID {
					continue
				}
				if faker.Number(1, 100) <= 40 {
					if err := s.factory.CreateLike(other, post); err != nil {
						return nil, fmt.Errorf("create like: %w", err)
					}
					sum.Likes++
				}
				if faker.Number(1, 100) <= 15 {
					if _, err := s.factory.CreateComment(other, post); err != nil {
						return nil, fmt.Errorf("create comment: %w", err)
					}
					sum.Comments++
				}
			}
		}
	}
	log.Printf("📝 Created %d posts, %d likes, %d comments", sum.Posts, sum.Likes, sum.Comments)

	return sum, nil
}
