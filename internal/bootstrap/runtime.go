// Package bootstrap wires process-wide runtime dependencies for commands.
package bootstrap

import (
	"fmt"
	"log/slog"
	"strings"

	"devhub/internal/cache"
	"devhub/internal/config"
	"devhub/internal/database"
	"devhub/internal/middleware"
	"devhub/internal/models"
	"devhub/internal/seed"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Options control runtime initialization behavior.
type Options struct {
	// SeedDemoData fills an empty development database with demo users.
	SeedDemoData bool
	DemoUsers    int
}

// InitRuntime connects to DB and Redis and optionally seeds demo data.
func InitRuntime(cfg *config.Config, opts Options) (*gorm.DB, *redis.Client, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Init Redis (may result in nil client if unreachable)
	cache.InitRedis(cfg.RedisURL)
	r := cache.GetClient()

	if opts.SeedDemoData {
		if err := seedDemoData(cfg, db, opts.DemoUsers); err != nil {
			return nil, nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
	}

	return db, r, nil
}

// seedDemoData only touches an empty development database.
func seedDemoData(cfg *config.Config, db *gorm.DB, users int) error {
	if cfg == nil || db == nil || !strings.EqualFold(cfg.Env, "development") {
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if users <= 0 {
		users = 10
	}
	s, err := seed.NewSeeder(db, 0)
	if err != nil {
		return err
	}
	sum, err := s.Run(seed.Options{NumUsers: users, PostsPerUser: 2})
	if err != nil {
		return err
	}

	middleware.Logger.Info("seeded development database",
		slog.Int("users", sum.Users),
		slog.Int("posts", sum.Posts),
	)
	return nil
}
