package cache

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	ProfileByUserKeyPrefix = "profile:user:%d"
	GitHubReposKeyPrefix   = "github:repos:%s"
)

const (
	ProfileTTL     = 5 * time.Minute
	GitHubReposTTL = 10 * time.Minute
)

func ProfileByUserKey(userID uint) string {
	return fmt.Sprintf(ProfileByUserKeyPrefix, userID)
}

func GitHubReposKey(username string) string {
	return fmt.Sprintf(GitHubReposKeyPrefix, strings.ToLower(username))
}

// Invalidate removes key. Failures are counted by the metrics hook and otherwise ignored.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileByUserKey(userID))
}
