package service

import (
	"context"
	"log/slog"

	"devhub/internal/middleware"
	"devhub/internal/notifications"
	"devhub/internal/repository"
)

// ActivityPublisher delivers activity events to a user.
type ActivityPublisher interface {
	PublishUser(ctx context.Context, userID uint, ev notifications.Event) error
}

var _ ActivityPublisher = (*notifications.Notifier)(nil)

// notifyAuthor tells a post's author about activity by someone else.
// Delivery is best-effort and never fails the request.
func notifyAuthor(ctx context.Context, pub ActivityPublisher, posts repository.PostRepository, postID uint, ev notifications.Event) {
	if pub == nil {
		return
	}
	post, err := posts.GetByID(ctx, postID)
	if err != nil || post.UserID == ev.ActorID {
		return
	}
	ev.PostID = postID
	if err := pub.PublishUser(ctx, post.UserID, ev); err != nil {
		middleware.Logger.WarnContext(ctx, "activity notification failed",
			slog.String("type", ev.Type),
			slog.Uint64("post_id", uint64(postID)),
			slog.String("error", err.Error()),
		)
	}
}
