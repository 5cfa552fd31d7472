package server

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"devhub/internal/models"
	"devhub/internal/notifications"
	"devhub/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostFlow_RegisterLoginPostLikeUnlike(t *testing.T) {
	_, app := newTestApp(t)
	register(t, app, "Ada", "ada@example.com")

	status, body := call(t, app, http.MethodPost, "/api/auth", "", map[string]string{
		"email": "ada@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusOK, status)
	token := decode[map[string]string](t, body)["token"]

	status, body = call(t, app, http.MethodPost, "/api/posts", token, map[string]string{"text": "Hello devs"})
	require.Equal(t, http.StatusCreated, status, string(body))
	post := decode[models.Post](t, body)
	assert.Equal(t, "Ada", post.Name)
	assert.NotEmpty(t, post.Avatar)

	likePath := fmt.Sprintf("/api/posts/like/%d", post.ID)
	unlikePath := fmt.Sprintf("/api/posts/unlike/%d", post.ID)

	status, body = call(t, app, http.MethodPut, likePath, token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Len(t, decode[[]models.Like](t, body), 1)

	status, body = call(t, app, http.MethodPut, likePath, token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assertError(t, body, models.CodeConflict, "Post already liked")

	status, body = call(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[models.Post](t, body).Likes, 1, "like set stays a set")

	status, body = call(t, app, http.MethodPut, unlikePath, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[[]models.Like](t, body))

	status, body = call(t, app, http.MethodPut, unlikePath, token, nil)
	assert.Equal(t, http.StatusConflict, status)
	assertError(t, body, models.CodeConflict, "Post has not yet been liked")

	status, body = call(t, app, http.MethodGet, fmt.Sprintf("/api/posts/%d", post.ID), token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, decode[models.Post](t, body).Likes)
}

func TestPosts_ValidationAndLookup(t *testing.T) {
	_, app := newTestApp(t)
	token := register(t, app, "Ada", "ada@example.com")

	status, body := call(t, app, http.MethodPost, "/api/posts", token, map[string]string{"text": "  "})
	assert.Equal(t, http.StatusBadRequest, status)
	assertError(t, body, models.CodeValidation, "Text is required")

	for _, path := range []string{"/api/posts/999", "/api/posts/not-an-id"} {
		status, body = call(t, app, http.MethodGet, path, token, nil)
		assert.Equal(t, http.StatusNotFound, status, path)
		assertError(t, body, models.CodeNotFound, "Post not found")
	}

	status, _ = call(t, app, http.MethodPut, "/api/posts/like/999", token, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListPosts_NewestFirstAndPaginated(t *testing.T) {
	_, app := newTestApp(t)
	token := register(t, app, "Ada", "ada@example.com")

	for i := 1; i <= 3; i++ {
		status, _ := call(t, app, http.MethodPost, "/api/posts", token, map[string]string{"text": fmt.Sprintf("post %d", i)})
		require.Equal(t, http.StatusCreated, status)
	}

	status, body := call(t, app, http.MethodGet, "/api/posts", token, nil)
	require.Equal(t, http.StatusOK, status)
	posts := decode[[]models.Post](t, body)
	require.Len(t, posts, 3)
	assert.Equal(t, "post 3", posts[0].Text)
	assert.Equal(t, "post 1", posts[2].Text)

	_, body = call(t, app, http.MethodGet, "/api/posts?limit=1&offset=1", token, nil)
	posts = decode[[]models.Post](t, body)
	require.Len(t, posts, 1)
	assert.Equal(t, "post 2", posts[0].Text)
}

func TestDeletePost_OwnerOnly(t *testing.T) {
	_, app := newTestApp(t)
	ada := register(t, app, "Ada", "ada@example.com")
	bob := register(t, app, "Bob", "bob@example.com")

	_, body := call(t, app, http.MethodPost, "/api/posts", ada, map[string]string{"text": "mine"})
	post := decode[models.Post](t, body)
	path := fmt.Sprintf("/api/posts/%d", post.ID)

	status, body := call(t, app, http.MethodDelete, path, bob, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assertError(t, body, models.CodeForbidden, "User not authorized")

	status, _ = call(t, app, http.MethodGet, path, bob, nil)
	assert.Equal(t, http.StatusOK, status, "post still retrievable")

	call(t, app, http.MethodPut, fmt.Sprintf("/api/posts/like/%d", post.ID), bob, nil)
	status, body = call(t, app, http.MethodDelete, path, ada, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"msg":"Post removed"}`, string(body))

	status, _ = call(t, app, http.MethodGet, path, ada, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestLike_PublishesActivityToAuthor(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	_, rdb := testutil.NewTestRedis(t)
	s, err := NewServerWithDeps(testConfig(), testutil.NewTestDB(t), rdb)
	require.NoError(t, err)
	app := s.App()

	ada := register(t, app, "Ada", "ada@example.com")
	bob := register(t, app, "Bob", "bob@example.com")
	_, body := call(t, app, http.MethodPost, "/api/posts", ada, map[string]string{"text": "hello"})
	post := decode[models.Post](t, body)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	got := make(chan notifications.Event, 2)
	require.NoError(t, notifications.NewNotifier(rdb).Subscribe(ctx, func(userID uint, ev notifications.Event) {
		if userID == post.UserID {
			got <- ev
		}
	}))

	status, _ := call(t, app, http.MethodPut, fmt.Sprintf("/api/posts/like/%d", post.ID), bob, nil)
	require.Equal(t, http.StatusOK, status)

	select {
	case ev := <-got:
		assert.Equal(t, notifications.EventPostLiked, ev.Type)
		assert.Equal(t, post.ID, ev.PostID)
		assert.Equal(t, "Bob", ev.ActorName)
	case <-time.After(2 * time.Second):
		t.Fatal("no activity event delivered")
	}
}
