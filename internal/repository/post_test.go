package repository

import (
	"context"
	"regexp"
	"testing"

	"devhub/internal/models"
	"devhub/internal/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_Create(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewPostRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "posts"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	post := &models.Post{UserID: 1, Text: "hello"}
	require.NoError(t, repo.Create(context.Background(), post))
	assert.Equal(t, uint(1), post.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostRepository_GetByIDAndList(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "Ada", "ada@example.com")
	first := &models.Post{UserID: user.ID, Text: "first"}
	second := &models.Post{UserID: user.ID, Text: "second"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", got.Text)
	assert.NotNil(t, got.Likes)

	_, err = repo.GetByID(ctx, 404)
	assert.True(t, models.IsCode(err, models.CodeNotFound))

	list, err := repo.List(ctx, 50, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "second", list[0].Text)

	ok, err := repo.Exists(ctx, first.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = repo.Exists(ctx, 404)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPostRepository_LikeIsASet(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "Ada", "ada@example.com")
	post := &models.Post{UserID: user.ID, Text: "x"}
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, repo.Like(ctx, post.ID, user.ID))
	err := repo.Like(ctx, post.ID, user.ID)
	assert.True(t, models.IsCode(err, models.CodeConflict))
	assert.Equal(t, "Post already liked", err.Error())

	likes, err := repo.Likes(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)

	require.NoError(t, repo.Unlike(ctx, post.ID, user.ID))
	err = repo.Unlike(ctx, post.ID, user.ID)
	assert.True(t, models.IsCode(err, models.CodeConflict))
	assert.Equal(t, "Post has not yet been liked", err.Error())

	likes, err = repo.Likes(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestPostRepository_DeleteRemovesChildren(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := testutil.CreateUser(t, db, "Ada", "ada@example.com")
	post := &models.Post{UserID: user.ID, Text: "x"}
	require.NoError(t, repo.Create(ctx, post))
	require.NoError(t, repo.Like(ctx, post.ID, user.ID))
	require.NoError(t, NewCommentRepository(db).Create(ctx, &models.Comment{PostID: post.ID, UserID: user.ID, Text: "c"}))

	require.NoError(t, repo.Delete(ctx, post.ID))

	var count int64
	db.Model(&models.Like{}).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Comment{}).Count(&count)
	assert.Zero(t, count)

	err := repo.Delete(ctx, post.ID)
	assert.True(t, models.IsCode(err, models.CodeNotFound))
}
