package repository

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"quill/internal/cache"
	"quill/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author@example.com")
	post := &models.Post{
		Title:     "Hello world",
		Content:   "First post content",
		ImageURL:  "images/hello.png",
		CreatorID: user.ID,
	}
	require.NoError(t, repo.Create(ctx, post))
	require.NotZero(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello world", got.Title)
	// Creator is resolved, not just referenced.
	assert.Equal(t, "author@example.com", got.Creator.Email)
}

func TestPostRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 12345)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepository_ListAndCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author@example.com")
	base := time.Now().Add(-time.Hour)
	for i := 1; i <= 5; i++ {
		createTestPost(t, db, user.ID, fmt.Sprintf("P%d", i), base.Add(time.Duration(i)*time.Minute))
	}

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)

	// Page 1 of size 2: newest first.
	page1, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.Equal(t, "P5", page1[0].Title)
	assert.Equal(t, "P4", page1[1].Title)
	assert.Equal(t, "author@example.com", page1[0].Creator.Email)

	// Page 3 of size 2 holds the single oldest post.
	page3, err := repo.List(ctx, 2, 4)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.Equal(t, "P1", page3[0].Title)
}

func TestPostRepository_GetByID_CachedUntilInvalidated(t *testing.T) {
	db := setupTestDB(t)
	mr := miniredis.RunT(t)
	cache.SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { cache.SetClient(nil) })

	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author@example.com")
	post := createTestPost(t, db, user.ID, "cached", time.Now())

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "cached", got.Title)
	assert.Equal(t, "author@example.com", got.Creator.Email)

	// A direct row change is invisible while the cached copy lives.
	require.NoError(t, db.Model(&models.Post{}).Where("id = ?", post.ID).
		Update("title", "changed behind the cache").Error)

	got, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "cached", got.Title)

	// Update writes through and drops the cached copy.
	got.Title = "written through"
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "written through", got.Title)
}

func TestPostRepository_UpdateKeepsCreatorCredential(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author@example.com")
	post := createTestPost(t, db, user.ID, "original", time.Now())

	// A post that round-tripped through the cache carries a creator with no
	// password hash; saving it must leave the user row alone.
	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	got.Creator.Password = ""
	got.Title = "renamed"
	require.NoError(t, repo.Update(ctx, got))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "hashed-password", stored.Password)
}

func TestPostRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author@example.com")
	post := createTestPost(t, db, user.ID, "before", time.Now())

	post.Title = "after edit"
	post.Content = "updated content"
	require.NoError(t, repo.Update(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "after edit", got.Title)
	assert.Equal(t, "updated content", got.Content)
}

func TestPostRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	posts := NewPostRepository(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "author@example.com")
	keep := createTestPost(t, db, user.ID, "keep me", time.Now().Add(-time.Minute))
	doomed := createTestPost(t, db, user.ID, "doomed", time.Now())

	require.NoError(t, posts.Delete(ctx, doomed.ID))

	_, err := posts.GetByID(ctx, doomed.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)

	// The owner's derived post list no longer contains it.
	got, err := users.GetByIDWithPosts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got.Posts, 1)
	assert.Equal(t, keep.ID, got.Posts[0].ID)
}
