package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"quill/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &models.User{
		Email:    "alice@example.com",
		Password: "hash",
		Name:     "Alice",
		Status:   models.DefaultStatus,
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotZero(t, user.ID)

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, models.DefaultStatus, got.Status)
}

func TestUserRepository_CreateDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	createTestUser(t, db, "dup@example.com")

	err := repo.Create(ctx, &models.User{
		Email:    "dup@example.com",
		Password: "hash",
		Name:     "Other",
	})
	require.Error(t, err)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeConflict, appErr.Code)
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	_, err := repo.GetByID(context.Background(), 999)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestUserRepository_GetByEmail_MissIsNil(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)

	got, err := repo.GetByEmail(context.Background(), "nobody@example.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "bob@example.com")
	user.Status = "Shipping it"
	require.NoError(t, repo.Update(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shipping it", got.Status)
}

func TestUserRepository_UpdateKeepsPasswordHash(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "bob@example.com")

	// A user that went through the cache carries no hash; updating it must
	// not touch the stored credential.
	user.Password = ""
	user.Status = "Shipping it"
	require.NoError(t, repo.Update(ctx, user))

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, "hashed-password", stored.Password)
	assert.Equal(t, "Shipping it", stored.Status)
}

func TestUserRepository_GetByIDWithPosts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := createTestUser(t, db, "carol@example.com")
	base := time.Now().Add(-time.Hour)
	createTestPost(t, db, user.ID, "first", base)
	createTestPost(t, db, user.ID, "second", base.Add(time.Minute))

	got, err := repo.GetByIDWithPosts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, got.Posts, 2)
	// Newest first.
	assert.Equal(t, "second", got.Posts[0].Title)
	assert.Equal(t, "first", got.Posts[1].Title)
}
