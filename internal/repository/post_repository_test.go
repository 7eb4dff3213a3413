package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/festive-table/internal/model"
)

func setupPostDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Post{}))
	return db
}

func TestPostRepository_CreateAssignsIDAndTimestamp(t *testing.T) {
	repo := NewPostRepository(setupPostDB(t))
	ctx := context.Background()

	post := &model.Post{Name: "Sam", Icon: "🍕", Message: "hi all", AuthorToken: "tok123abc"}
	require.NoError(t, repo.Create(ctx, post))

	assert.Len(t, post.ID, 36)
	assert.False(t, post.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sam", got.Name)
	assert.Equal(t, "tok123abc", got.AuthorToken)
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	repo := NewPostRepository(setupPostDB(t))
	ctx := context.Background()

	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"first", "second", "third"} {
		post := &model.Post{
			Name:        name,
			Icon:        "🍕",
			Message:     "m",
			AuthorToken: "tok123abc",
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Create(ctx, post))
	}

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "third", posts[0].Name)
	assert.Equal(t, "second", posts[1].Name)
	assert.Equal(t, "first", posts[2].Name)
}

func TestPostRepository_GetByIDNotFound(t *testing.T) {
	repo := NewPostRepository(setupPostDB(t))

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPostRepository_Delete(t *testing.T) {
	repo := NewPostRepository(setupPostDB(t))
	ctx := context.Background()

	post := &model.Post{Name: "Sam", Icon: "🍕", Message: "m", AuthorToken: "tok123abc"}
	require.NoError(t, repo.Create(ctx, post))

	require.NoError(t, repo.Delete(ctx, post.ID))
	_, err := repo.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// Absent ids delete cleanly.
	assert.NoError(t, repo.Delete(ctx, post.ID))
	assert.NoError(t, repo.Delete(ctx, "never-existed"))
}
