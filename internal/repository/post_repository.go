package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/d60-Lab/festive-table/internal/model"
)

// PostRepository is the durable store for table posts.
type PostRepository interface {
	// Create inserts a post, assigning ID and CreatedAt when unset.
	Create(ctx context.Context, post *model.Post) error

	// List returns every post, newest first.
	List(ctx context.Context) ([]*model.Post, error)

	// GetByID returns gorm.ErrRecordNotFound when the id is absent.
	GetByID(ctx context.Context, id string) (*model.Post, error)

	// Delete removes a post by id; deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	if post.ID == "" {
		post.ID = uuid.New().String()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) List(ctx context.Context) ([]*model.Post, error) {
	var posts []*model.Post
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error
}
