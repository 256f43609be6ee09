package repository

import (
	"context"

	"gorm.io/gorm"

	"devconnector/internal/model"
)

// PostRepository defines post persistence operations. A post is stored as a
// single row; Save rewrites the whole document including likes and comments.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id string) (*model.Post, error)
	ListNewestFirst(ctx context.Context) ([]model.Post, error)
	Save(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, id string) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

// FindByID finds a post by ID.
func (r *postRepository) FindByID(ctx context.Context, id string) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// ListNewestFirst lists every post ordered by date descending.
func (r *postRepository) ListNewestFirst(ctx context.Context) ([]model.Post, error) {
	posts := []model.Post{}
	if err := r.db.WithContext(ctx).Order("date DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Save writes the whole post back.
func (r *postRepository) Save(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

// Delete removes a post and everything embedded in it.
func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error
}
