package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"devconnector/internal/cache"
	apperrors "devconnector/internal/errors"
	"devconnector/internal/metrics"
	"devconnector/internal/model"
	"devconnector/internal/repository"
)

const postCacheTTL = time.Minute

// PostService applies post, like and comment operations. Mutations are a
// plain read-modify-write of the post document without locking.
type PostService interface {
	Create(ctx context.Context, callerID, text string) (*model.Post, error)
	GetAll(ctx context.Context) ([]model.Post, error)
	GetByID(ctx context.Context, postID string) (*model.Post, error)
	Delete(ctx context.Context, callerID, postID string) error
	Like(ctx context.Context, callerID, postID string) ([]model.Like, error)
	Unlike(ctx context.Context, callerID, postID string) ([]model.Like, error)
	AddComment(ctx context.Context, callerID, postID, text string) ([]model.Comment, error)
	DeleteComment(ctx context.Context, callerID, postID, commentID string) ([]model.Comment, error)
}

type postService struct {
	posts   repository.PostRepository
	users   repository.UserRepository
	cache   *cache.Client
	metrics *metrics.Metrics
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, users repository.UserRepository, cache *cache.Client, m *metrics.Metrics) PostService {
	return &postService{
		posts:   posts,
		users:   users,
		cache:   cache,
		metrics: m,
	}
}

func postCacheKey(id string) string {
	return fmt.Sprintf("post:%s", id)
}

// Create stores a new post carrying the caller's name and avatar.
func (s *postService) Create(ctx context.Context, callerID, text string) (*model.Post, error) {
	if text == "" {
		return nil, apperrors.NewValidationError("text", "Text is required")
	}

	user, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}

	post := &model.Post{
		UserID:   user.ID,
		Text:     text,
		Name:     user.Name,
		Avatar:   user.Avatar,
		Likes:    []model.Like{},
		Comments: []model.Comment{},
		Date:     time.Now(),
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.metrics.PostEvent(metrics.PostCreated)
	return post, nil
}

// GetAll returns every post, newest first.
func (s *postService) GetAll(ctx context.Context) ([]model.Post, error) {
	posts, err := s.posts.ListNewestFirst(ctx)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// GetByID returns a post; a malformed id is reported as not found.
func (s *postService) GetByID(ctx context.Context, postID string) (*model.Post, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, apperrors.ErrPostNotFound
	}

	if data, _ := s.cache.Get(ctx, postCacheKey(postID)); data != nil {
		var cached model.Post
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(post); err == nil {
		_ = s.cache.Set(ctx, postCacheKey(postID), payload, postCacheTTL)
	}
	return post, nil
}

// Delete removes the caller's post.
func (s *postService) Delete(ctx context.Context, callerID, postID string) error {
	post, err := s.load(ctx, postID)
	if err != nil {
		return err
	}
	if post.UserID != callerID {
		return apperrors.ErrNotAuthorized
	}

	if err := s.posts.Delete(ctx, post.ID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.invalidate(ctx, post.ID)
	s.metrics.PostEvent(metrics.PostDeleted)
	return nil
}

// Like adds the caller's like in front. Liking twice is an error.
func (s *postService) Like(ctx context.Context, callerID, postID string) ([]model.Like, error) {
	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.LikeIndex(callerID) >= 0 {
		return nil, apperrors.ErrAlreadyLiked
	}

	post.Likes = append([]model.Like{model.NewLike(callerID)}, post.Likes...)
	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	s.metrics.PostEvent(metrics.PostLiked)
	return post.Likes, nil
}

// Unlike removes the caller's like.
func (s *postService) Unlike(ctx context.Context, callerID, postID string) ([]model.Like, error) {
	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	idx := post.LikeIndex(callerID)
	if idx < 0 {
		return nil, apperrors.ErrNotLiked
	}

	post.Likes = append(post.Likes[:idx], post.Likes[idx+1:]...)
	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	s.metrics.PostEvent(metrics.PostUnliked)
	return post.Likes, nil
}

// AddComment adds the caller's comment in front.
func (s *postService) AddComment(ctx context.Context, callerID, postID, text string) ([]model.Comment, error) {
	if text == "" {
		return nil, apperrors.NewValidationError("text", "Text is required")
	}

	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("load author: %w", err)
	}

	post.Comments = append([]model.Comment{model.NewComment(user, text)}, post.Comments...)
	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	s.metrics.PostEvent(metrics.PostCommented)
	return post.Comments, nil
}

// DeleteComment removes one of the caller's comments.
func (s *postService) DeleteComment(ctx context.Context, callerID, postID, commentID string) ([]model.Comment, error) {
	post, err := s.load(ctx, postID)
	if err != nil {
		return nil, err
	}
	idx := post.CommentIndex(commentID)
	if idx < 0 {
		return nil, apperrors.ErrCommentNotFound
	}
	if post.Comments[idx].User != callerID {
		return nil, apperrors.ErrNotAuthorized
	}

	post.Comments = append(post.Comments[:idx], post.Comments[idx+1:]...)
	if err := s.save(ctx, post); err != nil {
		return nil, err
	}
	s.metrics.PostEvent(metrics.PostCommentDeleted)
	return post.Comments, nil
}

// load reads a post from the repository, bypassing the cache.
func (s *postService) load(ctx context.Context, postID string) (*model.Post, error) {
	if _, err := uuid.Parse(postID); err != nil {
		return nil, apperrors.ErrPostNotFound
	}
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, fmt.Errorf("load post: %w", err)
	}
	return post, nil
}

func (s *postService) save(ctx context.Context, post *model.Post) error {
	if err := s.posts.Save(ctx, post); err != nil {
		return fmt.Errorf("save post: %w", err)
	}
	s.invalidate(ctx, post.ID)
	return nil
}

func (s *postService) invalidate(ctx context.Context, postID string) {
	_ = s.cache.Delete(ctx, postCacheKey(postID))
}
