package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"devconnector/internal/cache"
	"devconnector/internal/model"
	"devconnector/internal/repository"
)

const userCacheTTL = 5 * time.Minute

// UserService exposes user lookups.
type UserService interface {
	GetCurrentUser(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	repo  repository.UserRepository
	cache *cache.Client
}

// NewUserService builds a UserService with repository and cache.
func NewUserService(repo repository.UserRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, cache: cache}
}

func userCacheKey(id string) string {
	return fmt.Sprintf("user:%s", id)
}

// GetCurrentUser loads the authenticated user. A missing user is not told
// apart from any other failure.
func (s *userService) GetCurrentUser(ctx context.Context, id string) (*model.User, error) {
	if data, _ := s.cache.Get(ctx, userCacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load current user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, userCacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}
