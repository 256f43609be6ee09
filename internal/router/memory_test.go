package router

import (
	"context"
	"sort"
	"sync"

	"gorm.io/gorm"

	"devconnector/internal/model"
)

// store backs the in-memory repositories used by the router tests.
type store struct {
	mu       sync.Mutex
	users    map[string]model.User
	posts    map[string]model.Post
	profiles map[string]model.Profile
}

func newStore() *store {
	return &store{
		users:    map[string]model.User{},
		posts:    map[string]model.Post{},
		profiles: map[string]model.Profile{},
	}
}

type memUsers struct{ s *store }

func (r memUsers) Create(_ context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := user.BeforeCreate(nil); err != nil {
		return err
	}
	r.s.users[user.ID] = *user
	return nil
}

func (r memUsers) FindByID(_ context.Context, id string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type memPosts struct{ s *store }

func (r memPosts) Create(_ context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := post.BeforeCreate(nil); err != nil {
		return err
	}
	r.s.posts[post.ID] = *post
	return nil
}

func (r memPosts) FindByID(_ context.Context, id string) (*model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &p, nil
}

func (r memPosts) ListNewestFirst(_ context.Context) ([]model.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (r memPosts) Save(_ context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.posts[post.ID] = *post
	return nil
}

func (r memPosts) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.posts, id)
	return nil
}

type memProfiles struct{ s *store }

func (r memProfiles) withUser(p model.Profile) model.Profile {
	if u, ok := r.s.users[p.UserID]; ok {
		p.User = &model.User{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
	}
	return p
}

func (r memProfiles) FindByUserID(_ context.Context, userID string) (*model.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.profiles {
		if p.UserID == userID {
			p = r.withUser(p)
			return &p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memProfiles) List(_ context.Context) ([]model.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]model.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		out = append(out, r.withUser(p))
	}
	return out, nil
}

func (r memProfiles) Create(_ context.Context, profile *model.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := profile.BeforeCreate(nil); err != nil {
		return err
	}
	stored := *profile
	stored.User = nil
	r.s.profiles[profile.ID] = stored
	return nil
}

func (r memProfiles) Save(_ context.Context, profile *model.Profile) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored := *profile
	stored.User = nil
	r.s.profiles[profile.ID] = stored
	return nil
}

func (r memProfiles) DeleteAccount(_ context.Context, userID string) ([]string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var postIDs []string
	for id, p := range r.s.posts {
		if p.UserID == userID {
			postIDs = append(postIDs, id)
			delete(r.s.posts, id)
		}
	}
	for id, p := range r.s.profiles {
		if p.UserID == userID {
			delete(r.s.profiles, id)
		}
	}
	delete(r.s.users, userID)
	return postIDs, nil
}
