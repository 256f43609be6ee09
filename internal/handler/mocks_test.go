package handler

import (
	"context"

	"github.com/stretchr/testify/mock"

	"devconnector/internal/model"
	"devconnector/internal/service"
)

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, name, email, password string) (string, error) {
	args := m.Called(ctx, name, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetCurrentUser(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

type MockPostService struct {
	mock.Mock
}

func (m *MockPostService) Create(ctx context.Context, callerID, text string) (*model.Post, error) {
	args := m.Called(ctx, callerID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) GetAll(ctx context.Context) ([]model.Post, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Post), args.Error(1)
}

func (m *MockPostService) GetByID(ctx context.Context, postID string) (*model.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *MockPostService) Delete(ctx context.Context, callerID, postID string) error {
	args := m.Called(ctx, callerID, postID)
	return args.Error(0)
}

func (m *MockPostService) Like(ctx context.Context, callerID, postID string) ([]model.Like, error) {
	args := m.Called(ctx, callerID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Like), args.Error(1)
}

func (m *MockPostService) Unlike(ctx context.Context, callerID, postID string) ([]model.Like, error) {
	args := m.Called(ctx, callerID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Like), args.Error(1)
}

func (m *MockPostService) AddComment(ctx context.Context, callerID, postID, text string) ([]model.Comment, error) {
	args := m.Called(ctx, callerID, postID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockPostService) DeleteComment(ctx context.Context, callerID, postID, commentID string) ([]model.Comment, error) {
	args := m.Called(ctx, callerID, postID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Comment), args.Error(1)
}

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) profile(args mock.Arguments) (*model.Profile, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Profile), args.Error(1)
}

func (m *MockProfileService) GetCurrent(ctx context.Context, userID string) (*model.Profile, error) {
	return m.profile(m.Called(ctx, userID))
}

func (m *MockProfileService) Upsert(ctx context.Context, userID string, in service.ProfileInput) (*model.Profile, error) {
	return m.profile(m.Called(ctx, userID, in))
}

func (m *MockProfileService) List(ctx context.Context) ([]model.Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Profile), args.Error(1)
}

func (m *MockProfileService) GetByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	return m.profile(m.Called(ctx, userID))
}

func (m *MockProfileService) DeleteAccount(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockProfileService) AddExperience(ctx context.Context, userID string, exp model.Experience) (*model.Profile, error) {
	return m.profile(m.Called(ctx, userID, exp))
}

func (m *MockProfileService) RemoveExperience(ctx context.Context, userID, expID string) (*model.Profile, error) {
	return m.profile(m.Called(ctx, userID, expID))
}

func (m *MockProfileService) AddEducation(ctx context.Context, userID string, edu model.Education) (*model.Profile, error) {
	return m.profile(m.Called(ctx, userID, edu))
}

func (m *MockProfileService) RemoveEducation(ctx context.Context, userID, eduID string) (*model.Profile, error) {
	return m.profile(m.Called(ctx, userID, eduID))
}
