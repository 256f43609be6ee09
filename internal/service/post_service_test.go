package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"devconnector/internal/cache"
	apperrors "devconnector/internal/errors"
	"devconnector/internal/model"
)

const (
	authorID = "author"
	otherID  = "other"
)

func newPostFixture() *model.Post {
	return &model.Post{
		ID:       uuid.NewString(),
		UserID:   authorID,
		Text:     "hi",
		Likes:    []model.Like{},
		Comments: []model.Comment{},
	}
}

func newTestPostService(posts *MockPostRepository, users *MockUserRepository) PostService {
	return NewPostService(posts, users, cache.NewLocal(), nil)
}

func TestPostService_Create(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	users.On("FindByID", mock.Anything, authorID).
		Return(&model.User{ID: authorID, Name: "A", Avatar: "//avatar"}, nil)
	posts.On("Create", mock.Anything, mock.AnythingOfType("*model.Post")).Return(nil)

	post, err := newTestPostService(posts, users).Create(context.Background(), authorID, "hi")
	require.NoError(t, err)

	assert.Equal(t, authorID, post.UserID)
	assert.Equal(t, "A", post.Name)
	assert.Equal(t, "//avatar", post.Avatar)
	assert.Equal(t, "hi", post.Text)
	assert.Empty(t, post.Likes)
	assert.NotNil(t, post.Likes)
	assert.NotNil(t, post.Comments)
	assert.False(t, post.Date.IsZero())
	posts.AssertExpectations(t)
}

func TestPostService_Create_RequiresText(t *testing.T) {
	posts := new(MockPostRepository)
	users := new(MockUserRepository)

	post, err := newTestPostService(posts, users).Create(context.Background(), authorID, "")

	assert.Nil(t, post)
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Text is required", verr.Fields[0].Msg)
	posts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPostService_GetByID(t *testing.T) {
	missing := uuid.NewString()
	tests := []struct {
		name    string
		postID  string
		setup   func(*MockPostRepository)
		wantErr error
	}{
		{
			name:    "malformed id",
			postID:  "not-an-id",
			setup:   func(*MockPostRepository) {},
			wantErr: apperrors.ErrPostNotFound,
		},
		{
			name:   "missing post",
			postID: missing,
			setup: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, missing).Return(nil, gorm.ErrRecordNotFound)
			},
			wantErr: apperrors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := new(MockPostRepository)
			tt.setup(posts)

			post, err := newTestPostService(posts, new(MockUserRepository)).GetByID(context.Background(), tt.postID)

			assert.Nil(t, post)
			assert.ErrorIs(t, err, tt.wantErr)
			posts.AssertExpectations(t)
		})
	}
}

func TestPostService_GetByID_Cached(t *testing.T) {
	post := newPostFixture()
	posts := new(MockPostRepository)
	posts.On("FindByID", mock.Anything, post.ID).Return(post, nil).Once()
	svc := newTestPostService(posts, new(MockUserRepository))

	first, err := svc.GetByID(context.Background(), post.ID)
	require.NoError(t, err)
	second, err := svc.GetByID(context.Background(), post.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	posts.AssertExpectations(t)
}

func TestPostService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		callerID string
		wantErr  error
	}{
		{name: "author deletes", callerID: authorID},
		{name: "non author is rejected", callerID: otherID, wantErr: apperrors.ErrNotAuthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := newPostFixture()
			posts := new(MockPostRepository)
			posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)
			if tt.wantErr == nil {
				posts.On("Delete", mock.Anything, post.ID).Return(nil)
			}

			err := newTestPostService(posts, new(MockUserRepository)).Delete(context.Background(), tt.callerID, post.ID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				posts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			posts.AssertExpectations(t)
		})
	}
}

func TestPostService_LikeIsNotIdempotent(t *testing.T) {
	ctx := context.Background()
	post := newPostFixture()
	posts := new(MockPostRepository)
	posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)
	posts.On("Save", mock.Anything, post).Return(nil)
	svc := newTestPostService(posts, new(MockUserRepository))

	likes, err := svc.Like(ctx, otherID, post.ID)
	require.NoError(t, err)
	require.Len(t, likes, 1)
	assert.Equal(t, otherID, likes[0].User)

	_, err = svc.Like(ctx, otherID, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyLiked)

	likes, err = svc.Unlike(ctx, otherID, post.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)

	likes, err = svc.Like(ctx, otherID, post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)

	posts.AssertNumberOfCalls(t, "Save", 3)
}

func TestPostService_LikePrepends(t *testing.T) {
	post := newPostFixture()
	post.Likes = []model.Like{{ID: "l1", User: otherID}}
	posts := new(MockPostRepository)
	posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)
	posts.On("Save", mock.Anything, post).Return(nil)

	likes, err := newTestPostService(posts, new(MockUserRepository)).Like(context.Background(), authorID, post.ID)
	require.NoError(t, err)

	require.Len(t, likes, 2)
	assert.Equal(t, authorID, likes[0].User)
	assert.Equal(t, otherID, likes[1].User)
}

func TestPostService_Unlike(t *testing.T) {
	tests := []struct {
		name      string
		likes     []model.Like
		wantErr   error
		wantUsers []string
	}{
		{
			name:    "never liked",
			likes:   []model.Like{{ID: "l1", User: authorID}},
			wantErr: apperrors.ErrNotLiked,
		},
		{
			name:      "removes only the caller's like",
			likes:     []model.Like{{ID: "l1", User: authorID}, {ID: "l2", User: otherID}, {ID: "l3", User: "third"}},
			wantUsers: []string{authorID, "third"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := newPostFixture()
			post.Likes = tt.likes
			posts := new(MockPostRepository)
			posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)
			posts.On("Save", mock.Anything, post).Return(nil).Maybe()

			likes, err := newTestPostService(posts, new(MockUserRepository)).Unlike(context.Background(), otherID, post.ID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				posts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			users := make([]string, 0, len(likes))
			for _, like := range likes {
				users = append(users, like.User)
			}
			assert.Equal(t, tt.wantUsers, users)
		})
	}
}

func TestPostService_MissingPost(t *testing.T) {
	ctx := context.Background()
	postID := uuid.NewString()
	posts := new(MockPostRepository)
	posts.On("FindByID", mock.Anything, postID).Return(nil, gorm.ErrRecordNotFound)
	svc := newTestPostService(posts, new(MockUserRepository))

	_, err := svc.Like(ctx, otherID, postID)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	_, err = svc.Unlike(ctx, otherID, postID)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	_, err = svc.AddComment(ctx, otherID, postID, "nice")
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	_, err = svc.DeleteComment(ctx, otherID, postID, "c1")
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, otherID, postID), apperrors.ErrPostNotFound)
}

func TestPostService_StoreFailureIsUnclassified(t *testing.T) {
	post := newPostFixture()
	posts := new(MockPostRepository)
	posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)
	posts.On("Save", mock.Anything, post).Return(errors.New("deadlock"))

	_, err := newTestPostService(posts, new(MockUserRepository)).Like(context.Background(), otherID, post.ID)

	require.Error(t, err)
	assert.False(t, apperrors.IsClassified(err))
}

func TestPostService_AddComment(t *testing.T) {
	post := newPostFixture()
	post.Comments = []model.Comment{{ID: "c0", User: authorID, Text: "first"}}
	posts := new(MockPostRepository)
	users := new(MockUserRepository)
	posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)
	posts.On("Save", mock.Anything, post).Return(nil)
	users.On("FindByID", mock.Anything, otherID).Return(&model.User{ID: otherID, Name: "B", Avatar: "//b"}, nil)

	comments, err := newTestPostService(posts, users).AddComment(context.Background(), otherID, post.ID, "nice")
	require.NoError(t, err)

	require.Len(t, comments, 2)
	assert.Equal(t, "nice", comments[0].Text)
	assert.Equal(t, otherID, comments[0].User)
	assert.Equal(t, "B", comments[0].Name)
	assert.Equal(t, "//b", comments[0].Avatar)
	assert.NotEmpty(t, comments[0].ID)
	assert.Equal(t, "first", comments[1].Text)
}

func TestPostService_DeleteComment(t *testing.T) {
	newPost := func() *model.Post {
		post := newPostFixture()
		post.Comments = []model.Comment{
			{ID: "c1", User: otherID, Text: "one"},
			{ID: "c2", User: authorID, Text: "two"},
			{ID: "c3", User: otherID, Text: "three"},
		}
		return post
	}

	tests := []struct {
		name      string
		callerID  string
		commentID string
		wantErr   error
		wantIDs   []string
	}{
		{name: "author removes exactly one", callerID: otherID, commentID: "c3", wantIDs: []string{"c1", "c2"}},
		{name: "non author is rejected", callerID: authorID, commentID: "c1", wantErr: apperrors.ErrNotAuthorized},
		{name: "post owner cannot remove others' comments", callerID: authorID, commentID: "c3", wantErr: apperrors.ErrNotAuthorized},
		{name: "unknown comment", callerID: otherID, commentID: "c9", wantErr: apperrors.ErrCommentNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			post := newPost()
			before := len(post.Comments)
			posts := new(MockPostRepository)
			posts.On("FindByID", mock.Anything, post.ID).Return(post, nil)
			posts.On("Save", mock.Anything, post).Return(nil).Maybe()

			comments, err := newTestPostService(posts, new(MockUserRepository)).
				DeleteComment(context.Background(), tt.callerID, post.ID, tt.commentID)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Len(t, post.Comments, before)
				posts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
				return
			}
			require.NoError(t, err)
			assert.Len(t, comments, before-1)
			ids := make([]string, 0, len(comments))
			for _, c := range comments {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestPostService_GetAll(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("ListNewestFirst", mock.Anything).Return([]model.Post{{ID: "p2"}, {ID: "p1"}}, nil)

	all, err := newTestPostService(posts, new(MockUserRepository)).GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.Equal(t, "p2", all[0].ID)
}
