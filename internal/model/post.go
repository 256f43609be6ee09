package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Like marks a user's like on a post.
type Like struct {
	ID   string `json:"_id"`
	User string `json:"user"`
}

// Comment is a comment embedded in a post.
type Comment struct {
	ID     string    `json:"_id"`
	User   string    `json:"user"`
	Text   string    `json:"text"`
	Name   string    `json:"name"`
	Avatar string    `json:"avatar"`
	Date   time.Time `json:"date"`
}

// Post is a post document. Likes and comments are stored inline with the
// post row and are ordered newest first.
type Post struct {
	ID       string    `json:"_id" gorm:"type:char(36);primaryKey"`
	UserID   string    `json:"user" gorm:"column:user_id;type:char(36);not null;index"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	Name     string    `json:"name" gorm:"size:255"`
	Avatar   string    `json:"avatar" gorm:"size:512"`
	Likes    []Like    `json:"likes" gorm:"serializer:json;type:json"`
	Comments []Comment `json:"comments" gorm:"serializer:json;type:json"`
	Date     time.Time `json:"date" gorm:"index"`
}

// NewLike builds a like for userID.
func NewLike(userID string) Like {
	return Like{ID: uuid.NewString(), User: userID}
}

// NewComment builds a comment authored by user.
func NewComment(user *User, text string) Comment {
	return Comment{
		ID:     uuid.NewString(),
		User:   user.ID,
		Text:   text,
		Name:   user.Name,
		Avatar: user.Avatar,
		Date:   time.Now(),
	}
}

// BeforeCreate sets the id and the embedded collections before creating the record.
func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Likes == nil {
		p.Likes = []Like{}
	}
	if p.Comments == nil {
		p.Comments = []Comment{}
	}
	return nil
}

// LikeIndex returns the index of userID's like, or -1.
func (p *Post) LikeIndex(userID string) int {
	for i, like := range p.Likes {
		if like.User == userID {
			return i
		}
	}
	return -1
}

// CommentIndex returns the index of the comment with commentID, or -1.
func (p *Post) CommentIndex(commentID string) int {
	for i, comment := range p.Comments {
		if comment.ID == commentID {
			return i
		}
	}
	return -1
}
