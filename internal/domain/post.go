package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Post validation errors
var (
	ErrEmptyPostOwner  = errors.New("post owner cannot be empty")
	ErrTitleTooShort   = errors.New("title must be at least 3 characters long")
	ErrTitleTooLong    = errors.New("title must be at most 60 characters long")
	ErrContentTooShort = errors.New("content must be at least 3 characters long")
	ErrContentTooLong  = errors.New("content must be at most 250 characters long")
)

// Title and content length bounds.
const (
	MinTitleLength   = 3
	MaxTitleLength   = 60
	MinContentLength = 3
	MaxContentLength = 250
)

// Post represents a blog post owned by a single user. The post's tag set is
// a value owned by the post: it is replaced wholesale on update, and its rows
// never outlive the post.
type Post struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UserID    uuid.UUID `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// PostDetails is a read model: a post enriched with its owner's username and
// the names of its tags, as returned by list and get-by-id queries.
type PostDetails struct {
	Post
	Username string   `json:"username"`
	Tags     []string `json:"tags"`
}

// NewPost creates a new Post owned by the given user. The ID is assigned by
// the database on insert. Returns an error if validation fails.
func NewPost(userID uuid.UUID, title, content string) (*Post, error) {
	post := &Post{
		Title:     title,
		Content:   content,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}

	if err := post.Validate(); err != nil {
		return nil, err
	}

	return post, nil
}

// Validate checks if the Post has valid data.
// Returns an error if any field fails validation.
func (p *Post) Validate() error {
	if p.UserID == uuid.Nil {
		return ErrEmptyPostOwner
	}

	if len(p.Title) < MinTitleLength {
		return ErrTitleTooShort
	}
	if len(p.Title) > MaxTitleLength {
		return ErrTitleTooLong
	}

	if len(p.Content) < MinContentLength {
		return ErrContentTooShort
	}
	if len(p.Content) > MaxContentLength {
		return ErrContentTooLong
	}

	return nil
}
