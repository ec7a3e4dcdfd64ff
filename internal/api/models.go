package api

import (
	"github.com/google/uuid"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=30"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=30"`
}

// RegisterResponse echoes the public profile of a newly registered user.
type RegisterResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// UserIdentity is the public identity embedded in login responses. It
// mirrors the claims carried by the bearer token.
type UserIdentity struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
}

// LoginResponse defines the successful response for the login endpoint.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserIdentity `json:"user"`
}

// PostRequest defines the payload for creating or updating a post.
// The same shape serves both operations; updates replace the tag set
// wholesale.
type PostRequest struct {
	Title   string  `json:"title"   validate:"required,min=3,max=60"`
	Content string  `json:"content" validate:"required,min=3,max=250"`
	TagIDs  []int64 `json:"tagIds"  validate:"required"`
}

// PostMutationResponse echoes the written state after a create or update.
type PostMutationResponse struct {
	PostID  int64   `json:"postId"`
	Title   string  `json:"title"`
	Content string  `json:"content"`
	TagIDs  []int64 `json:"tagIds"`
}
