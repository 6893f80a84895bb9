package models

import (
	"time"
)

// Comment represents a reader comment on an article
type Comment struct {
	ID         string    `json:"id" db:"id"`
	ArticleID  string    `json:"news_id" db:"news_id"`
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"`
	Message    string    `json:"message" db:"message"`
	IsApproved bool      `json:"is_approved" db:"is_approved"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// CommentForm is a reader-submitted comment
type CommentForm struct {
	Name    string `json:"name" form:"name"`
	Email   string `json:"email" form:"email"`
	Message string `json:"message" form:"message"`
}

// Comment submission outcomes, used as the redirect query flag
const (
	CommentStatusSuccess = "success"
	CommentStatusError   = "error"
)

// LatestCommentsOnDetail is how many approved comments the detail view shows
const LatestCommentsOnDetail = 3
