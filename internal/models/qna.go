package models

import "time"

// QnAPost is a question thread. Replies only grow: they are appended by
// admins and never edited or removed.
type QnAPost struct {
	ID        string     `db:"id" json:"id"`
	Title     string     `db:"title" json:"title"`
	Author    string     `db:"author" json:"author"`
	Content   string     `db:"content" json:"content"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	Replies   []QnAReply `json:"replies"`
}

// QnAReply is a single admin answer inside a thread.
type QnAReply struct {
	ID        string    `db:"id" json:"id"`
	PostID    string    `db:"post_id" json:"-"`
	Author    string    `db:"author" json:"author"`
	Content   string    `db:"content" json:"content"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CreatePostRequest opens a new question thread.
type CreatePostRequest struct {
	Title   string `json:"title" binding:"required" validate:"required"`
	Content string `json:"content" binding:"required" validate:"required"`
}

// CreateReplyRequest appends an admin reply to a thread.
type CreateReplyRequest struct {
	Content string `json:"content" binding:"required" validate:"required"`
}
