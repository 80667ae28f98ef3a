package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/elitehub/portal-api/internal/models"
)

// QnARepository provides persistence for question threads and replies.
// Replies are append-only: there are no update or delete statements.
type QnARepository struct {
	db *sqlx.DB
}

// NewQnARepository creates the repository.
func NewQnARepository(db *sqlx.DB) *QnARepository {
	return &QnARepository{db: db}
}

// ListPosts returns all threads newest first, each with its replies in
// append order.
func (r *QnARepository) ListPosts(ctx context.Context) ([]models.QnAPost, error) {
	const postQuery = `SELECT id, title, author, content, created_at FROM qna_posts ORDER BY created_at DESC`
	posts := []models.QnAPost{}
	if err := r.db.SelectContext(ctx, &posts, postQuery); err != nil {
		return nil, fmt.Errorf("list qna posts: %w", err)
	}
	if len(posts) == 0 {
		return posts, nil
	}

	const replyQuery = `SELECT id, post_id, author, content, created_at FROM qna_replies ORDER BY created_at ASC`
	var replies []models.QnAReply
	if err := r.db.SelectContext(ctx, &replies, replyQuery); err != nil {
		return nil, fmt.Errorf("list qna replies: %w", err)
	}

	byPost := make(map[string][]models.QnAReply, len(posts))
	for _, reply := range replies {
		byPost[reply.PostID] = append(byPost[reply.PostID], reply)
	}
	for i := range posts {
		posts[i].Replies = byPost[posts[i].ID]
		if posts[i].Replies == nil {
			posts[i].Replies = []models.QnAReply{}
		}
	}
	return posts, nil
}

// FindPost returns a single thread with its replies.
func (r *QnARepository) FindPost(ctx context.Context, id string) (*models.QnAPost, error) {
	const postQuery = `SELECT id, title, author, content, created_at FROM qna_posts WHERE id = $1 LIMIT 1`
	var post models.QnAPost
	if err := r.db.GetContext(ctx, &post, postQuery, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find qna post: %w", err)
	}

	const replyQuery = `SELECT id, post_id, author, content, created_at FROM qna_replies WHERE post_id = $1 ORDER BY created_at ASC`
	replies := []models.QnAReply{}
	if err := r.db.SelectContext(ctx, &replies, replyQuery, id); err != nil {
		return nil, fmt.Errorf("list replies for post: %w", err)
	}
	post.Replies = replies
	return &post, nil
}

// CreatePost inserts a new thread.
func (r *QnARepository) CreatePost(ctx context.Context, post *models.QnAPost) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO qna_posts (id, title, author, content, created_at) VALUES (:id, :title, :author, :content, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, post); err != nil {
		return fmt.Errorf("create qna post: %w", err)
	}
	return nil
}

// AppendReply adds a reply to an existing thread.
func (r *QnARepository) AppendReply(ctx context.Context, reply *models.QnAReply) error {
	if reply.ID == "" {
		reply.ID = uuid.NewString()
	}
	if reply.CreatedAt.IsZero() {
		reply.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO qna_replies (id, post_id, author, content, created_at) VALUES (:id, :post_id, :author, :content, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reply); err != nil {
		return fmt.Errorf("append qna reply: %w", err)
	}
	return nil
}
