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

// ContentRepository provides persistence for course content cards.
type ContentRepository struct {
	db *sqlx.DB
}

// NewContentRepository creates the repository.
func NewContentRepository(db *sqlx.DB) *ContentRepository {
	return &ContentRepository{db: db}
}

// List returns all contents in insertion order.
func (r *ContentRepository) List(ctx context.Context) ([]models.CourseContent, error) {
	const query = `SELECT id, title, description, image_url, created_at FROM contents ORDER BY created_at ASC`
	contents := []models.CourseContent{}
	if err := r.db.SelectContext(ctx, &contents, query); err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	return contents, nil
}

// Create inserts a new content card.
func (r *ContentRepository) Create(ctx context.Context, content *models.CourseContent) error {
	if content.ID == "" {
		content.ID = uuid.NewString()
	}
	if content.CreatedAt.IsZero() {
		content.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO contents (id, title, description, image_url, created_at) VALUES (:id, :title, :description, :image_url, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, content); err != nil {
		return fmt.Errorf("create content: %w", err)
	}
	return nil
}

// Delete removes a content card by id.
func (r *ContentRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM contents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
