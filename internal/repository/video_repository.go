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

// VideoRepository provides persistence for review videos.
type VideoRepository struct {
	db *sqlx.DB
}

// NewVideoRepository creates the repository.
func NewVideoRepository(db *sqlx.DB) *VideoRepository {
	return &VideoRepository{db: db}
}

// List returns all videos ordered by the optional sort order, then by
// insertion time.
func (r *VideoRepository) List(ctx context.Context) ([]models.ReviewVideo, error) {
	const query = `SELECT id, title, description, youtube_id, sort_order, created_at FROM videos ORDER BY sort_order ASC NULLS LAST, created_at ASC`
	videos := []models.ReviewVideo{}
	if err := r.db.SelectContext(ctx, &videos, query); err != nil {
		return nil, fmt.Errorf("list videos: %w", err)
	}
	return videos, nil
}

// Create inserts a new video record.
func (r *VideoRepository) Create(ctx context.Context, video *models.ReviewVideo) error {
	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	if video.CreatedAt.IsZero() {
		video.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO videos (id, title, description, youtube_id, sort_order, created_at) VALUES (:id, :title, :description, :youtube_id, :sort_order, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, video); err != nil {
		return fmt.Errorf("create video: %w", err)
	}
	return nil
}

// Delete removes a video record by id.
func (r *VideoRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM videos WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
