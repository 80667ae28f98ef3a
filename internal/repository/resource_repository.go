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

// ResourceRepository provides persistence for downloadable resource files.
type ResourceRepository struct {
	db *sqlx.DB
}

// NewResourceRepository creates the repository.
func NewResourceRepository(db *sqlx.DB) *ResourceRepository {
	return &ResourceRepository{db: db}
}

// List returns all resources, newest first.
func (r *ResourceRepository) List(ctx context.Context) ([]models.ResourceFile, error) {
	const query = `SELECT id, name, description, file_path, file_size, created_at FROM resources ORDER BY created_at DESC`
	resources := []models.ResourceFile{}
	if err := r.db.SelectContext(ctx, &resources, query); err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	return resources, nil
}

// FindByID returns a resource by identifier.
func (r *ResourceRepository) FindByID(ctx context.Context, id string) (*models.ResourceFile, error) {
	const query = `SELECT id, name, description, file_path, file_size, created_at FROM resources WHERE id = $1 LIMIT 1`
	var resource models.ResourceFile
	if err := r.db.GetContext(ctx, &resource, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find resource by id: %w", err)
	}
	return &resource, nil
}

// Create inserts a new resource record.
func (r *ResourceRepository) Create(ctx context.Context, resource *models.ResourceFile) error {
	if resource.ID == "" {
		resource.ID = uuid.NewString()
	}
	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO resources (id, name, description, file_path, file_size, created_at) VALUES (:id, :name, :description, :file_path, :file_size, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, resource); err != nil {
		return fmt.Errorf("create resource: %w", err)
	}
	return nil
}

// Delete removes a resource record by id.
func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM resources WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
