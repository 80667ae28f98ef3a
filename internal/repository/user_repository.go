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

// UserRepository provides database access for student accounts.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByID returns a user by identifier.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, name, phone, academy, status, password_hash, created_at, approved_at FROM users WHERE id = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}

// FindByNameAndPhone performs the exact, case-sensitive login lookup.
func (r *UserRepository) FindByNameAndPhone(ctx context.Context, name, phone string) (*models.User, error) {
	const query = `SELECT id, name, phone, academy, status, password_hash, created_at, approved_at FROM users WHERE name = $1 AND phone = $2 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, name, phone); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find user by name and phone: %w", err)
	}
	return &user, nil
}

// ListByStatus returns users filtered by status, oldest signup first. An
// empty status returns everyone.
func (r *UserRepository) ListByStatus(ctx context.Context, status models.UserStatus) ([]models.User, error) {
	var users []models.User
	if status == "" {
		const query = `SELECT id, name, phone, academy, status, password_hash, created_at, approved_at FROM users ORDER BY created_at ASC`
		if err := r.db.SelectContext(ctx, &users, query); err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		return users, nil
	}
	const query = `SELECT id, name, phone, academy, status, password_hash, created_at, approved_at FROM users WHERE status = $1 ORDER BY created_at ASC`
	if err := r.db.SelectContext(ctx, &users, query, status); err != nil {
		return nil, fmt.Errorf("list users by status: %w", err)
	}
	return users, nil
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO users (id, name, phone, academy, status, password_hash, created_at) VALUES (:id, :name, :phone, :academy, :status, :password_hash, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpdateStatus records a status transition.
func (r *UserRepository) UpdateStatus(ctx context.Context, id string, status models.UserStatus, ts time.Time) error {
	const query = `UPDATE users SET status = $2, approved_at = $3 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, status, ts)
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes the record entirely; a rejected signup leaves no trace.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM users WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CreateAuditLog stores an audit log entry.
func (r *UserRepository) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if log.ID == "" {
		log.ID = uuid.NewString()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO audit_logs (id, actor, action, resource, resource_id, detail, created_at) VALUES (:id, :actor, :action, :resource, :resource_id, :detail, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, log); err != nil {
		return fmt.Errorf("create audit log: %w", err)
	}
	return nil
}
