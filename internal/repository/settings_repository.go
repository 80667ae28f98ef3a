package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// SettingsRepository persists singleton documents (branding, instructor,
// admin credential) as JSON payloads keyed by name. Saves overwrite the
// whole payload; there is no partial update.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates the repository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get loads the named singleton into dest. sql.ErrNoRows is returned
// unwrapped when the singleton has never been saved.
func (r *SettingsRepository) Get(ctx context.Context, name string, dest interface{}) error {
	const query = `SELECT payload FROM settings WHERE name = $1 LIMIT 1`
	var payload []byte
	if err := r.db.GetContext(ctx, &payload, query, name); err != nil {
		if err == sql.ErrNoRows {
			return err
		}
		return fmt.Errorf("get setting %s: %w", name, err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return fmt.Errorf("decode setting %s: %w", name, err)
	}
	return nil
}

// Save upserts the named singleton wholesale.
func (r *SettingsRepository) Save(ctx context.Context, name string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode setting %s: %w", name, err)
	}
	const query = `INSERT INTO settings (name, payload, updated_at) VALUES ($1, $2, $3)
ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.ExecContext(ctx, query, name, payload, time.Now().UTC()); err != nil {
		return fmt.Errorf("save setting %s: %w", name, err)
	}
	return nil
}
