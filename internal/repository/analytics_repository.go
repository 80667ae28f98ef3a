package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/elitehub/portal-api/internal/models"
)

// analyticsRowID keys the single analytics row.
const analyticsRowID = "global"

// AnalyticsRepository maintains the shared counter row and the append-only
// activity log. The increment and the append commit in one transaction so
// each counter always equals the number of matching log entries.
type AnalyticsRepository struct {
	db *sqlx.DB
}

// NewAnalyticsRepository creates the repository.
func NewAnalyticsRepository(db *sqlx.DB) *AnalyticsRepository {
	return &AnalyticsRepository{db: db}
}

// Record atomically increments the counter for the activity type and
// appends the log entry. Types without a counter (qna_post) append only.
func (r *AnalyticsRepository) Record(ctx context.Context, activity *models.UserActivity) error {
	if activity.ID == "" {
		activity.ID = uuid.NewString()
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin analytics tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if column := counterColumn(activity.Type); column != "" {
		query := fmt.Sprintf(`INSERT INTO analytics (id, %s) VALUES ($1, 1)
ON CONFLICT (id) DO UPDATE SET %s = analytics.%s + 1`, column, column, column)
		if _, err := tx.ExecContext(ctx, query, analyticsRowID); err != nil {
			return fmt.Errorf("increment %s counter: %w", column, err)
		}
	}

	const insertQuery = `INSERT INTO user_activities (id, user_name, activity_type, detail, created_at) VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, insertQuery, activity.ID, activity.UserName, activity.Type, activity.Detail, activity.Timestamp); err != nil {
		return fmt.Errorf("append activity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit analytics tx: %w", err)
	}
	return nil
}

// Snapshot returns the counters plus the full activity log, newest first.
func (r *AnalyticsRepository) Snapshot(ctx context.Context) (*models.AnalyticsData, error) {
	const counterQuery = `SELECT visits, video_views, downloads FROM analytics WHERE id = $1 LIMIT 1`
	data := &models.AnalyticsData{Activities: []models.UserActivity{}}
	if err := r.db.GetContext(ctx, &data.AnalyticsCounters, counterQuery, analyticsRowID); err != nil {
		// No tracked action yet leaves the row absent; counters stay zero.
		if err != sql.ErrNoRows {
			return nil, fmt.Errorf("load analytics counters: %w", err)
		}
	}

	const activityQuery = `SELECT id, user_name, activity_type, detail, created_at FROM user_activities ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &data.Activities, activityQuery); err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}
	return data, nil
}

func counterColumn(t models.ActivityType) string {
	switch t {
	case models.ActivityVisit:
		return "visits"
	case models.ActivityVideoView:
		return "video_views"
	case models.ActivityDownload:
		return "downloads"
	default:
		return ""
	}
}
