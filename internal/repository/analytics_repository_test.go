package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elitehub/portal-api/internal/models"
)

func TestRecordIncrementsCounterAndAppendsLog(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO analytics (id, downloads) VALUES ($1, 1)")).
		WithArgs("global").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_activities").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	activity := &models.UserActivity{
		UserName:  "김민준",
		Type:      models.ActivityDownload,
		Detail:    "중간고사 대비자료.pdf",
		Timestamp: time.Now(),
	}
	err := repo.Record(context.Background(), activity)
	require.NoError(t, err)
	assert.NotEmpty(t, activity.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordQnAPostAppendsLogOnly(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	// qna_post has no counter column so only the log insert runs.
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO user_activities").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	activity := &models.UserActivity{
		UserName:  "이서연",
		Type:      models.ActivityQnAPost,
		Detail:    "수학 질문입니다",
		Timestamp: time.Now(),
	}
	err := repo.Record(context.Background(), activity)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordRollsBackOnAppendFailure(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO analytics").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_activities").
		WillReturnError(sql.ErrConnDone)
	mock.ExpectRollback()

	activity := &models.UserActivity{
		UserName:  "김민준",
		Type:      models.ActivityVisit,
		Timestamp: time.Now(),
	}
	err := repo.Record(context.Background(), activity)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshot(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	counterRows := sqlmock.NewRows([]string{"visits", "video_views", "downloads"}).AddRow(40, 12, 7)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT visits, video_views, downloads FROM analytics WHERE id = $1 LIMIT 1")).
		WithArgs("global").
		WillReturnRows(counterRows)

	now := time.Now()
	activityRows := sqlmock.NewRows([]string{"id", "user_name", "activity_type", "detail", "created_at"}).
		AddRow("a1", "김민준", string(models.ActivityVisit), "", now)
	mock.ExpectQuery("SELECT id, user_name, activity_type, detail, created_at FROM user_activities").
		WillReturnRows(activityRows)

	data, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(40), data.Visits)
	assert.Equal(t, int64(7), data.Downloads)
	assert.Len(t, data.Activities, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSnapshotBeforeAnyActivity(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAnalyticsRepository(db)

	mock.ExpectQuery("SELECT visits, video_views, downloads FROM analytics").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery("SELECT id, user_name, activity_type, detail, created_at FROM user_activities").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "activity_type", "detail", "created_at"}))

	data, err := repo.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Zero(t, data.Visits)
	assert.Zero(t, data.VideoViews)
	assert.Zero(t, data.Downloads)
	assert.Empty(t, data.Activities)
	assert.NoError(t, mock.ExpectationsWereMet())
}
