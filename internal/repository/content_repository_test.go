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

func TestListContents(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewContentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "title", "description", "image_url", "created_at"}).
		AddRow("c1", "고등 수학 정규반", "수능 대비 심화 과정", "https://cdn.example.com/math.jpg", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, image_url, created_at FROM contents ORDER BY created_at ASC")).
		WillReturnRows(rows)

	contents, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, contents, 1)
	assert.Equal(t, "고등 수학 정규반", contents[0].Title)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateContent(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewContentRepository(db)

	mock.ExpectExec("INSERT INTO contents").WillReturnResult(sqlmock.NewResult(1, 1))

	content := &models.CourseContent{Title: "중등 과학 특강", ImageURL: "https://cdn.example.com/science.jpg"}
	err := repo.Create(context.Background(), content)
	require.NoError(t, err)
	assert.NotEmpty(t, content.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteContentMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewContentRepository(db)

	mock.ExpectExec("DELETE FROM contents").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "missing")
	assert.Equal(t, sql.ErrNoRows, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListVideosOrdering(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewVideoRepository(db)

	now := time.Now()
	order := 1
	rows := sqlmock.NewRows([]string{"id", "title", "description", "youtube_id", "sort_order", "created_at"}).
		AddRow("v1", "1강 집합과 명제", "", "dQw4w9WgXcQ", order, now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, description, youtube_id, sort_order, created_at FROM videos ORDER BY sort_order ASC NULLS LAST, created_at ASC")).
		WillReturnRows(rows)

	videos, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "dQw4w9WgXcQ", videos[0].YouTubeID)
	require.NotNil(t, videos[0].SortOrder)
	assert.Equal(t, 1, *videos[0].SortOrder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateVideo(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewVideoRepository(db)

	mock.ExpectExec("INSERT INTO videos").WillReturnResult(sqlmock.NewResult(1, 1))

	video := &models.ReviewVideo{Title: "2강 함수", YouTubeID: "jNQXAC9IVRw"}
	err := repo.Create(context.Background(), video)
	require.NoError(t, err)
	assert.NotEmpty(t, video.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindResourceByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewResourceRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "name", "description", "file_path", "file_size", "created_at"}).
		AddRow("r1", "중간고사 대비자료.pdf", "2026년 1학기", "r1/중간고사 대비자료.pdf", int64(204800), now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, name, description, file_path, file_size, created_at FROM resources WHERE id = $1 LIMIT 1")).
		WithArgs("r1").
		WillReturnRows(rows)

	resource, err := repo.FindByID(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "중간고사 대비자료.pdf", resource.Name)
	assert.Equal(t, int64(204800), resource.FileSize)
	assert.NoError(t, mock.ExpectationsWereMet())
}
