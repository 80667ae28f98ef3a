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
)

func TestListPostsAttachesReplies(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQnARepository(db)

	now := time.Now()
	postRows := sqlmock.NewRows([]string{"id", "title", "author", "content", "created_at"}).
		AddRow("p2", "숙제 범위 질문", "이서연", "이번 주 숙제 범위가 어디까지인가요?", now).
		AddRow("p1", "교재 질문", "김민준", "교재 47페이지 3번 풀이가 궁금합니다.", now.Add(-time.Hour))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, author, content, created_at FROM qna_posts ORDER BY created_at DESC")).
		WillReturnRows(postRows)

	replyRows := sqlmock.NewRows([]string{"id", "post_id", "author", "content", "created_at"}).
		AddRow("r1", "p1", "관리자", "47페이지 풀이는 영상 3강을 참고하세요.", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, post_id, author, content, created_at FROM qna_replies ORDER BY created_at ASC")).
		WillReturnRows(replyRows)

	posts, err := repo.ListPosts(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Empty(t, posts[0].Replies)
	require.Len(t, posts[1].Replies, 1)
	assert.Equal(t, "관리자", posts[1].Replies[0].Author)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListPostsEmpty(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQnARepository(db)

	mock.ExpectQuery("SELECT id, title, author, content, created_at FROM qna_posts").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "author", "content", "created_at"}))

	posts, err := repo.ListPosts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPost(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQnARepository(db)

	now := time.Now()
	postRows := sqlmock.NewRows([]string{"id", "title", "author", "content", "created_at"}).
		AddRow("p1", "교재 질문", "김민준", "질문 내용", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, author, content, created_at FROM qna_posts WHERE id = $1 LIMIT 1")).
		WithArgs("p1").
		WillReturnRows(postRows)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, post_id, author, content, created_at FROM qna_replies WHERE post_id = $1 ORDER BY created_at ASC")).
		WithArgs("p1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "post_id", "author", "content", "created_at"}))

	post, err := repo.FindPost(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "교재 질문", post.Title)
	assert.Empty(t, post.Replies)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindPostNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewQnARepository(db)

	mock.ExpectQuery("SELECT id, title, author, content, created_at FROM qna_posts WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindPost(context.Background(), "missing")
	assert.Equal(t, sql.ErrNoRows, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
