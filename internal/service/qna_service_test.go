package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elitehub/portal-api/internal/models"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
)

type mockQnARepo struct {
	posts map[string]*models.QnAPost
}

func (m *mockQnARepo) ListPosts(ctx context.Context) ([]models.QnAPost, error) {
	out := make([]models.QnAPost, 0, len(m.posts))
	for _, post := range m.posts {
		out = append(out, *post)
	}
	return out, nil
}

func (m *mockQnARepo) FindPost(ctx context.Context, id string) (*models.QnAPost, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return post, nil
}

func (m *mockQnARepo) CreatePost(ctx context.Context, post *models.QnAPost) error {
	if post.ID == "" {
		post.ID = "generated-id"
	}
	if m.posts == nil {
		m.posts = make(map[string]*models.QnAPost)
	}
	m.posts[post.ID] = post
	return nil
}

func (m *mockQnARepo) AppendReply(ctx context.Context, reply *models.QnAReply) error {
	post, ok := m.posts[reply.PostID]
	if !ok {
		return sql.ErrNoRows
	}
	if reply.ID == "" {
		reply.ID = "generated-reply-id"
	}
	post.Replies = append(post.Replies, *reply)
	return nil
}

type mockAnalyticsRepo struct {
	recorded []models.UserActivity
	snapshot *models.AnalyticsData
}

func (m *mockAnalyticsRepo) Record(ctx context.Context, activity *models.UserActivity) error {
	m.recorded = append(m.recorded, *activity)
	return nil
}

func (m *mockAnalyticsRepo) Snapshot(ctx context.Context) (*models.AnalyticsData, error) {
	if m.snapshot != nil {
		cp := *m.snapshot
		return &cp, nil
	}
	return &models.AnalyticsData{Activities: []models.UserActivity{}}, nil
}

func TestCreatePostTracksActivity(t *testing.T) {
	analyticsRepo := &mockAnalyticsRepo{}
	analytics := NewAnalyticsService(analyticsRepo, nil, validator.New(), zap.NewNop())
	svc := NewQnAService(&mockQnARepo{}, analytics, validator.New(), zap.NewNop())

	post, err := svc.CreatePost(context.Background(), "김민준", models.StatusApproved, models.CreatePostRequest{
		Title:   "수학 질문",
		Content: "47페이지 3번이 이해가 안 됩니다.",
	})
	require.NoError(t, err)
	assert.Equal(t, "김민준", post.Author)
	require.Len(t, analyticsRepo.recorded, 1)
	assert.Equal(t, models.ActivityQnAPost, analyticsRepo.recorded[0].Type)
}

func TestAppendReplyGrowsByExactlyOne(t *testing.T) {
	repo := &mockQnARepo{posts: map[string]*models.QnAPost{
		"p1": {ID: "p1", Title: "수학 질문", Replies: []models.QnAReply{
			{ID: "r1", PostID: "p1", Author: "관리자", Content: "첫 번째 답변"},
		}},
	}}
	svc := NewQnAService(repo, nil, validator.New(), zap.NewNop())

	reply, err := svc.AppendReply(context.Background(), "관리자", "p1", models.CreateReplyRequest{Content: "추가 답변입니다."})
	require.NoError(t, err)
	assert.NotEmpty(t, reply.ID)

	post := repo.posts["p1"]
	require.Len(t, post.Replies, 2)
	assert.Equal(t, "첫 번째 답변", post.Replies[0].Content)
	assert.Equal(t, "추가 답변입니다.", post.Replies[1].Content)
}

func TestAppendReplyMissingPost(t *testing.T) {
	svc := NewQnAService(&mockQnARepo{}, nil, validator.New(), zap.NewNop())

	_, err := svc.AppendReply(context.Background(), "관리자", "missing", models.CreateReplyRequest{Content: "답변"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCreatePostRejectsEmptyContent(t *testing.T) {
	repo := &mockQnARepo{}
	svc := NewQnAService(repo, nil, validator.New(), zap.NewNop())

	_, err := svc.CreatePost(context.Background(), "김민준", models.StatusApproved, models.CreatePostRequest{Title: "제목뿐"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.posts)
}
