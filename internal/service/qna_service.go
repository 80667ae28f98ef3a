package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/elitehub/portal-api/internal/models"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
)

type qnaRepository interface {
	ListPosts(ctx context.Context) ([]models.QnAPost, error)
	FindPost(ctx context.Context, id string) (*models.QnAPost, error)
	CreatePost(ctx context.Context, post *models.QnAPost) error
	AppendReply(ctx context.Context, reply *models.QnAReply) error
}

// QnAService manages question threads. Posts and replies are append-only;
// nothing is ever edited or removed.
type QnAService struct {
	repo      qnaRepository
	analytics *AnalyticsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewQnAService constructs a QnAService.
func NewQnAService(repo qnaRepository, analytics *AnalyticsService, validate *validator.Validate, logger *zap.Logger) *QnAService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &QnAService{repo: repo, analytics: analytics, validator: validate, logger: logger}
}

// List returns all threads, newest first.
func (s *QnAService) List(ctx context.Context) ([]models.QnAPost, error) {
	posts, err := s.repo.ListPosts(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list posts")
	}
	return posts, nil
}

// CreatePost opens a new thread authored by the logged-in student and
// tracks the action.
func (s *QnAService) CreatePost(ctx context.Context, author string, status models.UserStatus, req models.CreatePostRequest) (*models.QnAPost, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid post payload")
	}

	post := &models.QnAPost{
		Title:   req.Title,
		Author:  author,
		Content: req.Content,
		Replies: []models.QnAReply{},
	}
	if err := s.repo.CreatePost(ctx, post); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create post")
	}

	if s.analytics != nil {
		if trackErr := s.analytics.Track(ctx, author, status, models.TrackRequest{
			Type:   models.ActivityQnAPost,
			Detail: post.Title,
		}); trackErr != nil {
			s.logger.Warn("failed to track question post", zap.Error(trackErr))
		}
	}
	return post, nil
}

// AppendReply adds an admin answer to an existing thread. Existing replies
// are untouched; the new one lands at the end.
func (s *QnAService) AppendReply(ctx context.Context, author, postID string, req models.CreateReplyRequest) (*models.QnAReply, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reply payload")
	}

	if _, err := s.repo.FindPost(ctx, postID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "post not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load post")
	}

	reply := &models.QnAReply{
		PostID:  postID,
		Author:  author,
		Content: req.Content,
	}
	if err := s.repo.AppendReply(ctx, reply); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to append reply")
	}
	return reply, nil
}
