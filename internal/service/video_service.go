package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/elitehub/portal-api/internal/models"
	"github.com/elitehub/portal-api/internal/repository"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
	"github.com/elitehub/portal-api/pkg/youtube"
)

type videoRepository interface {
	List(ctx context.Context) ([]models.ReviewVideo, error)
	Create(ctx context.Context, video *models.ReviewVideo) error
	Delete(ctx context.Context, id string) error
}

// VideoService manages the review video catalog. Only the extracted
// 11-character YouTube id is stored, never the submitted URL.
type VideoService struct {
	repo      videoRepository
	audit     auditWriter
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewVideoService constructs a VideoService.
func NewVideoService(repo videoRepository, audit auditWriter, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *VideoService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &VideoService{repo: repo, audit: audit, cache: cache, validator: validate, logger: logger}
}

// List returns the catalog with degraded-mode semantics.
func (s *VideoService) List(ctx context.Context) ([]models.ReviewVideo, bool, error) {
	videos, err := s.repo.List(ctx)
	if err == nil {
		if cacheErr := s.cache.Set(ctx, repository.CacheKeyVideos, videos, 0); cacheErr != nil {
			s.logger.Warn("failed to refresh videos snapshot", zap.Error(cacheErr))
		}
		return videos, false, nil
	}

	var cached []models.ReviewVideo
	if hit, cacheErr := s.cache.Get(ctx, repository.CacheKeyVideos, &cached); cacheErr == nil && hit {
		s.logger.Warn("serving videos from snapshot cache", zap.Error(err))
		return cached, true, nil
	}
	return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list videos")
}

// Create validates the submitted YouTube URL and stores the extracted id.
// A URL that does not yield an 11-character id is rejected before any
// write.
func (s *VideoService) Create(ctx context.Context, actor string, req models.CreateVideoRequest) (*models.ReviewVideo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid video payload")
	}

	id, ok := youtube.ExtractID(req.YouTubeURL)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrInvalidVideoURL, "not a valid YouTube address")
	}

	video := &models.ReviewVideo{
		Title:       req.Title,
		Description: req.Description,
		YouTubeID:   id,
		SortOrder:   req.SortOrder,
	}
	if err := s.repo.Create(ctx, video); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create video")
	}

	s.refreshSnapshot(ctx)
	s.recordAudit(ctx, actor, models.AuditActionCreateItem, video.ID)
	return video, nil
}

// Delete removes a video record.
func (s *VideoService) Delete(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "video not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete video")
	}

	s.refreshSnapshot(ctx)
	s.recordAudit(ctx, actor, models.AuditActionDeleteItem, id)
	return nil
}

func (s *VideoService) refreshSnapshot(ctx context.Context) {
	videos, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("failed to rebuild videos snapshot", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, repository.CacheKeyVideos, videos, 0); err != nil {
		s.logger.Warn("failed to refresh videos snapshot", zap.Error(err))
	}
}

func (s *VideoService) recordAudit(ctx context.Context, actor, action, id string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		Actor:      actor,
		Action:     action,
		Resource:   "videos",
		ResourceID: &id,
	}); err != nil {
		s.logger.Warn("failed to record video audit log", zap.Error(err))
	}
}
