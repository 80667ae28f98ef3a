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
)

type contentRepository interface {
	List(ctx context.Context) ([]models.CourseContent, error)
	Create(ctx context.Context, content *models.CourseContent) error
	Delete(ctx context.Context, id string) error
}

// ContentService manages the course content catalog.
type ContentService struct {
	repo      contentRepository
	audit     auditWriter
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewContentService constructs a ContentService.
func NewContentService(repo contentRepository, audit auditWriter, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *ContentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ContentService{repo: repo, audit: audit, cache: cache, validator: validate, logger: logger}
}

// List returns the catalog. The bool reports degraded mode (snapshot
// cache answered because the database was unreachable).
func (s *ContentService) List(ctx context.Context) ([]models.CourseContent, bool, error) {
	contents, err := s.repo.List(ctx)
	if err == nil {
		if cacheErr := s.cache.Set(ctx, repository.CacheKeyContents, contents, 0); cacheErr != nil {
			s.logger.Warn("failed to refresh contents snapshot", zap.Error(cacheErr))
		}
		return contents, false, nil
	}

	var cached []models.CourseContent
	if hit, cacheErr := s.cache.Get(ctx, repository.CacheKeyContents, &cached); cacheErr == nil && hit {
		s.logger.Warn("serving contents from snapshot cache", zap.Error(err))
		return cached, true, nil
	}
	return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list contents")
}

// Create adds a content card.
func (s *ContentService) Create(ctx context.Context, actor string, req models.CreateContentRequest) (*models.CourseContent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid content payload")
	}

	content := &models.CourseContent{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := s.repo.Create(ctx, content); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create content")
	}

	s.refreshSnapshot(ctx)
	s.recordAudit(ctx, actor, models.AuditActionCreateItem, content.ID)
	return content, nil
}

// Delete removes a content card.
func (s *ContentService) Delete(ctx context.Context, actor, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "content not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete content")
	}

	s.refreshSnapshot(ctx)
	s.recordAudit(ctx, actor, models.AuditActionDeleteItem, id)
	return nil
}

func (s *ContentService) refreshSnapshot(ctx context.Context) {
	contents, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("failed to rebuild contents snapshot", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, repository.CacheKeyContents, contents, 0); err != nil {
		s.logger.Warn("failed to refresh contents snapshot", zap.Error(err))
	}
}

func (s *ContentService) recordAudit(ctx context.Context, actor, action, id string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		Actor:      actor,
		Action:     action,
		Resource:   "contents",
		ResourceID: &id,
	}); err != nil {
		s.logger.Warn("failed to record content audit log", zap.Error(err))
	}
}
