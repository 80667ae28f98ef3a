package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/elitehub/portal-api/internal/models"
	"github.com/elitehub/portal-api/internal/repository"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
	"github.com/elitehub/portal-api/pkg/storage"
)

type resourceRepository interface {
	List(ctx context.Context) ([]models.ResourceFile, error)
	FindByID(ctx context.Context, id string) (*models.ResourceFile, error)
	Create(ctx context.Context, resource *models.ResourceFile) error
	Delete(ctx context.Context, id string) error
}

// ResourceConfig bounds uploads.
type ResourceConfig struct {
	MaxFileSizeBytes  int64
	AllowedExtensions []string
}

// UploadRequest carries a streamed file upload from the admin surface.
type UploadRequest struct {
	Name        string
	Description string
	Filename    string
	Size        int64
	Body        io.Reader
}

// SignedDownload is an issued download grant.
type SignedDownload struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ResourceService manages downloadable study materials. File bodies live
// on local disk; downloads go through short-lived signed tokens so the
// student area never exposes raw paths.
type ResourceService struct {
	repo      resourceRepository
	audit     auditWriter
	cache     *CacheService
	store     *storage.LocalStorage
	signer    *storage.SignedURLSigner
	analytics *AnalyticsService
	cfg       ResourceConfig
	logger    *zap.Logger
}

// NewResourceService constructs a ResourceService.
func NewResourceService(repo resourceRepository, audit auditWriter, cache *CacheService, store *storage.LocalStorage, signer *storage.SignedURLSigner, analytics *AnalyticsService, cfg ResourceConfig, logger *zap.Logger) *ResourceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileSizeBytes <= 0 {
		cfg.MaxFileSizeBytes = 10 << 20
	}
	return &ResourceService{repo: repo, audit: audit, cache: cache, store: store, signer: signer, analytics: analytics, cfg: cfg, logger: logger}
}

// List returns the resource catalog with degraded-mode semantics.
func (s *ResourceService) List(ctx context.Context) ([]models.ResourceFile, bool, error) {
	resources, err := s.repo.List(ctx)
	if err == nil {
		if cacheErr := s.cache.Set(ctx, repository.CacheKeyResources, resources, 0); cacheErr != nil {
			s.logger.Warn("failed to refresh resources snapshot", zap.Error(cacheErr))
		}
		return resources, false, nil
	}

	var cached []models.ResourceFile
	if hit, cacheErr := s.cache.Get(ctx, repository.CacheKeyResources, &cached); cacheErr == nil && hit {
		s.logger.Warn("serving resources from snapshot cache", zap.Error(err))
		return cached, true, nil
	}
	return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list resources")
}

// Upload stores the file body and creates the catalog record. Size and
// extension are checked before anything touches disk.
func (s *ResourceService) Upload(ctx context.Context, actor string, req UploadRequest) (*models.ResourceFile, error) {
	if req.Name == "" {
		req.Name = req.Filename
	}
	if req.Name == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "resource name is required")
	}
	if req.Body == nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file body is required")
	}
	if req.Size > s.cfg.MaxFileSizeBytes {
		return nil, appErrors.Clone(appErrors.ErrFileTooLarge, fmt.Sprintf("file exceeds the %d byte limit", s.cfg.MaxFileSizeBytes))
	}
	if !s.extensionAllowed(req.Filename) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file type is not allowed")
	}

	// The id is assigned here so the on-disk path can embed it before the
	// record exists.
	resource := &models.ResourceFile{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		FileSize:    req.Size,
	}
	resource.FilePath = filepath.Join(resource.ID, filepath.Base(req.Filename))

	if _, err := s.store.SaveStream(resource.FilePath, io.LimitReader(req.Body, s.cfg.MaxFileSizeBytes)); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store file")
	}

	if err := s.repo.Create(ctx, resource); err != nil {
		if delErr := s.store.Delete(resource.FilePath); delErr != nil {
			s.logger.Error("failed to remove orphaned file after insert failure", zap.Error(delErr))
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create resource record")
	}

	s.refreshSnapshot(ctx)
	s.recordAudit(ctx, actor, models.AuditActionCreateItem, resource.ID)
	return resource, nil
}

// Delete removes the record and the stored file.
func (s *ResourceService) Delete(ctx context.Context, actor, id string) error {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "resource not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load resource")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "resource not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete resource")
	}

	if resource.FilePath != "" {
		if err := s.store.Delete(resource.FilePath); err != nil {
			s.logger.Warn("failed to remove stored file", zap.String("resource_id", id), zap.Error(err))
		}
	}

	s.refreshSnapshot(ctx)
	s.recordAudit(ctx, actor, models.AuditActionDeleteItem, id)
	return nil
}

// IssueDownloadURL grants a signed, short-lived download link and records
// the download against the requesting student.
func (s *ResourceService) IssueDownloadURL(ctx context.Context, userName string, status models.UserStatus, id string) (*SignedDownload, error) {
	resource, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "resource not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load resource")
	}

	token, expiresAt, err := s.signer.Generate(resource.ID, resource.FilePath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download url")
	}

	if s.analytics != nil {
		if trackErr := s.analytics.Track(ctx, userName, status, models.TrackRequest{
			Type:   models.ActivityDownload,
			Detail: resource.Name,
		}); trackErr != nil {
			s.logger.Warn("failed to track download", zap.Error(trackErr))
		}
	}

	return &SignedDownload{URL: "/api/v1/downloads/" + token, ExpiresAt: expiresAt}, nil
}

// RedeemDownload validates the token and opens the file for streaming.
// The caller is responsible for closing the returned file.
func (s *ResourceService) RedeemDownload(ctx context.Context, token string) (*models.ResourceFile, *os.File, error) {
	resourceID, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid or expired download token")
	}

	resource, err := s.repo.FindByID(ctx, resourceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "resource no longer exists")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load resource")
	}

	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "stored file is missing")
	}
	return resource, file, nil
}

func (s *ResourceService) extensionAllowed(filename string) bool {
	if len(s.cfg.AllowedExtensions) == 0 {
		return true
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	for _, allowed := range s.cfg.AllowedExtensions {
		if strings.EqualFold(strings.TrimPrefix(allowed, "."), ext) {
			return true
		}
	}
	return false
}

func (s *ResourceService) refreshSnapshot(ctx context.Context) {
	resources, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Warn("failed to rebuild resources snapshot", zap.Error(err))
		return
	}
	if err := s.cache.Set(ctx, repository.CacheKeyResources, resources, 0); err != nil {
		s.logger.Warn("failed to refresh resources snapshot", zap.Error(err))
	}
}

func (s *ResourceService) recordAudit(ctx context.Context, actor, action, id string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		Actor:      actor,
		Action:     action,
		Resource:   "resources",
		ResourceID: &id,
	}); err != nil {
		s.logger.Warn("failed to record resource audit log", zap.Error(err))
	}
}
