package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/elitehub/portal-api/internal/models"
	"github.com/elitehub/portal-api/internal/repository"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
)

type settingsRepository interface {
	Get(ctx context.Context, name string, dest interface{}) error
	Save(ctx context.Context, name string, value interface{}) error
}

type auditWriter interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// SettingsService serves the branding and instructor singletons. Reads
// fall back to the cached snapshot when the database is unreachable;
// writes go to the database first and refresh the snapshot after.
type SettingsService struct {
	repo             settingsRepository
	audit            auditWriter
	cache            *CacheService
	validator        *validator.Validate
	logger           *zap.Logger
	defaultBrandName string
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(repo settingsRepository, audit auditWriter, cache *CacheService, validate *validator.Validate, logger *zap.Logger, defaultBrandName string) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if defaultBrandName == "" {
		defaultBrandName = "ELITE HUB"
	}
	return &SettingsService{repo: repo, audit: audit, cache: cache, validator: validate, logger: logger, defaultBrandName: defaultBrandName}
}

// DefaultBranding is what the landing page shows before an admin ever
// saves anything.
func (s *SettingsService) DefaultBranding() models.BrandingSettings {
	return models.BrandingSettings{
		BrandName:        s.defaultBrandName,
		InstructorSlogan: fmt.Sprintf("%s과 함께 성공을 향한 여정을 시작하세요", s.defaultBrandName),
		CopyrightText:    fmt.Sprintf("© %s. All rights reserved.", s.defaultBrandName),
	}
}

// GetBranding returns the branding singleton. The second return value
// reports degraded mode: the database was unreachable and the cached
// snapshot answered instead.
func (s *SettingsService) GetBranding(ctx context.Context) (*models.BrandingSettings, bool, error) {
	var branding models.BrandingSettings
	err := s.repo.Get(ctx, models.SettingBranding, &branding)
	if err == nil {
		if cacheErr := s.cache.Set(ctx, repository.CacheKeyBranding, branding, 0); cacheErr != nil {
			s.logger.Warn("failed to refresh branding snapshot", zap.Error(cacheErr))
		}
		return &branding, false, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		defaults := s.DefaultBranding()
		return &defaults, false, nil
	}

	if hit, cacheErr := s.cache.Get(ctx, repository.CacheKeyBranding, &branding); cacheErr == nil && hit {
		s.logger.Warn("serving branding from snapshot cache", zap.Error(err))
		return &branding, true, nil
	}
	return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load branding")
}

// SaveBranding overwrites the branding singleton wholesale.
func (s *SettingsService) SaveBranding(ctx context.Context, actor string, branding models.BrandingSettings) error {
	if err := s.validator.Struct(branding); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid branding payload")
	}
	if branding.BrandName == "" {
		return appErrors.Clone(appErrors.ErrValidation, "brand name is required")
	}

	if err := s.repo.Save(ctx, models.SettingBranding, branding); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save branding")
	}

	if err := s.cache.Set(ctx, repository.CacheKeyBranding, branding, 0); err != nil {
		s.logger.Warn("failed to refresh branding snapshot", zap.Error(err))
	}
	s.recordAudit(ctx, actor, models.SettingBranding, branding)
	return nil
}

// GetInstructor returns the instructor singleton with the same degraded
// semantics as GetBranding. An unset profile is an empty profile.
func (s *SettingsService) GetInstructor(ctx context.Context) (*models.InstructorInfo, bool, error) {
	var instructor models.InstructorInfo
	err := s.repo.Get(ctx, models.SettingInstructor, &instructor)
	if err == nil {
		if instructor.Achievements == nil {
			instructor.Achievements = []string{}
		}
		if cacheErr := s.cache.Set(ctx, repository.CacheKeyInstructor, instructor, 0); cacheErr != nil {
			s.logger.Warn("failed to refresh instructor snapshot", zap.Error(cacheErr))
		}
		return &instructor, false, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return &models.InstructorInfo{Achievements: []string{}}, false, nil
	}

	if hit, cacheErr := s.cache.Get(ctx, repository.CacheKeyInstructor, &instructor); cacheErr == nil && hit {
		s.logger.Warn("serving instructor profile from snapshot cache", zap.Error(err))
		return &instructor, true, nil
	}
	return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load instructor profile")
}

// SaveInstructor overwrites the instructor singleton wholesale. The
// achievements list is stored in the order it arrives.
func (s *SettingsService) SaveInstructor(ctx context.Context, actor string, instructor models.InstructorInfo) error {
	if err := s.validator.Struct(instructor); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid instructor payload")
	}
	if instructor.Achievements == nil {
		instructor.Achievements = []string{}
	}

	if err := s.repo.Save(ctx, models.SettingInstructor, instructor); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save instructor profile")
	}

	if err := s.cache.Set(ctx, repository.CacheKeyInstructor, instructor, 0); err != nil {
		s.logger.Warn("failed to refresh instructor snapshot", zap.Error(err))
	}
	s.recordAudit(ctx, actor, models.SettingInstructor, instructor)
	return nil
}

func (s *SettingsService) recordAudit(ctx context.Context, actor, name string, value interface{}) {
	if s.audit == nil {
		return
	}
	detail, err := json.Marshal(value)
	if err != nil {
		detail = nil
	}
	if err := s.audit.CreateAuditLog(ctx, &models.AuditLog{
		Actor:      actor,
		Action:     models.AuditActionSaveSetting,
		Resource:   "settings",
		ResourceID: &name,
		Detail:     detail,
	}); err != nil {
		s.logger.Warn("failed to record settings audit log", zap.Error(err))
	}
}
