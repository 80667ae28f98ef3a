package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elitehub/portal-api/internal/models"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
)

type memoryCacheRepo struct {
	entries map[string][]byte
	getErr  error
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if m.entries == nil {
		m.entries = make(map[string][]byte)
	}
	m.entries[key] = raw
	return nil
}

func (m *memoryCacheRepo) Delete(ctx context.Context, key string) error {
	delete(m.entries, key)
	return nil
}

func newTestCache(repo *memoryCacheRepo) *CacheService {
	return NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
}

func TestGetBrandingDefaultsWhenUnset(t *testing.T) {
	settings := &mockSettingsRepo{}
	svc := NewSettingsService(settings, nil, newTestCache(&memoryCacheRepo{}), validator.New(), zap.NewNop(), "ELITE HUB")

	branding, degraded, err := svc.GetBranding(context.Background())
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, "ELITE HUB", branding.BrandName)
	assert.Equal(t, "ELITE HUB과 함께 성공을 향한 여정을 시작하세요", branding.InstructorSlogan)
}

func TestGetBrandingServesSnapshotWhenStoreDown(t *testing.T) {
	cacheRepo := &memoryCacheRepo{}
	cache := newTestCache(cacheRepo)
	settings := &mockSettingsRepo{}
	svc := NewSettingsService(settings, nil, cache, validator.New(), zap.NewNop(), "ELITE HUB")

	// A successful save warms the snapshot.
	saved := models.BrandingSettings{BrandName: "엘리트 허브", InstructorSlogan: "최상위권으로"}
	require.NoError(t, svc.SaveBranding(context.Background(), models.AdminAccountID, saved))

	// Then the database goes away.
	settings.getErr = errors.New("connection refused")

	branding, degraded, err := svc.GetBranding(context.Background())
	require.NoError(t, err)
	assert.True(t, degraded)
	assert.Equal(t, "엘리트 허브", branding.BrandName)
}

func TestGetBrandingFailsWithoutSnapshot(t *testing.T) {
	settings := &mockSettingsRepo{getErr: errors.New("connection refused")}
	svc := NewSettingsService(settings, nil, newTestCache(&memoryCacheRepo{}), validator.New(), zap.NewNop(), "ELITE HUB")

	_, _, err := svc.GetBranding(context.Background())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestSaveBrandingRequiresBrandName(t *testing.T) {
	svc := NewSettingsService(&mockSettingsRepo{}, nil, newTestCache(&memoryCacheRepo{}), validator.New(), zap.NewNop(), "ELITE HUB")

	err := svc.SaveBranding(context.Background(), models.AdminAccountID, models.BrandingSettings{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestSaveInstructorKeepsAchievementOrder(t *testing.T) {
	settings := &mockSettingsRepo{}
	svc := NewSettingsService(settings, nil, newTestCache(&memoryCacheRepo{}), validator.New(), zap.NewNop(), "ELITE HUB")

	achievements := []string{"수능 만점자 3명 배출", "10년 연속 입시 설명회", "교재 집필"}
	err := svc.SaveInstructor(context.Background(), models.AdminAccountID, models.InstructorInfo{
		Name:         "박선생",
		Role:         "대표 강사",
		Achievements: achievements,
	})
	require.NoError(t, err)

	instructor, degraded, err := svc.GetInstructor(context.Background())
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.Equal(t, achievements, instructor.Achievements)
}

func TestGetInstructorEmptyProfileWhenUnset(t *testing.T) {
	svc := NewSettingsService(&mockSettingsRepo{}, nil, newTestCache(&memoryCacheRepo{}), validator.New(), zap.NewNop(), "ELITE HUB")

	instructor, degraded, err := svc.GetInstructor(context.Background())
	require.NoError(t, err)
	assert.False(t, degraded)
	assert.NotNil(t, instructor.Achievements)
	assert.Empty(t, instructor.Achievements)
}
