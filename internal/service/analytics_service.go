package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/elitehub/portal-api/internal/models"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
	"github.com/elitehub/portal-api/pkg/export"
)

type analyticsRepository interface {
	Record(ctx context.Context, activity *models.UserActivity) error
	Snapshot(ctx context.Context) (*models.AnalyticsData, error)
}

// AnalyticsService tracks user actions and serves the admin dashboard
// snapshot. Tracking for identities without access silently does nothing.
type AnalyticsService struct {
	repo      analyticsRepository
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAnalyticsService constructs an AnalyticsService.
func NewAnalyticsService(repo analyticsRepository, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AnalyticsService{repo: repo, metrics: metrics, validator: validate, logger: logger}
}

// Track records one action. An identity that cannot access the student
// area is a no-op, not an error.
func (s *AnalyticsService) Track(ctx context.Context, userName string, status models.UserStatus, req models.TrackRequest) error {
	if err := s.validator.Struct(req); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid track payload")
	}
	if !models.CanAccess(status) {
		return nil
	}

	activity := &models.UserActivity{
		UserName:  userName,
		Type:      req.Type,
		Detail:    req.Detail,
		Timestamp: time.Now().UTC(),
	}
	start := time.Now()
	err := s.repo.Record(ctx, activity)
	s.metrics.ObserveDBQuery("analytics_record", time.Since(start))
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record activity")
	}
	return nil
}

// Snapshot returns counters, the full activity log and, when requested,
// the aggregated system metrics.
func (s *AnalyticsService) Snapshot(ctx context.Context, includeSystem bool) (*models.AnalyticsData, error) {
	start := time.Now()
	data, err := s.repo.Snapshot(ctx)
	s.metrics.ObserveDBQuery("analytics_snapshot", time.Since(start))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load analytics")
	}
	if includeSystem && s.metrics != nil {
		system := s.metrics.Snapshot()
		data.System = &system
	}
	return data, nil
}

// Export renders the snapshot as a downloadable report. Supported
// formats are "csv" and "pdf".
func (s *AnalyticsService) Export(ctx context.Context, format string) ([]byte, string, error) {
	if format != "csv" && format != "pdf" {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}

	data, err := s.Snapshot(ctx, false)
	if err != nil {
		return nil, "", err
	}

	table := export.Table{
		Title: "Usage Report",
		Summary: []string{
			fmt.Sprintf("visits: %d", data.Visits),
			fmt.Sprintf("video views: %d", data.VideoViews),
			fmt.Sprintf("downloads: %d", data.Downloads),
		},
		Columns: []string{"time", "user", "type", "detail"},
		Rows:    make([][]string, 0, len(data.Activities)),
	}
	for _, activity := range data.Activities {
		table.Rows = append(table.Rows, []string{
			activity.Timestamp.UTC().Format("2006-01-02 15:04"),
			activity.UserName,
			string(activity.Type),
			activity.Detail,
		})
	}

	filename := fmt.Sprintf("analytics-%s.%s", time.Now().UTC().Format("20060102"), format)
	var rendered []byte
	if format == "csv" {
		rendered, err = export.RenderCSV(table)
	} else {
		rendered, err = export.RenderPDF(table)
	}
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}
	return rendered, filename, nil
}
