package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/elitehub/portal-api/internal/models"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	ListByStatus(ctx context.Context, status models.UserStatus) ([]models.User, error)
	UpdateStatus(ctx context.Context, id string, status models.UserStatus, ts time.Time) error
	Delete(ctx context.Context, id string) error
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

// UserService handles the admin approval queue.
type UserService struct {
	repo   userRepository
	logger *zap.Logger
}

// NewUserService constructs a UserService.
func NewUserService(repo userRepository, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, logger: logger}
}

// List returns accounts filtered by status. An empty status returns all.
func (s *UserService) List(ctx context.Context, status models.UserStatus) ([]models.UserInfo, error) {
	if status != "" && status != models.StatusPending && status != models.StatusApproved {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown status filter")
	}

	users, err := s.repo.ListByStatus(ctx, status)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list accounts")
	}

	infos := make([]models.UserInfo, 0, len(users))
	for _, user := range users {
		infos = append(infos, models.UserInfo{
			ID:        user.ID,
			Name:      user.Name,
			Phone:     user.Phone,
			Academy:   user.Academy,
			Status:    user.Status,
			CanAccess: models.CanAccess(user.Status),
		})
	}
	return infos, nil
}

// Approve moves a pending account to approved.
func (s *UserService) Approve(ctx context.Context, id, actor string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}
	if user.Status != models.StatusPending {
		return appErrors.Clone(appErrors.ErrConflict, "only pending accounts can be approved")
	}

	now := time.Now().UTC()
	if err := s.repo.UpdateStatus(ctx, id, models.StatusApproved, now); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve account")
	}

	if auditErr := s.repo.CreateAuditLog(ctx, &models.AuditLog{
		Actor:      actor,
		Action:     models.AuditActionApproveUser,
		Resource:   "users",
		ResourceID: &id,
	}); auditErr != nil {
		s.logger.Warn("failed to record approval audit log", zap.Error(auditErr))
	}

	s.logger.Info("account approved", zap.String("user_id", id))
	return nil
}

// Reject removes a signup entirely. A rejected account leaves no row, so
// the same person can sign up again later.
func (s *UserService) Reject(ctx context.Context, id, actor string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete account")
	}

	if auditErr := s.repo.CreateAuditLog(ctx, &models.AuditLog{
		Actor:      actor,
		Action:     models.AuditActionRejectUser,
		Resource:   "users",
		ResourceID: &id,
	}); auditErr != nil {
		s.logger.Warn("failed to record rejection audit log", zap.Error(auditErr))
	}

	s.logger.Info("account rejected and removed", zap.String("user_id", id), zap.String("status", string(user.Status)))
	return nil
}
