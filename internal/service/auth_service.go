package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/elitehub/portal-api/internal/models"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
)

type authUserRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByNameAndPhone(ctx context.Context, name, phone string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type credentialRepository interface {
	Get(ctx context.Context, name string, dest interface{}) error
	Save(ctx context.Context, name string, value interface{}) error
}

// AuthConfig defines configuration for authentication flows.
type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	Issuer            string
	MinPasswordLength int
}

// AuthService provides signup and the two login variants. Students log in
// with an exact name and phone match; the admin logs in with a shared
// secret stored as a bcrypt hash in the settings table.
type AuthService struct {
	users     authUserRepository
	settings  credentialRepository
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthConfig
}

// NewAuthService constructs an AuthService instance.
func NewAuthService(users authUserRepository, settings credentialRepository, validate *validator.Validate, logger *zap.Logger, config AuthConfig) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if config.MinPasswordLength <= 0 {
		config.MinPasswordLength = 6
	}
	return &AuthService{users: users, settings: settings, validator: validate, logger: logger, config: config}
}

// Signup registers a new student account in pending status. All field
// checks run before any write so a rejected request leaves no record.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.UserInfo, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid signup payload")
	}
	if len(req.Password) < s.config.MinPasswordLength {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("password must be at least %d characters", s.config.MinPasswordLength))
	}
	if req.Password != req.ConfirmPassword {
		return nil, appErrors.Clone(appErrors.ErrValidation, "passwords do not match")
	}

	if _, err := s.users.FindByNameAndPhone(ctx, req.Name, req.Phone); err == nil {
		return nil, appErrors.Clone(appErrors.ErrConflict, "an account with this name and phone already exists")
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing account")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Name:         req.Name,
		Phone:        req.Phone,
		Academy:      req.Academy,
		Status:       models.StatusPending,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create account")
	}

	s.logger.Info("student signup received", zap.String("user_id", user.ID), zap.String("academy", user.Academy))

	return &models.UserInfo{
		ID:        user.ID,
		Name:      user.Name,
		Phone:     user.Phone,
		Academy:   user.Academy,
		Status:    user.Status,
		CanAccess: models.CanAccess(user.Status),
	}, nil
}

// Login authenticates a student by exact name and phone match. A pending
// account still gets a token carrying its current status; the student
// area gate decides what it may reach.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	user, err := s.users.FindByNameAndPhone(ctx, req.Name, req.Phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "no matching student record")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch account")
	}

	return s.issueToken(user.ID, user.Name, user.Phone, user.Academy, user.Status)
}

// AdminLogin verifies the shared admin secret. The first ever login
// bootstraps the credential: the submitted password becomes the stored
// hash. Every later attempt is compared against that hash.
func (s *AuthService) AdminLogin(ctx context.Context, req models.AdminLoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid admin login payload")
	}

	var cred models.AdminCredential
	err := s.settings.Get(ctx, models.SettingAdminCredential, &cred)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		if len(req.Password) < s.config.MinPasswordLength {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("admin password must be at least %d characters", s.config.MinPasswordLength))
		}
		hash, hashErr := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if hashErr != nil {
			return nil, appErrors.Wrap(hashErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash admin password")
		}
		if saveErr := s.settings.Save(ctx, models.SettingAdminCredential, models.AdminCredential{PasswordHash: string(hash)}); saveErr != nil {
			return nil, appErrors.Wrap(saveErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store admin credential")
		}
		s.logger.Info("admin credential bootstrapped on first login")
	case err != nil:
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load admin credential")
	default:
		if compareErr := bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(req.Password)); compareErr != nil {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "wrong admin password")
		}
	}

	adminID := models.AdminAccountID
	if auditErr := s.users.CreateAuditLog(ctx, &models.AuditLog{
		Actor:      adminID,
		Action:     models.AuditActionAdminLogin,
		Resource:   "auth",
		ResourceID: &adminID,
		Detail:     []byte(`{"status":"success"}`),
	}); auditErr != nil {
		s.logger.Warn("failed to record admin login audit log", zap.Error(auditErr))
	}

	return s.issueToken(models.AdminAccountID, "관리자", "", "", models.StatusAdmin)
}

// Me resolves the identity behind a validated token. The admin sentinel
// never touches the users table.
func (s *AuthService) Me(ctx context.Context, claims *models.JWTClaims) (*models.UserInfo, error) {
	if claims.UserID == models.AdminAccountID {
		return &models.UserInfo{
			ID:        models.AdminAccountID,
			Name:      claims.Name,
			Status:    models.StatusAdmin,
			CanAccess: true,
		}, nil
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrUnauthorized, "account no longer exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}

	return &models.UserInfo{
		ID:        user.ID,
		Name:      user.Name,
		Phone:     user.Phone,
		Academy:   user.Academy,
		Status:    user.Status,
		CanAccess: models.CanAccess(user.Status),
	}, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.AccessTokenSecret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) issueToken(id, name, phone, academy string, status models.UserStatus) (*models.LoginResponse, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.AccessTokenExpiry)
	claims := &models.JWTClaims{
		UserID: id,
		Name:   name,
		Status: status,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   id,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.AccessTokenSecret))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign access token")
	}

	return &models.LoginResponse{
		AccessToken: signed,
		ExpiresIn:   int64(s.config.AccessTokenExpiry.Seconds()),
		IssuedAt:    issuedAt,
		User: models.UserInfo{
			ID:        id,
			Name:      name,
			Phone:     phone,
			Academy:   academy,
			Status:    status,
			CanAccess: models.CanAccess(status),
		},
	}, nil
}
