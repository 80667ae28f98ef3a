package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/elitehub/portal-api/internal/models"
	appErrors "github.com/elitehub/portal-api/pkg/errors"
)

type mockUserRepo struct {
	userByLookup *models.User
	userByID     *models.User
	lookupErr    error
	findByIDErr  error
	created      []*models.User
	createErr    error
	auditLogs    []*models.AuditLog
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*models.User, error) {
	if m.findByIDErr != nil {
		return nil, m.findByIDErr
	}
	return m.userByID, nil
}

func (m *mockUserRepo) FindByNameAndPhone(ctx context.Context, name, phone string) (*models.User, error) {
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	return m.userByLookup, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	if user.ID == "" {
		user.ID = "generated-id"
	}
	m.created = append(m.created, user)
	return nil
}

func (m *mockUserRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	m.auditLogs = append(m.auditLogs, log)
	return nil
}

type mockSettingsRepo struct {
	values map[string]interface{}
	getErr error
}

func (m *mockSettingsRepo) Get(ctx context.Context, name string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	value, ok := m.values[name]
	if !ok {
		return sql.ErrNoRows
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockSettingsRepo) Save(ctx context.Context, name string, value interface{}) error {
	if m.values == nil {
		m.values = make(map[string]interface{})
	}
	m.values[name] = value
	return nil
}

func newAuthService(users *mockUserRepo, settings *mockSettingsRepo) *AuthService {
	return NewAuthService(users, settings, validator.New(), zap.NewNop(), AuthConfig{
		AccessTokenSecret: "test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "portal-api",
		MinPasswordLength: 6,
	})
}

func TestSignupCreatesPendingAccount(t *testing.T) {
	users := &mockUserRepo{lookupErr: sql.ErrNoRows}
	svc := newAuthService(users, &mockSettingsRepo{})

	info, err := svc.Signup(context.Background(), models.SignupRequest{
		Name:            "김민준",
		Phone:           "010-1234-5678",
		Academy:         "목동관",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, info.Status)
	assert.False(t, info.CanAccess)
	require.Len(t, users.created, 1)
	assert.NotEqual(t, "secret1", users.created[0].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users.created[0].PasswordHash), []byte("secret1")))
}

func TestSignupRejectsMismatchedPasswordsBeforeWrite(t *testing.T) {
	users := &mockUserRepo{lookupErr: sql.ErrNoRows}
	svc := newAuthService(users, &mockSettingsRepo{})

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Name:            "김민준",
		Phone:           "010-1234-5678",
		Password:        "secret1",
		ConfirmPassword: "secret2",
	})
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErr.Code)
	assert.Empty(t, users.created)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	users := &mockUserRepo{lookupErr: sql.ErrNoRows}
	svc := newAuthService(users, &mockSettingsRepo{})

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Name:            "김민준",
		Phone:           "010-1234-5678",
		Password:        "abc",
		ConfirmPassword: "abc",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, users.created)
}

func TestSignupRejectsDuplicate(t *testing.T) {
	users := &mockUserRepo{userByLookup: &models.User{ID: "u1", Status: models.StatusApproved}}
	svc := newAuthService(users, &mockSettingsRepo{})

	_, err := svc.Signup(context.Background(), models.SignupRequest{
		Name:            "김민준",
		Phone:           "010-1234-5678",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
	assert.Empty(t, users.created)
}

func TestLoginApprovedStudent(t *testing.T) {
	users := &mockUserRepo{userByLookup: &models.User{
		ID: "u1", Name: "김민준", Phone: "010-1234-5678", Academy: "목동관", Status: models.StatusApproved,
	}}
	svc := newAuthService(users, &mockSettingsRepo{})

	resp, err := svc.Login(context.Background(), models.LoginRequest{Name: "김민준", Phone: "010-1234-5678"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.True(t, resp.User.CanAccess)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.StatusApproved, claims.Status)
}

func TestLoginPendingStudentGetsTokenWithoutAccess(t *testing.T) {
	users := &mockUserRepo{userByLookup: &models.User{ID: "u1", Name: "김민준", Phone: "010-1234-5678", Status: models.StatusPending}}
	svc := newAuthService(users, &mockSettingsRepo{})

	resp, err := svc.Login(context.Background(), models.LoginRequest{Name: "김민준", Phone: "010-1234-5678"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.False(t, resp.User.CanAccess)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, claims.Status)
}

func TestLoginUnknownStudent(t *testing.T) {
	users := &mockUserRepo{lookupErr: sql.ErrNoRows}
	svc := newAuthService(users, &mockSettingsRepo{})

	_, err := svc.Login(context.Background(), models.LoginRequest{Name: "없는학생", Phone: "010-0000-0000"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestAdminLoginBootstrapsCredential(t *testing.T) {
	users := &mockUserRepo{}
	settings := &mockSettingsRepo{}
	svc := newAuthService(users, settings)

	resp, err := svc.AdminLogin(context.Background(), models.AdminLoginRequest{Password: "first-secret"})
	require.NoError(t, err)
	assert.Equal(t, models.AdminAccountID, resp.User.ID)
	assert.Equal(t, models.StatusAdmin, resp.User.Status)
	require.Len(t, users.auditLogs, 1)
	assert.Equal(t, models.AuditActionAdminLogin, users.auditLogs[0].Action)

	// Second login must compare against the stored hash, not bootstrap again.
	_, err = svc.AdminLogin(context.Background(), models.AdminLoginRequest{Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	_, err = svc.AdminLogin(context.Background(), models.AdminLoginRequest{Password: "first-secret"})
	require.NoError(t, err)
}

func TestMeResolvesAdminSentinelWithoutRepo(t *testing.T) {
	users := &mockUserRepo{findByIDErr: sql.ErrNoRows}
	svc := newAuthService(users, &mockSettingsRepo{})

	info, err := svc.Me(context.Background(), &models.JWTClaims{UserID: models.AdminAccountID, Name: "관리자", Status: models.StatusAdmin})
	require.NoError(t, err)
	assert.Equal(t, models.AdminAccountID, info.ID)
	assert.True(t, info.CanAccess)
}

func TestMeDeletedAccount(t *testing.T) {
	users := &mockUserRepo{findByIDErr: sql.ErrNoRows}
	svc := newAuthService(users, &mockSettingsRepo{})

	_, err := svc.Me(context.Background(), &models.JWTClaims{UserID: "u1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	users := &mockUserRepo{userByLookup: &models.User{ID: "u1", Name: "김민준", Status: models.StatusApproved}}
	svc := newAuthService(users, &mockSettingsRepo{})

	resp, err := svc.Login(context.Background(), models.LoginRequest{Name: "김민준", Phone: "010-1234-5678"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken + "x")
	assert.Error(t, err)
}
