package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/elitehub/portal-api/internal/middleware"
	"github.com/elitehub/portal-api/internal/models"
	"github.com/elitehub/portal-api/internal/service"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*models.User{}}
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return u, nil
}

func (f *fakeUserRepo) FindByNameAndPhone(_ context.Context, name, phone string) (*models.User, error) {
	for _, u := range f.users {
		if u.Name == name && u.Phone == phone {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) CreateAuditLog(context.Context, *models.AuditLog) error {
	return nil
}

type fakeSettingsRepo struct {
	values map[string][]byte
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{values: map[string][]byte{}}
}

func (f *fakeSettingsRepo) Get(_ context.Context, name string, dest interface{}) error {
	raw, ok := f.values[name]
	if !ok {
		return sql.ErrNoRows
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeSettingsRepo) Save(_ context.Context, name string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.values[name] = raw
	return nil
}

func newTestAuthHandler(users *fakeUserRepo) *AuthHandler {
	svc := service.NewAuthService(users, newFakeSettingsRepo(), validator.New(), zap.NewNop(), service.AuthConfig{
		AccessTokenSecret: "handler-test-secret",
		AccessTokenExpiry: time.Hour,
		Issuer:            "portal-api-test",
		MinPasswordLength: 6,
	})
	return NewAuthHandler(svc)
}

func postJSON(t *testing.T, target, body string) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return rec, c
}

func TestAuthHandlerSignupCreatesPendingAccount(t *testing.T) {
	users := newFakeUserRepo()
	handler := newTestAuthHandler(users)

	rec, c := postJSON(t, "/auth/signup", `{"name":"김민준","phone":"010-1234-5678","academy":"엘리트 수학","password":"secret1","confirm_password":"secret1"}`)
	handler.Signup(c)

	require.Equal(t, http.StatusCreated, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "pending", envelope.Data["status"])
	assert.Equal(t, false, envelope.Data["can_access"])
	assert.Len(t, users.users, 1)
}

func TestAuthHandlerSignupPasswordMismatch(t *testing.T) {
	users := newFakeUserRepo()
	handler := newTestAuthHandler(users)

	rec, c := postJSON(t, "/auth/signup", `{"name":"김민준","phone":"010-1234-5678","password":"secret1","confirm_password":"different"}`)
	handler.Signup(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, users.users)
}

func TestAuthHandlerLoginPendingGetsTokenWithoutAccess(t *testing.T) {
	users := newFakeUserRepo()
	users.users["u1"] = &models.User{ID: "u1", Name: "이서연", Phone: "010-2222-3333", Status: models.StatusPending}
	handler := newTestAuthHandler(users)

	rec, c := postJSON(t, "/auth/login", `{"name":"이서연","phone":"010-2222-3333"}`)
	handler.Login(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data["access_token"])
	user := envelope.Data["user"].(map[string]interface{})
	assert.Equal(t, false, user["can_access"])
}

func TestAuthHandlerLoginApprovedIssuesToken(t *testing.T) {
	users := newFakeUserRepo()
	users.users["u1"] = &models.User{ID: "u1", Name: "이서연", Phone: "010-2222-3333", Status: models.StatusApproved}
	handler := newTestAuthHandler(users)

	rec, c := postJSON(t, "/auth/login", `{"name":"이서연","phone":"010-2222-3333"}`)
	handler.Login(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.NotEmpty(t, envelope.Data["access_token"])
}

func TestAuthHandlerLoginUnknownUnauthorized(t *testing.T) {
	handler := newTestAuthHandler(newFakeUserRepo())

	rec, c := postJSON(t, "/auth/login", `{"name":"없는사람","phone":"010-0000-0000"}`)
	handler.Login(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerMeWithoutClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestAuthHandler(newFakeUserRepo())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	handler.Me(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthHandlerMeAdminSentinel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestAuthHandler(newFakeUserRepo())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: models.AdminAccountID, Name: "관리자", Status: models.StatusAdmin})

	handler.Me(c)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, string(models.StatusAdmin), envelope.Data["status"])
}

func TestAuthHandlerLogoutNoContent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newTestAuthHandler(newFakeUserRepo())

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/auth/logout", nil)

	handler.Logout(c)
	c.Writer.WriteHeaderNow()

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

type responseEnvelope struct {
	Data map[string]interface{} `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}
