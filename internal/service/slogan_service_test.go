package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestGenerateUsesServiceResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"엘리트 허브, 결과로 증명합니다"}`)) //nolint:errcheck
	}))
	defer server.Close()

	svc := NewSloganService(SloganConfig{Endpoint: server.URL, APIKey: "test-key", Timeout: time.Second}, zap.NewNop())

	slogan, generated := svc.Generate(context.Background(), "엘리트 허브")
	assert.True(t, generated)
	assert.Equal(t, "엘리트 허브, 결과로 증명합니다", slogan)
}

func TestGenerateFallbackWithoutAPIKey(t *testing.T) {
	svc := NewSloganService(SloganConfig{}, zap.NewNop())

	slogan, generated := svc.Generate(context.Background(), "ELITE HUB")
	assert.False(t, generated)
	assert.Equal(t, "ELITE HUB과 함께 성공을 향한 여정을 시작하세요", slogan)
}

func TestGenerateFallbackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	svc := NewSloganService(SloganConfig{Endpoint: server.URL, APIKey: "test-key"}, zap.NewNop())

	slogan, generated := svc.Generate(context.Background(), "ELITE HUB")
	assert.False(t, generated)
	assert.Equal(t, "ELITE HUB과 함께 성공을 향한 여정을 시작하세요", slogan)
}

func TestGenerateFallbackOnEmptyText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"text":"  "}`)) //nolint:errcheck
	}))
	defer server.Close()

	svc := NewSloganService(SloganConfig{Endpoint: server.URL, APIKey: "test-key"}, zap.NewNop())

	_, generated := svc.Generate(context.Background(), "ELITE HUB")
	assert.False(t, generated)
}
