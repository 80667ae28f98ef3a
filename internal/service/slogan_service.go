package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// SloganConfig configures the generative-text call.
type SloganConfig struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// SloganService asks an external generative-text service for a one-line
// marketing slogan. Any failure, including an unset API key, yields the
// fixed fallback. There are no retries.
type SloganService struct {
	cfg    SloganConfig
	client *http.Client
	logger *zap.Logger
}

// NewSloganService constructs a SloganService with sane defaults.
func NewSloganService(cfg SloganConfig, logger *zap.Logger) *SloganService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SloganService{
		cfg:    cfg,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Fallback is the slogan served when generation is unavailable.
func Fallback(brandName string) string {
	return fmt.Sprintf("%s과 함께 성공을 향한 여정을 시작하세요", brandName)
}

type sloganRequest struct {
	Prompt string `json:"prompt"`
}

type sloganResponse struct {
	Text string `json:"text"`
}

// Generate produces a slogan for the brand. The returned bool reports
// whether the text came from the external service (false means fallback).
func (s *SloganService) Generate(ctx context.Context, brandName string) (string, bool) {
	if s.cfg.Endpoint == "" || s.cfg.APIKey == "" {
		return Fallback(brandName), false
	}

	payload, err := json.Marshal(sloganRequest{
		Prompt: fmt.Sprintf("%s 학원을 위한 한 줄 마케팅 슬로건을 한국어로 작성해 주세요.", brandName),
	})
	if err != nil {
		return Fallback(brandName), false
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(payload))
	if err != nil {
		s.logger.Warn("failed to build slogan request", zap.Error(err))
		return Fallback(brandName), false
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("slogan generation call failed", zap.Error(err))
		return Fallback(brandName), false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("slogan generation returned non-OK status", zap.Int("status", resp.StatusCode))
		return Fallback(brandName), false
	}

	var out sloganResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		s.logger.Warn("failed to decode slogan response", zap.Error(err))
		return Fallback(brandName), false
	}

	text := strings.TrimSpace(out.Text)
	if text == "" {
		return Fallback(brandName), false
	}
	return text, true
}
