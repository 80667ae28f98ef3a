package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTClaims is the access token payload.
type JWTClaims struct {
	UserID string     `json:"user_id"`
	Name   string     `json:"name"`
	Status UserStatus `json:"status"`
	jwt.RegisteredClaims
}

// SignupRequest is the student signup payload. Password confirmation and
// minimum length are checked before any persistence call.
type SignupRequest struct {
	Name            string `json:"name" binding:"required" validate:"required"`
	Phone           string `json:"phone" binding:"required" validate:"required"`
	Academy         string `json:"academy"`
	Password        string `json:"password" binding:"required" validate:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required" validate:"required"`
}

// LoginRequest is the student login payload. The lookup is an exact,
// case-sensitive match on both fields; students carry no password check.
type LoginRequest struct {
	Name  string `json:"name" binding:"required" validate:"required"`
	Phone string `json:"phone" binding:"required" validate:"required"`
}

// AdminLoginRequest carries the shared admin secret.
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required" validate:"required"`
}

// LoginResponse is returned by all login variants.
type LoginResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresIn   int64     `json:"expires_in"`
	IssuedAt    time.Time `json:"issued_at"`
	User        UserInfo  `json:"user"`
}

// UserInfo is the identity block embedded in login responses and /auth/me.
type UserInfo struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	Academy   string     `json:"academy,omitempty"`
	Status    UserStatus `json:"status"`
	CanAccess bool       `json:"can_access"`
}
