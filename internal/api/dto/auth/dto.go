package auth

import "time"

type LoginRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	TwoFactorCode string `json:"two_factor_code,omitempty"` // Код 2FA, если включена
}

type LoginResponse struct {
	SessionToken string `json:"session_token"`
	Email        string `json:"email"`
}

type LogoutResponse struct {
	Status string `json:"status"`
}

type SessionResponse struct {
	Email      string    `json:"email"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
}
