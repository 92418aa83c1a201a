package model

import (
	"time"

	"gradescope_proxy/internal/upstream"
)

// SessionEntry - запись реестра сессий
type SessionEntry struct {
	Token      string
	OwnerEmail string
	Upstream   *upstream.Session
	CreatedAt  time.Time
	LastActive time.Time
}

// LoginResult is what a successful login hands back to the API layer.
type LoginResult struct {
	Token string
	Email string
}
