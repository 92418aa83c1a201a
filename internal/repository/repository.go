package repository

import (
	"context"
	"time"

	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/upstream"
)

// SessionRepository - реестр аутентифицированных сессий по непрозрачному токену
type SessionRepository interface {
	Create(session *upstream.Session, ownerEmail string) (token string, err error)
	Get(token string) (model.SessionEntry, error)
	Revoke(token string)
	Sweep() int
	Run(ctx context.Context, interval time.Duration)
	Count() int
}
