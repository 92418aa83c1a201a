package auth

import (
	"context"

	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/repository"
	"gradescope_proxy/internal/service"
	"gradescope_proxy/internal/upstream"
)

// authenticator - то, что умеет провести вход на upstream (Driver)
type authenticator interface {
	Login(ctx context.Context, creds model.Credentials) (*upstream.Session, error)
}

type serv struct {
	driver      authenticator
	sessionRepo repository.SessionRepository
}

func NewService(driver *Driver, sessionRepo repository.SessionRepository) service.AuthService {
	return newService(driver, sessionRepo)
}

func newService(driver authenticator, sessionRepo repository.SessionRepository) *serv {
	return &serv{
		driver:      driver,
		sessionRepo: sessionRepo,
	}
}
