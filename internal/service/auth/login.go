package auth

import (
	"context"
	"log"
	"strings"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/pkg/token"
)

func (s *serv) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	creds.Email = strings.TrimSpace(creds.Email)
	creds.TwoFactorCode = strings.TrimSpace(creds.TwoFactorCode)
	if creds.Email == "" || creds.Password == "" {
		return nil, apperr.New(apperr.KindInvalidRequest, "email and password are required")
	}

	// Вход на upstream
	sess, err := s.driver.Login(ctx, creds)
	if err != nil {
		return nil, err
	}

	// Регистрация сессии под новым токеном
	tok, err := s.sessionRepo.Create(sess, creds.Email)
	if err != nil {
		sess.Close()
		return nil, err
	}

	log.Printf("[auth] %s logged in, session %s", creds.Email, token.Fingerprint(tok))

	return &model.LoginResult{
		Token: tok,
		Email: creds.Email,
	}, nil
}
