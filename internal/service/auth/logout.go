package auth

import (
	"context"
	"log"

	"gradescope_proxy/pkg/token"
)

// Logout отзывает сессию. Повторный вызов не является ошибкой.
func (s *serv) Logout(_ context.Context, tok string) error {
	s.sessionRepo.Revoke(tok)
	log.Printf("[auth] session %s revoked", token.Fingerprint(tok))
	return nil
}
