package auth

import (
	"context"

	"gradescope_proxy/internal/model"
)

// Session returns the live registry entry for tok and extends its idle window.
func (s *serv) Session(_ context.Context, tok string) (model.SessionEntry, error) {
	return s.sessionRepo.Get(tok)
}
