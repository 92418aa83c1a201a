package middleware

import (
	"context"
	"net/http"
	"strings"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/service"
	"gradescope_proxy/pkg/resp"
	"gradescope_proxy/pkg/token"
)

// SessionTokenHeader - альтернатива заголовку Authorization
const SessionTokenHeader = "X-Session-Token"

type ctxKey struct{}

// RequireSession пропускает запрос дальше только с живой сессией.
// Запись реестра кладётся в контекст запроса.
func RequireSession(auth service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			tok := ExtractToken(r)
			if tok == "" {
				resp.WriteError(w, apperr.New(apperr.KindInvalidSession, "session token required"))
				return
			}
			// Токен чужого формата в реестре быть не может
			if !token.Valid(tok) {
				resp.WriteError(w, apperr.New(apperr.KindInvalidSession, "invalid or expired session"))
				return
			}

			entry, err := auth.Session(r.Context(), tok)
			if err != nil {
				resp.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), entry)))
		})
	}
}

// ExtractToken reads the session token.
// Priority: Authorization: Bearer, then X-Session-Token.
func ExtractToken(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			if tok := strings.TrimSpace(parts[1]); tok != "" {
				return tok
			}
		}
	}
	return strings.TrimSpace(r.Header.Get(SessionTokenHeader))
}

func WithSession(ctx context.Context, entry model.SessionEntry) context.Context {
	return context.WithValue(ctx, ctxKey{}, entry)
}

// SessionFromContext returns the entry stored by RequireSession.
func SessionFromContext(ctx context.Context) (model.SessionEntry, error) {
	entry, ok := ctx.Value(ctxKey{}).(model.SessionEntry)
	if !ok || entry.Upstream == nil {
		return model.SessionEntry{}, apperr.New(apperr.KindInvalidSession, "no session in request context")
	}
	return entry, nil
}
