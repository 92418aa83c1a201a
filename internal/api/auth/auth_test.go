package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/middleware"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthService struct {
	login   func(ctx context.Context, creds model.Credentials) (*model.LoginResult, error)
	revoked []string
}

func (f *fakeAuthService) Login(ctx context.Context, creds model.Credentials) (*model.LoginResult, error) {
	return f.login(ctx, creds)
}

func (f *fakeAuthService) Logout(_ context.Context, tok string) error {
	f.revoked = append(f.revoked, tok)
	return nil
}

func (f *fakeAuthService) Session(context.Context, string) (model.SessionEntry, error) {
	return model.SessionEntry{}, apperr.New(apperr.KindInvalidSession, "invalid or expired session")
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestLogin(t *testing.T) {
	var got model.Credentials
	h := NewHandler(HandlerDeps{Serv: &fakeAuthService{login: func(_ context.Context, creds model.Credentials) (*model.LoginResult, error) {
		got = creds
		return &model.LoginResult{Token: "tok-1", Email: creds.Email}, nil
	}}})

	req := httptest.NewRequest(http.MethodPost, "/api/login",
		strings.NewReader(`{"email":"a@b.edu","password":"pw","two_factor_code":"123456"}`))
	rec := httptest.NewRecorder()
	h.Login(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "tok-1", body["session_token"])
	assert.Equal(t, "a@b.edu", body["email"])
	assert.Equal(t, "123456", got.TwoFactorCode)
}

func TestLoginErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"bad json", `{"email":`, nil, http.StatusBadRequest, "invalid_request"},
		{"wrong password", `{"email":"a@b.edu","password":"x"}`, apperr.New(apperr.KindInvalidCredentials, "Invalid email/password combination."), http.StatusUnauthorized, "invalid_credentials"},
		{"two-factor required", `{"email":"a@b.edu","password":"x"}`, apperr.New(apperr.KindTwoFactorRequired, "two-factor code required"), http.StatusUnauthorized, "two_factor_required"},
		{"upstream down", `{"email":"a@b.edu","password":"x"}`, apperr.Upstream(503, "upstream returned 503"), http.StatusBadGateway, "upstream_error"},
		{"protocol drift", `{"email":"a@b.edu","password":"x"}`, apperr.New(apperr.KindProtocol, "login form authenticity token not found"), http.StatusBadGateway, "protocol_error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := NewHandler(HandlerDeps{Serv: &fakeAuthService{login: func(context.Context, model.Credentials) (*model.LoginResult, error) {
				return nil, tc.err
			}}})

			rec := httptest.NewRecorder()
			h.Login(rec, httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(tc.body)))

			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.Equal(t, tc.wantKind, decodeBody(t, rec)["error"])
		})
	}
}

func TestLogoutAndSession(t *testing.T) {
	serv := &fakeAuthService{}
	h := NewHandler(HandlerDeps{Serv: serv})
	sess, err := upstream.NewSession(upstream.Config{BaseURL: "https://gs.example.edu"})
	require.NoError(t, err)
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	entry := model.SessionEntry{Token: "tok-1", OwnerEmail: "a@b.edu", Upstream: sess, CreatedAt: created, LastActive: created}

	req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), entry))
	rec := httptest.NewRecorder()
	h.Session(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "a@b.edu", body["email"])
	assert.Equal(t, "2026-01-02T03:04:05Z", body["created_at"])

	req = httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), entry))
	rec = httptest.NewRecorder()
	h.Logout(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "logged out", decodeBody(t, rec)["status"])
	assert.Equal(t, []string{"tok-1"}, serv.revoked)
}

func TestLogoutWithoutSession(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &fakeAuthService{}})

	rec := httptest.NewRecorder()
	h.Logout(rec, httptest.NewRequest(http.MethodPost, "/api/logout", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
