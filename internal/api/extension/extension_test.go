package extension

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gradescope_proxy/internal/middleware"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtensionService struct {
	extensions map[string]model.Extension
	gotUserID  string
	gotDates   model.AssignmentDates
}

func (f *fakeExtensionService) List(context.Context, *upstream.Session, string, string) (map[string]model.Extension, error) {
	return f.extensions, nil
}

func (f *fakeExtensionService) Update(_ context.Context, _ *upstream.Session, _, _, userID string, dates model.AssignmentDates) error {
	f.gotUserID = userID
	f.gotDates = dates
	return nil
}

func withSession(t *testing.T, r *http.Request) *http.Request {
	t.Helper()
	sess, err := upstream.NewSession(upstream.Config{BaseURL: "https://gs.example.edu"})
	require.NoError(t, err)
	return r.WithContext(middleware.WithSession(r.Context(), model.SessionEntry{Token: "t", Upstream: sess}))
}

func TestList(t *testing.T) {
	due := time.Date(2024, 4, 10, 23, 59, 0, 0, time.UTC)
	h := NewHandler(HandlerDeps{Serv: &fakeExtensionService{extensions: map[string]model.Extension{
		"501": {UserID: "501", Name: "Ada Lovelace", DueDate: &due, DeletePath: "/courses/10/assignments/301/extensions/77"},
	}}})

	rec := httptest.NewRecorder()
	h.List(rec, withSession(t, httptest.NewRequest(http.MethodPost, "/api/assignments/extensions?course_id=10&assignment_id=301", nil)))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Ada Lovelace", body["501"]["name"])
	assert.Equal(t, "2024-04-10T23:59:00Z", body["501"]["due_date"])
	assert.Nil(t, body["501"]["release_date"])
}

func TestUpdate(t *testing.T) {
	serv := &fakeExtensionService{}
	h := NewHandler(HandlerDeps{Serv: serv})

	rec := httptest.NewRecorder()
	h.Update(rec, withSession(t, httptest.NewRequest(http.MethodPost,
		"/api/assignments/extensions/update?course_id=10&assignment_id=301&user_id=501",
		strings.NewReader(`{"due_date":"2024-04-12T23:59:00Z"}`))))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "501", serv.gotUserID)
	require.NotNil(t, serv.gotDates.DueDate)
	assert.Nil(t, serv.gotDates.ReleaseDate)
}

func TestUpdateRequiresUserID(t *testing.T) {
	serv := &fakeExtensionService{}
	h := NewHandler(HandlerDeps{Serv: serv})

	rec := httptest.NewRecorder()
	h.Update(rec, withSession(t, httptest.NewRequest(http.MethodPost,
		"/api/assignments/extensions/update?course_id=10&assignment_id=301",
		strings.NewReader(`{"due_date":"2024-04-12T23:59:00Z"}`))))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, serv.gotUserID)
}
