package upload

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/middleware"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploadService struct {
	got  model.Upload
	link string
	err  error
}

func (f *fakeUploadService) Upload(_ context.Context, _ *upstream.Session, up model.Upload) (string, error) {
	f.got = up
	return f.link, f.err
}

func multipartRequest(t *testing.T, target string, files map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for name, content := range files {
		part, err := mw.CreateFormFile(filesField, name)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	r := httptest.NewRequest(http.MethodPost, target, &buf)
	r.Header.Set("Content-Type", mw.FormDataContentType())

	sess, err := upstream.NewSession(upstream.Config{BaseURL: "https://gs.example.edu"})
	require.NoError(t, err)
	return r.WithContext(middleware.WithSession(r.Context(), model.SessionEntry{Token: "t", Upstream: sess}))
}

func TestUpload(t *testing.T) {
	serv := &fakeUploadService{link: "https://gs.example.edu/courses/10/assignments/301/submissions/9999"}
	h := NewHandler(HandlerDeps{Serv: serv})

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartRequest(t, "/api/assignments/upload?course_id=10&assignment_id=301&leaderboard_name=rocket",
		map[string]string{"main.py": "print('hi')\n"}))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, serv.link, body["submission_link"])

	assert.Equal(t, "10", serv.got.CourseID)
	assert.Equal(t, "301", serv.got.AssignmentID)
	assert.Equal(t, "rocket", serv.got.LeaderboardName)
	require.Len(t, serv.got.Files, 1)
	assert.Equal(t, "main.py", serv.got.Files[0].Name)
	assert.Equal(t, "print('hi')\n", string(serv.got.Files[0].Content))
}

func TestUploadWithoutFiles(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &fakeUploadService{}})

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartRequest(t, "/api/assignments/upload?course_id=10&assignment_id=301", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadNotMultipart(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &fakeUploadService{}})

	r := multipartRequest(t, "/api/assignments/upload?course_id=10&assignment_id=301", nil)
	r.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Upload(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUploadRejected(t *testing.T) {
	h := NewHandler(HandlerDeps{Serv: &fakeUploadService{err: apperr.New(apperr.KindUploadRejected, "submission was not accepted")}})

	rec := httptest.NewRecorder()
	h.Upload(rec, multipartRequest(t, "/api/assignments/upload?course_id=10&assignment_id=301",
		map[string]string{"main.py": "x"}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
