package upload

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"gradescope_proxy/internal/apperr"
	"gradescope_proxy/internal/model"
	"gradescope_proxy/internal/upstream"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type receivedPart struct {
	name        string
	filename    string
	contentType string
	content     string
}

type stubSite struct {
	accept bool
	noCSRF bool
	parts  []receivedPart
	fields map[string]string
}

func (s *stubSite) handler() http.Handler {
	mux := chi.NewRouter()
	mux.Get("/courses/10", func(w http.ResponseWriter, r *http.Request) {
		if s.noCSRF {
			fmt.Fprint(w, `<html><head></head></html>`)
			return
		}
		fmt.Fprint(w, `<html><head><meta name="csrf-token" content="course-csrf"></head></html>`)
	})
	mux.Post("/courses/10/assignments/301/submissions", func(w http.ResponseWriter, r *http.Request) {
		reader, err := r.MultipartReader()
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		s.fields = map[string]string{}
		for {
			part, err := reader.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			data, _ := io.ReadAll(part)
			if part.FileName() == "" {
				s.fields[part.FormName()] = string(data)
				continue
			}
			s.parts = append(s.parts, receivedPart{
				name:        part.FormName(),
				filename:    part.FileName(),
				contentType: part.Header.Get("Content-Type"),
				content:     string(data),
			})
		}
		if s.accept {
			http.Redirect(w, r, "/courses/10/assignments/301/submissions/9999", http.StatusFound)
			return
		}
		http.Redirect(w, r, "/courses/10", http.StatusFound)
	})
	mux.Get("/courses/10/assignments/301/submissions/9999", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>submission</html>`)
	})
	return mux
}

func newSession(t *testing.T, site *stubSite) (*upstream.Session, string) {
	t.Helper()
	srv := httptest.NewServer(site.handler())
	t.Cleanup(srv.Close)
	sess, err := upstream.NewSession(upstream.Config{BaseURL: srv.URL})
	require.NoError(t, err)
	return sess, srv.URL
}

func sampleUpload() model.Upload {
	return model.Upload{
		CourseID:        "10",
		AssignmentID:    "301",
		LeaderboardName: "team \"rocket\"",
		Files: []model.UploadFile{
			{Name: "main.py", Content: []byte("print('hello')\n")},
			{Name: "../report.pdf", Content: []byte("%PDF-1.4\n%âãÏÓ\n1 0 obj\n<<>>\nendobj\n")},
		},
	}
}

func TestUpload(t *testing.T) {
	site := &stubSite{accept: true}
	sess, base := newSession(t, site)

	link, err := NewService().Upload(context.Background(), sess, sampleUpload())
	require.NoError(t, err)
	assert.Equal(t, base+"/courses/10/assignments/301/submissions/9999", link)

	assert.Equal(t, "course-csrf", site.fields["authenticity_token"])
	assert.Equal(t, "upload", site.fields["submission[method]"])
	assert.Equal(t, "✓", site.fields["utf8"])
	assert.Equal(t, `team "rocket"`, site.fields["submission[leaderboard_name]"])

	require.Len(t, site.parts, 2)
	assert.Equal(t, "submission[files][]", site.parts[0].name)
	assert.Equal(t, "main.py", site.parts[0].filename)
	assert.True(t, strings.HasPrefix(site.parts[0].contentType, "text/plain"), site.parts[0].contentType)
	assert.Equal(t, "print('hello')\n", site.parts[0].content)

	assert.Equal(t, "report.pdf", site.parts[1].filename)
	assert.Equal(t, "application/pdf", site.parts[1].contentType)
}

func TestUploadRejected(t *testing.T) {
	sess, _ := newSession(t, &stubSite{accept: false})

	_, err := NewService().Upload(context.Background(), sess, sampleUpload())
	assert.ErrorIs(t, err, apperr.ErrUploadRejected)
}

func TestUploadMissingCSRF(t *testing.T) {
	sess, _ := newSession(t, &stubSite{noCSRF: true})

	_, err := NewService().Upload(context.Background(), sess, sampleUpload())
	assert.ErrorIs(t, err, apperr.ErrProtocol)
}

func TestUploadValidation(t *testing.T) {
	sess, _ := newSession(t, &stubSite{accept: true})
	s := NewService()

	up := sampleUpload()
	up.Files = nil
	_, err := s.Upload(context.Background(), sess, up)
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)

	up = sampleUpload()
	up.Files = []model.UploadFile{{Name: "  ", Content: []byte("x")}}
	_, err = s.Upload(context.Background(), sess, up)
	assert.ErrorIs(t, err, apperr.ErrInvalidRequest)
}
