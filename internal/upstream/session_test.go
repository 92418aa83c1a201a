package upstream

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"gradescope_proxy/internal/apperr"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSession(t *testing.T, handler http.Handler) (*Session, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	sess, err := NewSession(Config{BaseURL: srv.URL, UserAgent: "proxy-test"})
	require.NoError(t, err)
	return sess, srv
}

func TestNewSessionRejectsBadBaseURL(t *testing.T) {
	_, err := NewSession(Config{BaseURL: "not a url"})
	assert.Error(t, err)

	_, err = NewSession(Config{BaseURL: "/relative"})
	assert.Error(t, err)
}

func TestCookiesPersistAcrossRequests(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "_gradescope_session", Value: "abc", Path: "/"})
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/account", func(w http.ResponseWriter, r *http.Request) {
		c, err := r.Cookie("_gradescope_session")
		if err != nil || c.Value != "abc" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte("ok"))
	})
	sess, _ := newTestSession(t, mux)

	_, err := sess.Get(context.Background(), "/", nil)
	require.NoError(t, err)

	res, err := sess.Get(context.Background(), "/account", nil)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(res.Body))
	require.Len(t, sess.Cookies(), 1)
	assert.Equal(t, "abc", sess.Cookies()[0].Value)
}

func TestCSRFAndUserAgentHeaders(t *testing.T) {
	var gotCSRF, gotUA string
	sess, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCSRF = r.Header.Get(CSRFHeader)
		gotUA = r.Header.Get("User-Agent")
	}))

	_, err := sess.Get(context.Background(), "/", nil)
	require.NoError(t, err)
	assert.Empty(t, gotCSRF)

	sess.SetCSRFToken("csrf-1")
	_, err = sess.Get(context.Background(), "/", nil)
	require.NoError(t, err)
	assert.Equal(t, "csrf-1", gotCSRF)
	assert.Equal(t, "proxy-test", gotUA)
	assert.Equal(t, "csrf-1", sess.CSRFToken())
}

func TestRedirectHistoryAndFinalURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/account", http.StatusFound)
	})
	mux.HandleFunc("/account", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("account page"))
	})
	sess, _ := newTestSession(t, mux)

	res, err := sess.PostForm(context.Background(), "/login", url.Values{"a": {"b"}})
	require.NoError(t, err)
	assert.Equal(t, []int{http.StatusFound}, res.History)
	assert.True(t, res.Redirected(http.StatusFound))
	assert.Equal(t, "/account", res.URL.Path)
	assert.Equal(t, "account page", string(res.Body))
}

func TestNoRedirectEmptyHistory(t *testing.T) {
	sess, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	res, err := sess.Get(context.Background(), "/", nil)
	require.NoError(t, err)
	assert.Empty(t, res.History)
	assert.False(t, res.Redirected(http.StatusFound))
}

func TestNon2xxIsUpstreamError(t *testing.T) {
	sess, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := sess.Get(context.Background(), "/account", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperr.ErrUpstream)

	var e *apperr.Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, http.StatusServiceUnavailable, e.StatusCode)

	res, err := sess.Do(context.Background(), http.MethodGet, "/account", nil, "", nil)
	require.NoError(t, err, "Do is lenient about status")
	assert.Equal(t, http.StatusServiceUnavailable, res.StatusCode)
}

func TestTransportErrorIsUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	sess, err := NewSession(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	srv.Close()

	_, err = sess.Get(context.Background(), "/", nil)
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestPostJSON(t *testing.T) {
	var got map[string]any
	var contentType string
	sess, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)
	}))

	_, err := sess.PostJSON(context.Background(), "/x", map[string]any{"user_id": 7})
	require.NoError(t, err)
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, float64(7), got["user_id"])
}

func TestQueryMerging(t *testing.T) {
	var rawQuery string
	sess, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
	}))

	_, err := sess.Get(context.Background(), "/s.json?content=react", url.Values{"only_keys[]": {"text_files"}})
	require.NoError(t, err)

	q, err := url.ParseQuery(rawQuery)
	require.NoError(t, err)
	assert.Equal(t, "react", q.Get("content"))
	assert.Equal(t, "text_files", q.Get("only_keys[]"))
}

func TestCloseDropsIdentity(t *testing.T) {
	sess, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "s", Value: "1", Path: "/"})
	}))
	sess.SetCSRFToken("csrf")

	_, err := sess.Get(context.Background(), "/", nil)
	require.NoError(t, err)
	require.NotEmpty(t, sess.Cookies())

	sess.Close()
	sess.Close()

	assert.True(t, sess.Closed())
	assert.Empty(t, sess.Cookies())
	assert.Empty(t, sess.CSRFToken())

	_, err = sess.Get(context.Background(), "/", nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidSession)
}

func TestCloseKeepsOtherSessionsConnections(t *testing.T) {
	var opened atomic.Int32
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	srv.Config.ConnState = func(_ net.Conn, state http.ConnState) {
		if state == http.StateNew {
			opened.Add(1)
		}
	}
	srv.Start()
	t.Cleanup(srv.Close)

	alice, err := NewSession(Config{BaseURL: srv.URL})
	require.NoError(t, err)
	bob, err := NewSession(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		_, err := bob.Get(context.Background(), "/", nil)
		require.NoError(t, err)
	}
	require.Equal(t, int32(1), opened.Load())

	alice.Close()

	_, err = bob.Get(context.Background(), "/", nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), opened.Load(), "bob's idle connection must survive alice logging out")
}

func TestOversizedBodyIsUpstreamError(t *testing.T) {
	sess, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.CopyN(w, zeroReader{}, maxBodySize+1)
	}))

	_, err := sess.Get(context.Background(), "/huge", nil)
	assert.ErrorIs(t, err, apperr.ErrUpstream)
}

func TestBodyAtLimitIsRead(t *testing.T) {
	sess, _ := newTestSession(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.CopyN(w, zeroReader{}, maxBodySize)
	}))

	res, err := sess.Get(context.Background(), "/big", nil)
	require.NoError(t, err)
	assert.Len(t, res.Body, maxBodySize)
}

type zeroReader struct{}

func (zeroReader) Read(p []byte) (int, error) {
	clear(p)
	return len(p), nil
}
