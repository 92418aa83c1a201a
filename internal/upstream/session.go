// Package upstream is the HTTP side of the proxy: one Session per logged-in identity.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"gradescope_proxy/internal/apperr"
)

const (
	CSRFHeader = "X-CSRF-Token"

	defaultTimeout = 20 * time.Second
	maxRedirects   = 10
	maxBodySize    = 16 << 20
)

type Config struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// Session wraps a cookie jar and a CSRF header value for one upstream identity.
// It is safe for concurrent use.
type Session struct {
	baseURL   *url.URL
	client    *http.Client
	jar       *jar
	userAgent string

	mu     sync.RWMutex
	csrf   string
	closed bool
}

// Response is a fully read upstream response.
type Response struct {
	StatusCode int
	// URL is the final URL after redirects.
	URL    *url.URL
	Header http.Header
	Body   []byte
	// History holds the status codes of the redirect hops, first hop first.
	History []int
}

type historyKey struct{}

func NewSession(cfg Config) (*Session, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid upstream base url %q", cfg.BaseURL)
	}

	j, err := newJar()
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Session{
		baseURL:   base,
		userAgent: cfg.UserAgent,
		jar:       j,
		client: &http.Client{
			// Свой пул соединений: Close не должен трогать чужие сессии
			Transport:     http.DefaultTransport.(*http.Transport).Clone(),
			Jar:           j,
			Timeout:       timeout,
			CheckRedirect: recordRedirect,
		},
	}, nil
}

// recordRedirect appends the status of every redirect hop to the history
// slice carried in the request context.
func recordRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	if h, ok := req.Context().Value(historyKey{}).(*[]int); ok && req.Response != nil {
		*h = append(*h, req.Response.StatusCode)
	}
	return nil
}

func (s *Session) SetCSRFToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.csrf = token
}

func (s *Session) CSRFToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.csrf
}

// Cookies returns the cookies the jar would send to the upstream base URL.
func (s *Session) Cookies() []*http.Cookie {
	return s.jar.Cookies(s.baseURL)
}

// Close drops the identity: the CSRF value is cleared, the jar is replaced
// with an empty one and idle connections are closed. Further requests fail.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.csrf = ""
	s.jar.reset()
	s.client.CloseIdleConnections()
}

func (s *Session) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Resolve turns a site-relative path into an absolute upstream URL.
func (s *Session) Resolve(path string, query url.Values) string {
	ref := &url.URL{Path: path}
	if i := strings.IndexByte(path, '?'); i >= 0 {
		ref = &url.URL{Path: path[:i], RawQuery: path[i+1:]}
	}
	u := s.baseURL.ResolveReference(ref)
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Do sends a request and returns the response whatever its status.
// Only transport failures are reported as errors.
func (s *Session) Do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader) (*Response, error) {
	s.mu.RLock()
	closed, csrf := s.closed, s.csrf
	s.mu.RUnlock()
	if closed {
		return nil, apperr.New(apperr.KindInvalidSession, "upstream session is closed")
	}

	var history []int
	ctx = context.WithValue(ctx, historyKey{}, &history)

	target := s.Resolve(path, query)
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, err, fmt.Sprintf("build request %s %s", method, path))
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if csrf != "" {
		req.Header.Set(CSRFHeader, csrf)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	res, err := s.client.Do(req)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, err, fmt.Sprintf("%s %s failed", method, path))
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxBodySize+1))
	if err != nil {
		return nil, apperr.Wrap(apperr.KindUpstream, err, fmt.Sprintf("read %s %s", method, path))
	}
	if len(data) > maxBodySize {
		return nil, apperr.Upstream(res.StatusCode, fmt.Sprintf("%s %s: response body exceeds %d bytes", method, path, maxBodySize))
	}

	return &Response{
		StatusCode: res.StatusCode,
		URL:        res.Request.URL,
		Header:     res.Header,
		Body:       data,
		History:    history,
	}, nil
}

// Get fetches path and requires a 2xx response.
func (s *Session) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return s.expectOK(s.Do(ctx, http.MethodGet, path, query, "", nil))
}

// PostForm submits a form-encoded body and requires a 2xx response.
func (s *Session) PostForm(ctx context.Context, path string, form url.Values) (*Response, error) {
	return s.expectOK(s.Do(ctx, http.MethodPost, path, nil, "application/x-www-form-urlencoded", strings.NewReader(form.Encode())))
}

// PostJSON submits payload as JSON and requires a 2xx response.
func (s *Session) PostJSON(ctx context.Context, path string, payload any) (*Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return s.expectOK(s.Do(ctx, http.MethodPost, path, nil, "application/json", bytes.NewReader(data)))
}

func (s *Session) expectOK(res *Response, err error) (*Response, error) {
	if err != nil {
		return nil, err
	}
	if err := res.OK(); err != nil {
		return nil, err
	}
	return res, nil
}

// OK returns an UpstreamError for any non-2xx status.
func (r *Response) OK() error {
	if r.StatusCode >= 200 && r.StatusCode < 300 {
		return nil
	}
	return apperr.Upstream(r.StatusCode, fmt.Sprintf("upstream %s returned %d %s",
		r.URL.Path, r.StatusCode, http.StatusText(r.StatusCode)))
}

// Redirected reports whether the first redirect hop had the given status.
func (r *Response) Redirected(status int) bool {
	return len(r.History) > 0 && r.History[0] == status
}
