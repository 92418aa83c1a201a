package upstream

import (
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"

	"golang.org/x/net/publicsuffix"
)

// jar is a cookie jar scoped by the public suffix list that can be emptied
// while requests are in flight.
type jar struct {
	mu    sync.RWMutex
	inner *cookiejar.Jar
}

func newJar() (*jar, error) {
	inner, err := newCookieJar()
	if err != nil {
		return nil, err
	}
	return &jar{inner: inner}, nil
}

func newCookieJar() (*cookiejar.Jar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

func (j *jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.RLock()
	inner := j.inner
	j.mu.RUnlock()
	inner.SetCookies(u, cookies)
}

func (j *jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.RLock()
	inner := j.inner
	j.mu.RUnlock()
	return inner.Cookies(u)
}

func (j *jar) reset() {
	inner, err := newCookieJar()
	if err != nil {
		return
	}
	j.mu.Lock()
	j.inner = inner
	j.mu.Unlock()
}
