package env

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"gradescope_proxy/internal/config"
)

const (
	upstreamBaseURLEnvName        = "UPSTREAM_BASE_URL"
	upstreamRequestTimeoutEnvName = "UPSTREAM_REQUEST_TIMEOUT"
	upstreamLoginTimeoutEnvName   = "UPSTREAM_LOGIN_TIMEOUT"
	upstreamUserAgentEnvName      = "UPSTREAM_USER_AGENT"

	defaultUpstreamBaseURL = "https://www.gradescope.com"
)

type upstreamConfig struct {
	baseURL        string
	requestTimeout time.Duration
	loginTimeout   time.Duration
	userAgent      string
}

func NewUpstreamConfig() (config.UpstreamConfig, error) {
	baseURL := strings.TrimRight(getEnv(upstreamBaseURLEnvName, defaultUpstreamBaseURL), "/")
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid %s %q", upstreamBaseURLEnvName, baseURL)
	}

	requestTimeout, err := getDuration(upstreamRequestTimeoutEnvName, 20*time.Second)
	if err != nil {
		return nil, err
	}

	loginTimeout, err := getDuration(upstreamLoginTimeoutEnvName, 45*time.Second)
	if err != nil {
		return nil, err
	}

	return &upstreamConfig{
		baseURL:        baseURL,
		requestTimeout: requestTimeout,
		loginTimeout:   loginTimeout,
		userAgent:      getEnv(upstreamUserAgentEnvName, "gradescope-proxy/1.0"),
	}, nil
}

func (u *upstreamConfig) BaseURL() string {
	return u.baseURL
}

func (u *upstreamConfig) RequestTimeout() time.Duration {
	return u.requestTimeout
}

func (u *upstreamConfig) LoginTimeout() time.Duration {
	return u.loginTimeout
}

func (u *upstreamConfig) UserAgent() string {
	return u.userAgent
}
