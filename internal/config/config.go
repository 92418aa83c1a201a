package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
	ReadTimeout() time.Duration
	WriteTimeout() time.Duration
	ShutdownTimeout() time.Duration
	StaticDir() string
	// TrustProxyHeaders - брать IP клиента из X-Forwarded-For / X-Real-IP
	TrustProxyHeaders() bool
}

type UpstreamConfig interface {
	BaseURL() string
	RequestTimeout() time.Duration
	LoginTimeout() time.Duration
	UserAgent() string
}

type SessionConfig interface {
	IdleTimeout() time.Duration
	SweepInterval() time.Duration
}

type CORSConfig interface {
	AllowedOrigins() []string
}

type RateLimitConfig interface {
	LoginPerMinute() int
	LoginBurst() int
}

type LogConfig interface {
	File() string
	MaxSizeMB() int
	MaxBackups() int
	MaxAgeDays() int
}

// LoginConfig - эвристики разбора страниц входа. Вынесены в конфиг,
// потому что вёрстка upstream не является гарантированным контрактом.
type LoginConfig interface {
	LoginPath() string
	TwoFactorPath() string
	AuthTokenSelector() string
	TwoFactorTokenSelector() string
	CSRFSelector() string
	ErrorBannerSelector() string
	TwoFactorURLMarker() string
	AccountURLMarker() string
	SuccessRedirectStatus() int
}
