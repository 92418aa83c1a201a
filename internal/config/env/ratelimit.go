package env

import (
	"errors"

	"gradescope_proxy/internal/config"
)

const (
	loginRatePerMinuteEnvName = "LOGIN_RATE_PER_MINUTE"
	loginRateBurstEnvName     = "LOGIN_RATE_BURST"
)

type rateLimitConfig struct {
	perMinute int
	burst     int
}

func NewRateLimitConfig() (config.RateLimitConfig, error) {
	perMinute, err := getInt(loginRatePerMinuteEnvName, 10)
	if err != nil {
		return nil, err
	}
	burst, err := getInt(loginRateBurstEnvName, 5)
	if err != nil {
		return nil, err
	}
	if perMinute > 0 && burst == 0 {
		return nil, errors.New("login rate burst must be > 0 when rate limiting is enabled")
	}

	return &rateLimitConfig{perMinute: perMinute, burst: burst}, nil
}

// LoginPerMinute - 0 отключает ограничение
func (r *rateLimitConfig) LoginPerMinute() int {
	return r.perMinute
}

func (r *rateLimitConfig) LoginBurst() int {
	return r.burst
}
