package env

import (
	"fmt"
	"time"

	"gradescope_proxy/internal/config"
)

const (
	sessionIdleTimeoutEnvName   = "SESSION_IDLE_TIMEOUT"
	sessionSweepIntervalEnvName = "SESSION_SWEEP_INTERVAL"
)

type sessionConfig struct {
	idleTimeout   time.Duration
	sweepInterval time.Duration
}

func NewSessionConfig() (config.SessionConfig, error) {
	idle, err := getDuration(sessionIdleTimeoutEnvName, 30*time.Minute)
	if err != nil {
		return nil, err
	}

	sweep, err := getDuration(sessionSweepIntervalEnvName, 60*time.Second)
	if err != nil {
		return nil, err
	}
	if sweep > idle {
		return nil, fmt.Errorf("%s (%s) must not exceed %s (%s)", sessionSweepIntervalEnvName, sweep, sessionIdleTimeoutEnvName, idle)
	}

	return &sessionConfig{idleTimeout: idle, sweepInterval: sweep}, nil
}

func (s *sessionConfig) IdleTimeout() time.Duration {
	return s.idleTimeout
}

func (s *sessionConfig) SweepInterval() time.Duration {
	return s.sweepInterval
}
