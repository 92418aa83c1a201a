package env

import "gradescope_proxy/internal/config"

const (
	logFileEnvName       = "LOG_FILE"
	logMaxSizeEnvName    = "LOG_MAX_SIZE_MB"
	logMaxBackupsEnvName = "LOG_MAX_BACKUPS"
	logMaxAgeEnvName     = "LOG_MAX_AGE_DAYS"
)

type logConfig struct {
	file       string
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
}

func NewLogConfig() (config.LogConfig, error) {
	cfg := &logConfig{file: getEnv(logFileEnvName, "")}

	var err error
	if cfg.maxSizeMB, err = getInt(logMaxSizeEnvName, 50); err != nil {
		return nil, err
	}
	if cfg.maxBackups, err = getInt(logMaxBackupsEnvName, 5); err != nil {
		return nil, err
	}
	if cfg.maxAgeDays, err = getInt(logMaxAgeEnvName, 14); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (l *logConfig) File() string {
	return l.file
}

func (l *logConfig) MaxSizeMB() int {
	return l.maxSizeMB
}

func (l *logConfig) MaxBackups() int {
	return l.maxBackups
}

func (l *logConfig) MaxAgeDays() int {
	return l.maxAgeDays
}
