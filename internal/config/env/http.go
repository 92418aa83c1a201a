package env

import (
	"errors"
	"net"
	"time"

	"gradescope_proxy/internal/config"
)

const (
	httpHostEnvName            = "HTTP_HOST"
	httpPortEnvName            = "HTTP_PORT"
	httpReadTimeoutEnvName     = "HTTP_READ_TIMEOUT"
	httpWriteTimeoutEnvName    = "HTTP_WRITE_TIMEOUT"
	httpShutdownTimeoutEnvName = "HTTP_SHUTDOWN_TIMEOUT"
	staticDirEnvName           = "STATIC_DIR"
	trustProxyHeadersEnvName   = "HTTP_TRUST_PROXY_HEADERS"
)

type httpConfig struct {
	host            string
	port            string
	readTimeout     time.Duration
	writeTimeout    time.Duration
	shutdownTimeout time.Duration
	staticDir       string
	trustProxy      bool
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	cfg := &httpConfig{
		host:      getEnv(httpHostEnvName, "0.0.0.0"),
		port:      getEnv(httpPortEnvName, "8080"),
		staticDir: getEnv(staticDirEnvName, ""),
	}
	if cfg.port == "" {
		return nil, errors.New("http port not found")
	}

	var err error
	if cfg.readTimeout, err = getDuration(httpReadTimeoutEnvName, 15*time.Second); err != nil {
		return nil, err
	}
	// Запись ответа включает полный login handshake с upstream
	if cfg.writeTimeout, err = getDuration(httpWriteTimeoutEnvName, 60*time.Second); err != nil {
		return nil, err
	}
	if cfg.shutdownTimeout, err = getDuration(httpShutdownTimeoutEnvName, 10*time.Second); err != nil {
		return nil, err
	}
	// Заголовки прокси подделываются клиентом, поэтому по умолчанию выключено
	if cfg.trustProxy, err = getBool(trustProxyHeadersEnvName, false); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.host, cfg.port)
}

func (cfg *httpConfig) ReadTimeout() time.Duration {
	return cfg.readTimeout
}

func (cfg *httpConfig) WriteTimeout() time.Duration {
	return cfg.writeTimeout
}

func (cfg *httpConfig) ShutdownTimeout() time.Duration {
	return cfg.shutdownTimeout
}

func (cfg *httpConfig) StaticDir() string {
	return cfg.staticDir
}

func (cfg *httpConfig) TrustProxyHeaders() bool {
	return cfg.trustProxy
}
