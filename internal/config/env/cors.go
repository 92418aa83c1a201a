package env

import (
	"strings"

	"gradescope_proxy/internal/config"
)

const corsAllowedOriginsEnvName = "CORS_ALLOWED_ORIGINS"

type corsConfig struct {
	origins []string
}

// NewCORSConfig читает список origin через запятую
func NewCORSConfig() (config.CORSConfig, error) {
	raw := getEnv(corsAllowedOriginsEnvName, "http://localhost:5173")

	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &corsConfig{origins: origins}, nil
}

func (c *corsConfig) AllowedOrigins() []string {
	return c.origins
}
