package env

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"gradescope_proxy/internal/config"

	"gopkg.in/yaml.v3"
)

const loginConfigPathEnvName = "LOGIN_CONFIG_PATH"

type loginYAML struct {
	Login loginConfig `yaml:"login"`
}

type loginConfig struct {
	LoginPathValue              string `yaml:"login_path"`
	TwoFactorPathValue          string `yaml:"two_factor_path"`
	AuthTokenSelectorValue      string `yaml:"auth_token_selector"`
	TwoFactorTokenSelectorValue string `yaml:"two_factor_token_selector"`
	CSRFSelectorValue           string `yaml:"csrf_selector"`
	ErrorBannerSelectorValue    string `yaml:"error_banner_selector"`
	TwoFactorURLMarkerValue     string `yaml:"two_factor_url_marker"`
	AccountURLMarkerValue       string `yaml:"account_url_marker"`
	SuccessRedirectStatusValue  int    `yaml:"success_redirect_status"`
}

// DefaultLoginConfig - эвристики, соответствующие текущей вёрстке upstream
func DefaultLoginConfig() config.LoginConfig {
	cfg := defaultLoginConfig()
	return &cfg
}

func defaultLoginConfig() loginConfig {
	return loginConfig{
		LoginPathValue:              "/login",
		TwoFactorPathValue:          "/two_factor",
		AuthTokenSelectorValue:      `form[action="/login"] input[name="authenticity_token"]`,
		TwoFactorTokenSelectorValue: `input[name="authenticity_token"]`,
		CSRFSelectorValue:           `meta[name="csrf-token"]`,
		ErrorBannerSelectorValue:    ".alert-error",
		TwoFactorURLMarkerValue:     "two_factor",
		AccountURLMarkerValue:       "account",
		SuccessRedirectStatusValue:  302,
	}
}

// LoginConfigPath returns the YAML path from LOGIN_CONFIG_PATH or config.yaml.
func LoginConfigPath() string {
	return getEnv(loginConfigPathEnvName, "config.yaml")
}

// NewLoginConfigFromYAML читает секцию login из YAML файла.
// Отсутствующий файл и пустые поля заменяются значениями по умолчанию.
func NewLoginConfigFromYAML(path string) (config.LoginConfig, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("[config] %s not found, using default login heuristics", path)
		return DefaultLoginConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read login config: %w", err)
	}

	return parseLoginConfig(data)
}

func parseLoginConfig(data []byte) (config.LoginConfig, error) {
	var doc loginYAML
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse login config: %w", err)
	}

	cfg := doc.Login
	def := defaultLoginConfig()
	fill := func(v *string, fallback string) {
		if strings.TrimSpace(*v) == "" {
			*v = fallback
		}
	}
	fill(&cfg.LoginPathValue, def.LoginPathValue)
	fill(&cfg.TwoFactorPathValue, def.TwoFactorPathValue)
	fill(&cfg.AuthTokenSelectorValue, def.AuthTokenSelectorValue)
	fill(&cfg.TwoFactorTokenSelectorValue, def.TwoFactorTokenSelectorValue)
	fill(&cfg.CSRFSelectorValue, def.CSRFSelectorValue)
	fill(&cfg.ErrorBannerSelectorValue, def.ErrorBannerSelectorValue)
	fill(&cfg.TwoFactorURLMarkerValue, def.TwoFactorURLMarkerValue)
	fill(&cfg.AccountURLMarkerValue, def.AccountURLMarkerValue)
	if cfg.SuccessRedirectStatusValue == 0 {
		cfg.SuccessRedirectStatusValue = def.SuccessRedirectStatusValue
	}
	if cfg.SuccessRedirectStatusValue < 300 || cfg.SuccessRedirectStatusValue > 399 {
		return nil, fmt.Errorf("success_redirect_status must be a 3xx code, got %d", cfg.SuccessRedirectStatusValue)
	}

	return &cfg, nil
}

func (l *loginConfig) LoginPath() string {
	return l.LoginPathValue
}

func (l *loginConfig) TwoFactorPath() string {
	return l.TwoFactorPathValue
}

func (l *loginConfig) AuthTokenSelector() string {
	return l.AuthTokenSelectorValue
}

func (l *loginConfig) TwoFactorTokenSelector() string {
	return l.TwoFactorTokenSelectorValue
}

func (l *loginConfig) CSRFSelector() string {
	return l.CSRFSelectorValue
}

func (l *loginConfig) ErrorBannerSelector() string {
	return l.ErrorBannerSelectorValue
}

func (l *loginConfig) TwoFactorURLMarker() string {
	return l.TwoFactorURLMarkerValue
}

func (l *loginConfig) AccountURLMarker() string {
	return l.AccountURLMarkerValue
}

func (l *loginConfig) SuccessRedirectStatus() int {
	return l.SuccessRedirectStatusValue
}
