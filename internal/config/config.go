// Package config handles application configuration management.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/oszuidwest/zwfm-authpages/internal/apperrors"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
// Values come from an optional YAML file, overridden by environment variables.
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	// Locale is the fallback page language when Accept-Language does not match
	Locale      Locale
	LogLevel    LogLevel
	Environment Environment
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Address string
	// SSL enables HSTS and HTTPS redirects; leave off behind a TLS-terminating proxy
	SSL bool
}

// BackendConfig describes the authentication API credentials are forwarded to.
type BackendConfig struct {
	// BaseURL has no trailing slash; endpoint paths are appended verbatim
	BaseURL string
	// Timeout of zero leaves the transport default in place
	Timeout time.Duration
}

// fileConfig mirrors Config in the YAML file layout.
type fileConfig struct {
	Server struct {
		Address string `yaml:"address"`
		SSL     *bool  `yaml:"ssl"`
	} `yaml:"server"`
	Backend struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"backend"`
	Locale      string `yaml:"locale"`
	LogLevel    string `yaml:"log_level"`
	Environment string `yaml:"environment"`
}

// Load builds the configuration from defaults, the optional file named by
// AUTHPAGES_CONFIG_FILE and AUTHPAGES_* environment variables, then validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Address: ":8080",
		},
		Backend: BackendConfig{
			BaseURL: "http://127.0.0.1:9099",
		},
		Locale:      LocaleVietnamese,
		LogLevel:    LogLevelInfo,
		Environment: EnvDevelopment,
	}

	if path := os.Getenv("AUTHPAGES_CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.Backend.BaseURL = strings.TrimRight(cfg.Backend.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	// #nosec G304 - path comes from the operator's environment
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return apperrors.Config("AUTHPAGES_CONFIG_FILE", "invalid YAML").Wrap(err)
	}

	if fc.Server.Address != "" {
		c.Server.Address = fc.Server.Address
	}
	if fc.Server.SSL != nil {
		c.Server.SSL = *fc.Server.SSL
	}
	if fc.Backend.URL != "" {
		c.Backend.BaseURL = fc.Backend.URL
	}
	if fc.Backend.Timeout != "" {
		d, err := parseTimeout("backend.timeout", fc.Backend.Timeout)
		if err != nil {
			return err
		}
		c.Backend.Timeout = d
	}
	if fc.Locale != "" {
		c.Locale = Locale(fc.Locale)
	}
	if fc.LogLevel != "" {
		c.LogLevel = LogLevel(fc.LogLevel)
	}
	if fc.Environment != "" {
		c.Environment = Environment(fc.Environment)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Server.Address = getEnv("AUTHPAGES_SERVER_ADDRESS", c.Server.Address)
	c.Backend.BaseURL = getEnv("AUTHPAGES_BACKEND_URL", c.Backend.BaseURL)
	c.Locale = Locale(getEnv("AUTHPAGES_LOCALE", string(c.Locale)))
	c.LogLevel = LogLevel(getEnv("AUTHPAGES_LOG_LEVEL", string(c.LogLevel)))
	c.Environment = Environment(getEnv("AUTHPAGES_ENV", string(c.Environment)))

	if v := os.Getenv("AUTHPAGES_SSL"); v != "" {
		ssl, err := strconv.ParseBool(v)
		if err != nil {
			return apperrors.Config("AUTHPAGES_SSL", "must be a boolean").Wrap(err)
		}
		c.Server.SSL = ssl
	}

	if v := os.Getenv("AUTHPAGES_BACKEND_TIMEOUT"); v != "" {
		d, err := parseTimeout("AUTHPAGES_BACKEND_TIMEOUT", v)
		if err != nil {
			return err
		}
		c.Backend.Timeout = d
	}
	return nil
}

// Validate checks that every setting holds a usable value.
func (c *Config) Validate() error {
	var errs []error

	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs = append(errs, apperrors.Config("AUTHPAGES_BACKEND_URL", "must be an absolute http(s) URL").
			WithInternal("got %q", c.Backend.BaseURL))
	}
	if c.Backend.Timeout < 0 {
		errs = append(errs, apperrors.Config("AUTHPAGES_BACKEND_TIMEOUT", "must not be negative"))
	}
	if !c.Locale.IsValid() {
		errs = append(errs, apperrors.Config("AUTHPAGES_LOCALE", fmt.Sprintf("unsupported locale %q", c.Locale)))
	}
	if !c.LogLevel.IsValid() {
		errs = append(errs, apperrors.Config("AUTHPAGES_LOG_LEVEL", fmt.Sprintf("unsupported level %q", c.LogLevel)))
	}
	if !c.Environment.IsValid() {
		errs = append(errs, apperrors.Config("AUTHPAGES_ENV", fmt.Sprintf("unsupported environment %q", c.Environment)))
	}
	if c.Server.Address == "" {
		errs = append(errs, apperrors.Config("AUTHPAGES_SERVER_ADDRESS", "must not be empty"))
	}

	return errors.Join(errs...)
}

func parseTimeout(setting, value string) (time.Duration, error) {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, apperrors.Config(setting, "must be a Go duration such as 10s").Wrap(err)
	}
	return d, nil
}

// getEnv returns the value of the environment variable key, or defaultValue if unset.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
