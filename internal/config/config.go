// Package config resolves runtime settings from defaults, an optional YAML or
// TOML file, and HEROES_* environment variables. Flags are applied by the CLI.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	EnvConfig   = "HEROES_CONFIG"
	EnvAPIURL   = "HEROES_API_URL"
	EnvLogLevel = "HEROES_LOG_LEVEL"
	EnvLogFile  = "HEROES_LOG_FILE"
	EnvTheme    = "HEROES_THEME"
	EnvTimeout  = "HEROES_TIMEOUT_SECONDS"
	// EnvServerToken is the bearer token `heroes serve` requires.
	EnvServerToken = "HEROES_SERVER_TOKEN"
)

type Config struct {
	// APIURL is the base the client resolves "api/heroes" against.
	APIURL         string `yaml:"api_url" toml:"api_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" toml:"timeout_seconds"`

	Listen   string `yaml:"listen" toml:"listen"`
	DataFile string `yaml:"data_file" toml:"data_file"`
	// ServerToken, when set, is required as a bearer token by the API.
	ServerToken string `yaml:"server_token" toml:"server_token"`

	LogLevel  string `yaml:"log_level" toml:"log_level"`
	LogFormat string `yaml:"log_format" toml:"log_format"`
	LogFile   string `yaml:"log_file" toml:"log_file"`

	Theme     string `yaml:"theme" toml:"theme"`
	StartView string `yaml:"start_view" toml:"start_view"`
}

func Default() Config {
	return Config{
		APIURL:         "http://localhost:8080/",
		TimeoutSeconds: 10,
		Listen:         ":8080",
		LogLevel:       "info",
		LogFormat:      "logfmt",
		Theme:          "classic",
		StartView:      "/dashboard",
	}
}

// Timeout is the HTTP client timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load applies the file at path (or $HEROES_CONFIG when path is empty) and
// then the environment on top of Default. No file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfig))
	}
	if path != "" {
		if err := readFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("parse yaml config %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(b, cfg); err != nil {
			return fmt.Errorf("parse toml config %s: %w", path, err)
		}
	default:
		return fmt.Errorf("config %s: unsupported extension %q", path, filepath.Ext(path))
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.LogFile = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTheme)); v != "" {
		cfg.Theme = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvServerToken)); v != "" {
		cfg.ServerToken = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: not a number: %q", EnvTimeout, v)
		}
		cfg.TimeoutSeconds = n
	}
	return nil
}
