// Package config loads the process-wide configuration. Settings come from
// an optional sandbox.yaml file, overridden by SANDBOX_* environment
// variables, with defaults for everything. The result is immutable after
// startup — nothing is reconfigured per request.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type SandboxConfig struct {
	PythonBin             string `mapstructure:"python_bin"`
	DefaultTimeoutSeconds int    `mapstructure:"default_timeout_seconds"`
	MaxTimeoutSeconds     int    `mapstructure:"max_timeout_seconds"`
	FetchTimeoutSeconds   int    `mapstructure:"fetch_timeout_seconds"`
	BaseOrigin            string `mapstructure:"base_origin"`
}

type StorageConfig struct {
	DBPath     string `mapstructure:"db_path"`
	UploadsDir string `mapstructure:"uploads_dir"`
}

type AuthConfig struct {
	// JWTSecret enables bearer auth on the API when set. Empty disables
	// authentication (the server logs a warning at startup).
	JWTSecret string `mapstructure:"jwt_secret"`
}

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Sandbox SandboxConfig `mapstructure:"sandbox"`
	Storage StorageConfig `mapstructure:"storage"`
	Auth    AuthConfig    `mapstructure:"auth"`
}

// Load reads sandbox.yaml (from the working directory or
// /etc/python-sandbox) if present, applies SANDBOX_* env overrides
// (e.g. SANDBOX_SERVER_PORT, SANDBOX_AUTH_JWT_SECRET), and fills defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("sandbox")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("/etc/python-sandbox")

	v.SetDefault("server.port", 8080)
	v.SetDefault("sandbox.python_bin", "python3")
	v.SetDefault("sandbox.default_timeout_seconds", 10)
	v.SetDefault("sandbox.max_timeout_seconds", 60)
	v.SetDefault("sandbox.fetch_timeout_seconds", 10)
	v.SetDefault("sandbox.base_origin", "http://localhost:3000")
	v.SetDefault("storage.db_path", "data/sandbox.db")
	v.SetDefault("storage.uploads_dir", "data/uploads")
	v.SetDefault("auth.jwt_secret", "")

	v.SetEnvPrefix("SANDBOX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; defaults plus env cover it.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}
