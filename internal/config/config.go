// Package config provides application configuration from command-line flags, environment variables and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	App      AppConfig
	Logger   LoggerConfig
	Storage  StorageConfig
	Backend  BackendConfig
	Server   ServerConfig
	Telegram TelegramConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// StorageConfig holds the local key-value store configuration.
type StorageConfig struct {
	// DataPath is the directory for the embedded Badger database.
	DataPath string
}

// BackendConfig holds the upstream shop backend endpoints.
type BackendConfig struct {
	// BaseURL is the REST endpoint root, e.g. http://localhost:8080
	BaseURL string
	// ChannelURL is the websocket endpoint for the message channel,
	// e.g. ws://localhost:8080/socket
	ChannelURL string
	// Timeout applies to each REST request.
	Timeout time.Duration
}

// ServerConfig holds the local screen-surface HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// TelegramConfig holds the host-platform context handed to the app at startup.
type TelegramConfig struct {
	// InitData is the url-encoded init data string injected by the
	// Telegram runtime. Empty means the app runs outside the platform
	// and degrades to an unauthenticated, non-owner session.
	InitData string
}

// LoadConfig loads configuration with precedence:
// 1. Command-line flags.
// 2. Environment variables.
// 3. .env file (via godotenv).
// 4. Defaults.
func LoadConfig() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Directory for the local key-value store")
	backendURL := flag.String("backend-url", "", "Shop backend REST base URL")
	channelURL := flag.String("channel-url", "", "Shop backend websocket URL")
	backendTimeout := flag.String("backend-timeout", "", "REST request timeout (default: 30s)")
	serverPort := flag.String("port", "", "Local server port (default: 4000)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Missing .env is fine; env vars and flags still apply.
	_ = godotenv.Load(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Storage: StorageConfig{
			DataPath: getConfigValue(*dataPath, "DATA_PATH", ""),
		},
		Backend: BackendConfig{
			BaseURL:    getConfigValue(*backendURL, "BACKEND_URL", "http://localhost:8080"),
			ChannelURL: getConfigValue(*channelURL, "CHANNEL_URL", "ws://localhost:8080/socket"),
		},
		Server: ServerConfig{
			Port: getConfigValue(*serverPort, "SERVER_PORT", "4000"),
		},
		Telegram: TelegramConfig{
			InitData: getConfigValue("", "TELEGRAM_INIT_DATA", ""),
		},
	}

	var err error
	if cfg.Backend.Timeout, err = parseDuration(*backendTimeout, "BACKEND_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.Server.ReadTimeout, err = parseDuration(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDuration(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDuration(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Storage.DataPath == "" {
		return errors.New("data path cannot be empty after expansion")
	}

	if _, err := url.Parse(c.Backend.BaseURL); err != nil || c.Backend.BaseURL == "" {
		return fmt.Errorf("invalid backend url: %q", c.Backend.BaseURL)
	}
	ch, err := url.Parse(c.Backend.ChannelURL)
	if err != nil || (ch.Scheme != "ws" && ch.Scheme != "wss") {
		return fmt.Errorf("invalid channel url: %q (must be ws:// or wss://)", c.Backend.ChannelURL)
	}

	return nil
}

// expandDataPath expands ~ and makes the path absolute.
// Defaults to ~/Shopbox/data when unset.
func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "Shopbox", "data")

	path := c.Storage.DataPath
	if path == "" {
		path = defaultPath
	}
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(homeDir, path[2:])
	}
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = abs
	}
	c.Storage.DataPath = filepath.Clean(path)
	return nil
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// parseDuration resolves a duration from flag, env var, or default.
func parseDuration(flagValue, envKey, defaultValue string) (time.Duration, error) {
	raw := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), raw, err)
	}
	return d, nil
}
