package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/thenoetrevino/todometer/internal/models"
	"gopkg.in/yaml.v3"
)

// Environment overrides, applied after the config file
const (
	EnvDBPath          = "TODOMETER_DB_PATH"
	EnvSocketPath      = "TODOMETER_SOCKET_PATH"
	EnvLogLevel        = "TODOMETER_LOG_LEVEL"
	EnvEventDebounceMS = "TODOMETER_EVENT_DEBOUNCE_MS"
	EnvBroadcastBuffer = "TODOMETER_DAEMON_BROADCAST_BUFFER"
	EnvClientBuffer    = "TODOMETER_DAEMON_CLIENT_BUFFER"
	EnvThemeFile       = "TODOMETER_THEME_FILE"
)

// Config represents the application configuration
type Config struct {
	Database    DatabaseConfig `yaml:"database"`
	Daemon      DaemonConfig   `yaml:"daemon"`
	Log         LogConfig      `yaml:"log"`
	Backend     BackendConfig  `yaml:"backend"`
	Defaults    DefaultsConfig `yaml:"defaults"`
	ColorScheme ColorScheme    `yaml:"theme"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DaemonConfig configures the change-notification daemon and its clients
type DaemonConfig struct {
	SocketPath      string `yaml:"socket_path"`
	BroadcastBuffer int    `yaml:"broadcast_buffer"`
	ClientBuffer    int    `yaml:"client_buffer"`
	DebounceMS      int    `yaml:"debounce_ms"`
}

// Debounce is the client-side event batching window
func (d DaemonConfig) Debounce() time.Duration {
	return time.Duration(d.DebounceMS) * time.Millisecond
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"` // debug, info, warn or error
}

// SlogLevel parses Level, falling back to info
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}

type BackendConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultsConfig holds defaults for new tasks created from the CLI
type DefaultsConfig struct {
	Tag string `yaml:"tag"`
}

// DataDir returns ~/.todometer, where the database, socket and logs live
func DataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".todometer"), nil
}

// Default returns the configuration used when no config file exists
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// loadThemeFile merges the theme from TODOMETER_THEME_FILE, if set
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		slog.Warn("failed to read theme file", "path", themeFile, "error", err)
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if err := yaml.Unmarshal(themeData, &themeConfig); err != nil {
		slog.Warn("failed to parse theme file", "path", themeFile, "error", err)
		return
	}
	config.ColorScheme.MergeFrom(themeConfig.Theme)
}

// Load loads config from the user's config directory.
// Returns the default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		config := Default()
		loadThemeFile(config)
		config.applyEnv()
		return config, nil
	}
	return LoadFile(configPath)
}

// LoadFile loads config from path, applying defaults, the theme file and
// environment overrides
func LoadFile(path string) (*Config, error) {
	var config Config

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	loadThemeFile(&config)
	config.applyDefaults()
	config.applyEnv()

	return &config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "todometer", "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "todometer", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	dataDir, err := DataDir()
	if err != nil {
		dataDir = ".todometer"
	}

	if c.Database.Path == "" {
		c.Database.Path = filepath.Join(dataDir, "todometer.db")
	}
	if c.Daemon.SocketPath == "" {
		c.Daemon.SocketPath = filepath.Join(dataDir, "todometer.sock")
	}
	if c.Daemon.BroadcastBuffer <= 0 {
		c.Daemon.BroadcastBuffer = 100
	}
	if c.Daemon.ClientBuffer <= 0 {
		c.Daemon.ClientBuffer = 10
	}
	if c.Daemon.DebounceMS <= 0 {
		c.Daemon.DebounceMS = 100
	}
	if c.Log.Path == "" {
		c.Log.Path = filepath.Join(dataDir, "logs", "todometer.log")
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Backend.Addr == "" {
		c.Backend.Addr = "127.0.0.1:8080"
	}
	if _, ok := models.ParseTag(c.Defaults.Tag); !ok {
		c.Defaults.Tag = models.DefaultTag.String()
	}
	c.ColorScheme.ApplyDefaults()
}

// applyEnv applies TODOMETER_* environment overrides
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPath); v != "" {
		c.Database.Path = v
	}
	if v := os.Getenv(EnvSocketPath); v != "" {
		c.Daemon.SocketPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	c.Daemon.DebounceMS = getEnvInt(EnvEventDebounceMS, c.Daemon.DebounceMS)
	c.Daemon.BroadcastBuffer = getEnvInt(EnvBroadcastBuffer, c.Daemon.BroadcastBuffer)
	c.Daemon.ClientBuffer = getEnvInt(EnvClientBuffer, c.Daemon.ClientBuffer)
}

// getEnvInt reads a positive integer from an environment variable, returning defaultVal if not set or invalid
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil && parsed > 0 {
			return parsed
		}
	}
	return defaultVal
}

// DefaultTag returns the configured tag for new tasks
func (c *Config) DefaultTag() models.Tag {
	tag, ok := models.ParseTag(c.Defaults.Tag)
	if !ok {
		return models.DefaultTag
	}
	return tag
}
