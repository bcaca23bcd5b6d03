// Package config resolves runtime settings. Precedence, highest first:
// command-line flags, VIBRANT_* environment variables, the TOML config
// file, then built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/marcus/vibrant/internal/kv"
	"github.com/marcus/vibrant/internal/models"
)

const (
	configFile = "config.toml"
	appDir     = "vibrant"
)

// Environment variables
const (
	EnvDataDir   = "VIBRANT_DATA_DIR"
	EnvBackend   = "VIBRANT_BACKEND"
	EnvLogLevel  = "VIBRANT_LOG_LEVEL"
	EnvLogFormat = "VIBRANT_LOG_FORMAT"
)

// Config holds the resolved settings
type Config struct {
	DataDir       string `toml:"data_dir"`
	Backend       string `toml:"backend"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	DefaultFilter string `toml:"default_filter"`

	// Keys rebinds TUI keys: "context:key" -> command id
	Keys map[string]string `toml:"keys"`

	// Path is the config file that was read, if any
	Path string `toml:"-"`
}

// Flags carries values set on the command line; empty means unset
type Flags struct {
	ConfigPath string
	DataDir    string
	Backend    string
	LogLevel   string
	LogFormat  string
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		DataDir:       DefaultDataDir(),
		Backend:       string(kv.BackendSQLite),
		LogLevel:      "warn",
		LogFormat:     "text",
		DefaultFilter: string(models.FilterAll),
		Keys:          map[string]string{},
	}
}

// DefaultDataDir is the per-user config directory, or ~/.vibrant when the
// platform has none.
func DefaultDataDir() string {
	if dir, err := os.UserConfigDir(); err == nil && dir != "" {
		return filepath.Join(dir, appDir)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, "."+appDir)
	}
	return "." + appDir
}

// Load resolves the configuration. A missing config file is not an error
// unless it was named explicitly with --config.
func Load(flags Flags) (*Config, error) {
	cfg := Default()

	// The data dir locates the default config file, so resolve it first
	// without the file's own data_dir.
	dataDir := firstNonEmpty(flags.DataDir, os.Getenv(EnvDataDir), cfg.DataDir)

	path := flags.ConfigPath
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dataDir, configFile)
	}
	if err := loadFile(cfg, path, explicit); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	applyFlags(cfg, flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadFile(cfg *Config, path string, required bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !required {
			return nil
		}
		return fmt.Errorf("config file %s: %w", path, err)
	}

	var fileCfg Config
	if _, err := toml.DecodeFile(path, &fileCfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fileCfg.DataDir != "" {
		cfg.DataDir = expandHome(fileCfg.DataDir)
	}
	if fileCfg.Backend != "" {
		cfg.Backend = fileCfg.Backend
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogFormat != "" {
		cfg.LogFormat = fileCfg.LogFormat
	}
	if fileCfg.DefaultFilter != "" {
		cfg.DefaultFilter = fileCfg.DefaultFilter
	}
	for k, v := range fileCfg.Keys {
		cfg.Keys[k] = v
	}
	cfg.Path = path
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = expandHome(v)
	}
	if v := os.Getenv(EnvBackend); v != "" {
		cfg.Backend = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
}

func applyFlags(cfg *Config, flags Flags) {
	if flags.DataDir != "" {
		cfg.DataDir = expandHome(flags.DataDir)
	}
	if flags.Backend != "" {
		cfg.Backend = flags.Backend
	}
	if flags.LogLevel != "" {
		cfg.LogLevel = flags.LogLevel
	}
	if flags.LogFormat != "" {
		cfg.LogFormat = flags.LogFormat
	}
}

// Validate checks enumerated settings
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(c.Backend)
	if !kv.IsValidBackend(kv.Backend(c.Backend)) {
		return fmt.Errorf("invalid backend %q (valid: sqlite, file, memory)", c.Backend)
	}
	mode := models.NormalizeFilterMode(c.DefaultFilter)
	if !models.IsValidFilterMode(mode) {
		return fmt.Errorf("invalid default_filter %q (valid: all, active, completed)", c.DefaultFilter)
	}
	c.DefaultFilter = string(mode)
	return nil
}

// Filter returns the configured startup filter
func (c *Config) Filter() models.FilterMode {
	return models.NormalizeFilterMode(c.DefaultFilter)
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
