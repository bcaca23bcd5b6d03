package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/marcus/vibrant/internal/models"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvDataDir, EnvBackend, EnvLogLevel, EnvLogFormat} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, configFile)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()

	cfg, err := Load(Flags{DataDir: dir})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("Backend = %q, want sqlite", cfg.Backend)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.Filter() != models.FilterAll {
		t.Errorf("Filter = %q, want all", cfg.Filter())
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty with no file", cfg.Path)
	}
}

func TestLoadFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
backend = "file"
log_level = "debug"
default_filter = "done"

[keys]
"list:d" = "delete"
`)

	cfg, err := Load(Flags{DataDir: dir})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != "file" {
		t.Errorf("Backend = %q, want file", cfg.Backend)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Filter() != models.FilterCompleted {
		t.Errorf("Filter = %q, want completed", cfg.Filter())
	}
	if cfg.Keys["list:d"] != "delete" {
		t.Errorf("Keys = %v", cfg.Keys)
	}
	if cfg.Path != filepath.Join(dir, configFile) {
		t.Errorf("Path = %q", cfg.Path)
	}
}

func TestPrecedence(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, `
backend = "file"
log_level = "debug"
log_format = "json"
`)
	t.Setenv(EnvBackend, "memory")
	t.Setenv(EnvLogLevel, "info")

	cfg, err := Load(Flags{DataDir: dir, LogLevel: "error"})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != "memory" {
		t.Errorf("Backend = %q, env should beat file", cfg.Backend)
	}
	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q, flag should beat env", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, file should beat default", cfg.LogFormat)
	}
}

func TestDataDirFromEnvLocatesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	writeConfig(t, dir, `backend = "memory"`)
	t.Setenv(EnvDataDir, dir)

	cfg, err := Load(Flags{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DataDir != dir || cfg.Backend != "memory" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestExplicitConfigPath(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.toml")
	os.WriteFile(path, []byte(`backend = "file"`), 0644)

	cfg, err := Load(Flags{DataDir: t.TempDir(), ConfigPath: path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != "file" {
		t.Errorf("Backend = %q", cfg.Backend)
	}

	if _, err := Load(Flags{ConfigPath: filepath.Join(dir, "missing.toml")}); err == nil {
		t.Error("missing explicit config should fail")
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `backend = `},
		{"backend", `backend = "redis"`},
		{"filter", `default_filter = "urgent"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)
			if _, err := Load(Flags{DataDir: dir}); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}
	if got := expandHome("~/tasks"); got != filepath.Join(home, "tasks") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/abs"); got != "/abs" {
		t.Errorf("expandHome(/abs) = %q", got)
	}
}
