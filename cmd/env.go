package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/marcus/vibrant/internal/app"
	"github.com/marcus/vibrant/internal/config"
	"github.com/marcus/vibrant/internal/kv"
	"github.com/marcus/vibrant/internal/logging"
	"github.com/marcus/vibrant/internal/persist"
	"github.com/spf13/cobra"
)

const tuiLogFile = "tui.log"

// env is what a command needs to reach the task list
type env struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   kv.Store
	persist *persist.Persistence
	logFile *os.File
}

// openEnv resolves config, builds the logger and opens storage. With
// logToFile the logger appends to <data-dir>/tui.log instead of stderr,
// which the TUI's alternate screen would swallow.
func openEnv(cmd *cobra.Command, logToFile bool) (*env, error) {
	cfg, err := config.Load(globalFlags)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	e := &env{cfg: cfg}

	var w io.Writer = cmd.ErrOrStderr()
	if logToFile {
		if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		f, err := os.OpenFile(filepath.Join(cfg.DataDir, tuiLogFile), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		e.logFile = f
		w = f
	}

	e.logger, err = logging.New(w, logging.Options{
		Level:           cfg.LogLevel,
		Format:          cfg.LogFormat,
		ReportTimestamp: logToFile,
	})
	if err != nil {
		e.Close()
		return nil, err
	}

	e.store, err = kv.Open(kv.Backend(cfg.Backend), cfg.DataDir)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("open %s storage: %w", cfg.Backend, err)
	}

	e.persist, err = persist.New(e.store, e.logger)
	if err != nil {
		e.Close()
		return nil, err
	}

	e.logger.Debug("storage opened", "backend", cfg.Backend, "data_dir", cfg.DataDir, "config", cfg.Path)
	return e, nil
}

// session loads the task list and renders its first view to r
func (e *env) session(cmd *cobra.Command, r app.Renderer, opts ...app.Option) *app.Session {
	return app.Open(cmd.Context(), e.persist, r, e.logger, opts...)
}

// Close releases storage and the log file
func (e *env) Close() error {
	var err error
	if e.store != nil {
		err = e.store.Close()
	}
	if e.logFile != nil {
		e.logFile.Close()
	}
	return err
}

// resolveID maps a full id or unique prefix to a task id
func resolveID(s *app.Session, ref string) (string, error) {
	id, matches := s.Resolve(ref)
	switch matches {
	case 1:
		return id, nil
	case 0:
		return "", fmt.Errorf("task not found: %q", ref)
	default:
		return "", fmt.Errorf("id prefix %q matches %d tasks; use more characters", ref, matches)
	}
}
