// Package persist maps the task collection and theme preference onto a
// kv.Store. Reads never fail: missing or corrupt state degrades to the
// defaults with a warning on the logger.
package persist

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/marcus/vibrant/internal/kv"
	"github.com/marcus/vibrant/internal/models"
)

// Storage keys
const (
	KeyTasks = "tasks"
	KeyTheme = "theme"
)

const schemaURL = "https://vibrant.local/schemas/tasks.json"

//go:embed task_schema.json
var taskSchemaJSON string

// Persistence loads and saves application state
type Persistence struct {
	store  kv.Store
	logger *slog.Logger
	schema *jsonschema.Schema
}

// New wraps store. A nil logger falls back to slog.Default().
func New(store kv.Store, logger *slog.Logger) (*Persistence, error) {
	if logger == nil {
		logger = slog.Default()
	}
	schema, err := compileTaskSchema()
	if err != nil {
		return nil, err
	}
	return &Persistence{store: store, logger: logger, schema: schema}, nil
}

func compileTaskSchema() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(taskSchemaJSON)); err != nil {
		return nil, fmt.Errorf("add task schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile task schema: %w", err)
	}
	return schema, nil
}

// Store returns the underlying kv store
func (p *Persistence) Store() kv.Store {
	return p.store
}

// SaveTasks overwrites the persisted task list
func (p *Persistence) SaveTasks(ctx context.Context, tasks []models.Task) error {
	if tasks == nil {
		tasks = []models.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := p.store.Set(ctx, KeyTasks, data); err != nil {
		return fmt.Errorf("save tasks: %w", err)
	}
	return nil
}

// LoadTasks returns the persisted tasks sorted by order. Absent, unreadable,
// or invalid data yields an empty list.
func (p *Persistence) LoadTasks(ctx context.Context) []models.Task {
	data, ok, err := p.store.Get(ctx, KeyTasks)
	if err != nil {
		p.logger.Warn("read tasks failed, starting empty", "error", err)
		return []models.Task{}
	}
	if !ok {
		return []models.Task{}
	}

	tasks, err := p.decodeTasks(data)
	if err != nil {
		p.logger.Warn("persisted tasks are invalid, starting empty", "error", err)
		return []models.Task{}
	}
	return tasks
}

func (p *Persistence) decodeTasks(data []byte) ([]models.Task, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if _, ok := raw.([]any); !ok {
		return nil, errors.New("tasks value is not an array")
	}
	if err := p.schema.Validate(raw); err != nil {
		return nil, schemaError(err)
	}

	var tasks []models.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	seen := make(map[string]bool, len(tasks))
	for i := range tasks {
		if seen[tasks[i].ID] {
			return nil, fmt.Errorf("duplicate task id %q", tasks[i].ID)
		}
		seen[tasks[i].ID] = true
		tasks[i].DueDate = models.NormalizeDue(tasks[i].DueDate)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Order < tasks[j].Order
	})
	return tasks, nil
}

// schemaError reduces a validation error to its first leaf cause
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := ve.InstanceLocation
	if loc == "" {
		loc = "/"
	}
	return fmt.Errorf("schema violation at %s: %s", loc, ve.Message)
}

// SaveTheme persists the theme preference
func (p *Persistence) SaveTheme(ctx context.Context, theme models.Theme) error {
	if err := p.store.Set(ctx, KeyTheme, []byte(theme)); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

// LoadTheme returns the saved theme; anything but "dark" is light
func (p *Persistence) LoadTheme(ctx context.Context) models.Theme {
	data, ok, err := p.store.Get(ctx, KeyTheme)
	if err != nil {
		p.logger.Warn("read theme failed, using light", "error", err)
		return models.ThemeLight
	}
	if !ok {
		return models.ThemeLight
	}
	return models.ParseTheme(strings.Trim(strings.TrimSpace(string(data)), `"`))
}
