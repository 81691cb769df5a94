package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/opsgrade/obs-scorecard/internal/models"
)

// Loader manages the seed tool catalog: one YAML file per tool, scenarios
// inline. The seed catalog serves catalog browsing and is the evaluation
// fallback until a snapshot with its own tool list has been saved.
type Loader struct {
	mu    sync.RWMutex
	tools map[string]*models.Tool
}

// NewLoader creates a new catalog loader
func NewLoader() *Loader {
	return &Loader{
		tools: make(map[string]*models.Tool),
	}
}

// LoadFromDir loads all YAML tool definitions from a directory and its
// immediate subdirectories. Files that fail to parse are logged and skipped.
func (l *Loader) LoadFromDir(dir string) error {
	slog.Info("loading tool catalog from directory", "dir", dir)

	patterns := []string{"*.yaml", "*.yml"}
	var files []string

	for _, pattern := range patterns {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			continue
		}
		files = append(files, matches...)

		subMatches, err := filepath.Glob(filepath.Join(dir, "*", pattern))
		if err != nil {
			continue
		}
		files = append(files, subMatches...)
	}

	loaded := 0
	for _, file := range files {
		if err := l.LoadFromFile(file); err != nil {
			slog.Warn("failed to load tool definition", "file", file, "error", err)
			continue
		}
		loaded++
	}

	slog.Info("tool catalog loaded", "count", loaded, "total_files", len(files))
	return nil
}

// LoadFromFile loads a single tool definition from a YAML file
func (l *Loader) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var tool models.Tool
	if err := yaml.Unmarshal(data, &tool); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	if tool.Name == "" {
		return fmt.Errorf("tool name is required")
	}

	// Fall back to the file name for the id
	if tool.ID == "" {
		base := filepath.Base(path)
		tool.ID = strings.TrimSuffix(base, filepath.Ext(base))
	}

	// Scenario defaults: derive missing ids from the tool id and position,
	// default severity to gray
	for i := range tool.Scenarios {
		if tool.Scenarios[i].ID == "" {
			tool.Scenarios[i].ID = fmt.Sprintf("%s-%d", tool.ID, i)
		}
		if tool.Scenarios[i].Severity == "" {
			tool.Scenarios[i].Severity = models.SeverityGray
		}
	}

	l.mu.Lock()
	l.tools[tool.ID] = &tool
	l.mu.Unlock()

	slog.Info("tool loaded", "id", tool.ID, "name", tool.Name, "scenarios", len(tool.Scenarios))
	return nil
}

// Get retrieves a tool by id
func (l *Loader) Get(id string) *models.Tool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.tools[id]
}

// List returns all loaded tools sorted by id
func (l *Loader) List() []*models.Tool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]*models.Tool, 0, len(l.tools))
	for _, tool := range l.tools {
		result = append(result, tool)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Add programmatically adds a tool
func (l *Loader) Add(tool *models.Tool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tools[tool.ID] = tool
}

// Remove removes a tool by id
func (l *Loader) Remove(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.tools, id)
}
