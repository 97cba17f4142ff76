package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sourceplane/udpublish/internal/model"
	"gopkg.in/yaml.v3"
)

// RenderJSON renders a summary as JSON
func RenderJSON(summary *model.RunSummary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}

// RenderYAML renders a summary as YAML
func RenderYAML(summary *model.RunSummary) ([]byte, error) {
	return yaml.Marshal(summary)
}

// WriteSummary writes a summary to file (JSON or YAML based on extension)
func WriteSummary(summary *model.RunSummary, path string) error {
	var data []byte
	var err error

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = RenderYAML(summary)
	default:
		data, err = RenderJSON(summary)
	}
	if err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write summary to %s: %w", path, err)
	}
	return nil
}
