package annotation

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ClassEntry is one class in a schema file.
type ClassEntry struct {
	Schema      string `yaml:"schema" json:"schema"`
	Description string `yaml:"description" json:"description"`
}

// SchemaFile represents the structure of a schema file (classes.yaml).
type SchemaFile struct {
	Classes map[string]ClassEntry `yaml:"classes" json:"classes"`
}

// LoadFile reads a schema file (YAML or JSON) and returns its classes as a MapSource.
func LoadFile(path string) (MapSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	var file SchemaFile
	ext := strings.ToLower(filepath.Ext(path))

	if ext == ".json" {
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	src := make(MapSource, len(file.Classes))
	for name, entry := range file.Classes {
		if name == "" {
			continue
		}
		src[name] = entry.Schema
	}
	return src, nil
}
