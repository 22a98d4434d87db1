package tasksource

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// configFile is the structure of the optional YAML config file. Values from
// the file are overridden by CLI flags and environment variables.
type configFile struct {
	Source Source `yaml:"source"`
}

// Load reads a task source from a YAML config file.
func Load(path string) (Source, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Source{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var file configFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Source{}, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	return file.Source, nil
}
