package app

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	DescriptorPath string // hcl files or a directory of them

	ThreadPool       string
	DefaultDataStore string
	Distributable    bool

	LogFormat       string
	LogLevel        string
	OutputFormat    string
	HealthcheckPort int
	WorkerCount     int
}

// NewConfig validates cfg and returns a copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.DescriptorPath == "" {
		return nil, errors.New("DescriptorPath is a required configuration field and cannot be empty")
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("WorkerCount must be at least 1, got %d", cfg.WorkerCount)
	}
	switch cfg.OutputFormat {
	case "", "text", "json":
	default:
		return nil, fmt.Errorf("OutputFormat must be 'text' or 'json', got %q", cfg.OutputFormat)
	}
	return &cfg, nil
}

// Settings is the optional YAML settings file. Unset fields leave the
// corresponding configuration untouched.
type Settings struct {
	ThreadPool       string `yaml:"thread_pool"`
	DefaultDataStore string `yaml:"default_data_store"`
	Distributable    *bool  `yaml:"distributable"`
	Workers          int    `yaml:"workers"`
}

// LoadSettings reads a YAML settings file. Unknown keys are rejected.
func LoadSettings(path string) (*Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening settings file: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var s Settings
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return &s, nil
		}
		return nil, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	return &s, nil
}
