package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dsgprompt/internal/dataset"
	"dsgprompt/internal/serialization"
)

// Config holds all dsgprompt configuration.
type Config struct {
	Dataset       DatasetConfig       `yaml:"dataset"`
	Serialization SerializationConfig `yaml:"serialization"`
	Prompt        PromptConfig        `yaml:"prompt"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			SceneDir: "data/scenes",
			TaskDir:  "data/tasks",
			Suite:    string(dataset.SuiteAll),
			Workers:  dataset.DefaultWorkers,
		},
		Serialization: SerializationConfig{
			Type:       serialization.KindIndented.String(),
			DetailKeys: []string{},
		},
		Prompt: PromptConfig{
			TemplatePath: "prompts/scene_qa.txt",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults; sections absent from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("DSGPROMPT_SCENE_DIR"); dir != "" {
		c.Dataset.SceneDir = dir
	}
	if dir := os.Getenv("DSGPROMPT_TASK_DIR"); dir != "" {
		c.Dataset.TaskDir = dir
	}
	if path := os.Getenv("DSGPROMPT_TEMPLATE"); path != "" {
		c.Prompt.TemplatePath = path
	}
	if level := os.Getenv("DSGPROMPT_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Dataset.Workers <= 0 {
		return fmt.Errorf("invalid dataset.workers: %d (must be > 0)", c.Dataset.Workers)
	}
	if _, err := dataset.ParseSuite(c.Dataset.Suite); err != nil {
		return fmt.Errorf("invalid dataset.suite: %w", err)
	}
	if _, err := serialization.ParseKind(c.Serialization.Type); err != nil {
		return fmt.Errorf("invalid serialization.type: %w", err)
	}
	if err := serialization.DetailKeys(c.Serialization.DetailKeys).Validate(); err != nil {
		return fmt.Errorf("invalid serialization.detail_keys: %w", err)
	}
	if err := c.Logging.validate(); err != nil {
		return err
	}
	return nil
}
