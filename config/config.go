// Package config holds the mathsolve configuration: a YAML file with
// defaults, overridden by MATHSOLVE_* and provider key environment
// variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/njchilds90/mathsolve/assistant"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "mathsolve.yaml"

// Config is the full configuration.
type Config struct {
	Assistant AssistantConfig `yaml:"assistant"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`
	Journal   JournalConfig   `yaml:"journal"`
}

// AssistantConfig selects the chat model and what it is asked about.
type AssistantConfig struct {
	Provider    string  `yaml:"provider"`
	Model       string  `yaml:"model,omitempty"`
	BaseURL     string  `yaml:"base_url,omitempty"`
	APIKey      string  `yaml:"-"`
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float32 `yaml:"temperature"`
	Timeout     string  `yaml:"timeout"`

	ErrorExplanations bool `yaml:"error_explanations"`
	StepExplanations  bool `yaml:"step_explanations"`
	SkipModelCheck    bool `yaml:"skip_model_check"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	ShowSteps bool `yaml:"show_steps"`
	Color     bool `yaml:"color"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"`
	// Development selects the console encoder.
	Development bool `yaml:"development"`
}

// JournalConfig locates the request history database. An empty path
// disables the journal.
type JournalConfig struct {
	Path  string `yaml:"path"`
	Limit int    `yaml:"limit"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Assistant: AssistantConfig{
			Provider:    string(assistant.KindOllama),
			Model:       assistant.KindOllama.DefaultModel(),
			MaxTokens:   1024,
			Temperature: 0.3,
			Timeout:     "60s",
		},
		Output: OutputConfig{
			ShowSteps: true,
			Color:     true,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
		Journal: JournalConfig{
			Path:  "mathsolve.db",
			Limit: 20,
		},
	}
}

// Load reads the YAML file at path over the defaults and applies the
// environment overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML. API keys are never written.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
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

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("MATHSOLVE_PROVIDER"); v != "" {
		if c.Assistant.Provider != v {
			c.Assistant.Model = ""
		}
		c.Assistant.Provider = v
	}
	if v := os.Getenv("MATHSOLVE_MODEL"); v != "" {
		c.Assistant.Model = v
	}
	if v := os.Getenv("MATHSOLVE_BASE_URL"); v != "" {
		c.Assistant.BaseURL = v
	}
	if v := os.Getenv("MATHSOLVE_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("MATHSOLVE_DB"); v != "" {
		c.Journal.Path = v
	}

	if kind, err := assistant.ParseKind(c.Assistant.Provider); err == nil && kind.EnvVar() != "" {
		if key := os.Getenv(kind.EnvVar()); key != "" {
			c.Assistant.APIKey = key
		}
	}
}

// Validate checks the configuration for unusable values.
func (c *Config) Validate() error {
	if _, err := assistant.ParseKind(c.Assistant.Provider); err != nil {
		return fmt.Errorf("invalid assistant provider: %w", err)
	}
	if c.Assistant.MaxTokens <= 0 {
		return fmt.Errorf("assistant max_tokens must be positive, got %d", c.Assistant.MaxTokens)
	}
	if c.Assistant.Temperature < 0 || c.Assistant.Temperature > 2 {
		return fmt.Errorf("assistant temperature %v out of range [0, 2]", c.Assistant.Temperature)
	}
	if _, err := time.ParseDuration(c.Assistant.Timeout); err != nil {
		return fmt.Errorf("invalid assistant timeout %q: %w", c.Assistant.Timeout, err)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}
	if c.Journal.Limit < 0 {
		return fmt.Errorf("journal limit must not be negative, got %d", c.Journal.Limit)
	}
	return nil
}

// AssistantTimeout returns the per-call assistant timeout.
func (c *Config) AssistantTimeout() time.Duration {
	d, err := time.ParseDuration(c.Assistant.Timeout)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// AssistantOptions converts the assistant section for assistant.New.
func (c *Config) AssistantOptions() (assistant.Options, error) {
	kind, err := assistant.ParseKind(c.Assistant.Provider)
	if err != nil {
		return assistant.Options{}, err
	}
	return assistant.Options{
		Kind:        kind,
		Model:       c.Assistant.Model,
		BaseURL:     c.Assistant.BaseURL,
		APIKey:      c.Assistant.APIKey,
		MaxTokens:   c.Assistant.MaxTokens,
		Temperature: c.Assistant.Temperature,
	}, nil
}

// LoadDotEnv loads KEY=value pairs from the given files (default .env)
// into the environment. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}
