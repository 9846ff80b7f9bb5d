package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"MATHSOLVE_PROVIDER", "MATHSOLVE_MODEL", "MATHSOLVE_BASE_URL", "MATHSOLVE_LOG_LEVEL", "MATHSOLVE_DB",
		"OPENAI_API_KEY", "ANTHROPIC_API_KEY", "DEEPSEEK_API_KEY", "GEMINI_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "ollama", cfg.Assistant.Provider)
	assert.Equal(t, "gemma3:4b-it-qat", cfg.Assistant.Model)
	assert.True(t, cfg.Output.ShowSteps)
	assert.False(t, cfg.Assistant.ErrorExplanations)
	assert.False(t, cfg.Assistant.StepExplanations)
	assert.False(t, cfg.Assistant.SkipModelCheck)
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "mathsolve.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
assistant:
  provider: anthropic
  model: claude-x
  step_explanations: true
logging:
  level: debug
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "anthropic", cfg.Assistant.Provider)
	assert.Equal(t, "claude-x", cfg.Assistant.Model)
	assert.True(t, cfg.Assistant.StepExplanations)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 1024, cfg.Assistant.MaxTokens, "unset fields keep defaults")

	require.NoError(t, os.WriteFile(path, []byte("assistant: [1"), 0644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Run("provider switch drops the model", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MATHSOLVE_PROVIDER", "openai")
		t.Setenv("OPENAI_API_KEY", "sk-test")
		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, "openai", cfg.Assistant.Provider)
		assert.Empty(t, cfg.Assistant.Model)
		assert.Equal(t, "sk-test", cfg.Assistant.APIKey)
	})

	t.Run("key of another provider is ignored", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ANTHROPIC_API_KEY", "sk-ant")
		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, "ollama", cfg.Assistant.Provider)
		assert.Empty(t, cfg.Assistant.APIKey)
	})

	t.Run("model, url, level and db", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("MATHSOLVE_MODEL", "llama3")
		t.Setenv("MATHSOLVE_BASE_URL", "http://gpu:11434/v1")
		t.Setenv("MATHSOLVE_LOG_LEVEL", "info")
		t.Setenv("MATHSOLVE_DB", "/tmp/j.db")
		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, "llama3", cfg.Assistant.Model)
		assert.Equal(t, "http://gpu:11434/v1", cfg.Assistant.BaseURL)
		assert.Equal(t, "info", cfg.Logging.Level)
		assert.Equal(t, "/tmp/j.db", cfg.Journal.Path)
	})
}

func TestSave_RoundTrip(t *testing.T) {
	clearEnv(t)
	cfg := Default()
	cfg.Assistant.APIKey = "sk-secret"
	cfg.Assistant.ErrorExplanations = true
	path := filepath.Join(t.TempDir(), "nested", "mathsolve.yaml")
	require.NoError(t, cfg.Save(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "sk-secret")

	loaded, err := Load(path)
	require.NoError(t, err)
	cfg.Assistant.APIKey = ""
	assert.Equal(t, cfg, loaded)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"provider":    func(c *Config) { c.Assistant.Provider = "bard" },
		"max tokens":  func(c *Config) { c.Assistant.MaxTokens = 0 },
		"temperature": func(c *Config) { c.Assistant.Temperature = 3 },
		"timeout":     func(c *Config) { c.Assistant.Timeout = "soon" },
		"log level":   func(c *Config) { c.Logging.Level = "loud" },
		"limit":       func(c *Config) { c.Journal.Limit = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestAssistantOptions(t *testing.T) {
	cfg := Default()
	cfg.Assistant.Provider = "claude"
	opts, err := cfg.AssistantOptions()
	require.NoError(t, err)
	assert.Equal(t, "anthropic", string(opts.Kind))
	assert.Equal(t, time.Minute, cfg.AssistantTimeout())
}

func TestLoadDotEnv(t *testing.T) {
	const key = "MATHSOLVE_DOTENV_PROBE"
	t.Cleanup(func() { os.Unsetenv(key) })
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=phi3\n"), 0644))
	require.NoError(t, LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")))
	assert.Equal(t, "phi3", os.Getenv(key))
}
