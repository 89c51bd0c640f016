package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Config System:
// - Default() returns valid configuration with all expected defaults
// - Load() uses defaults when no config file exists
// - Load() reads .codescope/config.yml and merges with defaults
// - Environment variables override config file values
// - Load() returns error for malformed YAML
// - Validate() rejects bad strategy, skeleton mode, format, metadata
// - Validate() rejects negative sizes

func TestDefault_ReturnsValidConfiguration(t *testing.T) {
	cfg := Default()

	require.NotNil(t, cfg)

	assert.NotEmpty(t, cfg.Paths.Include)
	assert.NotEmpty(t, cfg.Paths.Ignore)
	assert.Equal(t, 1024, cfg.Paths.MaxFileSizeKB)

	assert.Equal(t, "", cfg.Budget.Tokens)
	assert.Equal(t, "drop", cfg.Budget.Strategy)
	assert.Equal(t, "auto", cfg.Budget.Skeleton)
	assert.Equal(t, 50, cfg.Budget.TruncateLines)
	assert.True(t, cfg.Budget.TruncateSummary)

	assert.Equal(t, "plusminus", cfg.Output.Format)
	assert.Equal(t, "none", cfg.Output.Metadata)

	assert.Equal(t, 1000, cfg.Zoom.DefaultBudget)
	assert.Equal(t, "implementation", cfg.Zoom.DefaultDepth)
	assert.Equal(t, 5, cfg.Zoom.ContextLines)

	assert.NoError(t, Validate(cfg))
}

func TestLoad_UsesDefaultsWhenNoConfigFile(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := NewLoader(tmpDir).Load()

	require.NoError(t, err)
	assert.Equal(t, Default().Budget.Strategy, cfg.Budget.Strategy)
	assert.Equal(t, Default().Output.Format, cfg.Output.Format)
}

func TestLoad_ReadsConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, ".codescope")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	content := `budget:
  tokens: 100k
  strategy: hybrid
output:
  format: markdown
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(content), 0o644))

	cfg, err := NewLoader(tmpDir).Load()

	require.NoError(t, err)
	assert.Equal(t, "100k", cfg.Budget.Tokens)
	assert.Equal(t, "hybrid", cfg.Budget.Strategy)
	assert.Equal(t, "markdown", cfg.Output.Format)
	// Untouched keys keep their defaults.
	assert.Equal(t, "auto", cfg.Budget.Skeleton)
	assert.Equal(t, "none", cfg.Output.Metadata)
}

func TestLoad_EnvironmentOverridesConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, ".codescope")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	content := `budget:
  strategy: drop
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(content), 0o644))

	t.Setenv("CODESCOPE_BUDGET_STRATEGY", "truncate")

	cfg, err := NewLoader(tmpDir).Load()

	require.NoError(t, err)
	assert.Equal(t, "truncate", cfg.Budget.Strategy)
}

func TestLoad_MalformedYAMLReturnsError(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, ".codescope")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte("budget: [unclosed"), 0o644))

	_, err := NewLoader(tmpDir).Load()
	assert.Error(t, err)
}

func TestLoad_InvalidValuesReturnError(t *testing.T) {
	tmpDir := t.TempDir()
	configDir := filepath.Join(tmpDir, ".codescope")
	require.NoError(t, os.MkdirAll(configDir, 0o755))

	content := `budget:
  strategy: yolo
`
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yml"), []byte(content), 0o644))

	_, err := NewLoader(tmpDir).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "strategy")
}

func TestValidate_RejectsBadValues(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad strategy", func(c *Config) { c.Budget.Strategy = "keep" }},
		{"bad skeleton mode", func(c *Config) { c.Budget.Skeleton = "sometimes" }},
		{"bad format", func(c *Config) { c.Output.Format = "pdf" }},
		{"bad metadata", func(c *Config) { c.Output.Metadata = "everything" }},
		{"zero truncate lines", func(c *Config) { c.Budget.TruncateLines = 0 }},
		{"negative file size", func(c *Config) { c.Paths.MaxFileSizeKB = -1 }},
		{"negative context lines", func(c *Config) { c.Zoom.ContextLines = -1 }},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, Validate(cfg))
		})
	}
}
