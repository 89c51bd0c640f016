package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (CODESCOPE_*)
// 2. Config file (.codescope/config.yml or .codescope/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".codescope")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("CODESCOPE")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., CODESCOPE_BUDGET_STRATEGY)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("budget.tokens")
	v.BindEnv("budget.strategy")
	v.BindEnv("budget.skeleton")
	v.BindEnv("budget.truncate_lines")
	v.BindEnv("budget.truncate_summary")

	v.BindEnv("output.format")
	v.BindEnv("output.metadata")

	v.BindEnv("zoom.default_budget")
	v.BindEnv("zoom.default_depth")
	v.BindEnv("zoom.context_lines")

	v.BindEnv("paths.max_file_size_kb")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("paths.include", defaults.Paths.Include)
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
	v.SetDefault("paths.max_file_size_kb", defaults.Paths.MaxFileSizeKB)

	v.SetDefault("budget.tokens", defaults.Budget.Tokens)
	v.SetDefault("budget.strategy", defaults.Budget.Strategy)
	v.SetDefault("budget.skeleton", defaults.Budget.Skeleton)
	v.SetDefault("budget.skeleton_exempt", defaults.Budget.SkeletonExempt)
	v.SetDefault("budget.truncate_lines", defaults.Budget.TruncateLines)
	v.SetDefault("budget.truncate_summary", defaults.Budget.TruncateSummary)

	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.metadata", defaults.Output.Metadata)

	v.SetDefault("zoom.default_budget", defaults.Zoom.DefaultBudget)
	v.SetDefault("zoom.default_depth", defaults.Zoom.DefaultDepth)
	v.SetDefault("zoom.context_lines", defaults.Zoom.ContextLines)
}
