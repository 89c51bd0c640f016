package config

import "fmt"

// Config represents the complete codescope configuration.
// It can be loaded from .codescope/config.yml with environment variable
// overrides.
type Config struct {
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Budget BudgetConfig `yaml:"budget" mapstructure:"budget"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Zoom   ZoomConfig   `yaml:"zoom" mapstructure:"zoom"`
}

// PathsConfig defines which files to pack and which to ignore.
type PathsConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for files to pack
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to ignore
	// MaxFileSizeKB caps individual file size; 0 disables the cap.
	MaxFileSizeKB int `yaml:"max_file_size_kb" mapstructure:"max_file_size_kb"`
}

// BudgetConfig defines token budgeting behavior.
type BudgetConfig struct {
	Tokens   string `yaml:"tokens" mapstructure:"tokens"`     // e.g. "100k", empty for unlimited
	Strategy string `yaml:"strategy" mapstructure:"strategy"` // "drop", "truncate", or "hybrid"
	// Skeleton controls signature-only rendering: "auto", "always", "never".
	Skeleton string `yaml:"skeleton" mapstructure:"skeleton"`
	// SkeletonExempt lists glob patterns never skeletonized.
	SkeletonExempt []string `yaml:"skeleton_exempt" mapstructure:"skeleton_exempt"`
	// TruncateLines is how many leading lines survive line-count
	// truncation when skeletonization is disabled.
	TruncateLines int `yaml:"truncate_lines" mapstructure:"truncate_lines"`
	// TruncateSummary controls whether truncated files carry a marker
	// and zoom affordance after the cut.
	TruncateSummary bool `yaml:"truncate_summary" mapstructure:"truncate_summary"`
}

// OutputConfig defines the serialization format.
type OutputConfig struct {
	Format   string `yaml:"format" mapstructure:"format"`     // "plusminus", "xml", or "markdown"
	Metadata string `yaml:"metadata" mapstructure:"metadata"` // "none", "all", "size-only", "auto"
}

// ZoomConfig defines zoom defaults.
type ZoomConfig struct {
	DefaultBudget int    `yaml:"default_budget" mapstructure:"default_budget"`
	DefaultDepth  string `yaml:"default_depth" mapstructure:"default_depth"`
	ContextLines  int    `yaml:"context_lines" mapstructure:"context_lines"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Include: []string{
				"**/*.go",
				"**/*.rs",
				"**/*.py",
				"**/*.ts",
				"**/*.tsx",
				"**/*.js",
				"**/*.jsx",
				"**/*.md",
				"**/*.toml",
				"**/*.yaml",
				"**/*.yml",
				"**/*.json",
			},
			Ignore: []string{
				"node_modules/**",
				"vendor/**",
				".git/**",
				"dist/**",
				"build/**",
				"target/**",
				"__pycache__/**",
				"*.test",
				"*.pyc",
			},
			MaxFileSizeKB: 1024,
		},
		Budget: BudgetConfig{
			Tokens:          "",
			Strategy:        "drop",
			Skeleton:        "auto",
			TruncateLines:   50,
			TruncateSummary: true,
		},
		Output: OutputConfig{
			Format:   "plusminus",
			Metadata: "none",
		},
		Zoom: ZoomConfig{
			DefaultBudget: 1000,
			DefaultDepth:  "implementation",
			ContextLines:  5,
		},
	}
}

// Validate checks configuration consistency.
func Validate(cfg *Config) error {
	switch cfg.Budget.Strategy {
	case "drop", "truncate", "hybrid":
	default:
		return fmt.Errorf("invalid budget strategy: %q (must be drop, truncate, or hybrid)", cfg.Budget.Strategy)
	}

	switch cfg.Budget.Skeleton {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("invalid skeleton mode: %q (must be auto, always, or never)", cfg.Budget.Skeleton)
	}

	switch cfg.Output.Format {
	case "plusminus", "xml", "markdown":
	default:
		return fmt.Errorf("invalid output format: %q (must be plusminus, xml, or markdown)", cfg.Output.Format)
	}

	switch cfg.Output.Metadata {
	case "none", "all", "size-only", "size_only", "auto":
	default:
		return fmt.Errorf("invalid metadata mode: %q (must be none, all, size-only, or auto)", cfg.Output.Metadata)
	}

	if cfg.Budget.TruncateLines < 1 {
		return fmt.Errorf("budget truncate_lines must be at least 1")
	}
	if cfg.Paths.MaxFileSizeKB < 0 {
		return fmt.Errorf("max_file_size_kb must not be negative")
	}
	if cfg.Zoom.ContextLines < 0 {
		return fmt.Errorf("zoom context_lines must not be negative")
	}

	return nil
}
