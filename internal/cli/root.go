// Package cli wires the codescope commands: packing at the root,
// plus version, mcp, watch and session subcommands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/codescope/internal/budget"
	"github.com/mvp-joe/codescope/internal/config"
	"github.com/mvp-joe/codescope/internal/engine"
	"github.com/mvp-joe/codescope/internal/zoom"
)

var (
	flagBudget       string
	flagStrategy     string
	flagSkeleton     string
	flagFormat       string
	flagMetadata     string
	flagInclude      []string
	flagIgnore       []string
	flagExempt       []string
	flagTruncLines   int
	flagTruncSummary bool
	flagZoom         string
	flagDepth        string
	flagContext      int
	flagIncludeTests bool
	flagOutput       string
	flagQuiet        bool
)

// rootCmd packs the repository when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "codescope [path]",
	Short: "Pack a source tree into bounded LLM context",
	Long: `Codescope turns a source tree into bounded LLM context. Files are
rendered at full detail, reduced to signature skeletons, or dropped to
fit a token budget, with zoom affordances for drilling back into
anything that was compressed.

Examples:
  codescope --budget 100k > context.txt
  codescope --budget 100k --format xml .
  codescope --zoom function=ParseArgs --depth full
  codescope --zoom file=src/main.rs:100-150`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRoot,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&flagBudget, "budget", "", "token budget, k/M suffixes allowed (e.g. 100k)")
	rootCmd.Flags().StringVar(&flagStrategy, "strategy", "", "overflow strategy: drop, truncate, hybrid")
	rootCmd.Flags().StringVar(&flagSkeleton, "skeleton", "", "skeleton mode: auto, always, never")
	rootCmd.Flags().IntVar(&flagTruncLines, "truncate-lines", 0, "lines kept when truncating without skeletons")
	rootCmd.Flags().BoolVar(&flagTruncSummary, "truncate-summary", true, "append a truncation marker and zoom affordance after a cut")
	rootCmd.Flags().StringVar(&flagFormat, "format", "", "output format: plusminus, xml, markdown")
	rootCmd.Flags().StringVar(&flagMetadata, "metadata", "", "metadata mode: none, all, size-only, auto")
	rootCmd.Flags().StringSliceVar(&flagInclude, "include", nil, "include glob patterns (overrides config)")
	rootCmd.Flags().StringSliceVar(&flagIgnore, "ignore", nil, "ignore glob patterns (overrides config)")
	rootCmd.Flags().StringSliceVar(&flagExempt, "exempt", nil, "globs never skeletonized (overrides config)")
	rootCmd.Flags().StringVar(&flagZoom, "zoom", "", "zoom target in type=value form (e.g. function=main)")
	rootCmd.Flags().StringVar(&flagDepth, "depth", "", "zoom depth: signature, implementation, full")
	rootCmd.Flags().IntVar(&flagContext, "context", 0, "lines of context around a zoom target")
	rootCmd.Flags().BoolVar(&flagIncludeTests, "include-tests", false, "include test files in zoom results")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "write output to a file instead of stdout")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress progress and report output")
}

// loadConfig loads the repository configuration and applies any flag
// overrides the user set.
func loadConfig(cmd *cobra.Command, rootDir string) (*config.Config, error) {
	cfg, err := config.NewLoader(rootDir).Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("budget") {
		cfg.Budget.Tokens = flagBudget
	}
	if flags.Changed("strategy") {
		cfg.Budget.Strategy = flagStrategy
	}
	if flags.Changed("skeleton") {
		cfg.Budget.Skeleton = flagSkeleton
	}
	if flags.Changed("truncate-lines") {
		cfg.Budget.TruncateLines = flagTruncLines
	}
	if flags.Changed("truncate-summary") {
		cfg.Budget.TruncateSummary = flagTruncSummary
	}
	if flags.Changed("format") {
		cfg.Output.Format = flagFormat
	}
	if flags.Changed("metadata") {
		cfg.Output.Metadata = flagMetadata
	}
	if flags.Changed("include") {
		cfg.Paths.Include = flagInclude
	}
	if flags.Changed("ignore") {
		cfg.Paths.Ignore = flagIgnore
	}
	if flags.Changed("exempt") {
		cfg.Budget.SkeletonExempt = flagExempt
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	rootDir := "."
	if len(args) == 1 {
		rootDir = args[0]
	}

	cfg, err := loadConfig(cmd, rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	eng, err := engine.New(rootDir, cfg)
	if err != nil {
		return err
	}

	if flagZoom != "" {
		return runZoom(cmd.Context(), eng, cfg, rootDir)
	}
	return runPack(cmd.Context(), eng, cfg)
}

// runPack executes the pack operation and writes the result.
func runPack(ctx context.Context, eng *engine.Engine, cfg *config.Config) error {
	reporter := newPackProgress(flagQuiet)
	eng.WithProgress(reporter.onFile)

	result, err := eng.Pack(ctx)
	if err != nil {
		return err
	}
	reporter.finish()

	if err := writeOutput(result.Output); err != nil {
		return err
	}

	if cfg.Budget.Tokens != "" && !flagQuiet {
		result.Report.Print(os.Stderr)
	}
	return nil
}

// runZoom executes a zoom operation and records it in the session
// store.
func runZoom(ctx context.Context, eng *engine.Engine, cfg *config.Config, rootDir string) error {
	target, err := zoom.ParseTarget(flagZoom)
	if err != nil {
		return err
	}

	zc := zoom.Config{
		Target:       target,
		ContextLines: flagContext,
		IncludeTests: flagIncludeTests,
	}
	if flagDepth != "" {
		depth, ok := zoom.ParseDepth(flagDepth)
		if !ok {
			return fmt.Errorf("unknown zoom depth: %s", flagDepth)
		}
		zc.Depth = depth
	}
	if flagBudget != "" {
		parsed, err := budget.Parse(flagBudget)
		if err != nil {
			return err
		}
		zc.Budget = parsed
	}

	result, err := eng.Zoom(ctx, zc)
	if err != nil {
		return err
	}

	if err := recordZoom(rootDir, target, zc.Depth, cfg); err != nil && !flagQuiet {
		fmt.Fprintf(os.Stderr, "warning: failed to record zoom session: %v\n", err)
	}

	return writeOutput(result.Output)
}

// recordZoom appends the zoom to the active session, creating a
// default session on first use.
func recordZoom(rootDir string, target zoom.Target, depth zoom.Depth, cfg *config.Config) error {
	if depth == "" {
		depth, _ = zoom.ParseDepth(cfg.Zoom.DefaultDepth)
	}
	return zoom.WithPersistence(zoom.DefaultStorePath(rootDir), func(store *zoom.SessionStore) error {
		session := store.Active()
		if session == nil {
			session = store.CreateSession("default")
		}
		session.AddZoom(target, depth)
		return nil
	})
}

// writeOutput sends content to the output file or stdout.
func writeOutput(content string) error {
	if flagOutput == "" {
		_, err := os.Stdout.WriteString(content)
		return err
	}
	if err := os.WriteFile(flagOutput, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", flagOutput, err)
	}
	return nil
}
