package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/codescope/internal/engine"
	"github.com/mvp-joe/codescope/internal/watcher"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Repack the output file whenever sources change",
	Long: `Watch the source tree and regenerate the packed context whenever a
file changes. Writes go to the --output file; an output path is
required because stdout cannot be rewritten in place.

Example:
  codescope watch --budget 100k -o context.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&flagBudget, "budget", "", "token budget, k/M suffixes allowed")
	watchCmd.Flags().StringVar(&flagFormat, "format", "", "output format: plusminus, xml, markdown")
	watchCmd.Flags().StringVar(&flagSkeleton, "skeleton", "", "skeleton mode: auto, always, never")
	watchCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "output file (required)")
	watchCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "suppress progress output")
}

func runWatch(cmd *cobra.Command, args []string) error {
	if flagOutput == "" {
		return fmt.Errorf("watch mode requires --output")
	}

	rootDir := "."
	if len(args) == 1 {
		rootDir = args[0]
	}

	cfg, err := loadConfig(cmd, rootDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	rebuild := func(ctx context.Context) error {
		eng, err := engine.New(rootDir, cfg)
		if err != nil {
			return err
		}
		result, err := eng.Pack(ctx)
		if err != nil {
			return err
		}
		return os.WriteFile(flagOutput, []byte(result.Output), 0o644)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initial pack before watching
	if err := rebuild(ctx); err != nil {
		return err
	}
	log.Printf("Packed to %s, watching %s for changes...", flagOutput, rootDir)

	w, err := watcher.New(rootDir, rebuild)
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	w.Start(ctx)
	defer w.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Printf("Received shutdown signal, stopping...")
	return nil
}
