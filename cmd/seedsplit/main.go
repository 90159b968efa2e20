package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"seedsplit/internal/config"
	"seedsplit/internal/llm"
	"seedsplit/internal/pipeline"
)

var (
	// Global flags
	verbose    bool
	configPath string
	speciesRef string
	noLLM      bool

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "seedsplit [input] [output]",
	Short: "seedsplit - expand multi-name accession cells into one row per name",
	Long: `seedsplit reads a genebank accession dataset (.csv or .xlsx), splits cells
that pack several variety or species names into a single field, and writes an
expanded dataset with one row per name.

Name resolution is two-tier: an optional LLM resolver handles messy
free-text cells, and deterministic segmentation rules cover the rest. Without
an API key the tool runs fully offline on the deterministic rules alone.

Example:
  seedsplit accessions.xlsx accessions_expanded.xlsx
  seedsplit --no-llm export.csv export_split.csv`,
	Args: cobra.ExactArgs(2),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runExpand,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfigPath(), "path to config file")
	rootCmd.Flags().StringVar(&speciesRef, "species-ref", "", "species reference list file (overrides config)")
	rootCmd.Flags().BoolVar(&noLLM, "no-llm", false, "disable the LLM resolver, deterministic rules only")
}

// defaultConfigPath honors SEEDSPLIT_CONFIG before falling back to the
// working-directory default.
func defaultConfigPath() string {
	if path := os.Getenv("SEEDSPLIT_CONFIG"); path != "" {
		return path
	}
	return "seedsplit.yaml"
}

func runExpand(cmd *cobra.Command, args []string) error {
	inputPath, outputPath := args[0], args[1]

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if speciesRef != "" {
		cfg.Reference.Path = speciesRef
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var client llm.Client
	if !noLLM && cfg.LLM.APIKey != "" {
		client, err = llm.NewClientFromConfig(ctx, cfg.LLM)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
	}

	stats, err := pipeline.New(cfg, client, logger).Run(ctx, inputPath, outputPath)
	if err != nil {
		return err
	}

	fmt.Printf("Expanded %d rows into %d rows: %s\n", stats.InputRows, stats.OutputRows, outputPath)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
