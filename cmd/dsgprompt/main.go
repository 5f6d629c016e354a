package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dsgprompt/internal/config"
	"dsgprompt/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	timeout    time.Duration

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "dsgprompt",
	Short: "Serialize 3D scene graphs into language model prompts",
	Long: `dsgprompt flattens a hierarchical 3D scene graph (rooms, places, objects)
into text a language model can read, in one of four encodings:

  indented   tab-indented outline per room
  json       structured JSON with sanitized attribute values
  triplets   (subject, predicate, object) triples
  natural    English prose

Detail keys choose which per-object attributes are rendered; "NA" keeps
only the per-room category counts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		logger, err = logging.New(cfg.Logging.Options(verbose))
		if err != nil {
			return err
		}
		logging.Get(logger, logging.CategoryBoot).Debug("Configuration loaded",
			zap.String("path", configPath),
			zap.String("encoding", cfg.Serialization.Type),
			zap.Strings("detail_keys", cfg.Serialization.DetailKeys))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "dsgprompt.yaml", "Configuration file")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Minute, "Operation timeout")

	encodeCmd.Flags().StringVarP(&encodeType, "type", "t", "", "Encoding (default from config)")
	encodeCmd.Flags().StringSliceVarP(&encodeDetail, "detail", "d", nil, "Detail keys (default from config)")

	batchCmd.Flags().StringVar(&batchSceneDir, "scene-dir", "", "Scene directory (default from config)")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "Output directory (default: stdout)")
	batchCmd.Flags().StringVarP(&encodeType, "type", "t", "", "Encoding (default from config)")
	batchCmd.Flags().StringSliceVarP(&encodeDetail, "detail", "d", nil, "Detail keys (default from config)")
	batchCmd.Flags().BoolVar(&batchPrompts, "prompts", false, "Also render one prompt per task in the configured suite")

	promptCmd.Flags().StringVar(&promptTemplate, "template", "", "Prompt template (default from config)")
	promptCmd.Flags().StringVarP(&promptQuery, "query", "q", "", "Question about the scene (required)")
	promptCmd.Flags().StringVarP(&encodeType, "type", "t", "", "Encoding (default from config)")
	promptCmd.Flags().StringSliceVarP(&encodeDetail, "detail", "d", nil, "Detail keys (default from config)")
	promptCmd.MarkFlagRequired("query")

	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(promptCmd)
	rootCmd.AddCommand(sanitizeCmd)
	rootCmd.AddCommand(encodingsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// commandContext applies the global timeout and cancels on SIGINT/SIGTERM.
func commandContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	return ctx, func() {
		stop()
		cancel()
	}
}

// encoding returns the encoding and detail keys, flags over config.
func encoding() (string, []string) {
	kind := cfg.Serialization.Type
	if encodeType != "" {
		kind = encodeType
	}
	keys := cfg.Serialization.DetailKeys
	if len(encodeDetail) > 0 {
		keys = encodeDetail
	}
	return kind, keys
}
