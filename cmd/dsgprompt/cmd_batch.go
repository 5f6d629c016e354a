package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dsgprompt/internal/dataset"
	"dsgprompt/internal/logging"
	"dsgprompt/internal/prompt"
	"dsgprompt/internal/serialization"
)

var (
	batchSceneDir string
	batchOut      string
	batchPrompts  bool
)

// batchCmd serializes a directory of scene graphs
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Serialize every scene graph in a directory",
	Long: `Loads every *.json scene graph in the scene directory and serializes them
in parallel. With --out each encoding is written to <out>/<scene>.<ext>;
otherwise they are printed. With --prompts every task of the configured
suite is also rendered through the prompt template into <out>/prompts/.

Example:
  dsgprompt batch --scene-dir data/scenes --out build/triplets --type triplets`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	if batchPrompts && batchOut == "" {
		return fmt.Errorf("--prompts requires --out")
	}

	ctx, cancel := commandContext()
	defer cancel()

	log := logging.Get(logger, logging.CategoryDataset)

	kind, keys := encoding()
	serializer, err := dataset.NewSerializer(kind, keys,
		dataset.WithWorkers(cfg.Dataset.Workers),
		dataset.WithLogger(logger),
		dataset.WithVerbose(cfg.Serialization.Verbose || verbose))
	if err != nil {
		return err
	}

	dir := cfg.Dataset.SceneDir
	if batchSceneDir != "" {
		dir = batchSceneDir
	}
	scenes, err := dataset.LoadDir(dir)
	if err != nil {
		return err
	}
	log.Info("Loaded scenes", zap.String("dir", dir), zap.Int("count", len(scenes)))

	res, err := serializer.SerializeAll(ctx, scenes)
	if err != nil {
		return err
	}

	if batchOut == "" {
		w := cmd.OutOrStdout()
		for _, name := range res.Names {
			text, _ := res.Get(name)
			fmt.Fprintf(w, "==> %s <==\n%s\n", name, text)
		}
	} else if err := writeEncodings(batchOut, res); err != nil {
		return err
	}

	if !batchPrompts {
		return nil
	}
	return writePrompts(res)
}

func writeEncodings(out string, res *dataset.Result) error {
	if err := os.MkdirAll(out, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	ext := ".txt"
	if res.Kind == serialization.KindJSON {
		ext = ".json"
	}
	for _, name := range res.Names {
		text, _ := res.Get(name)
		path := filepath.Join(out, strings.TrimSuffix(name, filepath.Ext(name))+ext)
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return fmt.Errorf("failed to write encoding: %w", err)
		}
	}
	logger.Info("Wrote encodings",
		zap.String("run_id", res.RunID.String()),
		zap.String("dir", out),
		zap.Int("count", len(res.Names)))
	return nil
}

func writePrompts(res *dataset.Result) error {
	suite, err := dataset.ParseSuite(cfg.Dataset.Suite)
	if err != nil {
		return err
	}
	tasks, err := dataset.LoadTasks(cfg.Dataset.TaskDir, suite)
	if err != nil {
		return err
	}
	tmpl, err := prompt.LoadTemplate(cfg.Prompt.TemplatePath)
	if err != nil {
		return err
	}
	prompts, err := dataset.BuildPrompts(res, tasks, tmpl)
	if err != nil {
		return err
	}

	dir := filepath.Join(batchOut, "prompts")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create prompt directory: %w", err)
	}
	for _, p := range prompts {
		if err := os.WriteFile(filepath.Join(dir, p.TaskID+".txt"), []byte(p.Text), 0644); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}
	}
	logging.Get(logger, logging.CategoryPrompt).Info("Wrote prompts",
		zap.String("suite", string(suite)),
		zap.String("template", tmpl.Name()),
		zap.Int("count", len(prompts)))
	return nil
}
