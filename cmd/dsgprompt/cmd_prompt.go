package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"dsgprompt/internal/logging"
	"dsgprompt/internal/prompt"
)

var (
	promptTemplate string
	promptQuery    string
)

// promptCmd renders a prompt for one scene and one question
var promptCmd = &cobra.Command{
	Use:   "prompt [scene.json]",
	Short: "Render a prompt template for one scene and question",
	Long: `Serializes the scene and substitutes it for {{scene_repr}} and the
query for {{query}} in the prompt template.

Example:
  dsgprompt prompt office.json --template prompts/qa.txt -q "How many chairs are in room 3?"`,
	Args: cobra.ExactArgs(1),
	RunE: runPrompt,
}

func runPrompt(cmd *cobra.Command, args []string) error {
	path := cfg.Prompt.TemplatePath
	if promptTemplate != "" {
		path = promptTemplate
	}
	tmpl, err := prompt.LoadTemplate(path)
	if err != nil {
		return err
	}
	log := logging.Get(logger, logging.CategoryPrompt)
	if !tmpl.HasQuery() {
		log.Warn("Template has no {{query}} placeholder; the query is dropped", zap.String("template", path))
	}

	kind, keys := encoding()
	repr, err := encodeFile(args[0], kind, keys)
	if err != nil {
		return err
	}
	log.Info("Rendering prompt", zap.String("scene", args[0]), zap.String("template", path))
	fmt.Fprintln(cmd.OutOrStdout(), tmpl.Render(repr, promptQuery))
	return nil
}
