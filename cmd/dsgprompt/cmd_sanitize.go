package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dsgprompt/internal/sanitize"
	"dsgprompt/internal/serialization"
)

// sanitizeCmd parses one printed attribute
var sanitizeCmd = &cobra.Command{
	Use:   "sanitize [key] [raw]",
	Short: "Parse a printed attribute into JSON",
	Long: `Parses the printed form of an attribute and prints the structured value.

Example:
  dsgprompt sanitize position "position = [1.0 2.0 3.0]"`,
	Args: cobra.ExactArgs(2),
	RunE: runSanitize,
}

func runSanitize(cmd *cobra.Command, args []string) error {
	rec, err := sanitize.Sanitize(args[0], args[1])
	if err != nil {
		return err
	}
	out, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal attribute: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

// encodingsCmd lists encoders and attribute keys
var encodingsCmd = &cobra.Command{
	Use:   "encodings",
	Short: "List encodings and detail keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "encodings:   %s\n", strings.Join(serialization.Names(), ", "))
		fmt.Fprintf(w, "detail keys: %s, %s\n", strings.Join(sanitize.Keys(), ", "), serialization.DetailNone)
		return nil
	},
}
