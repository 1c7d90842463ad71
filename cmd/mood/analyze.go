package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go-mood-analyzer/internal/config"
	"go-mood-analyzer/internal/container"
	apperrors "go-mood-analyzer/internal/errors"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [text...]",
		Short: "Classify the mood of text",
		Long: `Scores the given text and prints the result as JSON.
Arguments are joined with single spaces. With no arguments the text is read from stdin.`,
		RunE: runAnalyze,
	}
	cmd.Flags().Float64("positive", 0, "score above which text is Good (default from config)")
	cmd.Flags().Float64("negative", 0, "score below which text is Bad (default from config)")
	cmd.Flags().Bool("markdown", false, "strip markdown before scoring")
	cmd.Flags().Bool("pretty", false, "indent the JSON output")
	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("positive") {
		cfg.PositiveThreshold, _ = flags.GetFloat64("positive")
	}
	if flags.Changed("negative") {
		cfg.NegativeThreshold, _ = flags.GetFloat64("negative")
	}
	if flags.Changed("markdown") {
		cfg.StripMarkdown, _ = flags.GetBool("markdown")
	}

	var text string
	if len(args) > 0 {
		text = strings.Join(args, " ")
	} else {
		input, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		text = strings.TrimRight(string(input), "\r\n")
	}

	moodClassifier, err := container.NewClassifier(cfg)
	if err != nil {
		return err
	}
	result, err := moodClassifier.Analyze(cmd.Context(), &text)
	if err != nil {
		return fmt.Errorf("%s", apperrors.PublicMessage(err))
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	if pretty, _ := flags.GetBool("pretty"); pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}
