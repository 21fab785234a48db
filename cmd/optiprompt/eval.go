package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/optiprompt/optiprompt/internal/domain"
	"github.com/optiprompt/optiprompt/internal/optimize"
	"github.com/optiprompt/optiprompt/internal/prompt"
	"github.com/optiprompt/optiprompt/internal/tabular"
)

// evalCmd measures a fixed prompt's exact-match accuracy on a labeled CSV.
func evalCmd() *cobra.Command {
	var (
		csvPath        string
		labelColumn    string
		featureColumns string
		promptFile     string
		taskLM         string
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate a fixed prompt against a labeled CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if taskLM != "" {
				cfg.LLM.Model = taskLM
			}

			raw, err := os.ReadFile(promptFile)
			if err != nil {
				return domain.NewDomainError(domain.ErrIO, fmt.Sprintf("failed to read prompt file %s: %v", promptFile, err))
			}
			promptText := strings.TrimRight(string(raw), "\n")
			if promptText == "" {
				return domain.Validation("prompt file is empty")
			}

			header, rows, err := tabular.LoadCSV(csvPath)
			if err != nil {
				return err
			}
			features, err := tabular.PickFeatureColumns(rows, header, labelColumn, featureColumns)
			if err != nil {
				return err
			}
			examples, err := tabular.ToDataset(rows, labelColumn, features)
			if err != nil {
				return err
			}

			slog.Info("evaluating prompt", "examples", len(examples), "model", cfg.LLM.Model)

			accuracy, err := optimize.EvaluatePrompt(ctx, taskClient(), promptText, prompt.FromTabular(examples))
			if err != nil {
				return fmt.Errorf("evaluation failed: %w", err)
			}

			fmt.Printf("Accuracy: %.4f (%d examples)\n", accuracy, len(examples))
			return nil
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Path to the labeled CSV (required)")
	cmd.Flags().StringVar(&labelColumn, "label-column", "", "Name of the label column (required)")
	cmd.Flags().StringVar(&featureColumns, "feature-columns", "", "Comma-separated feature columns (default: all except label)")
	cmd.Flags().StringVar(&promptFile, "prompt-file", "", "Plain-text file holding the prompt to evaluate (required)")
	cmd.Flags().StringVar(&taskLM, "task-lm", "", "Task model name (default from config)")

	_ = cmd.MarkFlagRequired("csv")
	_ = cmd.MarkFlagRequired("prompt-file")
	_ = cmd.MarkFlagRequired("label-column")

	return cmd
}
