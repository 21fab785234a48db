package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/optiprompt/optiprompt/internal/optimize"
	"github.com/optiprompt/optiprompt/internal/prompt"
	"github.com/optiprompt/optiprompt/internal/tabular"
	"github.com/optiprompt/optiprompt/internal/template"
)

// optimizeCmd runs the full pipeline: load CSVs, build the seed prompt,
// hand both to the optimizer, and write the best prompt found.
func optimizeCmd() *cobra.Command {
	var (
		trainCSV       string
		valCSV         string
		labelColumn    string
		featureColumns string

		serviceFile    string
		seedPromptFile string
		businessType   string
		aggressiveness string

		taskLM         string
		reflectionLM   string
		maxMetricCalls int
		outputFile     string
	)

	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Optimize a classification prompt against labeled CSV data",
		Long: `Loads train and validation CSVs, derives input/label examples, builds a
seed prompt from the service file (or a seed prompt file), and runs the
GEPA optimizer. The best prompt is printed and written to the output file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			// Flag overrides on top of config defaults.
			if taskLM != "" {
				cfg.LLM.Model = taskLM
			}
			if reflectionLM != "" {
				cfg.Reflection.Model = reflectionLM
			}
			if maxMetricCalls > 0 {
				cfg.Optimizer.MaxMetricCalls = maxMetricCalls
			}
			if serviceFile != "" {
				cfg.Paths.ServiceFile = serviceFile
			}
			if outputFile != "" {
				cfg.Paths.OutputFile = outputFile
			}

			trainHeader, trainRows, err := tabular.LoadCSV(trainCSV)
			if err != nil {
				return fmt.Errorf("failed to load train CSV: %w", err)
			}
			valHeader, valRows, err := tabular.LoadCSV(valCSV)
			if err != nil {
				return fmt.Errorf("failed to load validation CSV: %w", err)
			}

			features, err := tabular.PickFeatureColumns(trainRows, trainHeader, labelColumn, featureColumns)
			if err != nil {
				return err
			}
			// The validation set must expose the same label column.
			if _, err := tabular.PickFeatureColumns(valRows, valHeader, labelColumn, featureColumns); err != nil {
				return fmt.Errorf("validation CSV: %w", err)
			}

			trainset, err := tabular.ToDataset(trainRows, labelColumn, features)
			if err != nil {
				return err
			}
			valset, err := tabular.ToDataset(valRows, labelColumn, features)
			if err != nil {
				return fmt.Errorf("validation CSV: %w", err)
			}

			slog.Info("loaded datasets",
				"train_examples", len(trainset),
				"val_examples", len(valset),
				"feature_columns", features,
				"label_column", labelColumn)

			seed, err := template.BuildSeedPrompt(template.SeedOptions{
				ServiceFile:         cfg.Paths.ServiceFile,
				SeedPromptFile:      seedPromptFile,
				BusinessType:        businessType,
				AggressivenessLevel: aggressiveness,
			})
			if err != nil {
				return err
			}

			slog.Info("seed prompt ready",
				"chars", len(seed.SystemPrompt),
				"task_lm", cfg.LLM.Model,
				"reflection_lm", cfg.Reflection.Model,
				"max_metric_calls", cfg.Optimizer.MaxMetricCalls)

			runner := optimize.NewRunner(taskClient(), reflectionClient(), optimize.Config{
				MaxMetricCalls: cfg.Optimizer.MaxMetricCalls,
				PopulationSize: cfg.Optimizer.PopulationSize,
				MinibatchSize:  cfg.Optimizer.MinibatchSize,
				Concurrency:    cfg.Optimizer.Concurrency,
			})

			result, err := runner.Run(ctx, seed, prompt.FromTabular(trainset), prompt.FromTabular(valset))
			if err != nil {
				return fmt.Errorf("optimization failed: %w", err)
			}

			fmt.Println("Best prompt found:")
			fmt.Println()
			fmt.Println(result.BestPrompt)
			fmt.Println()
			fmt.Printf("Best score: %.4f\n", result.BestScore)
			if result.ValAccuracy >= 0 {
				fmt.Printf("Validation accuracy: %.4f\n", result.ValAccuracy)
			}

			if err := optimize.WriteBestPrompt(cfg.Paths.OutputFile, result.BestPrompt); err != nil {
				return fmt.Errorf("failed to write best prompt: %w", err)
			}
			slog.Info("best prompt written", "path", cfg.Paths.OutputFile, "run_id", result.RunID)

			return nil
		},
	}

	cmd.Flags().StringVar(&trainCSV, "train-csv", "", "Path to the training CSV (required)")
	cmd.Flags().StringVar(&valCSV, "val-csv", "", "Path to the validation CSV (required)")
	cmd.Flags().StringVar(&labelColumn, "label-column", "", "Name of the label column (required)")
	cmd.Flags().StringVar(&featureColumns, "feature-columns", "", "Comma-separated feature columns (default: all except label)")
	cmd.Flags().StringVar(&serviceFile, "service-file", "", "TypeScript service file holding the prompt template")
	cmd.Flags().StringVar(&seedPromptFile, "seed-prompt-file", "", "Plain-text seed prompt file, used verbatim instead of extraction")
	cmd.Flags().StringVar(&businessType, "business-type", "small business", "Value substituted for the business type placeholder")
	cmd.Flags().StringVar(&aggressiveness, "aggressiveness-level", "moderate", "Value substituted for the aggressiveness placeholder")
	cmd.Flags().StringVar(&taskLM, "task-lm", "", "Task model name (default from config)")
	cmd.Flags().StringVar(&reflectionLM, "reflection-lm", "", "Reflection model name (default from config)")
	cmd.Flags().IntVar(&maxMetricCalls, "max-metric-calls", 0, "Optimization budget in metric calls (default from config)")
	cmd.Flags().StringVar(&outputFile, "output-file", "", "Where to write the best prompt (default from config)")

	_ = cmd.MarkFlagRequired("train-csv")
	_ = cmd.MarkFlagRequired("val-csv")
	_ = cmd.MarkFlagRequired("label-column")

	return cmd
}
