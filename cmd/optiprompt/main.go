package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/optiprompt/optiprompt/internal/config"
	"github.com/optiprompt/optiprompt/internal/logging"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "optiprompt",
		Short: "Optimize CSV classification prompts with GEPA",
		Long: `optiprompt prepares CSV classification data and a seed prompt, then hands
both to the dspy-go GEPA optimizer to search for a better prompt.

The pipeline is deterministic: tabular loading and validation, prompt
template extraction, and an exact label-match evaluator. All search work
happens inside the optimizer.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(verbose)

			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		optimizeCmd(),
		extractCmd(),
		evalCmd(),
		configCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// configCmd shows the effective configuration
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("Current configuration:")
			fmt.Println()

			fmt.Println("Task LLM:")
			fmt.Printf("  URL:         %s\n", cfg.LLM.URL)
			fmt.Printf("  Model:       %s\n", cfg.LLM.Model)
			fmt.Printf("  Max Tokens:  %d\n", cfg.LLM.MaxTokens)
			fmt.Printf("  Temperature: %.2f\n", cfg.LLM.Temperature)
			fmt.Printf("  API Key:     %s\n", maskSecret(cfg.LLM.APIKey))
			fmt.Println()

			fmt.Println("Reflection LLM:")
			fmt.Printf("  URL:         %s\n", cfg.Reflection.URL)
			fmt.Printf("  Model:       %s\n", cfg.Reflection.Model)
			fmt.Printf("  Max Tokens:  %d\n", cfg.Reflection.MaxTokens)
			fmt.Printf("  Temperature: %.2f\n", cfg.Reflection.Temperature)
			fmt.Printf("  API Key:     %s\n", maskSecret(cfg.Reflection.APIKey))
			fmt.Println()

			fmt.Println("Optimizer:")
			fmt.Printf("  Max Metric Calls: %d\n", cfg.Optimizer.MaxMetricCalls)
			fmt.Printf("  Population Size:  %d\n", cfg.Optimizer.PopulationSize)
			fmt.Printf("  Minibatch Size:   %d\n", cfg.Optimizer.MinibatchSize)
			fmt.Printf("  Concurrency:      %d\n", cfg.Optimizer.Concurrency)
			fmt.Println()

			fmt.Println("Paths:")
			fmt.Printf("  Service File: %s\n", cfg.Paths.ServiceFile)
			fmt.Printf("  Output File:  %s\n", cfg.Paths.OutputFile)
			fmt.Println()

			fmt.Println("Environment variables:")
			fmt.Println("  OPTIPROMPT_LLM_URL, OPTIPROMPT_LLM_API_KEY, OPTIPROMPT_LLM_MODEL")
			fmt.Println("  OPTIPROMPT_REFLECTION_URL, OPTIPROMPT_REFLECTION_API_KEY, OPTIPROMPT_REFLECTION_MODEL")
			fmt.Println("  OPTIPROMPT_MAX_METRIC_CALLS, OPTIPROMPT_POPULATION_SIZE, OPTIPROMPT_MINIBATCH_SIZE")
			fmt.Println("  OPTIPROMPT_SERVICE_FILE, OPTIPROMPT_OUTPUT_FILE, OPTIPROMPT_CONFIG")

			return nil
		},
	}
}

// versionCmd shows version information
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("optiprompt %s\n", version)
			fmt.Printf("  Commit:     %s\n", commit)
			fmt.Printf("  Build Date: %s\n", buildDate)
		},
	}
}
