package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/optiprompt/optiprompt/internal/template"
)

// extractCmd builds the seed prompt without running the optimizer, so the
// extraction and substitution steps can be inspected on their own.
func extractCmd() *cobra.Command {
	var (
		serviceFile    string
		seedPromptFile string
		businessType   string
		aggressiveness string
	)

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Print the seed prompt that optimize would start from",
		RunE: func(cmd *cobra.Command, args []string) error {
			if serviceFile != "" {
				cfg.Paths.ServiceFile = serviceFile
			}

			seed, err := template.BuildSeedPrompt(template.SeedOptions{
				ServiceFile:         cfg.Paths.ServiceFile,
				SeedPromptFile:      seedPromptFile,
				BusinessType:        businessType,
				AggressivenessLevel: aggressiveness,
			})
			if err != nil {
				return err
			}

			fmt.Println(seed.SystemPrompt)
			return nil
		},
	}

	cmd.Flags().StringVar(&serviceFile, "service-file", "", "TypeScript service file holding the prompt template")
	cmd.Flags().StringVar(&seedPromptFile, "seed-prompt-file", "", "Plain-text seed prompt file, used verbatim instead of extraction")
	cmd.Flags().StringVar(&businessType, "business-type", "small business", "Value substituted for the business type placeholder")
	cmd.Flags().StringVar(&aggressiveness, "aggressiveness-level", "moderate", "Value substituted for the aggressiveness placeholder")

	return cmd
}
