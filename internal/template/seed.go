package template

import (
	"fmt"
	"os"
	"strings"

	"github.com/optiprompt/optiprompt/internal/domain"
)

// labelOnlySuffix nudges the task model toward bare-label answers; the
// exact-match evaluator reiterates it in mismatch feedback.
const labelOnlySuffix = "\n\nReturn only the label string. No explanation."

// SeedPrompt is the starting candidate handed to the optimizer. SystemPrompt
// is the slot the optimizer mutates and the one the best candidate comes back in.
type SeedPrompt struct {
	SystemPrompt string
}

// SeedOptions control where the template comes from and how its placeholders
// are filled.
type SeedOptions struct {
	// ServiceFile is the TypeScript source to extract the template from.
	ServiceFile string

	// SeedPromptFile, when set, is used verbatim and bypasses extraction.
	SeedPromptFile string

	BusinessType        string
	AggressivenessLevel string
}

// BuildSeedPrompt resolves the template, substitutes both placeholders with
// the supplied values and appends the label-only instruction.
func BuildSeedPrompt(opts SeedOptions) (SeedPrompt, error) {
	var text string

	if opts.SeedPromptFile != "" {
		raw, err := os.ReadFile(opts.SeedPromptFile)
		if err != nil {
			return SeedPrompt{}, domain.NewDomainError(domain.ErrIO, fmt.Sprintf("cannot read seed prompt file %s", opts.SeedPromptFile))
		}
		text = string(raw)
	} else {
		raw, err := os.ReadFile(opts.ServiceFile)
		if err != nil {
			return SeedPrompt{}, domain.NewDomainError(domain.ErrIO, fmt.Sprintf("cannot read service file %s", opts.ServiceFile))
		}
		extracted, err := ExtractPromptFromService(string(raw))
		if err != nil {
			return SeedPrompt{}, err
		}
		text = extracted
	}

	text = strings.ReplaceAll(text, PlaceholderBusinessType, opts.BusinessType)
	text = strings.ReplaceAll(text, PlaceholderAggressivenessLevel, opts.AggressivenessLevel)
	text += labelOnlySuffix

	return SeedPrompt{SystemPrompt: text}, nil
}
