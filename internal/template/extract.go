// Package template extracts the classification prompt template out of the
// TypeScript service source and builds the seed prompt for optimization.
//
// The extractor is deliberately narrow: it understands exactly one shape, a
// `const prompt = [ ... ].join("\n");` assignment whose array elements are
// template literals. Anything else in the source file is ignored. The shape
// is matched textually, so edits to the service file that move away from this
// pattern will surface as a format error rather than a bad prompt.
package template

import (
	"regexp"
	"strings"

	"github.com/optiprompt/optiprompt/internal/domain"
)

var (
	// promptBlockRe matches the array assignment up to the join call. Non-greedy,
	// so only the first such block in the file is captured.
	promptBlockRe = regexp.MustCompile(`(?s)const\s+prompt\s*=\s*\[(.*?)\]\.join\("\\n"\);`)

	// partRe captures each template literal inside the matched block.
	partRe = regexp.MustCompile("`([^`]+)`")
)

// Recognized source placeholders and their substitution tokens. Any other
// ${...} interpolation in the template is left as-is; the extractor does not
// evaluate TypeScript.
const (
	srcBusinessType        = "${businessType}"
	srcAggressivenessLevel = "${aggressivenessLevel}"

	PlaceholderBusinessType        = "{business_type}"
	PlaceholderAggressivenessLevel = "{aggressiveness_level}"
)

// ExtractPromptFromService pulls the prompt template out of the service
// source text and rewrites the recognized placeholders into their generic form.
func ExtractPromptFromService(text string) (string, error) {
	match := promptBlockRe.FindStringSubmatch(text)
	if match == nil {
		return "", domain.Format("could not find prompt block")
	}

	parts := partRe.FindAllStringSubmatch(match[1], -1)
	if len(parts) == 0 {
		return "", domain.Format("no template literal parts found in prompt block")
	}

	lines := make([]string, len(parts))
	for i, p := range parts {
		lines[i] = p[1]
	}

	prompt := strings.Join(lines, "\n")
	prompt = strings.ReplaceAll(prompt, srcBusinessType, PlaceholderBusinessType)
	prompt = strings.ReplaceAll(prompt, srcAggressivenessLevel, PlaceholderAggressivenessLevel)
	return prompt, nil
}
