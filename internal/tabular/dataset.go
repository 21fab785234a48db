package tabular

import (
	"strings"

	"github.com/optiprompt/optiprompt/internal/domain"
)

// Example is one normalized (input, answer) pair handed to the optimizer.
type Example struct {
	// Input is the newline-joined "column: value" rendering of the feature columns.
	Input string

	// Context is reserved for auxiliary data; always empty today.
	Context map[string]any

	// Answer is the trimmed label. Never empty.
	Answer string
}

// ToDataset converts rows into examples. Rows whose trimmed label is empty
// are dropped without a warning; a cell absent from a row renders as an empty
// value. Output order follows input order.
func ToDataset(rows []Row, labelColumn string, featureColumns []string) ([]Example, error) {
	dataset := make([]Example, 0, len(rows))
	for _, row := range rows {
		answer := strings.TrimSpace(row[labelColumn])
		if answer == "" {
			continue
		}

		lines := make([]string, len(featureColumns))
		for i, col := range featureColumns {
			lines[i] = col + ": " + strings.TrimSpace(row[col])
		}

		dataset = append(dataset, Example{
			Input:   strings.Join(lines, "\n"),
			Context: map[string]any{},
			Answer:  answer,
		})
	}

	if len(dataset) == 0 {
		return nil, domain.Validation("no usable rows with non-empty labels")
	}
	return dataset, nil
}
