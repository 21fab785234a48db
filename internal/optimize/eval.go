package optimize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/optiprompt/optiprompt/internal/adapters/id"
	"github.com/optiprompt/optiprompt/internal/llm"
	"github.com/optiprompt/optiprompt/internal/prompt"
)

// EvaluatePrompt runs the task model over every example with a fixed prompt
// and returns the exact-match accuracy. Examples are processed sequentially
// in order; the model's concurrency is GEPA's concern, not this pass's.
func EvaluatePrompt(ctx context.Context, taskLM *llm.Client, promptText string, examples []prompt.Example) (float64, error) {
	if len(examples) == 0 {
		return 0, fmt.Errorf("no examples to evaluate")
	}

	evalID := id.New().GenerateEvalID()
	metric := &prompt.ExactLabelMetric{}
	correct := 0

	for i, ex := range examples {
		input, _ := ex.Inputs[prompt.FieldInput].(string)
		response, err := taskLM.Complete(ctx, composePrompt(promptText, input))
		if err != nil {
			return 0, fmt.Errorf("evaluation call %d failed: %w", i+1, err)
		}

		pred := prompt.Example{Outputs: map[string]any{prompt.FieldLabel: response}}
		score, err := metric.Score(ctx, ex, pred, nil)
		if err != nil {
			return 0, fmt.Errorf("scoring example %d failed: %w", i+1, err)
		}
		if score.Score == 1.0 {
			correct++
		}
		slog.Debug("evaluated example", "eval_id", evalID, "index", i, "score", score.Score, "feedback", score.Feedback)
	}

	return float64(correct) / float64(len(examples)), nil
}

func composePrompt(promptText, input string) string {
	return strings.TrimRight(promptText, "\n") + "\n\n" + input
}
