package prompt

import (
	"context"
	"fmt"
	"strings"
)

// Metric defines an evaluation function for prompt optimization
type Metric interface {
	// Score evaluates a prediction against gold truth
	// Returns score (0-1) and optional feedback for GEPA reflection
	Score(ctx context.Context, gold, pred Example, trace *Trace) (ScoreWithFeedback, error)
}

// Example represents a training or validation example
type Example struct {
	Inputs  map[string]any
	Outputs map[string]any
}

// Trace represents execution trace information
type Trace struct {
	Steps []TraceStep
}

// TraceStep represents a single step in the execution trace
type TraceStep struct {
	Name   string
	Inputs map[string]any
	Output any
	Error  error
}

// ScoreWithFeedback combines numeric score with textual feedback for GEPA
type ScoreWithFeedback struct {
	Score    float64
	Feedback string

	// ObjectiveScores carries per-objective breakdowns. The exact-label
	// metric never populates it.
	ObjectiveScores map[string]float64
}

// ExactLabelMetric scores a classification response against the expected
// label. Matching is case-insensitive, considers only the first response
// line, and tolerates one layer of surrounding quotes. The score is binary.
//
// The metric is stateless: GEPA may call it concurrently, repeatedly, and in
// any example order.
type ExactLabelMetric struct{}

func (m *ExactLabelMetric) Score(_ context.Context, gold, pred Example, _ *Trace) (ScoreWithFeedback, error) {
	rawExpected, ok := gold.Outputs[FieldLabel].(string)
	if !ok {
		return ScoreWithFeedback{}, fmt.Errorf("gold example has no %q output", FieldLabel)
	}

	rawResponse, _ := pred.Outputs[FieldLabel].(string)

	expected := strings.ToLower(strings.TrimSpace(rawExpected))
	predicted := NormalizeResponse(rawResponse)

	if predicted == expected {
		return ScoreWithFeedback{
			Score:    1.0,
			Feedback: fmt.Sprintf("Correct. Expected='%s', Predicted='%s'", rawExpected, strings.TrimSpace(rawResponse)),
		}, nil
	}

	return ScoreWithFeedback{
		Score: 0.0,
		Feedback: fmt.Sprintf("Incorrect. Expected='%s', Predicted='%s'. Return only the label.",
			rawExpected, strings.TrimSpace(rawResponse)),
	}, nil
}

// NormalizeResponse reduces a model response to a comparable label: first
// line only, surrounding whitespace trimmed, one layer of single or double
// quotes stripped, lower-cased.
func NormalizeResponse(response string) string {
	line := strings.TrimSpace(response)
	if idx := strings.IndexByte(line, '\n'); idx >= 0 {
		line = line[:idx]
	}
	line = strings.TrimSpace(line)
	line = stripQuoteLayer(line, `"`)
	line = stripQuoteLayer(line, `'`)
	return strings.ToLower(line)
}

func stripQuoteLayer(s, quote string) string {
	s = strings.TrimPrefix(s, quote)
	return strings.TrimSuffix(s, quote)
}
