package prompt

import (
	"context"
	"fmt"

	"github.com/XiaoConstantine/dspy-go/pkg/core"

	"github.com/optiprompt/optiprompt/internal/llm"
	"github.com/optiprompt/optiprompt/internal/tabular"
)

// ClientAdapter adapts the OpenAI-compatible llm.Client to dspy-go's LLM
// interface. Only Generate is live: GEPA drives both the task model and the
// reflection model through plain text generation. The remaining core.LLM
// methods exist to satisfy the interface and report themselves unsupported.
type ClientAdapter struct {
	client *llm.Client
}

// NewClientAdapter creates a new client adapter
func NewClientAdapter(client *llm.Client) *ClientAdapter {
	return &ClientAdapter{client: client}
}

// Generate implements the dspy-go LLM interface
func (a *ClientAdapter) Generate(ctx context.Context, prompt string, opts ...core.GenerateOption) (*core.LLMResponse, error) {
	resp, err := a.client.Chat(ctx, []llm.ChatMessage{
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("llm chat failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("llm returned no choices")
	}

	return &core.LLMResponse{
		Content: resp.Choices[0].Message.Content,
	}, nil
}

func (a *ClientAdapter) GenerateWithJSON(ctx context.Context, prompt string, opts ...core.GenerateOption) (map[string]interface{}, error) {
	return nil, fmt.Errorf("GenerateWithJSON not implemented: not required for GEPA optimization")
}

func (a *ClientAdapter) GenerateWithFunctions(ctx context.Context, prompt string, functions []map[string]interface{}, opts ...core.GenerateOption) (map[string]interface{}, error) {
	return nil, fmt.Errorf("GenerateWithFunctions not implemented: not required for GEPA optimization")
}

func (a *ClientAdapter) CreateEmbedding(ctx context.Context, input string, opts ...core.EmbeddingOption) (*core.EmbeddingResult, error) {
	return nil, fmt.Errorf("CreateEmbedding not implemented: not required for GEPA optimization")
}

func (a *ClientAdapter) CreateEmbeddings(ctx context.Context, inputs []string, opts ...core.EmbeddingOption) (*core.BatchEmbeddingResult, error) {
	return nil, fmt.Errorf("CreateEmbeddings not implemented: not required for GEPA optimization")
}

func (a *ClientAdapter) StreamGenerate(ctx context.Context, prompt string, opts ...core.GenerateOption) (*core.StreamResponse, error) {
	return nil, fmt.Errorf("StreamGenerate not implemented: GEPA runs in batch mode")
}

func (a *ClientAdapter) GenerateWithContent(ctx context.Context, content []core.ContentBlock, opts ...core.GenerateOption) (*core.LLMResponse, error) {
	return nil, fmt.Errorf("GenerateWithContent not implemented: prompts are text only")
}

func (a *ClientAdapter) StreamGenerateWithContent(ctx context.Context, content []core.ContentBlock, opts ...core.GenerateOption) (*core.StreamResponse, error) {
	return nil, fmt.Errorf("StreamGenerateWithContent not implemented: prompts are text only")
}

// ProviderName returns the provider name
func (a *ClientAdapter) ProviderName() string {
	return "optiprompt"
}

// ModelID returns the model identifier
func (a *ClientAdapter) ModelID() string {
	return a.client.Model()
}

// Capabilities returns the capabilities of this LLM
func (a *ClientAdapter) Capabilities() []core.Capability {
	return []core.Capability{core.CapabilityChat, core.CapabilityCompletion}
}

// FromTabular converts loader examples into optimizer examples.
func FromTabular(examples []tabular.Example) []Example {
	out := make([]Example, len(examples))
	for i, ex := range examples {
		out[i] = Example{
			Inputs:  map[string]any{FieldInput: ex.Input},
			Outputs: map[string]any{FieldLabel: ex.Answer},
		}
	}
	return out
}

// DatasetAdapter exposes []Example through dspy-go's core.Dataset interface
type DatasetAdapter struct {
	examples []Example
	index    int
}

// NewDatasetAdapter creates a new dataset adapter
func NewDatasetAdapter(examples []Example) *DatasetAdapter {
	return &DatasetAdapter{examples: examples}
}

// Next returns the next example in the dataset
func (d *DatasetAdapter) Next() (core.Example, bool) {
	if d.index >= len(d.examples) {
		return core.Example{}, false
	}
	ex := d.examples[d.index]
	d.index++

	return core.Example{
		Inputs:  ex.Inputs,
		Outputs: ex.Outputs,
	}, true
}

// Reset resets the dataset iterator
func (d *DatasetAdapter) Reset() {
	d.index = 0
}

// MetricAdapter bridges a Metric to dspy-go's core.Metric function type
type MetricAdapter struct {
	metric Metric
}

// NewMetricAdapter creates a new metric adapter
func NewMetricAdapter(metric Metric) *MetricAdapter {
	return &MetricAdapter{metric: metric}
}

// ToCoreMetric converts to the dspy-go core.Metric function type
func (m *MetricAdapter) ToCoreMetric() core.Metric {
	return func(expected, actual map[string]interface{}) float64 {
		gold := Example{Inputs: expected, Outputs: expected}
		pred := Example{Inputs: actual, Outputs: actual}

		result, err := m.metric.Score(context.Background(), gold, pred, nil)
		if err != nil {
			return 0.0
		}
		return result.Score
	}
}
