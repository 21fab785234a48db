package prompt

import (
	"context"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/XiaoConstantine/dspy-go/pkg/modules"
)

// LabelPredict wraps a dspy-go Predict module for single-label classification
type LabelPredict struct {
	*modules.Predict
}

// NewLabelPredict creates the prediction module for the given signature
func NewLabelPredict(sig Signature) *LabelPredict {
	return &LabelPredict{
		Predict: modules.NewPredict(sig.Signature),
	}
}

// ToProgram wraps the module in a core.Program for use with dspy-go optimizers
func (p *LabelPredict) ToProgram(moduleName string) core.Program {
	mods := map[string]core.Module{
		moduleName: p.Predict,
	}

	forward := func(ctx context.Context, inputs map[string]interface{}) (map[string]interface{}, error) {
		return p.Predict.Process(ctx, inputs)
	}

	return core.NewProgram(mods, forward)
}
