package prompt

import (
	"github.com/XiaoConstantine/dspy-go/pkg/core"
)

// Field names shared by the signature, the dataset conversion and the metric.
const (
	FieldInput = "input"
	FieldLabel = "label"
)

// Signature wraps the dspy-go signature with a name for run reporting
type Signature struct {
	core.Signature
	Name string
}

// ClassificationSignature builds the single-module signature the optimizer
// works on: one text input, one label output, with the seed prompt installed
// as the instruction GEPA mutates.
func ClassificationSignature(instruction string) Signature {
	coreSig := core.NewSignature(
		[]core.InputField{{Field: core.NewField(FieldInput)}},
		[]core.OutputField{{Field: core.NewField(FieldLabel)}},
	).WithInstruction(instruction)

	return Signature{
		Signature: coreSig,
		Name:      "classify_" + FieldInput + "_to_" + FieldLabel,
	}
}
