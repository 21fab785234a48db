package main

import (
	"testing"

	"github.com/spf13/cobra"
)

func requireFlagRequired(t *testing.T, cmd *cobra.Command, names ...string) {
	t.Helper()
	for _, name := range names {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			t.Fatalf("%s: flag --%s not defined", cmd.Use, name)
		}
		if len(f.Annotations[cobra.BashCompOneRequiredFlag]) == 0 {
			t.Errorf("%s: flag --%s should be required", cmd.Use, name)
		}
	}
}

func TestOptimizeRequiredFlags(t *testing.T) {
	requireFlagRequired(t, optimizeCmd(), "train-csv", "val-csv", "label-column")
}

func TestEvalRequiredFlags(t *testing.T) {
	requireFlagRequired(t, evalCmd(), "csv", "prompt-file", "label-column")
}
