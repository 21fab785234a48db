package id

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type Generator struct{}

func New() *Generator {
	return &Generator{}
}

func (g *Generator) generate(prefix string) string {
	id, err := gonanoid.New(21)
	if err != nil {
		return prefix + "_fallback"
	}
	return prefix + "_" + id
}

// GenerateRunID returns an identifier for one optimization run.
func (g *Generator) GenerateRunID() string {
	return g.generate("run")
}

// GenerateEvalID returns an identifier for a single evaluation.
func (g *Generator) GenerateEvalID() string {
	return g.generate("eval")
}
