package main

import (
	"github.com/optiprompt/optiprompt/internal/config"
	"github.com/optiprompt/optiprompt/internal/llm"
)

// Version information, set via ldflags at build time
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Shared state populated by PersistentPreRunE
var cfg *config.Config

// taskClient builds an LLM client for the task model from the current config.
func taskClient() *llm.Client {
	return llm.NewClient(
		cfg.LLM.URL,
		cfg.LLM.APIKey,
		cfg.LLM.Model,
		cfg.LLM.MaxTokens,
		cfg.LLM.Temperature,
	)
}

// reflectionClient builds an LLM client for the reflection model.
func reflectionClient() *llm.Client {
	return llm.NewClient(
		cfg.Reflection.URL,
		cfg.Reflection.APIKey,
		cfg.Reflection.Model,
		cfg.Reflection.MaxTokens,
		cfg.Reflection.Temperature,
	)
}

// maskSecret masks a secret for display
func maskSecret(s string) string {
	if s == "" {
		return "(not set)"
	}
	if len(s) <= 8 {
		return "(set)"
	}
	return s[:4] + "..." + s[len(s)-4:]
}
