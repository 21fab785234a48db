package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.LLM.URL == "" {
		t.Error("LLM URL should not be empty")
	}
	if cfg.LLM.Model == "" {
		t.Error("LLM Model should not be empty")
	}
	if cfg.LLM.MaxTokens <= 0 {
		t.Error("LLM MaxTokens should be positive")
	}

	if cfg.Reflection.Model == "" {
		t.Error("Reflection Model should not be empty")
	}

	if cfg.Optimizer.MaxMetricCalls <= 0 {
		t.Error("Optimizer MaxMetricCalls should be positive")
	}
	if cfg.Optimizer.PopulationSize <= 0 {
		t.Error("Optimizer PopulationSize should be positive")
	}

	if cfg.Paths.ServiceFile == "" {
		t.Error("Paths ServiceFile should not be empty")
	}
	if cfg.Paths.OutputFile == "" {
		t.Error("Paths OutputFile should not be empty")
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestEnvString(t *testing.T) {
	target := "original"

	t.Run("sets value when env var exists", func(t *testing.T) {
		t.Setenv("TEST_VAR", "new_value")
		envString("TEST_VAR", &target)
		if target != "new_value" {
			t.Errorf("expected 'new_value', got '%s'", target)
		}
	})

	t.Run("does not change value when env var is empty", func(t *testing.T) {
		t.Setenv("TEST_VAR", "")
		target = "original"
		envString("TEST_VAR", &target)
		if target != "original" {
			t.Errorf("expected 'original', got '%s'", target)
		}
	})
}

func TestEnvInt(t *testing.T) {
	target := 10

	t.Run("sets value when valid", func(t *testing.T) {
		t.Setenv("TEST_INT", "42")
		envInt("TEST_INT", &target)
		if target != 42 {
			t.Errorf("expected 42, got %d", target)
		}
	})

	t.Run("keeps value when invalid", func(t *testing.T) {
		t.Setenv("TEST_INT", "not-a-number")
		target = 10
		envInt("TEST_INT", &target)
		if target != 10 {
			t.Errorf("expected 10, got %d", target)
		}
	})
}

func TestEnvFloat(t *testing.T) {
	target := 0.5

	t.Setenv("TEST_FLOAT", "0.9")
	envFloat("TEST_FLOAT", &target)
	if target != 0.9 {
		t.Errorf("expected 0.9, got %v", target)
	}
}

func TestLoadAppliesEnvOverrides(t *testing.T) {
	// Keep the loader away from any real config file on the host
	t.Setenv("OPTIPROMPT_CONFIG", filepath.Join(t.TempDir(), "missing.json"))
	t.Setenv("OPTIPROMPT_LLM_MODEL", "openai/gpt-4o-mini")
	t.Setenv("OPTIPROMPT_MAX_METRIC_CALLS", "25")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LLM.Model != "openai/gpt-4o-mini" {
		t.Errorf("expected env model override, got %q", cfg.LLM.Model)
	}
	if cfg.Optimizer.MaxMetricCalls != 25 {
		t.Errorf("expected budget override 25, got %d", cfg.Optimizer.MaxMetricCalls)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	content := `{"llm": {"model": "local/qwen3-8b"}, "optimizer": {"max_metric_calls": 60}}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("OPTIPROMPT_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.LLM.Model != "local/qwen3-8b" {
		t.Errorf("expected model from file, got %q", cfg.LLM.Model)
	}
	if cfg.Optimizer.MaxMetricCalls != 60 {
		t.Errorf("expected budget 60 from file, got %d", cfg.Optimizer.MaxMetricCalls)
	}
	// Fields absent from the file keep their defaults
	if cfg.Paths.OutputFile != DefaultConfig().Paths.OutputFile {
		t.Errorf("expected default output file, got %q", cfg.Paths.OutputFile)
	}
}

func TestValidateRejectsBadBudget(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Optimizer.MaxMetricCalls = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for zero metric-call budget")
	}
}
