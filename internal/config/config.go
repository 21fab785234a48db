package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
)

// Config holds all configuration for optiprompt
type Config struct {
	LLM        LLMConfig       `json:"llm"`
	Reflection LLMConfig       `json:"reflection"`
	Optimizer  OptimizerConfig `json:"optimizer"`
	Paths      PathsConfig     `json:"paths"`
}

// LLMConfig holds settings for one OpenAI-compatible endpoint (vLLM/LiteLLM)
type LLMConfig struct {
	URL         string  `json:"url"`
	APIKey      string  `json:"api_key"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

// OptimizerConfig holds GEPA-facing knobs
type OptimizerConfig struct {
	// MaxMetricCalls caps the total evaluation budget for one run
	MaxMetricCalls int `json:"max_metric_calls"`

	// PopulationSize is the GEPA candidate population per generation
	PopulationSize int `json:"population_size"`

	// MinibatchSize is the evaluation batch used for GEPA reflection
	MinibatchSize int `json:"minibatch_size"`

	// Concurrency bounds parallel metric evaluations inside GEPA
	Concurrency int `json:"concurrency"`
}

// PathsConfig holds default file locations
type PathsConfig struct {
	ServiceFile string `json:"service_file"`
	OutputFile  string `json:"output_file"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			URL:         "http://localhost:8000/v1",
			APIKey:      "",
			Model:       "openai/gpt-4.1-mini",
			MaxTokens:   512,
			Temperature: 0.0,
		},
		Reflection: LLMConfig{
			URL:         "http://localhost:8000/v1",
			APIKey:      "",
			Model:       "openai/gpt-5",
			MaxTokens:   2048,
			Temperature: 0.7,
		},
		Optimizer: OptimizerConfig{
			MaxMetricCalls: 150,
			PopulationSize: 10,
			MinibatchSize:  5,
			Concurrency:    3,
		},
		Paths: PathsConfig{
			ServiceFile: "apps/api/src/services/llmService.ts",
			OutputFile:  "/tmp/optiprompt_best.txt",
		},
	}
}

// envString loads a string environment variable into the target pointer if set
func envString(key string, target *string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

// envInt loads an integer environment variable into the target pointer if set and valid
func envInt(key string, target *int) {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*target = i
		}
	}
}

// envFloat loads a float64 environment variable into the target pointer if set and valid
func envFloat(key string, target *float64) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*target = f
		}
	}
}

// Load loads configuration from the config file and environment variables.
// Precedence: defaults < config file < environment. Flag values are applied
// by the CLI on top of the loaded config.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	configPath := getConfigPath()
	if data, err := os.ReadFile(configPath); err == nil {
		if err := json.Unmarshal(data, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to parse config file %s: %v\n", configPath, err)
		}
	}

	envString("OPTIPROMPT_LLM_URL", &cfg.LLM.URL)
	envString("OPTIPROMPT_LLM_API_KEY", &cfg.LLM.APIKey)
	envString("OPTIPROMPT_LLM_MODEL", &cfg.LLM.Model)
	envInt("OPTIPROMPT_LLM_MAX_TOKENS", &cfg.LLM.MaxTokens)
	envFloat("OPTIPROMPT_LLM_TEMPERATURE", &cfg.LLM.Temperature)

	envString("OPTIPROMPT_REFLECTION_URL", &cfg.Reflection.URL)
	envString("OPTIPROMPT_REFLECTION_API_KEY", &cfg.Reflection.APIKey)
	envString("OPTIPROMPT_REFLECTION_MODEL", &cfg.Reflection.Model)
	envInt("OPTIPROMPT_REFLECTION_MAX_TOKENS", &cfg.Reflection.MaxTokens)
	envFloat("OPTIPROMPT_REFLECTION_TEMPERATURE", &cfg.Reflection.Temperature)

	envInt("OPTIPROMPT_MAX_METRIC_CALLS", &cfg.Optimizer.MaxMetricCalls)
	envInt("OPTIPROMPT_POPULATION_SIZE", &cfg.Optimizer.PopulationSize)
	envInt("OPTIPROMPT_MINIBATCH_SIZE", &cfg.Optimizer.MinibatchSize)
	envInt("OPTIPROMPT_CONCURRENCY", &cfg.Optimizer.Concurrency)

	envString("OPTIPROMPT_SERVICE_FILE", &cfg.Paths.ServiceFile)
	envString("OPTIPROMPT_OUTPUT_FILE", &cfg.Paths.OutputFile)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for obvious mistakes
func (c *Config) Validate() error {
	if _, err := url.Parse(c.LLM.URL); err != nil {
		return fmt.Errorf("invalid LLM URL %q: %w", c.LLM.URL, err)
	}
	if _, err := url.Parse(c.Reflection.URL); err != nil {
		return fmt.Errorf("invalid reflection LLM URL %q: %w", c.Reflection.URL, err)
	}
	if c.Optimizer.MaxMetricCalls <= 0 {
		return fmt.Errorf("max metric calls must be positive, got %d", c.Optimizer.MaxMetricCalls)
	}
	if c.Optimizer.PopulationSize <= 0 {
		return fmt.Errorf("population size must be positive, got %d", c.Optimizer.PopulationSize)
	}
	if c.Optimizer.MinibatchSize <= 0 {
		return fmt.Errorf("minibatch size must be positive, got %d", c.Optimizer.MinibatchSize)
	}
	if c.Optimizer.Concurrency <= 0 {
		return fmt.Errorf("concurrency must be positive, got %d", c.Optimizer.Concurrency)
	}
	return nil
}

func getConfigPath() string {
	if path := os.Getenv("OPTIPROMPT_CONFIG"); path != "" {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".optiprompt", "config.json")
}
