// Package optimize wires the prepared datasets, the seed prompt and the LLM
// clients into the dspy-go GEPA optimizer and extracts the best candidate.
package optimize

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/XiaoConstantine/dspy-go/pkg/core"
	"github.com/XiaoConstantine/dspy-go/pkg/optimizers"

	"github.com/optiprompt/optiprompt/internal/adapters/id"
	"github.com/optiprompt/optiprompt/internal/domain"
	"github.com/optiprompt/optiprompt/internal/llm"
	"github.com/optiprompt/optiprompt/internal/prompt"
	"github.com/optiprompt/optiprompt/internal/template"
)

// Config holds the optimizer-facing knobs for one run
type Config struct {
	// MaxMetricCalls caps the total evaluation budget
	MaxMetricCalls int

	// PopulationSize is the GEPA candidate population per generation
	PopulationSize int

	// MinibatchSize is the evaluation batch used for GEPA reflection
	MinibatchSize int

	// Concurrency bounds parallel metric evaluations inside GEPA
	Concurrency int
}

// Result summarizes one optimization run
type Result struct {
	RunID       string
	BestPrompt  string
	BestScore   float64
	Generations int

	// ValAccuracy is the exact-match accuracy of the best prompt on the
	// validation set, measured after optimization. NaN-free: -1 when the
	// validation pass was skipped.
	ValAccuracy float64
}

// Runner executes GEPA optimization runs
type Runner struct {
	taskLM       *llm.Client
	reflectionLM *llm.Client
	idGen        *id.Generator
	cfg          Config
}

// NewRunner creates a runner for the given task and reflection models. The
// reflection model may be nil; GEPA then reflects with the task model.
func NewRunner(taskLM, reflectionLM *llm.Client, cfg Config) *Runner {
	return &Runner{
		taskLM:       taskLM,
		reflectionLM: reflectionLM,
		idGen:        id.New(),
		cfg:          cfg,
	}
}

// generationsForBudget maps a metric-call budget onto GEPA generations. GEPA
// evaluates roughly population × minibatch candidates per generation, so the
// budget is divided accordingly, with a floor of one generation.
func generationsForBudget(maxMetricCalls, populationSize, minibatchSize int) int {
	callsPerGeneration := populationSize * minibatchSize
	if callsPerGeneration <= 0 {
		return 1
	}
	generations := maxMetricCalls / callsPerGeneration
	if generations < 1 {
		return 1
	}
	return generations
}

// Run compiles the seed prompt against the training set and returns the best
// candidate found within the evaluation budget. The validation set, when
// non-empty, is rescored with the exact-label metric after optimization.
//
// All data validation has already happened by the time Run is called, so a
// failure here is an optimizer or LLM failure, never a data problem.
func (r *Runner) Run(ctx context.Context, seed template.SeedPrompt, trainset, valset []prompt.Example) (*Result, error) {
	runID := r.idGen.GenerateRunID()
	log := slog.With("run_id", runID)

	core.SetDefaultLLM(prompt.NewClientAdapter(r.taskLM))
	if r.reflectionLM != nil {
		core.GlobalConfig.TeacherLLM = prompt.NewClientAdapter(r.reflectionLM)
	}

	sig := prompt.ClassificationSignature(seed.SystemPrompt)
	program := prompt.NewLabelPredict(sig).ToProgram(sig.Name)
	dataset := prompt.NewDatasetAdapter(trainset)
	metric := prompt.NewMetricAdapter(&prompt.ExactLabelMetric{}).ToCoreMetric()

	generations := generationsForBudget(r.cfg.MaxMetricCalls, r.cfg.PopulationSize, r.cfg.MinibatchSize)

	gepaConfig := &optimizers.GEPAConfig{
		MaxGenerations:       generations,
		PopulationSize:       r.cfg.PopulationSize,
		MutationRate:         0.3,
		CrossoverRate:        0.7,
		ElitismRate:          0.1,
		ReflectionFreq:       2,
		ReflectionDepth:      3,
		SelfCritiqueTemp:     0.7,
		TournamentSize:       3,
		SelectionStrategy:    "adaptive_pareto",
		ConvergenceThreshold: 0.01,
		StagnationLimit:      3,
		EvaluationBatchSize:  r.cfg.MinibatchSize,
		ConcurrencyLevel:     r.cfg.Concurrency,
		Temperature:          0.8,
		MaxTokens:            500,
	}

	gepaOptimizer, err := optimizers.NewGEPA(gepaConfig)
	if err != nil {
		return nil, domain.NewDomainError(domain.ErrOptimizationFailed, fmt.Sprintf("failed to create GEPA optimizer: %v", err))
	}

	log.Info("starting optimization",
		"train_examples", len(trainset),
		"val_examples", len(valset),
		"max_metric_calls", r.cfg.MaxMetricCalls,
		"generations", generations,
		"task_model", r.taskLM.Model(),
	)

	if _, err := gepaOptimizer.Compile(ctx, program, dataset, metric); err != nil {
		return nil, domain.NewDomainError(domain.ErrOptimizationFailed, fmt.Sprintf("GEPA compile failed: %v", err))
	}

	state := gepaOptimizer.GetOptimizationState()
	if state == nil || state.BestCandidate == nil {
		return nil, domain.NewDomainError(domain.ErrNoBestCandidate, "optimization finished without a best candidate")
	}

	result := &Result{
		RunID:       runID,
		BestPrompt:  state.BestCandidate.Instruction,
		BestScore:   state.BestCandidate.Fitness,
		Generations: generations,
		ValAccuracy: -1,
	}

	log.Info("optimization complete", "best_score", result.BestScore)

	if len(valset) > 0 {
		accuracy, err := EvaluatePrompt(ctx, r.taskLM, result.BestPrompt, valset)
		if err != nil {
			// The best candidate is already in hand; a validation failure
			// should not discard it.
			log.Warn("validation pass failed", "error", err)
		} else {
			result.ValAccuracy = accuracy
			log.Info("validation accuracy", "accuracy", fmt.Sprintf("%.4f", accuracy))
		}
	}

	return result, nil
}

// WriteBestPrompt writes the best candidate's prompt text to path,
// overwriting any existing file.
func WriteBestPrompt(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return domain.NewDomainError(domain.ErrIO, fmt.Sprintf("cannot write output file %s", path))
	}
	return nil
}
