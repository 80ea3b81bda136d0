// Package pipeline wires the scoring stages into the single entry point
// the transport layer calls: resolve providers, assemble the portfolio,
// validate targets, apply the scenario, score, aggregate and post-process.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oortis/tempscore/internal/aggregation"
	"github.com/oortis/tempscore/internal/assembler"
	"github.com/oortis/tempscore/internal/contracts"
	"github.com/oortis/tempscore/internal/providers"
	"github.com/oortis/tempscore/internal/scoring"
	"github.com/oortis/tempscore/internal/targets"
	"github.com/oortis/tempscore/pkg/logger"
)

// Request carries every input of one pipeline invocation.
type Request struct {
	Providers       []string
	Portfolio       []contracts.PortfolioCompany
	FallbackScore   float64
	Method          contracts.AggregationMethod
	Grouping        []string
	Scenario        *contracts.Scenario
	ScopeFilter     []contracts.Scope
	TimeFrameFilter []contracts.TimeFrame
	IncludeColumns  []string
	Anonymize       bool
}

// Result is the pipeline output consumed by the transport layer.
type Result struct {
	Scores       []contracts.ScoreRow
	Companies    []map[string]interface{}
	Aggregations []contracts.AggregatedScore
	Coverage     float64
	Distribution map[string]map[string]float64
}

// Pipeline holds the stage instances. Stages are stateless; one Pipeline is
// shared by all requests.
type Pipeline struct {
	registry   *providers.Registry
	assembler  *assembler.Assembler
	validator  *targets.Validator
	scorer     *scoring.Scorer
	aggregator *aggregation.Aggregator
	logger     *logger.Logger
}

// Options tune pipeline construction.
type Options struct {
	// Model overrides the scoring model. Nil selects the built-in
	// regression model.
	Model scoring.Model

	// EvaluationYear anchors target-expiry checks. Zero means the
	// current year.
	EvaluationYear int

	// ProviderTimeout bounds each provider query.
	ProviderTimeout time.Duration
}

// New creates a pipeline over a provider registry.
func New(registry *providers.Registry, opts Options, log *logger.Logger) *Pipeline {
	return &Pipeline{
		registry:   registry,
		assembler:  assembler.New(opts.ProviderTimeout, log),
		validator:  targets.NewValidator(opts.EvaluationYear, log),
		scorer:     scoring.New(opts.Model, log),
		aggregator: aggregation.New(log),
		logger:     log.WithField("module", "pipeline"),
	}
}

// Run executes the full pipeline for one request.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	if req.Method == "" {
		return nil, contracts.ErrUnknownMethod
	}
	if _, err := contracts.ParseAggregationMethod(string(req.Method)); err != nil {
		return nil, err
	}

	started := time.Now()

	provs, err := p.registry.Resolve(req.Providers)
	if err != nil {
		return nil, err
	}

	dataset, err := p.assembler.Assemble(ctx, provs, req.Portfolio)
	if err != nil {
		return nil, err
	}

	validated := p.validator.Validate(dataset)
	adjusted := targets.ApplyScenario(req.Scenario, validated)

	rows, err := p.scorer.Score(adjusted, req.FallbackScore)
	if err != nil {
		return nil, fmt.Errorf("scoring: %w", err)
	}

	aggregations, err := p.aggregator.Aggregate(rows, req.Method, req.Grouping)
	if err != nil {
		return nil, err
	}

	// Coverage comes from the validated dataset, before any scenario
	// adjustment, so it reflects the targets companies actually hold.
	coverage := p.aggregator.Coverage(validated, req.Method)

	var distribution map[string]map[string]float64
	if len(req.Grouping) > 0 {
		distribution, err = aggregation.Distribution(rows, req.Grouping)
		if err != nil {
			return nil, err
		}
	}

	rows = filterRows(rows, req.ScopeFilter, req.TimeFrameFilter)
	if req.Anonymize {
		rows = anonymize(rows)
	}

	result := &Result{
		Scores:       rows,
		Companies:    project(rows, req.IncludeColumns),
		Aggregations: aggregations,
		Coverage:     coverage,
		Distribution: distribution,
	}

	p.logger.WithFields(map[string]interface{}{
		"companies": len(validated.Companies),
		"rows":      len(rows),
		"coverage":  coverage,
		"method":    string(req.Method),
		"duration":  time.Since(started).String(),
	}).Info("Pipeline completed")

	return result, nil
}

// IsClientError reports whether the error stems from the caller's request
// rather than an internal failure. The transport layer maps these to 400.
func IsClientError(err error) bool {
	return errors.Is(err, providers.ErrNoProviders) ||
		errors.Is(err, providers.ErrUnknownProvider) ||
		errors.Is(err, assembler.ErrEmptyResult) ||
		errors.Is(err, aggregation.ErrInvalidGrouping) ||
		errors.Is(err, contracts.ErrUnknownMethod)
}
