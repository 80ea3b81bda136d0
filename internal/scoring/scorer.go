// Package scoring computes a temperature score for every
// (company, scope, time frame) combination in the working dataset.
package scoring

import (
	"fmt"

	"github.com/oortis/tempscore/internal/contracts"
	"github.com/oortis/tempscore/pkg/logger"
)

// Scorer produces score rows from a validated, scenario-adjusted dataset.
type Scorer struct {
	model      Model
	benchmarks map[contracts.TargetKey]Benchmark
	logger     *logger.Logger
}

// New creates a scorer. A nil model selects the built-in regression model.
func New(model Model, log *logger.Logger) *Scorer {
	if model == nil {
		model = RegressionModel{}
	}
	return &Scorer{
		model:      model,
		benchmarks: DefaultBenchmarks(),
		logger:     log.WithField("module", "scoring"),
	}
}

// Score produces exactly one row per company, scope and time frame. When no
// usable target exists for a combination the row carries fallbackScore and
// is marked as a default so the coverage calculation can exclude it.
//
// Rows come out ordered by (company ID, scope, time frame); the companies
// in the dataset are already sorted by ID, so identical inputs always
// produce identical output.
func (s *Scorer) Score(ds contracts.Dataset, fallbackScore float64) ([]contracts.ScoreRow, error) {
	rows := make([]contracts.ScoreRow, 0, len(ds.Companies)*9)
	defaults := 0

	for _, entry := range ds.Companies {
		for _, scope := range contracts.AllScopes() {
			for _, tf := range contracts.AllTimeFrames() {
				key := contracts.TargetKey{Scope: scope, TimeFrame: tf}
				row := contracts.ScoreRow{
					CompanyID:       entry.Portfolio.CompanyID,
					CompanyName:     entry.Name(),
					Scope:           scope,
					TimeFrame:       tf,
					InvestmentValue: entry.Portfolio.InvestmentValue,
					Company:         entry.Record,
					Extra:           entry.Portfolio.Extra,
				}

				target, ok := entry.Target(key)
				if !ok {
					row.Score = fallbackScore
					row.Default = true
					defaults++
				} else {
					score, err := s.model.Score(target, s.benchmarks[key])
					if err != nil {
						return nil, fmt.Errorf("score %s %s/%s: %w",
							entry.Portfolio.CompanyID, scope, tf, err)
					}
					row.Score = score
					row.TargetStatus = target.Status
				}

				rows = append(rows, row)
			}
		}
	}

	s.logger.WithFields(map[string]interface{}{
		"rows":     len(rows),
		"defaults": defaults,
	}).Debug("Scoring completed")

	return rows, nil
}
