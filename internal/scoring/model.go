package scoring

import (
	"fmt"

	"github.com/oortis/tempscore/internal/contracts"
)

// Benchmark holds the scenario-adjusted regression parameters a target is
// scored against for one (scope, time frame) combination.
type Benchmark struct {
	Scope     contracts.Scope
	TimeFrame contracts.TimeFrame

	// Slope and Intercept map an annualized reduction rate to a warming
	// estimate in degrees Celsius.
	Slope     float64
	Intercept float64
}

// Model converts a target into a temperature value against a benchmark.
// Implementations must be deterministic and side-effect-free.
type Model interface {
	Score(target contracts.TargetRecord, benchmark Benchmark) (float64, error)
}

// RegressionModel is the default model: a linear mapping from the target's
// annualized reduction rate onto the benchmark regression line, floored at
// zero so scores are never negative.
type RegressionModel struct{}

// Score implements Model.
func (RegressionModel) Score(target contracts.TargetRecord, benchmark Benchmark) (float64, error) {
	years := target.TargetYear - target.BaseYear
	if years <= 0 {
		return 0, fmt.Errorf("target for %s has non-positive horizon (%d-%d)",
			target.CompanyID, target.BaseYear, target.TargetYear)
	}

	annualRate := target.Reduction / float64(years)
	score := benchmark.Intercept + benchmark.Slope*annualRate
	if score < 0 {
		score = 0
	}
	return score, nil
}

// DefaultBenchmarks returns the built-in benchmark table. Long-horizon and
// scope-3 benchmarks start from a higher warming baseline and reward
// sustained reduction rates more steeply.
func DefaultBenchmarks() map[contracts.TargetKey]Benchmark {
	table := map[contracts.TargetKey]Benchmark{}

	intercepts := map[contracts.TimeFrame]float64{
		contracts.TimeFrameShort: 3.2,
		contracts.TimeFrameMid:   3.4,
		contracts.TimeFrameLong:  3.7,
	}
	slopes := map[contracts.Scope]float64{
		contracts.ScopeS1S2:   -32.0,
		contracts.ScopeS3:     -28.0,
		contracts.ScopeS1S2S3: -30.0,
	}

	for _, scope := range contracts.AllScopes() {
		for _, tf := range contracts.AllTimeFrames() {
			key := contracts.TargetKey{Scope: scope, TimeFrame: tf}
			table[key] = Benchmark{
				Scope:     scope,
				TimeFrame: tf,
				Slope:     slopes[scope],
				Intercept: intercepts[tf],
			}
		}
	}
	return table
}
