package aggregation

import "github.com/oortis/tempscore/internal/contracts"

// Coverage computes the fraction of portfolio weight backed by at least one
// externally validated target, using the same per-company weight derivation
// as Aggregate. The result is always in [0, 1]; an all-zero-weight
// portfolio yields 0.
func (a *Aggregator) Coverage(ds contracts.Dataset, method contracts.AggregationMethod) float64 {
	var covered, total float64
	for _, entry := range ds.Companies {
		w := weightFor(method, entry.Portfolio.InvestmentValue, entry.Record)
		total += w
		if entry.HasValidatedTarget() {
			covered += w
		}
	}

	if total <= 0 {
		return 0
	}
	return covered / total
}
