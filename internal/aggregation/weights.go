package aggregation

import "github.com/oortis/tempscore/internal/contracts"

// weightFor derives the per-company aggregation weight for a method.
//
// WATS weights by the caller's investment value. TETS weights by the
// company's reported emissions. The remaining schemes weight by owned
// emissions: the investment's ownership share of a company denominator
// (market cap, enterprise value, enterprise value plus cash, total assets
// or revenue) multiplied by the company's emissions. A company missing the
// figure a scheme needs gets weight zero: it contributes nothing to either
// side of the weighted average but still counts as a contributing company.
func weightFor(method contracts.AggregationMethod, investment float64, rec contracts.CompanyRecord) float64 {
	switch method {
	case contracts.MethodWATS:
		return nonNegative(investment)
	case contracts.MethodTETS:
		return nonNegative(rec.Emissions)
	case contracts.MethodMOTS:
		return ownedEmissions(investment, rec.MarketCap, rec.Emissions)
	case contracts.MethodEOTS:
		return ownedEmissions(investment, rec.EnterpriseValue, rec.Emissions)
	case contracts.MethodECOTS:
		return ownedEmissions(investment, rec.EnterpriseValue+rec.CashEquivalents, rec.Emissions)
	case contracts.MethodAOTS:
		return ownedEmissions(investment, rec.TotalAssets, rec.Emissions)
	case contracts.MethodROTS:
		return ownedEmissions(investment, rec.Revenue, rec.Emissions)
	}
	return 0
}

func ownedEmissions(investment, denominator, emissions float64) float64 {
	if denominator <= 0 || investment <= 0 || emissions <= 0 {
		return 0
	}
	return investment / denominator * emissions
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
