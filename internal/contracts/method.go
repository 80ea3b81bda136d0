package contracts

import (
	"errors"
	"fmt"
	"strings"
)

// AggregationMethod selects how per-company weights are derived when rolling
// scores up to the portfolio level.
type AggregationMethod string

const (
	// MethodWATS weights by investment value (weighted average temperature score).
	MethodWATS AggregationMethod = "WATS"
	// MethodTETS weights by total company emissions.
	MethodTETS AggregationMethod = "TETS"
	// MethodMOTS weights by market-cap-owned emissions.
	MethodMOTS AggregationMethod = "MOTS"
	// MethodEOTS weights by enterprise-value-owned emissions.
	MethodEOTS AggregationMethod = "EOTS"
	// MethodECOTS weights by enterprise-value-plus-cash-owned emissions.
	MethodECOTS AggregationMethod = "ECOTS"
	// MethodAOTS weights by total-assets-owned emissions.
	MethodAOTS AggregationMethod = "AOTS"
	// MethodROTS weights by revenue-owned emissions.
	MethodROTS AggregationMethod = "ROTS"
)

// ErrUnknownMethod is returned for aggregation-method identifiers outside
// the enumerated set. Unknown methods are rejected, never defaulted.
var ErrUnknownMethod = errors.New("unknown aggregation method")

// AllAggregationMethods returns the enumerated methods in canonical order.
func AllAggregationMethods() []AggregationMethod {
	return []AggregationMethod{
		MethodWATS, MethodTETS, MethodMOTS, MethodEOTS,
		MethodECOTS, MethodAOTS, MethodROTS,
	}
}

// ParseAggregationMethod converts a string (case-insensitive) to an
// AggregationMethod.
func ParseAggregationMethod(s string) (AggregationMethod, error) {
	m := AggregationMethod(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range AllAggregationMethods() {
		if m == known {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}
