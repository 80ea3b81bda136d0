package aggregation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oortis/tempscore/internal/contracts"
	"github.com/oortis/tempscore/pkg/logger"
)

func row(id string, score, investment float64, extra map[string]string) contracts.ScoreRow {
	return contracts.ScoreRow{
		CompanyID:       id,
		CompanyName:     id,
		Scope:           contracts.ScopeS1S2,
		TimeFrame:       contracts.TimeFrameShort,
		Score:           score,
		InvestmentValue: investment,
		Company:         contracts.CompanyRecord{CompanyID: id},
		Extra:           extra,
	}
}

func findAggregate(t *testing.T, aggs []contracts.AggregatedScore, group string) contracts.AggregatedScore {
	t.Helper()
	for _, a := range aggs {
		if a.Group == group && a.Scope == contracts.ScopeS1S2 && a.TimeFrame == contracts.TimeFrameShort {
			return a
		}
	}
	t.Fatalf("no aggregate for group %q", group)
	return contracts.AggregatedScore{}
}

func TestAggregator_SingleCompanyIdentity(t *testing.T) {
	a := New(logger.Discard())

	aggs, err := a.Aggregate([]contracts.ScoreRow{row("A", 2.5, 100, nil)}, contracts.MethodWATS, nil)
	require.NoError(t, err)

	overall := findAggregate(t, aggs, contracts.GroupAll)
	assert.Equal(t, 2.5, overall.Score)
	assert.Equal(t, 1, overall.Companies)
}

func TestAggregator_WeightedAverage(t *testing.T) {
	a := New(logger.Discard())

	rows := []contracts.ScoreRow{
		row("A", 2.0, 300, nil),
		row("B", 4.0, 100, nil),
	}

	aggs, err := a.Aggregate(rows, contracts.MethodWATS, nil)
	require.NoError(t, err)

	overall := findAggregate(t, aggs, contracts.GroupAll)
	// (300*2.0 + 100*4.0) / 400 = 2.5
	assert.InDelta(t, 2.5, overall.Score, 1e-9)
	assert.Equal(t, 2, overall.Companies)
}

func TestAggregator_GroupedAggregates(t *testing.T) {
	a := New(logger.Discard())

	rows := []contracts.ScoreRow{
		row("A", 2.0, 100, map[string]string{"sector": "Energy"}),
		row("B", 4.0, 100, map[string]string{"sector": "Tech"}),
	}

	aggs, err := a.Aggregate(rows, contracts.MethodWATS, []string{"sector"})
	require.NoError(t, err)

	// Two grouped aggregates plus the overall one.
	require.Len(t, aggs, 3)
	assert.InDelta(t, 3.0, findAggregate(t, aggs, contracts.GroupAll).Score, 1e-9)
	assert.InDelta(t, 2.0, findAggregate(t, aggs, "Energy").Score, 1e-9)
	assert.InDelta(t, 4.0, findAggregate(t, aggs, "Tech").Score, 1e-9)

	// The overall aggregate sorts before the groups.
	assert.Equal(t, contracts.GroupAll, aggs[0].Group)
}

func TestAggregator_InvalidGroupingColumn(t *testing.T) {
	a := New(logger.Discard())

	_, err := a.Aggregate([]contracts.ScoreRow{row("A", 2.0, 100, nil)}, contracts.MethodWATS, []string{"flavour"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidGrouping))
}

func TestAggregator_ZeroWeightBucketOmitted(t *testing.T) {
	a := New(logger.Discard())

	// TETS weights by emissions, which nobody reported.
	aggs, err := a.Aggregate([]contracts.ScoreRow{row("A", 2.0, 100, nil)}, contracts.MethodTETS, nil)
	require.NoError(t, err)
	assert.Empty(t, aggs)
}

func TestWeightFor(t *testing.T) {
	rec := contracts.CompanyRecord{
		MarketCap:       1000,
		EnterpriseValue: 800,
		CashEquivalents: 200,
		TotalAssets:     2000,
		Revenue:         500,
		Emissions:       50,
	}

	tests := []struct {
		method contracts.AggregationMethod
		want   float64
	}{
		{contracts.MethodWATS, 100},
		{contracts.MethodTETS, 50},
		{contracts.MethodMOTS, 100.0 / 1000.0 * 50},
		{contracts.MethodEOTS, 100.0 / 800.0 * 50},
		{contracts.MethodECOTS, 100.0 / 1000.0 * 50},
		{contracts.MethodAOTS, 100.0 / 2000.0 * 50},
		{contracts.MethodROTS, 100.0 / 500.0 * 50},
	}

	for _, tt := range tests {
		t.Run(string(tt.method), func(t *testing.T) {
			assert.InDelta(t, tt.want, weightFor(tt.method, 100, rec), 1e-9)
		})
	}
}

func TestWeightFor_MissingDenominator(t *testing.T) {
	rec := contracts.CompanyRecord{Emissions: 50}
	assert.Equal(t, 0.0, weightFor(contracts.MethodMOTS, 100, rec))
}
