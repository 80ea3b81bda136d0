// Package aggregation rolls per-row temperature scores up to portfolio
// level and computes the target-coverage metric with the same weight
// derivation, so the two are always mutually consistent.
package aggregation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/oortis/tempscore/internal/contracts"
	"github.com/oortis/tempscore/pkg/logger"
)

// ErrInvalidGrouping is returned when a requested grouping column does not
// exist on any score row.
var ErrInvalidGrouping = errors.New("unknown grouping column")

// Aggregator computes weighted portfolio aggregates.
type Aggregator struct {
	logger *logger.Logger
}

// New creates an aggregator.
func New(log *logger.Logger) *Aggregator {
	return &Aggregator{logger: log.WithField("module", "aggregation")}
}

// Aggregate computes the weighted average score per scope/time-frame
// bucket, once overall and once per distinct combination of the grouping
// columns' values. Buckets whose total weight is zero are omitted rather
// than reported as zero.
//
// Rows missing a grouping column's value join only the overall aggregate.
func (a *Aggregator) Aggregate(rows []contracts.ScoreRow, method contracts.AggregationMethod, grouping []string) ([]contracts.AggregatedScore, error) {
	if err := checkGrouping(rows, grouping); err != nil {
		return nil, err
	}

	type bucket struct {
		weighted  float64
		weight    float64
		companies int
	}
	buckets := make(map[contracts.AggregatedScore]*bucket)

	add := func(tf contracts.TimeFrame, scope contracts.Scope, group string, row contracts.ScoreRow) {
		key := contracts.AggregatedScore{TimeFrame: tf, Scope: scope, Group: group}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		w := weightFor(method, row.InvestmentValue, row.Company)
		b.weighted += w * row.Score
		b.weight += w
		b.companies++
	}

	for _, row := range rows {
		add(row.TimeFrame, row.Scope, contracts.GroupAll, row)
		if len(grouping) > 0 {
			if group, ok := groupKey(row, grouping); ok {
				add(row.TimeFrame, row.Scope, group, row)
			}
		}
	}

	out := make([]contracts.AggregatedScore, 0, len(buckets))
	for key, b := range buckets {
		if b.weight <= 0 {
			continue
		}
		key.Score = b.weighted / b.weight
		key.Companies = b.companies
		out = append(out, key)
	}

	sortAggregates(out)

	a.logger.WithFields(map[string]interface{}{
		"method":  string(method),
		"buckets": len(out),
	}).Debug("Aggregation completed")

	return out, nil
}

// checkGrouping verifies every grouping column resolves on at least one row.
func checkGrouping(rows []contracts.ScoreRow, grouping []string) error {
	for _, column := range grouping {
		found := false
		for _, row := range rows {
			if _, ok := row.Column(column); ok {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q", ErrInvalidGrouping, column)
		}
	}
	return nil
}

// groupKey builds the combined grouping value for a row. A row that cannot
// resolve every column is excluded from grouped aggregates.
func groupKey(row contracts.ScoreRow, grouping []string) (string, bool) {
	values := make([]string, 0, len(grouping))
	for _, column := range grouping {
		v, ok := row.Column(column)
		if !ok || v == "" {
			return "", false
		}
		values = append(values, v)
	}
	return strings.Join(values, "/"), true
}

// sortAggregates orders results canonically: time frame, scope, then group
// with the overall aggregate first.
func sortAggregates(out []contracts.AggregatedScore) {
	frameOrder := map[contracts.TimeFrame]int{
		contracts.TimeFrameShort: 0,
		contracts.TimeFrameMid:   1,
		contracts.TimeFrameLong:  2,
	}
	scopeOrder := map[contracts.Scope]int{
		contracts.ScopeS1S2:   0,
		contracts.ScopeS3:     1,
		contracts.ScopeS1S2S3: 2,
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if frameOrder[a.TimeFrame] != frameOrder[b.TimeFrame] {
			return frameOrder[a.TimeFrame] < frameOrder[b.TimeFrame]
		}
		if scopeOrder[a.Scope] != scopeOrder[b.Scope] {
			return scopeOrder[a.Scope] < scopeOrder[b.Scope]
		}
		if (a.Group == contracts.GroupAll) != (b.Group == contracts.GroupAll) {
			return a.Group == contracts.GroupAll
		}
		return a.Group < b.Group
	})
}
