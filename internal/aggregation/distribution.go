package aggregation

import (
	"math"

	"github.com/oortis/tempscore/internal/contracts"
)

// Distribution computes, per grouping column, the percentage of portfolio
// companies carrying each distinct value. Companies are counted once, not
// once per score row.
func Distribution(rows []contracts.ScoreRow, columns []string) (map[string]map[string]float64, error) {
	if err := checkGrouping(rows, columns); err != nil {
		return nil, err
	}

	seen := make(map[string]contracts.ScoreRow)
	order := make([]string, 0)
	for _, row := range rows {
		if _, ok := seen[row.CompanyID]; !ok {
			seen[row.CompanyID] = row
			order = append(order, row.CompanyID)
		}
	}
	if len(order) == 0 {
		return map[string]map[string]float64{}, nil
	}

	out := make(map[string]map[string]float64, len(columns))
	for _, column := range columns {
		counts := make(map[string]int)
		for _, id := range order {
			if v, ok := seen[id].Column(column); ok && v != "" {
				counts[v]++
			}
		}

		dist := make(map[string]float64, len(counts))
		for value, n := range counts {
			pct := float64(n) / float64(len(order)) * 100
			// Two decimal places is plenty for a distribution readout.
			dist[value] = math.Round(pct*100) / 100
		}
		out[column] = dist
	}
	return out, nil
}
