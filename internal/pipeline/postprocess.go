package pipeline

import (
	"fmt"

	"github.com/oortis/tempscore/internal/contracts"
)

// mandatoryColumns are always present in the projected company output.
var mandatoryColumns = []string{"company_name", "scope_category", "time_frame", "temperature_score"}

// filterRows keeps only the rows matching the scope and time-frame filters.
// An empty filter means no filtering, never "exclude everything".
func filterRows(rows []contracts.ScoreRow, scopes []contracts.Scope, frames []contracts.TimeFrame) []contracts.ScoreRow {
	if len(scopes) == 0 && len(frames) == 0 {
		return rows
	}

	scopeSet := make(map[contracts.Scope]bool, len(scopes))
	for _, s := range scopes {
		scopeSet[s] = true
	}
	frameSet := make(map[contracts.TimeFrame]bool, len(frames))
	for _, f := range frames {
		frameSet[f] = true
	}

	out := make([]contracts.ScoreRow, 0, len(rows))
	for _, row := range rows {
		if len(scopeSet) > 0 && !scopeSet[row.Scope] {
			continue
		}
		if len(frameSet) > 0 && !frameSet[row.TimeFrame] {
			continue
		}
		out = append(out, row)
	}
	return out
}

// project builds the reduced column view: the mandatory column set plus any
// requested column that actually resolves on the row. Requested columns
// that exist nowhere are silently dropped.
func project(rows []contracts.ScoreRow, include []string) []map[string]interface{} {
	columns := make([]string, 0, len(mandatoryColumns)+len(include))
	columns = append(columns, mandatoryColumns...)
	for _, c := range include {
		if !contains(columns, c) {
			columns = append(columns, c)
		}
	}

	out := make([]map[string]interface{}, 0, len(rows))
	for _, row := range rows {
		projected := make(map[string]interface{}, len(columns))
		for _, column := range columns {
			if column == "temperature_score" {
				projected[column] = row.Score
				continue
			}
			if v, ok := row.Column(column); ok {
				projected[column] = v
			}
		}
		out = append(out, projected)
	}
	return out
}

// anonymize replaces company-identifying fields with a per-company token.
// The same company always gets the same token within one response; tokens
// are assigned in row order so the output stays deterministic.
func anonymize(rows []contracts.ScoreRow) []contracts.ScoreRow {
	tokens := make(map[string]string)
	out := make([]contracts.ScoreRow, len(rows))

	for i, row := range rows {
		token, ok := tokens[row.CompanyID]
		if !ok {
			token = fmt.Sprintf("Company %d", len(tokens)+1)
			tokens[row.CompanyID] = token
		}

		row.CompanyID = ""
		row.CompanyName = token
		row.Company.CompanyID = ""
		row.Company.CompanyName = token
		out[i] = row
	}
	return out
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
