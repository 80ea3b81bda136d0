package contracts

import "fmt"

// ScoreRow is one scored (company, scope, time frame) combination.
type ScoreRow struct {
	CompanyID       string            `json:"company_id"`
	CompanyName     string            `json:"company_name"`
	Scope           Scope             `json:"scope_category"`
	TimeFrame       TimeFrame         `json:"time_frame"`
	Score           float64           `json:"temperature_score"`
	Default         bool              `json:"default"`
	TargetStatus    TargetStatus      `json:"target_status,omitempty"`
	InvestmentValue float64           `json:"investment_value,omitempty"`
	Company         CompanyRecord     `json:"company"`
	Extra           map[string]string `json:"extra,omitempty"`
}

// Covered reports whether the row is backed by a usable target rather than
// the fallback score.
func (r ScoreRow) Covered() bool {
	return !r.Default
}

// Column resolves a named column on the row. Caller-supplied Extra fields
// take precedence over provider attributes of the same name.
func (r ScoreRow) Column(name string) (string, bool) {
	if v, ok := r.Extra[name]; ok {
		return v, true
	}
	switch name {
	case "company_id":
		return r.CompanyID, true
	case "company_name":
		return r.CompanyName, true
	case "scope_category":
		return string(r.Scope), true
	case "time_frame":
		return string(r.TimeFrame), true
	case "target_status":
		return string(r.TargetStatus), true
	case "sector":
		return r.Company.Sector, true
	case "region":
		return r.Company.Region, true
	}
	return "", false
}

// GroupAll is the grouping key of the overall (ungrouped) aggregate.
const GroupAll = "all"

// AggregatedScore is a portfolio-level weighted score for one
// scope/time-frame bucket and one grouping value.
type AggregatedScore struct {
	TimeFrame TimeFrame `json:"time_frame"`
	Scope     Scope     `json:"scope_category"`
	Group     string    `json:"group"`
	Score     float64   `json:"temperature_score"`
	Companies int       `json:"companies"`
}

func (a AggregatedScore) String() string {
	return fmt.Sprintf("%s/%s[%s]=%.4f (%d companies)",
		a.TimeFrame, a.Scope, a.Group, a.Score, a.Companies)
}
