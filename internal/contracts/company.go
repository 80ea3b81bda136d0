package contracts

import (
	"encoding/json"
	"fmt"
)

// PortfolioCompany is a caller-supplied portfolio position. The company ID is
// the unique key for the whole request; any JSON field outside the known set
// is kept in Extra so it can be used for grouping and column selection later.
type PortfolioCompany struct {
	CompanyID       string            `json:"company_id"`
	CompanyName     string            `json:"company_name,omitempty"`
	InvestmentValue float64           `json:"investment_value,omitempty"`
	Extra           map[string]string `json:"-"`
}

// portfolioCompanyJSON mirrors the fixed fields for (un)marshalling.
type portfolioCompanyJSON struct {
	CompanyID       string  `json:"company_id"`
	CompanyName     string  `json:"company_name,omitempty"`
	InvestmentValue float64 `json:"investment_value,omitempty"`
}

// UnmarshalJSON decodes the fixed fields and collects every other scalar
// field into Extra, preserving caller-defined grouping columns.
func (p *PortfolioCompany) UnmarshalJSON(data []byte) error {
	var fixed portfolioCompanyJSON
	if err := json.Unmarshal(data, &fixed); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.CompanyID = fixed.CompanyID
	p.CompanyName = fixed.CompanyName
	p.InvestmentValue = fixed.InvestmentValue
	p.Extra = nil

	for key, value := range raw {
		switch key {
		case "company_id", "company_name", "investment_value":
			continue
		}

		var scalar interface{}
		if err := json.Unmarshal(value, &scalar); err != nil {
			continue
		}
		switch v := scalar.(type) {
		case string:
			p.setExtra(key, v)
		case float64:
			p.setExtra(key, trimFloat(v))
		case bool:
			p.setExtra(key, fmt.Sprintf("%t", v))
		}
	}

	return nil
}

// MarshalJSON emits the fixed fields plus the Extra fields inline.
func (p PortfolioCompany) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"company_id": p.CompanyID,
	}
	if p.CompanyName != "" {
		out["company_name"] = p.CompanyName
	}
	if p.InvestmentValue != 0 {
		out["investment_value"] = p.InvestmentValue
	}
	for key, value := range p.Extra {
		if _, reserved := out[key]; !reserved {
			out[key] = value
		}
	}
	return json.Marshal(out)
}

func (p *PortfolioCompany) setExtra(key, value string) {
	if p.Extra == nil {
		p.Extra = make(map[string]string)
	}
	p.Extra[key] = value
}

// trimFloat renders a float without a trailing ".000000" for whole numbers.
func trimFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}

// CompanyRecord holds provider-sourced company attributes. The financial
// fields feed the ownership-based weighting schemes; a zero value means the
// provider did not report the figure.
type CompanyRecord struct {
	CompanyID       string  `json:"company_id"`
	CompanyName     string  `json:"company_name"`
	Sector          string  `json:"sector,omitempty"`
	Region          string  `json:"region,omitempty"`
	MarketCap       float64 `json:"market_cap,omitempty"`
	EnterpriseValue float64 `json:"enterprise_value,omitempty"`
	CashEquivalents float64 `json:"cash_equivalents,omitempty"`
	TotalAssets     float64 `json:"total_assets,omitempty"`
	Revenue         float64 `json:"revenue,omitempty"`
	Emissions       float64 `json:"emissions,omitempty"`
}
