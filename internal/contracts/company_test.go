package contracts

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPortfolioCompany_UnmarshalJSON(t *testing.T) {
	raw := `{
		"company_id": "US001",
		"company_name": "Acme Corp",
		"investment_value": 1000000,
		"sector": "Utilities",
		"strategy": "ESG",
		"rank": 3,
		"active": true
	}`

	var pc PortfolioCompany
	require.NoError(t, json.Unmarshal([]byte(raw), &pc))

	assert.Equal(t, "US001", pc.CompanyID)
	assert.Equal(t, "Acme Corp", pc.CompanyName)
	assert.Equal(t, 1000000.0, pc.InvestmentValue)

	// Unknown scalar fields land in Extra as strings.
	assert.Equal(t, "Utilities", pc.Extra["sector"])
	assert.Equal(t, "ESG", pc.Extra["strategy"])
	assert.Equal(t, "3", pc.Extra["rank"])
	assert.Equal(t, "true", pc.Extra["active"])

	// The fixed fields never leak into Extra.
	assert.NotContains(t, pc.Extra, "company_id")
	assert.NotContains(t, pc.Extra, "company_name")
	assert.NotContains(t, pc.Extra, "investment_value")
}

func TestPortfolioCompany_MarshalJSON(t *testing.T) {
	pc := PortfolioCompany{
		CompanyID:       "US002",
		CompanyName:     "Globex",
		InvestmentValue: 500,
		Extra:           map[string]string{"sector": "Energy"},
	}

	data, err := json.Marshal(pc)
	require.NoError(t, err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &out))

	assert.Equal(t, "US002", out["company_id"])
	assert.Equal(t, "Globex", out["company_name"])
	assert.Equal(t, 500.0, out["investment_value"])
	assert.Equal(t, "Energy", out["sector"])
}

func TestPortfolioCompany_RoundTrip(t *testing.T) {
	original := PortfolioCompany{
		CompanyID:   "US003",
		CompanyName: "Initech",
		Extra:       map[string]string{"region": "NA"},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded PortfolioCompany
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.CompanyID, decoded.CompanyID)
	assert.Equal(t, original.CompanyName, decoded.CompanyName)
	assert.Equal(t, original.Extra, decoded.Extra)
}
