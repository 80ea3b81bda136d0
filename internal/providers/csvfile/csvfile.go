// Package csvfile implements a data provider backed by two CSV files, one
// with company records and one with target records.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/oortis/tempscore/internal/contracts"
)

// Provider reads company and target data from CSV files on every query, so
// a replaced data file takes effect on the next request.
type Provider struct {
	name        string
	companyPath string
	targetPath  string
}

// New creates a CSV provider.
func New(name, companyPath, targetPath string) (*Provider, error) {
	if companyPath == "" || targetPath == "" {
		return nil, fmt.Errorf("csv provider %s: company_data and target_data paths are required", name)
	}
	return &Provider{name: name, companyPath: companyPath, targetPath: targetPath}, nil
}

// Name returns the configured provider name.
func (p *Provider) Name() string { return p.name }

// Type returns the adapter type.
func (p *Provider) Type() string { return "csv" }

// CompanyPath returns the path of the company data file. The import
// endpoint replaces this file.
func (p *Provider) CompanyPath() string { return p.companyPath }

// TargetPath returns the path of the target data file.
func (p *Provider) TargetPath() string { return p.targetPath }

// CompanyData returns company records for the given IDs.
func (p *Provider) CompanyData(ctx context.Context, ids []string) ([]contracts.CompanyRecord, error) {
	rows, header, err := readCSV(ctx, p.companyPath)
	if err != nil {
		return nil, err
	}

	wanted := idSet(ids)
	records := make([]contracts.CompanyRecord, 0, len(ids))
	for _, row := range rows {
		get := fieldReader(header, row)
		id := get("company_id")
		if !wanted[id] {
			continue
		}
		records = append(records, contracts.CompanyRecord{
			CompanyID:       id,
			CompanyName:     get("company_name"),
			Sector:          get("sector"),
			Region:          get("region"),
			MarketCap:       parseFloat(get("market_cap")),
			EnterpriseValue: parseFloat(get("enterprise_value")),
			CashEquivalents: parseFloat(get("cash_equivalents")),
			TotalAssets:     parseFloat(get("total_assets")),
			Revenue:         parseFloat(get("revenue")),
			Emissions:       parseFloat(get("emissions")),
		})
	}
	return records, nil
}

// TargetData returns target records for the given IDs.
func (p *Provider) TargetData(ctx context.Context, ids []string) ([]contracts.TargetRecord, error) {
	rows, header, err := readCSV(ctx, p.targetPath)
	if err != nil {
		return nil, err
	}

	wanted := idSet(ids)
	records := make([]contracts.TargetRecord, 0, len(ids))
	for _, row := range rows {
		get := fieldReader(header, row)
		id := get("company_id")
		if !wanted[id] {
			continue
		}
		scope, _ := contracts.ParseScope(get("scope_category"))
		timeFrame, _ := contracts.ParseTimeFrame(get("time_frame"))
		records = append(records, contracts.TargetRecord{
			CompanyID:  id,
			Scope:      scope,
			TimeFrame:  timeFrame,
			Reduction:  parseFloat(get("reduction_ambition")),
			BaseYear:   parseInt(get("base_year")),
			TargetYear: parseInt(get("target_year")),
			Status:     contracts.TargetStatus(get("status")),
		})
	}
	return records, nil
}

// Health verifies both backing files are readable.
func (p *Provider) Health(ctx context.Context) error {
	for _, path := range []string{p.companyPath, p.targetPath} {
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("csv provider %s: %w", p.name, err)
		}
	}
	return nil
}

// readCSV parses a CSV file into a header map and data rows.
func readCSV(ctx context.Context, path string) ([][]string, map[string]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(all) == 0 {
		return nil, map[string]int{}, nil
	}

	header := make(map[string]int, len(all[0]))
	for i, name := range all[0] {
		header[strings.TrimSpace(strings.ToLower(name))] = i
	}
	return all[1:], header, nil
}

func fieldReader(header map[string]int, row []string) func(string) string {
	return func(name string) string {
		idx, ok := header[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseInt(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}
