// Package postgres implements a data provider backed by PostgreSQL tables.
package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oortis/tempscore/internal/contracts"
)

// Provider queries the companies and targets tables of a vendor database.
type Provider struct {
	name string
	pool *pgxpool.Pool
}

// New creates a postgres provider over an existing pool.
func New(name string, pool *pgxpool.Pool) *Provider {
	return &Provider{name: name, pool: pool}
}

// Name returns the configured provider name.
func (p *Provider) Name() string { return p.name }

// Type returns the adapter type.
func (p *Provider) Type() string { return "postgres" }

// CompanyData returns company records for the given IDs.
func (p *Provider) CompanyData(ctx context.Context, ids []string) ([]contracts.CompanyRecord, error) {
	query := `
		SELECT company_id, company_name,
		       COALESCE(sector, ''), COALESCE(region, ''),
		       COALESCE(market_cap, 0), COALESCE(enterprise_value, 0),
		       COALESCE(cash_equivalents, 0), COALESCE(total_assets, 0),
		       COALESCE(revenue, 0), COALESCE(emissions, 0)
		FROM companies
		WHERE company_id = ANY($1)
		ORDER BY company_id`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("postgres provider %s: query companies: %w", p.name, err)
	}
	defer rows.Close()

	var records []contracts.CompanyRecord
	for rows.Next() {
		var r contracts.CompanyRecord
		if err := rows.Scan(
			&r.CompanyID, &r.CompanyName, &r.Sector, &r.Region,
			&r.MarketCap, &r.EnterpriseValue, &r.CashEquivalents,
			&r.TotalAssets, &r.Revenue, &r.Emissions,
		); err != nil {
			return nil, fmt.Errorf("postgres provider %s: scan company: %w", p.name, err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// TargetData returns target records for the given IDs.
func (p *Provider) TargetData(ctx context.Context, ids []string) ([]contracts.TargetRecord, error) {
	query := `
		SELECT company_id, scope_category, time_frame,
		       COALESCE(reduction_ambition, 0),
		       COALESCE(base_year, 0), COALESCE(target_year, 0),
		       COALESCE(status, 'unvalidated')
		FROM targets
		WHERE company_id = ANY($1)
		ORDER BY company_id`

	rows, err := p.pool.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("postgres provider %s: query targets: %w", p.name, err)
	}
	defer rows.Close()

	var records []contracts.TargetRecord
	for rows.Next() {
		var r contracts.TargetRecord
		var scope, timeFrame, status string
		if err := rows.Scan(
			&r.CompanyID, &scope, &timeFrame,
			&r.Reduction, &r.BaseYear, &r.TargetYear, &status,
		); err != nil {
			return nil, fmt.Errorf("postgres provider %s: scan target: %w", p.name, err)
		}
		r.Scope, _ = contracts.ParseScope(scope)
		r.TimeFrame, _ = contracts.ParseTimeFrame(timeFrame)
		r.Status = contracts.TargetStatus(status)
		records = append(records, r)
	}
	return records, rows.Err()
}

// Health pings the database.
func (p *Provider) Health(ctx context.Context) error {
	if err := p.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres provider %s: %w", p.name, err)
	}
	return nil
}
