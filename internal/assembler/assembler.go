// Package assembler merges the caller's portfolio with provider-sourced
// company and target records into the pipeline's working dataset.
package assembler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/oortis/tempscore/internal/contracts"
	"github.com/oortis/tempscore/internal/providers"
	"github.com/oortis/tempscore/pkg/logger"
)

// ErrEmptyResult is returned when no portfolio company could be matched to
// any provider's company data.
var ErrEmptyResult = errors.New("none of the companies in the portfolio could be found by the data providers")

// Assembler queries providers and performs the portfolio merge.
type Assembler struct {
	timeout time.Duration
	logger  *logger.Logger
}

// New creates an assembler. The timeout bounds each provider query.
func New(timeout time.Duration, log *logger.Logger) *Assembler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Assembler{
		timeout: timeout,
		logger:  log.WithField("module", "assembler"),
	}
}

// providerResult carries one provider's response. Index preserves the
// provider priority order after the concurrent fan-out.
type providerResult struct {
	index     int
	companies []contracts.CompanyRecord
	targets   []contracts.TargetRecord
	err       error
}

// Assemble queries every provider concurrently for the portfolio's company
// IDs and left-merges the results onto the portfolio.
//
// A provider that fails or times out is treated as returning zero records.
// When IDs collide across providers, the earlier provider wins. Companies
// without a company record anywhere drop out of the working set; if that
// leaves zero companies the whole request fails with ErrEmptyResult.
func (a *Assembler) Assemble(ctx context.Context, provs []providers.Provider, portfolio []contracts.PortfolioCompany) (contracts.Dataset, error) {
	ids := make([]string, 0, len(portfolio))
	for _, pc := range portfolio {
		ids = append(ids, pc.CompanyID)
	}

	results := a.fanOut(ctx, provs, ids)

	// First provider wins for a company ID; later duplicates are ignored.
	companies := make(map[string]contracts.CompanyRecord)
	targets := make(map[string][]contracts.TargetRecord)
	for _, res := range results {
		for _, rec := range res.companies {
			if _, seen := companies[rec.CompanyID]; !seen {
				companies[rec.CompanyID] = rec
			}
		}
		for _, t := range res.targets {
			targets[t.CompanyID] = append(targets[t.CompanyID], t)
		}
	}

	// Left merge: every portfolio company with a company record stays.
	entries := make([]contracts.CompanyEntry, 0, len(portfolio))
	seen := make(map[string]bool, len(portfolio))
	for _, pc := range portfolio {
		if seen[pc.CompanyID] {
			continue
		}
		seen[pc.CompanyID] = true

		rec, ok := companies[pc.CompanyID]
		if !ok {
			a.logger.WithField("company_id", pc.CompanyID).
				Debug("No company record found, dropping from working set")
			continue
		}
		entries = append(entries, contracts.CompanyEntry{
			Portfolio: pc,
			Record:    rec,
			Targets:   targets[pc.CompanyID],
		})
	}

	if len(entries) == 0 {
		return contracts.Dataset{}, ErrEmptyResult
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Portfolio.CompanyID < entries[j].Portfolio.CompanyID
	})

	a.logger.WithFields(map[string]interface{}{
		"portfolio": len(portfolio),
		"matched":   len(entries),
		"providers": len(provs),
	}).Info("Portfolio assembled")

	return contracts.Dataset{Companies: entries}, nil
}

// fanOut queries all providers concurrently and returns their results in
// provider order. Provider failures are logged and collapsed to empty
// results.
func (a *Assembler) fanOut(ctx context.Context, provs []providers.Provider, ids []string) []providerResult {
	resultCh := make(chan providerResult, len(provs))

	var wg sync.WaitGroup
	for i, p := range provs {
		wg.Add(1)
		go func(index int, p providers.Provider) {
			defer wg.Done()
			resultCh <- a.query(ctx, index, p, ids)
		}(i, p)
	}
	wg.Wait()
	close(resultCh)

	results := make([]providerResult, len(provs))
	for res := range resultCh {
		results[res.index] = res
	}

	for _, res := range results {
		if res.err != nil {
			a.logger.WithError(res.err).WithField("provider", provs[res.index].Name()).
				Warn("Provider query failed, treating as empty result")
		}
	}
	return results
}

func (a *Assembler) query(ctx context.Context, index int, p providers.Provider, ids []string) providerResult {
	queryCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	companies, err := p.CompanyData(queryCtx, ids)
	if err != nil {
		return providerResult{index: index, err: err}
	}

	targets, err := p.TargetData(queryCtx, ids)
	if err != nil {
		// Company data alone is still useful; the company scores with
		// the fallback when no other provider has its targets.
		return providerResult{index: index, companies: companies, err: err}
	}

	return providerResult{index: index, companies: companies, targets: targets}
}
