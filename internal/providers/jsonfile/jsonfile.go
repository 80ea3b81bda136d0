// Package jsonfile implements a data provider backed by a single JSON
// document holding company and target records.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/oortis/tempscore/internal/contracts"
)

// document is the on-disk layout.
type document struct {
	Companies []contracts.CompanyRecord `json:"companies"`
	Targets   []contracts.TargetRecord  `json:"targets"`
}

// Provider reads its JSON document on every query.
type Provider struct {
	name string
	path string
}

// New creates a JSON-file provider.
func New(name, path string) (*Provider, error) {
	if path == "" {
		return nil, fmt.Errorf("json provider %s: path parameter is required", name)
	}
	return &Provider{name: name, path: path}, nil
}

// Name returns the configured provider name.
func (p *Provider) Name() string { return p.name }

// Type returns the adapter type.
func (p *Provider) Type() string { return "json" }

// CompanyData returns company records for the given IDs.
func (p *Provider) CompanyData(ctx context.Context, ids []string) ([]contracts.CompanyRecord, error) {
	doc, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	wanted := idSet(ids)
	out := make([]contracts.CompanyRecord, 0, len(ids))
	for _, r := range doc.Companies {
		if wanted[r.CompanyID] {
			out = append(out, r)
		}
	}
	return out, nil
}

// TargetData returns target records for the given IDs.
func (p *Provider) TargetData(ctx context.Context, ids []string) ([]contracts.TargetRecord, error) {
	doc, err := p.load(ctx)
	if err != nil {
		return nil, err
	}

	wanted := idSet(ids)
	out := make([]contracts.TargetRecord, 0, len(ids))
	for _, r := range doc.Targets {
		if wanted[r.CompanyID] {
			out = append(out, r)
		}
	}
	return out, nil
}

// Health verifies the backing document is readable and well-formed.
func (p *Provider) Health(ctx context.Context) error {
	_, err := p.load(ctx)
	return err
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

func (p *Provider) load(ctx context.Context) (*document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.path)
	if err != nil {
		return nil, fmt.Errorf("json provider %s: %w", p.name, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("json provider %s: parse %s: %w", p.name, p.path, err)
	}
	return &doc, nil
}
