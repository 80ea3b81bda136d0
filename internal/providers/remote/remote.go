// Package remote implements a data provider that queries a JSON-over-HTTP
// vendor API.
package remote

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/oortis/tempscore/internal/contracts"
	"github.com/oortis/tempscore/pkg/httputil"
)

// Provider fetches company and target records from a remote vendor API.
//
// Expected endpoints:
//
//	GET {base}/companies?ids=a,b,c -> [CompanyRecord]
//	GET {base}/targets?ids=a,b,c  -> [TargetRecord]
//	GET {base}/health             -> 200
type Provider struct {
	name    string
	baseURL string
	client  *httputil.Client
}

// New creates a remote provider.
func New(name, baseURL string, client *httputil.Client) (*Provider, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("remote provider %s: base_url parameter is required", name)
	}
	return &Provider{
		name:    name,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}, nil
}

// Name returns the configured provider name.
func (p *Provider) Name() string { return p.name }

// Type returns the adapter type.
func (p *Provider) Type() string { return "remote" }

// CompanyData returns company records for the given IDs.
func (p *Provider) CompanyData(ctx context.Context, ids []string) ([]contracts.CompanyRecord, error) {
	var records []contracts.CompanyRecord
	if err := p.client.GetJSON(ctx, p.endpoint("companies", ids), &records); err != nil {
		return nil, fmt.Errorf("remote provider %s: %w", p.name, err)
	}
	return records, nil
}

// TargetData returns target records for the given IDs.
func (p *Provider) TargetData(ctx context.Context, ids []string) ([]contracts.TargetRecord, error) {
	var records []contracts.TargetRecord
	if err := p.client.GetJSON(ctx, p.endpoint("targets", ids), &records); err != nil {
		return nil, fmt.Errorf("remote provider %s: %w", p.name, err)
	}
	return records, nil
}

// Health calls the vendor health endpoint.
func (p *Provider) Health(ctx context.Context) error {
	var out map[string]interface{}
	if err := p.client.GetJSON(ctx, p.baseURL+"/health", &out); err != nil {
		return fmt.Errorf("remote provider %s: %w", p.name, err)
	}
	return nil
}

func (p *Provider) endpoint(resource string, ids []string) string {
	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))
	return fmt.Sprintf("%s/%s?%s", p.baseURL, resource, query.Encode())
}
