package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/oortis/tempscore/internal/contracts"
)

// ProviderSpec declares one configured data provider: a name, an adapter
// type and adapter-specific parameters (file paths, URLs, credentials).
type ProviderSpec struct {
	Name       string            `yaml:"name" json:"name"`
	Type       string            `yaml:"type" json:"type"`
	Parameters map[string]string `yaml:"parameters" json:"-"`
}

// Providers is the provider-registry configuration file. Provider order in
// the file is the priority order used when company records collide.
type Providers struct {
	DefaultScore       float64        `yaml:"default_score"`
	DefaultAggregation string         `yaml:"default_aggregation"`
	StrictProviders    bool           `yaml:"strict_providers"`
	DataProviders      []ProviderSpec `yaml:"data_providers"`
}

// LoadProviders reads and validates the provider configuration file.
func LoadProviders(path string) (*Providers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read providers file: %w", err)
	}

	var p Providers
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse providers file %s: %w", path, err)
	}

	if p.DefaultScore == 0 {
		p.DefaultScore = 3.2
	}
	if p.DefaultAggregation == "" {
		p.DefaultAggregation = string(contracts.MethodWATS)
	}

	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("providers file %s: %w", path, err)
	}

	return &p, nil
}

func (p *Providers) validate() error {
	if p.DefaultScore < 0 {
		return fmt.Errorf("default_score must not be negative")
	}
	if _, err := contracts.ParseAggregationMethod(p.DefaultAggregation); err != nil {
		return err
	}

	seen := make(map[string]bool, len(p.DataProviders))
	for i, spec := range p.DataProviders {
		if spec.Name == "" {
			return fmt.Errorf("data_providers[%d]: name must not be empty", i)
		}
		if spec.Type == "" {
			return fmt.Errorf("data_providers[%d]: type must not be empty", i)
		}
		if seen[spec.Name] {
			return fmt.Errorf("data_providers[%d]: duplicate name %q", i, spec.Name)
		}
		seen[spec.Name] = true
	}
	return nil
}
