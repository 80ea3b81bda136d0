package providers

import (
	"errors"
	"fmt"

	"github.com/oortis/tempscore/pkg/logger"
)

var (
	// ErrNoProviders is returned when the registry has no configured
	// providers at all.
	ErrNoProviders = errors.New("no data providers configured")

	// ErrUnknownProvider is returned in strict mode when a requested
	// provider name matches nothing.
	ErrUnknownProvider = errors.New("unknown data provider")
)

// Registry holds the configured provider instances in configuration order.
// Providers are constructed once at startup and reused across requests.
type Registry struct {
	providers []Provider
	strict    bool
	logger    *logger.Logger
}

// NewRegistry creates a registry over the given providers. When strict is
// set, Resolve fails loudly on provider names that match nothing instead of
// falling back to all providers.
func NewRegistry(provs []Provider, strict bool, log *logger.Logger) *Registry {
	return &Registry{
		providers: provs,
		strict:    strict,
		logger:    log.WithField("module", "providers"),
	}
}

// All returns every configured provider in configuration order.
func (r *Registry) All() []Provider {
	return r.providers
}

// Resolve determines which providers participate in a calculation.
//
// An empty name list returns all configured providers in configuration
// order. A non-empty list returns the matching providers in request order.
// When no requested name matches, the default policy falls back to all
// configured providers; requested and matched counts are logged so the
// fallback is visible. Strict mode turns that fallback into
// ErrUnknownProvider.
func (r *Registry) Resolve(names []string) ([]Provider, error) {
	if len(r.providers) == 0 {
		return nil, ErrNoProviders
	}

	if len(names) == 0 {
		return r.providers, nil
	}

	byName := make(map[string]Provider, len(r.providers))
	for _, p := range r.providers {
		byName[p.Name()] = p
	}

	selected := make([]Provider, 0, len(names))
	for _, name := range names {
		if p, ok := byName[name]; ok {
			selected = append(selected, p)
		}
	}

	if len(selected) == 0 {
		if r.strict {
			return nil, fmt.Errorf("%w: %v", ErrUnknownProvider, names)
		}
		r.logger.WithFields(map[string]interface{}{
			"requested": names,
			"matched":   0,
		}).Warn("No requested provider matched, falling back to all configured providers")
		return r.providers, nil
	}

	return selected, nil
}
