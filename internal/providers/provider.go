package providers

import (
	"context"

	"github.com/oortis/tempscore/internal/contracts"
)

// Provider is the uniform capability every data provider adapter offers.
// Implementations must be side-effect-free reads and tolerant of unknown
// company IDs: records for unknown IDs are simply absent from the result,
// never an error.
type Provider interface {
	// Name returns the configured provider name.
	Name() string

	// Type returns the adapter type (csv, json, postgres, remote).
	Type() string

	// CompanyData returns company records for the given IDs.
	CompanyData(ctx context.Context, ids []string) ([]contracts.CompanyRecord, error)

	// TargetData returns target records for the given IDs.
	TargetData(ctx context.Context, ids []string) ([]contracts.TargetRecord, error)

	// Health reports whether the provider's backing source is reachable.
	Health(ctx context.Context) error
}
