package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oortis/tempscore/internal/contracts"
	"github.com/oortis/tempscore/pkg/logger"
)

// fakeProvider is a minimal Provider for registry tests.
type fakeProvider struct {
	name string
}

func (f *fakeProvider) Name() string { return f.name }
func (f *fakeProvider) Type() string { return "fake" }
func (f *fakeProvider) CompanyData(ctx context.Context, ids []string) ([]contracts.CompanyRecord, error) {
	return nil, nil
}
func (f *fakeProvider) TargetData(ctx context.Context, ids []string) ([]contracts.TargetRecord, error) {
	return nil, nil
}
func (f *fakeProvider) Health(ctx context.Context) error { return nil }

func newTestRegistry(strict bool, names ...string) *Registry {
	provs := make([]Provider, 0, len(names))
	for _, name := range names {
		provs = append(provs, &fakeProvider{name: name})
	}
	return NewRegistry(provs, strict, logger.Discard())
}

func providerNames(provs []Provider) []string {
	names := make([]string, 0, len(provs))
	for _, p := range provs {
		names = append(names, p.Name())
	}
	return names
}

func TestRegistry_Resolve_EmptyFilterReturnsAll(t *testing.T) {
	r := newTestRegistry(false, "alpha", "beta", "gamma")

	resolved, err := r.Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, providerNames(resolved))
}

func TestRegistry_Resolve_FilterPreservesRequestOrder(t *testing.T) {
	r := newTestRegistry(false, "alpha", "beta", "gamma")

	resolved, err := r.Resolve([]string{"gamma", "alpha"})
	require.NoError(t, err)
	assert.Equal(t, []string{"gamma", "alpha"}, providerNames(resolved))
}

func TestRegistry_Resolve_UnmatchedFilterFallsBackToAll(t *testing.T) {
	r := newTestRegistry(false, "alpha", "beta")

	resolved, err := r.Resolve([]string{"does-not-exist"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, providerNames(resolved))
}

func TestRegistry_Resolve_StrictModeFailsOnUnmatchedFilter(t *testing.T) {
	r := newTestRegistry(true, "alpha", "beta")

	_, err := r.Resolve([]string{"does-not-exist"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownProvider))
}

func TestRegistry_Resolve_PartialMatchKeepsMatches(t *testing.T) {
	r := newTestRegistry(true, "alpha", "beta")

	// One good name is enough, even in strict mode.
	resolved, err := r.Resolve([]string{"beta", "bogus"})
	require.NoError(t, err)
	assert.Equal(t, []string{"beta"}, providerNames(resolved))
}

func TestRegistry_Resolve_NoProvidersConfigured(t *testing.T) {
	r := newTestRegistry(false)

	_, err := r.Resolve(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoProviders))
}
