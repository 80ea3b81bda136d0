package assembler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oortis/tempscore/internal/contracts"
	"github.com/oortis/tempscore/internal/providers"
	"github.com/oortis/tempscore/pkg/logger"
)

// stubProvider serves canned records, optionally failing outright.
type stubProvider struct {
	name      string
	companies []contracts.CompanyRecord
	targets   []contracts.TargetRecord
	err       error
	delay     time.Duration
}

func (s *stubProvider) Name() string { return s.name }
func (s *stubProvider) Type() string { return "stub" }

func (s *stubProvider) CompanyData(ctx context.Context, ids []string) ([]contracts.CompanyRecord, error) {
	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.companies, nil
}

func (s *stubProvider) TargetData(ctx context.Context, ids []string) ([]contracts.TargetRecord, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.targets, nil
}

func (s *stubProvider) Health(ctx context.Context) error { return s.err }

func company(id, name string) contracts.CompanyRecord {
	return contracts.CompanyRecord{CompanyID: id, CompanyName: name}
}

func TestAssembler_Assemble(t *testing.T) {
	a := New(5*time.Second, logger.Discard())

	prov := &stubProvider{
		name:      "main",
		companies: []contracts.CompanyRecord{company("A", "Acme"), company("B", "Globex")},
		targets: []contracts.TargetRecord{
			{CompanyID: "A", Scope: contracts.ScopeS1S2, TimeFrame: contracts.TimeFrameShort},
		},
	}
	portfolio := []contracts.PortfolioCompany{
		{CompanyID: "B", CompanyName: "Globex Holdings"},
		{CompanyID: "A"},
		{CompanyID: "Z"},
	}

	ds, err := a.Assemble(context.Background(), []providers.Provider{prov}, portfolio)
	require.NoError(t, err)

	// Z has no company record and drops out; output is sorted by ID.
	require.Len(t, ds.Companies, 2)
	assert.Equal(t, "A", ds.Companies[0].Portfolio.CompanyID)
	assert.Equal(t, "B", ds.Companies[1].Portfolio.CompanyID)

	// A carries its target, B has none.
	assert.Len(t, ds.Companies[0].Targets, 1)
	assert.Empty(t, ds.Companies[1].Targets)

	// Caller-supplied name wins over the provider's.
	assert.Equal(t, "Globex Holdings", ds.Companies[1].Name())
	assert.Equal(t, "Acme", ds.Companies[0].Name())
}

func TestAssembler_FirstProviderWinsOnCollision(t *testing.T) {
	a := New(5*time.Second, logger.Discard())

	first := &stubProvider{name: "first", companies: []contracts.CompanyRecord{
		{CompanyID: "A", CompanyName: "Acme", Sector: "Energy"},
	}}
	second := &stubProvider{name: "second", companies: []contracts.CompanyRecord{
		{CompanyID: "A", CompanyName: "Acme", Sector: "Utilities"},
	}}

	ds, err := a.Assemble(context.Background(),
		[]providers.Provider{first, second},
		[]contracts.PortfolioCompany{{CompanyID: "A"}})
	require.NoError(t, err)

	require.Len(t, ds.Companies, 1)
	assert.Equal(t, "Energy", ds.Companies[0].Record.Sector)
}

func TestAssembler_FailingProviderIsTreatedAsEmpty(t *testing.T) {
	a := New(5*time.Second, logger.Discard())

	broken := &stubProvider{name: "broken", err: errors.New("connection refused")}
	working := &stubProvider{name: "working", companies: []contracts.CompanyRecord{company("A", "Acme")}}

	ds, err := a.Assemble(context.Background(),
		[]providers.Provider{broken, working},
		[]contracts.PortfolioCompany{{CompanyID: "A"}})
	require.NoError(t, err)
	assert.Len(t, ds.Companies, 1)
}

func TestAssembler_SlowProviderTimesOutWithoutAborting(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping slow test")
	}

	a := New(50*time.Millisecond, logger.Discard())

	slow := &stubProvider{
		name:      "slow",
		delay:     2 * time.Second,
		companies: []contracts.CompanyRecord{company("A", "Slow Acme")},
	}
	fast := &stubProvider{name: "fast", companies: []contracts.CompanyRecord{company("A", "Acme")}}

	ds, err := a.Assemble(context.Background(),
		[]providers.Provider{slow, fast},
		[]contracts.PortfolioCompany{{CompanyID: "A"}})
	require.NoError(t, err)

	// The timed-out provider contributed nothing; the fast one wins.
	require.Len(t, ds.Companies, 1)
	assert.Equal(t, "Acme", ds.Companies[0].Record.CompanyName)
}

func TestAssembler_EmptyResult(t *testing.T) {
	a := New(5*time.Second, logger.Discard())

	empty := &stubProvider{name: "empty"}

	_, err := a.Assemble(context.Background(),
		[]providers.Provider{empty},
		[]contracts.PortfolioCompany{{CompanyID: "B"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyResult))
}

func TestAssembler_AllProvidersFailing(t *testing.T) {
	a := New(5*time.Second, logger.Discard())

	_, err := a.Assemble(context.Background(),
		[]providers.Provider{
			&stubProvider{name: "one", err: errors.New("down")},
			&stubProvider{name: "two", err: errors.New("down")},
		},
		[]contracts.PortfolioCompany{{CompanyID: "A"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEmptyResult))
}

func TestAssembler_DuplicatePortfolioIDsCollapse(t *testing.T) {
	a := New(5*time.Second, logger.Discard())

	prov := &stubProvider{name: "main", companies: []contracts.CompanyRecord{company("A", "Acme")}}

	ds, err := a.Assemble(context.Background(),
		[]providers.Provider{prov},
		[]contracts.PortfolioCompany{{CompanyID: "A"}, {CompanyID: "A"}})
	require.NoError(t, err)
	assert.Len(t, ds.Companies, 1)
}
