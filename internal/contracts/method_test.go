package contracts

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAggregationMethod(t *testing.T) {
	for _, method := range AllAggregationMethods() {
		parsed, err := ParseAggregationMethod(string(method))
		require.NoError(t, err)
		assert.Equal(t, method, parsed)
	}

	// Case and whitespace tolerant.
	parsed, err := ParseAggregationMethod("  wats ")
	require.NoError(t, err)
	assert.Equal(t, MethodWATS, parsed)
}

func TestParseAggregationMethod_Unknown(t *testing.T) {
	_, err := ParseAggregationMethod("MAGIC")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownMethod))
}

func TestScenario_Adjust(t *testing.T) {
	target := TargetRecord{
		Reduction:  0.3,
		BaseYear:   2020,
		TargetYear: 2040,
	}

	t.Run("nil scenario is pass-through", func(t *testing.T) {
		var s *Scenario
		assert.Equal(t, target, s.Adjust(target))
	})

	t.Run("target year override", func(t *testing.T) {
		year := 2030
		s := &Scenario{Name: "pull-forward", TargetYear: &year}
		adjusted := s.Adjust(target)
		assert.Equal(t, 2030, adjusted.TargetYear)
		assert.Equal(t, target.Reduction, adjusted.Reduction)
	})

	t.Run("reduction boost is capped at full reduction", func(t *testing.T) {
		boost := 0.9
		s := &Scenario{Name: "ambition", ReductionBoost: &boost}
		adjusted := s.Adjust(target)
		assert.Equal(t, 1.0, adjusted.Reduction)
	})
}
