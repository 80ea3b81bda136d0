package contracts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTargetRecord_Usable(t *testing.T) {
	base := TargetRecord{
		CompanyID:  "US001",
		Scope:      ScopeS1S2,
		TimeFrame:  TimeFrameShort,
		Reduction:  0.2,
		BaseYear:   2020,
		TargetYear: 2030,
		Status:     TargetValidated,
	}

	tests := []struct {
		name   string
		mutate func(*TargetRecord)
		want   bool
	}{
		{"valid target", func(*TargetRecord) {}, true},
		{"missing scope", func(r *TargetRecord) { r.Scope = "" }, false},
		{"missing time frame", func(r *TargetRecord) { r.TimeFrame = "" }, false},
		{"expired status", func(r *TargetRecord) { r.Status = TargetExpired }, false},
		{"target year in the past", func(r *TargetRecord) { r.TargetYear = 2019 }, false},
		{"base year after target year", func(r *TargetRecord) { r.BaseYear = 2031 }, false},
		{"unvalidated is still usable", func(r *TargetRecord) { r.Status = TargetUnvalidated }, true},
		{"target year equal to evaluation year", func(r *TargetRecord) { r.TargetYear = 2025 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mutate(&r)
			assert.Equal(t, tt.want, r.Usable(2025))
		})
	}
}

func TestParseScope(t *testing.T) {
	for _, scope := range AllScopes() {
		parsed, ok := ParseScope(string(scope))
		assert.True(t, ok)
		assert.Equal(t, scope, parsed)
	}

	_, ok := ParseScope("scope99")
	assert.False(t, ok)
}

func TestParseTimeFrame(t *testing.T) {
	for _, tf := range AllTimeFrames() {
		parsed, ok := ParseTimeFrame(string(tf))
		assert.True(t, ok)
		assert.Equal(t, tf, parsed)
	}

	_, ok := ParseTimeFrame("eventually")
	assert.False(t, ok)
}
