// Package targets filters merged target data down to the single usable
// target per (company, scope, time frame) and applies what-if scenarios.
package targets

import (
	"sort"
	"time"

	"github.com/oortis/tempscore/internal/contracts"
	"github.com/oortis/tempscore/pkg/logger"
)

// Validator selects usable targets.
type Validator struct {
	evaluationYear int
	logger         *logger.Logger
}

// NewValidator creates a validator. evaluationYear of zero means the
// current year; targets ending before it are unusable.
func NewValidator(evaluationYear int, log *logger.Logger) *Validator {
	if evaluationYear == 0 {
		evaluationYear = time.Now().Year()
	}
	return &Validator{
		evaluationYear: evaluationYear,
		logger:         log.WithField("module", "targets"),
	}
}

// Validate reduces each company's targets to at most one per
// (scope, time frame) key. Companies keep their place in the dataset even
// when no usable target remains, so the default score can be applied
// downstream and coverage bookkeeping stays complete.
func (v *Validator) Validate(ds contracts.Dataset) contracts.Dataset {
	out := contracts.Dataset{Companies: make([]contracts.CompanyEntry, 0, len(ds.Companies))}

	dropped := 0
	for _, entry := range ds.Companies {
		selected := v.selectTargets(entry.Targets)
		dropped += len(entry.Targets) - len(selected)

		entry.Targets = selected
		out.Companies = append(out.Companies, entry)
	}

	v.logger.WithFields(map[string]interface{}{
		"companies":       len(out.Companies),
		"dropped_targets": dropped,
	}).Debug("Target validation completed")

	return out
}

// selectTargets picks the winning target per (scope, time frame) key.
// Preference order: validated status, most recent base year, largest
// reduction ambition, then earliest target year so ties never depend on
// input order.
func (v *Validator) selectTargets(ts []contracts.TargetRecord) []contracts.TargetRecord {
	best := make(map[contracts.TargetKey]contracts.TargetRecord)
	for _, t := range ts {
		if !t.Usable(v.evaluationYear) {
			continue
		}
		current, ok := best[t.Key()]
		if !ok || betterTarget(t, current) {
			best[t.Key()] = t
		}
	}

	selected := make([]contracts.TargetRecord, 0, len(best))
	for _, t := range best {
		selected = append(selected, t)
	}
	sort.Slice(selected, func(i, j int) bool {
		a, b := selected[i], selected[j]
		if a.Scope != b.Scope {
			return a.Scope < b.Scope
		}
		return a.TimeFrame < b.TimeFrame
	})
	return selected
}

// betterTarget reports whether a should replace b as the selected target.
func betterTarget(a, b contracts.TargetRecord) bool {
	aValidated := a.Status == contracts.TargetValidated
	bValidated := b.Status == contracts.TargetValidated
	if aValidated != bValidated {
		return aValidated
	}
	if a.BaseYear != b.BaseYear {
		return a.BaseYear > b.BaseYear
	}
	if a.Reduction != b.Reduction {
		return a.Reduction > b.Reduction
	}
	return a.TargetYear < b.TargetYear
}
