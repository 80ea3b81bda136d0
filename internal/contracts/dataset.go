package contracts

// CompanyEntry is one portfolio company joined with its provider data.
// After target validation, Targets holds at most one record per
// (scope, time frame) key.
type CompanyEntry struct {
	Portfolio PortfolioCompany `json:"portfolio"`
	Record    CompanyRecord    `json:"record"`
	Targets   []TargetRecord   `json:"targets"`
}

// Name resolves the display name with caller precedence: the name the
// caller submitted wins over the provider's.
func (e CompanyEntry) Name() string {
	if e.Portfolio.CompanyName != "" {
		return e.Portfolio.CompanyName
	}
	return e.Record.CompanyName
}

// Target returns the selected target for a (scope, time frame) key.
func (e CompanyEntry) Target(key TargetKey) (TargetRecord, bool) {
	for _, t := range e.Targets {
		if t.Key() == key {
			return t, true
		}
	}
	return TargetRecord{}, false
}

// HasValidatedTarget reports whether any selected target carries external
// validation. Drives the coverage numerator.
func (e CompanyEntry) HasValidatedTarget() bool {
	for _, t := range e.Targets {
		if t.Status == TargetValidated {
			return true
		}
	}
	return false
}

// Dataset is the working dataset flowing through the pipeline stages.
// Companies are kept sorted by company ID so every stage is deterministic.
type Dataset struct {
	Companies []CompanyEntry `json:"companies"`
}

// CompanyIDs returns the IDs of all companies in the dataset, in order.
func (d Dataset) CompanyIDs() []string {
	ids := make([]string, 0, len(d.Companies))
	for _, e := range d.Companies {
		ids = append(ids, e.Portfolio.CompanyID)
	}
	return ids
}

// Clone returns a deep copy of the dataset. Scenario adjustment mutates
// target fields and must not leak into the validated dataset.
func (d Dataset) Clone() Dataset {
	out := Dataset{Companies: make([]CompanyEntry, len(d.Companies))}
	for i, e := range d.Companies {
		clone := e
		clone.Targets = make([]TargetRecord, len(e.Targets))
		copy(clone.Targets, e.Targets)
		if e.Portfolio.Extra != nil {
			clone.Portfolio.Extra = make(map[string]string, len(e.Portfolio.Extra))
			for k, v := range e.Portfolio.Extra {
				clone.Portfolio.Extra[k] = v
			}
		}
		out.Companies[i] = clone
	}
	return out
}
