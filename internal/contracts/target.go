package contracts

// Scope identifies the emissions scope category covered by a target.
type Scope string

const (
	ScopeS1S2   Scope = "s1s2"
	ScopeS3     Scope = "s3"
	ScopeS1S2S3 Scope = "s1s2s3"
)

// AllScopes returns every scope category in canonical order.
func AllScopes() []Scope {
	return []Scope{ScopeS1S2, ScopeS3, ScopeS1S2S3}
}

// ParseScope converts a string to a Scope.
func ParseScope(s string) (Scope, bool) {
	switch Scope(s) {
	case ScopeS1S2, ScopeS3, ScopeS1S2S3:
		return Scope(s), true
	}
	return "", false
}

// TimeFrame identifies the horizon of a target.
type TimeFrame string

const (
	TimeFrameShort TimeFrame = "short"
	TimeFrameMid   TimeFrame = "mid"
	TimeFrameLong  TimeFrame = "long"
)

// AllTimeFrames returns every time frame in canonical order.
func AllTimeFrames() []TimeFrame {
	return []TimeFrame{TimeFrameShort, TimeFrameMid, TimeFrameLong}
}

// ParseTimeFrame converts a string to a TimeFrame.
func ParseTimeFrame(s string) (TimeFrame, bool) {
	switch TimeFrame(s) {
	case TimeFrameShort, TimeFrameMid, TimeFrameLong:
		return TimeFrame(s), true
	}
	return "", false
}

// TargetStatus is the external validation state of a target.
type TargetStatus string

const (
	TargetValidated   TargetStatus = "validated"
	TargetUnvalidated TargetStatus = "unvalidated"
	TargetExpired     TargetStatus = "expired"
)

// TargetRecord is a single emissions-reduction target reported for a company.
// Reduction is the fractional ambition (0.20 = 20% reduction by TargetYear,
// measured against BaseYear emissions).
type TargetRecord struct {
	CompanyID  string       `json:"company_id"`
	Scope      Scope        `json:"scope_category"`
	TimeFrame  TimeFrame    `json:"time_frame"`
	Reduction  float64      `json:"reduction_ambition"`
	BaseYear   int          `json:"base_year"`
	TargetYear int          `json:"target_year"`
	Status     TargetStatus `json:"status"`
}

// Usable reports whether the target can participate in selection for the
// given evaluation year. Expired targets, targets ending in the past and
// targets missing a scope or time frame are unusable.
func (t TargetRecord) Usable(evaluationYear int) bool {
	if t.Scope == "" || t.TimeFrame == "" {
		return false
	}
	if t.Status == TargetExpired {
		return false
	}
	if t.TargetYear < evaluationYear {
		return false
	}
	if t.BaseYear >= t.TargetYear {
		return false
	}
	return true
}

// TargetKey is the selection key of a target within one company.
type TargetKey struct {
	Scope     Scope
	TimeFrame TimeFrame
}

// Key returns the (scope, time frame) selection key.
func (t TargetRecord) Key() TargetKey {
	return TargetKey{Scope: t.Scope, TimeFrame: t.TimeFrame}
}
