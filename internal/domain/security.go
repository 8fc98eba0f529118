package domain

// RiskLevel enumerates guardrail outcomes.
type RiskLevel string

const (
	RiskSafe     RiskLevel = "safe"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// RiskAssessment aggregates security evaluation data. Assessments are
// advisory: they are shown before confirmation, they never block execution.
type RiskAssessment struct {
	Level        RiskLevel
	Reasons      []string
	MatchedRules []string
}

// IsRisky reports whether anything matched.
func (r RiskAssessment) IsRisky() bool {
	return r.Level != "" && r.Level != RiskSafe
}
