package summary

import "fmt"

const (
	DefaultPolicyHomePct   = 40
	DefaultPolicyTolerance = 5

	ComplianceRemoteAbove = "Remote days is above average"
	ComplianceWithin      = "Within average work mode ratio"
)

// Policy is the target share of home days with an allowed tolerance, in percent.
type Policy struct {
	HomePct   float64 `json:"home_pct"`
	Tolerance float64 `json:"tolerance"`
}

func DefaultPolicy() Policy {
	return Policy{HomePct: DefaultPolicyHomePct, Tolerance: DefaultPolicyTolerance}
}

type PolicyCompliance struct {
	Summary string `json:"summary"`
	Note    string `json:"note"`
}

// EvaluateWorkModePolicyCompliance compares the home share against the policy band.
// Only exceeding the upper bound is flagged.
func EvaluateWorkModePolicyCompliance(homePct, officePct float64, policy Policy) PolicyCompliance {
	result := PolicyCompliance{
		Summary: ComplianceWithin,
		Note:    fmt.Sprintf("Office: %.0f%% | Home: %.0f%%", roundHalfUp(officePct, 0), roundHalfUp(homePct, 0)),
	}
	if homePct > policy.HomePct+policy.Tolerance {
		result.Summary = ComplianceRemoteAbove
	}
	return result
}
