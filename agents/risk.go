package agents

import (
	"strings"

	"github.com/HarshwardhanZalte/AIDRA/types"
)

// Severity score bands for the non-critical levels. Classification must stay
// monotone in the score for a fixed hazard set.
const (
	DefaultCriticalSeverity   = 85
	highSeverityThreshold     = 60
	moderateSeverityThreshold = 30
)

// lifeThreatKeywords force a critical classification regardless of score.
var lifeThreatKeywords = []string{
	"trapped",
	"people inside",
	"drowning",
	"collapse",
	"explosion",
	"live wire",
	"electrocution",
	"casualt",
	"body",
	"bodies",
}

// ClassifyRisk maps a severity score and hazard list to the final risk level
// and life-danger flag. Score at or above the critical threshold, or a
// life-threatening hazard keyword, forces critical.
func ClassifyRisk(severityScore int, hazards []string, criticalThreshold int) (types.RiskLevel, bool) {
	if criticalThreshold <= 0 {
		criticalThreshold = DefaultCriticalSeverity
	}

	if severityScore >= criticalThreshold || hasLifeThreat(hazards) {
		return types.RiskCritical, true
	}
	switch {
	case severityScore >= highSeverityThreshold:
		return types.RiskHigh, false
	case severityScore >= moderateSeverityThreshold:
		return types.RiskModerate, false
	default:
		return types.RiskLow, false
	}
}

func hasLifeThreat(hazards []string) bool {
	for _, hazard := range hazards {
		h := strings.ToLower(hazard)
		for _, kw := range lifeThreatKeywords {
			if strings.Contains(h, kw) {
				return true
			}
		}
	}
	return false
}
