package types

import "fmt"

type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Rank orders risk levels from low (0) to critical (3). Unknown levels rank -1.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskLow:
		return 0
	case RiskModerate:
		return 1
	case RiskHigh:
		return 2
	case RiskCritical:
		return 3
	default:
		return -1
	}
}

func (r RiskLevel) Valid() bool { return r.Rank() >= 0 }

// ImageAssessment is the output of the image understanding stage.
// Immutable once produced; the safety and response stages only read it.
type ImageAssessment struct {
	DisasterType     string   `json:"disaster_type"`
	Hazards          []string `json:"hazards"`
	SeverityScore    int      `json:"severity_score"` // 0 (minor) to 100 (catastrophic)
	DetailedAnalysis string   `json:"detailed_analysis"`
}

func (a ImageAssessment) Validate() error {
	if a.DisasterType == "" {
		return fmt.Errorf("image assessment: missing disaster_type")
	}
	if len(a.Hazards) == 0 {
		return fmt.Errorf("image assessment: empty hazards list")
	}
	for i, h := range a.Hazards {
		if h == "" {
			return fmt.Errorf("image assessment: empty hazard at index %d", i)
		}
	}
	if a.SeverityScore < 0 || a.SeverityScore > 100 {
		return fmt.Errorf("image assessment: severity_score %d outside [0,100]", a.SeverityScore)
	}
	if a.DetailedAnalysis == "" {
		return fmt.Errorf("image assessment: missing detailed_analysis")
	}
	return nil
}

// SafetyAdvice is the output of the safety measures stage.
type SafetyAdvice struct {
	PersonalSafety          []string `json:"personal_safety"`
	PreventiveActions       []string `json:"preventive_actions"`
	RiskMitigationChecklist []string `json:"risk_mitigation_checklist"`
}

func (s SafetyAdvice) Validate() error {
	if len(s.PersonalSafety) == 0 {
		return fmt.Errorf("safety advice: empty personal_safety")
	}
	if len(s.PreventiveActions) == 0 {
		return fmt.Errorf("safety advice: empty preventive_actions")
	}
	if len(s.RiskMitigationChecklist) == 0 {
		return fmt.Errorf("safety advice: empty risk_mitigation_checklist")
	}
	return nil
}

// ContactRecord is a single emergency service entry from the contact directory.
type ContactRecord struct {
	ServiceName string `json:"service_name"`
	PhoneNumber string `json:"phone_number"`
}

func (c ContactRecord) Validate() error {
	if c.ServiceName == "" || c.PhoneNumber == "" {
		return fmt.Errorf("contact record: missing service_name or phone_number")
	}
	return nil
}

// EmergencyReport is the final synthesized output returned to the caller.
type EmergencyReport struct {
	DisasterType          string          `json:"disaster_type"`
	Confidence            float64         `json:"confidence"` // severity score carried through, 0-100
	RiskLevel             RiskLevel       `json:"risk_level"`
	LivesInDanger         bool            `json:"lives_in_danger"`
	ImmediateInstructions []string        `json:"immediate_instructions"`
	SafetyMeasures        []string        `json:"safety_measures"`
	EmergencyContacts     []ContactRecord `json:"emergency_contacts"`
	WhatToSay             string          `json:"what_to_say,omitempty"`
}

func (r EmergencyReport) Validate() error {
	if r.DisasterType == "" {
		return fmt.Errorf("report: missing disaster_type")
	}
	if r.Confidence < 0 || r.Confidence > 100 {
		return fmt.Errorf("report: confidence %v outside [0,100]", r.Confidence)
	}
	if !r.RiskLevel.Valid() {
		return fmt.Errorf("report: invalid risk_level %q", r.RiskLevel)
	}
	if len(r.ImmediateInstructions) == 0 {
		return fmt.Errorf("report: empty immediate_instructions")
	}
	if len(r.SafetyMeasures) == 0 {
		return fmt.Errorf("report: empty safety_measures")
	}
	if len(r.EmergencyContacts) == 0 {
		return fmt.Errorf("report: empty emergency_contacts")
	}
	for _, c := range r.EmergencyContacts {
		if err := c.Validate(); err != nil {
			return fmt.Errorf("report: %w", err)
		}
	}
	return nil
}
