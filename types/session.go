package types

import "time"

// SessionRecord is the most recent analysis summary for one session.
// Overwritten wholesale on each completed analysis, never merged.
type SessionRecord struct {
	SessionID        string    `json:"session_id"`
	LastDisasterType string    `json:"last_disaster_type"`
	LastRiskLevel    RiskLevel `json:"last_risk_level"`
	LastUpdated      time.Time `json:"last_updated"`
}
