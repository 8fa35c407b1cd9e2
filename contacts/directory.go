// Package contacts is the grounding source for emergency phone numbers.
// Lookup is a pure function over a static table; no model output can add
// or change a number here.
package contacts

import (
	"strings"

	"github.com/HarshwardhanZalte/AIDRA/types"
)

// Directory resolves (country code, disaster type) to a set of emergency
// contact records.
type Directory interface {
	Lookup(countryCode, disasterType string) []types.ContactRecord
}

const defaultKey = "default"

// universalFallback is returned when a country has no entry at all.
var universalFallback = []types.ContactRecord{
	{ServiceName: "Emergency (International)", PhoneNumber: "112"},
	{ServiceName: "Emergency (North America)", PhoneNumber: "911"},
}

// countryAliases maps common country spellings to ISO codes.
var countryAliases = map[string]string{
	"india":         "IN",
	"usa":           "US",
	"united states": "US",
}

var table = map[string]map[string][]types.ContactRecord{
	"IN": {
		defaultKey: {
			{ServiceName: "Police", PhoneNumber: "100"},
			{ServiceName: "Fire Brigade", PhoneNumber: "101"},
			{ServiceName: "Ambulance", PhoneNumber: "102"},
			{ServiceName: "National Disaster Helpline", PhoneNumber: "108"},
			{ServiceName: "Women Helpline", PhoneNumber: "1091"},
		},
		"fire": {
			{ServiceName: "Fire Brigade", PhoneNumber: "101"},
			{ServiceName: "Ambulance", PhoneNumber: "102"},
			{ServiceName: "Police", PhoneNumber: "100"},
		},
		"flood": {
			{ServiceName: "National Disaster Helpline", PhoneNumber: "108"},
			{ServiceName: "State Disaster Management", PhoneNumber: "1070"},
			{ServiceName: "Flood Control Room", PhoneNumber: "1077"},
		},
		"road_accident": {
			{ServiceName: "Ambulance", PhoneNumber: "102"},
			{ServiceName: "Police", PhoneNumber: "100"},
			{ServiceName: "Road Accident Helpline", PhoneNumber: "1073"},
		},
		"building_collapse": {
			{ServiceName: "National Disaster Helpline", PhoneNumber: "108"},
			{ServiceName: "Fire Brigade", PhoneNumber: "101"},
			{ServiceName: "Ambulance", PhoneNumber: "102"},
		},
		"chemical_leak": {
			{ServiceName: "National Disaster Helpline", PhoneNumber: "108"},
			{ServiceName: "Chemical Hazard Control", PhoneNumber: "1078"},
			{ServiceName: "Fire Brigade", PhoneNumber: "101"},
		},
	},
	"US": {
		defaultKey: {
			{ServiceName: "Emergency", PhoneNumber: "911"},
		},
		"fire": {
			{ServiceName: "Emergency", PhoneNumber: "911"},
		},
		"flood": {
			{ServiceName: "Emergency", PhoneNumber: "911"},
			{ServiceName: "FEMA", PhoneNumber: "1-800-621-3362"},
		},
		"road_accident": {
			{ServiceName: "Emergency", PhoneNumber: "911"},
		},
	},
}

// StaticDirectory serves lookups from the built-in table.
type StaticDirectory struct{}

func NewStaticDirectory() StaticDirectory { return StaticDirectory{} }

// Lookup returns the contact set for the country and disaster type. Falls
// back to the country's default set when the disaster type has no entry, and
// to the universal numbers when the country is unknown. Never returns an
// empty set. Callers receive a copy; the table itself is never exposed.
func (StaticDirectory) Lookup(countryCode, disasterType string) []types.ContactRecord {
	country := normalizeCountry(countryCode)
	disaster := normalizeDisaster(disasterType)

	countryTable, ok := table[country]
	if !ok {
		return clone(universalFallback)
	}

	if recs, ok := countryTable[disaster]; ok {
		return clone(recs)
	}
	if recs, ok := countryTable[defaultKey]; ok {
		return clone(recs)
	}
	return clone(universalFallback)
}

func normalizeCountry(code string) string {
	trimmed := strings.TrimSpace(code)
	if alias, ok := countryAliases[strings.ToLower(trimmed)]; ok {
		return alias
	}
	return strings.ToUpper(trimmed)
}

// normalizeDisaster lowercases and collapses separators, so "Structural Fire"
// and "fire" both hit the fire entry when one exists.
func normalizeDisaster(disasterType string) string {
	d := strings.ToLower(strings.TrimSpace(disasterType))
	d = strings.ReplaceAll(d, " ", "_")
	d = strings.ReplaceAll(d, "-", "_")

	// Model output can be wordier than the table keys ("structural_fire",
	// "flash_flood"). Match on the table's base categories.
	switch {
	case strings.Contains(d, "fire"), strings.Contains(d, "wildfire"):
		return "fire"
	case strings.Contains(d, "flood"):
		return "flood"
	case strings.Contains(d, "accident"), strings.Contains(d, "crash"):
		return "road_accident"
	case strings.Contains(d, "collapse"):
		return "building_collapse"
	case strings.Contains(d, "chemical"), strings.Contains(d, "gas_leak"):
		return "chemical_leak"
	}
	return d
}

func clone(recs []types.ContactRecord) []types.ContactRecord {
	out := make([]types.ContactRecord, len(recs))
	copy(out, recs)
	return out
}
