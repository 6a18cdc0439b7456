package models

// Accepted values for the categorical dive condition fields. Validated
// before any write; stored as plain strings.

var spotDifficulties = map[string]bool{
	"Beginner":     true,
	"Intermediate": true,
	"Advanced":     true,
	"Expert":       true,
}

var waterTypes = map[string]bool{
	"Salt":     true,
	"Fresh":    true,
	"Brackish": true,
}

var visibilityQualities = map[string]bool{
	"Excellent": true,
	"Good":      true,
	"Fair":      true,
	"Poor":      true,
	"Very Poor": true,
}

var windConditions = map[string]bool{
	"Calm":        true,
	"Light":       true,
	"Moderate":    true,
	"Strong":      true,
	"Very Strong": true,
}

var currentConditions = map[string]bool{
	"None":        true,
	"Light":       true,
	"Moderate":    true,
	"Strong":      true,
	"Very Strong": true,
}

// ValidDifficulty reports whether s is an accepted spot difficulty.
func ValidDifficulty(s string) bool { return spotDifficulties[s] }

// ValidWaterType reports whether s is an accepted water type.
func ValidWaterType(s string) bool { return waterTypes[s] }

// ValidVisibilityQuality reports whether s is an accepted visibility rating.
func ValidVisibilityQuality(s string) bool { return visibilityQualities[s] }

// ValidWindConditions reports whether s is an accepted wind rating.
func ValidWindConditions(s string) bool { return windConditions[s] }

// ValidCurrentConditions reports whether s is an accepted current rating.
func ValidCurrentConditions(s string) bool { return currentConditions[s] }
