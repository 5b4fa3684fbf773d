package models

// Preference is a generic key/value setting. Value round-trips as JSON so
// it can hold numbers, strings or small structures.
type Preference struct {
	ID        string `json:"id,omitempty"`
	Key       string `json:"key"`
	Value     any    `json:"value"` // JSON column
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// Preference keys used by the app.
const (
	PrefFitnessTimeframe  = "fitnessTimeframe"
	PrefMigrationComplete = "migrationComplete"
)
