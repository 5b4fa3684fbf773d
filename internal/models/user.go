package models

// Sponsor holds the optional sponsor sub-record nested inside a user
// profile. Persisted as a JSON column.
type Sponsor struct {
	Name         string `json:"name,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	SobrietyDate string `json:"sobrietyDate,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

// PrivacySettings controls what a user shares with others. Persisted as a
// JSON column.
type PrivacySettings struct {
	ShareSobrietyDate bool `json:"shareSobrietyDate"`
	ShareActivities   bool `json:"shareActivities"`
	AllowMessages     bool `json:"allowMessages"`
}

// User represents the person using the app. There is normally exactly one
// logical current user per device.
type User struct {
	ID              string           `json:"id,omitempty"`
	Name            string           `json:"name"`
	SobrietyDate    string           `json:"sobrietyDate,omitempty"` // YYYY-MM-DD
	HomeGroup       string           `json:"homeGroup,omitempty"`
	HomeGroups      []string         `json:"homeGroups,omitempty"`
	Phone           string           `json:"phone,omitempty"`
	Email           string           `json:"email,omitempty"`
	Sponsor         *Sponsor         `json:"sponsor,omitempty"`
	PrivacySettings *PrivacySettings `json:"privacySettings,omitempty"`
	Discoverable    bool             `json:"discoverable"`
	Latitude        float64          `json:"latitude,omitempty"`
	Longitude       float64          `json:"longitude,omitempty"`
	CreatedAt       string           `json:"createdAt,omitempty"`
	UpdatedAt       string           `json:"updatedAt,omitempty"`
}
