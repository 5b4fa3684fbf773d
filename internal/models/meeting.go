package models

// Meeting describes a recovery meeting. The same shape backs both a user's
// personal meeting list and the shared meetings pool; Shared distinguishes
// the two.
type Meeting struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name"`
	Days      []string `json:"days,omitempty"` // weekday names, JSON column
	Time      string   `json:"time,omitempty"` // HH:MM
	Address   string   `json:"address,omitempty"`
	Latitude  float64  `json:"latitude,omitempty"`
	Longitude float64  `json:"longitude,omitempty"`
	Shared    bool     `json:"shared"`
	CreatedBy string   `json:"createdBy,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}
