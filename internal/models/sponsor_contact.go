package models

// Contact method types for sponsor contacts.
const (
	ContactPhone    = "phone"
	ContactInPerson = "in-person"
	ContactVideo    = "video"
	ContactText     = "text"
	ContactEmail    = "email"
	ContactOther    = "other"
)

// SponsorContact records one interaction with a sponsor.
type SponsorContact struct {
	ID        string `json:"id,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Date      string `json:"date"` // ISO-8601 UTC timestamp
	Method    string `json:"method,omitempty"`
	Note      string `json:"note,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// ActionItem is a follow-up task attached to a sponsor contact. Stored in
// its own collection, related by ContactID.
type ActionItem struct {
	ID        string `json:"id,omitempty"`
	ContactID string `json:"contactId"`
	Title     string `json:"title"`
	Text      string `json:"text,omitempty"`
	Notes     string `json:"notes,omitempty"`
	DueDate   string `json:"dueDate,omitempty"` // YYYY-MM-DD
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
