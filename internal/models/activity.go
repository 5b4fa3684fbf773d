package models

// Activity types are an open set by convention, but these are the ones the
// app logs and the scoring engine weighs.
const (
	ActivityMeeting        = "meeting"
	ActivityPrayer         = "prayer"
	ActivityMeditation     = "meditation"
	ActivityReading        = "reading"
	ActivityService        = "service"
	ActivityStepwork       = "stepwork"
	ActivitySponsorContact = "sponsor_contact"
	ActivityCall           = "call"
	ActivityOther          = "other"
)

// KnownActivityTypes lists the conventional activity types.
var KnownActivityTypes = map[string]bool{
	ActivityMeeting:        true,
	ActivityPrayer:         true,
	ActivityMeditation:     true,
	ActivityReading:        true,
	ActivityService:        true,
	ActivityStepwork:       true,
	ActivitySponsorContact: true,
	ActivityCall:           true,
	ActivityOther:          true,
}

// Activity is a single logged recovery action. Type must never be empty:
// the relational backend enforces it as NOT NULL and the service layer
// rejects blank types before they reach storage.
type Activity struct {
	ID        string `json:"id,omitempty"`
	UserID    string `json:"userId,omitempty"`
	Type      string `json:"type"`
	Date      string `json:"date"` // ISO-8601 UTC timestamp
	Duration  int    `json:"duration,omitempty"` // minutes
	Notes     string `json:"notes,omitempty"`
	MeetingID string `json:"meetingId,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}
