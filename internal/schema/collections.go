package schema

// Collection names used across the app.
const (
	Users            = "users"
	Activities       = "activities"
	Meetings         = "meetings"
	SponsorContacts  = "sponsor_contacts"
	ActionItems      = "action_items"
	SpiritualFitness = "spiritual_fitness"
	Preferences      = "preferences"
)

// Default builds the registry with every collection the app persists.
func Default() *Registry {
	r := NewRegistry()

	r.Register(Collection{
		Name: Users,
		Fields: []Field{
			{Name: "name", Kind: KindText, Default: ""},
			{Name: "sobrietyDate", Kind: KindText},
			{Name: "homeGroup", Kind: KindText},
			{Name: "homeGroups", Kind: KindJSON},
			{Name: "phone", Kind: KindText},
			{Name: "email", Kind: KindText},
			{Name: "sponsor", Kind: KindJSON},
			{Name: "privacySettings", Kind: KindJSON},
			{Name: "discoverable", Kind: KindBoolean, Default: false},
			{Name: "latitude", Kind: KindReal},
			{Name: "longitude", Kind: KindReal},
		},
	})

	r.Register(Collection{
		Name: Activities,
		Fields: []Field{
			{Name: "userId", Kind: KindText},
			{Name: "type", Kind: KindText, Required: true},
			{Name: "date", Kind: KindText, Required: true},
			{Name: "duration", Kind: KindInteger, Default: 0},
			{Name: "notes", Kind: KindText},
			{Name: "meetingId", Kind: KindText},
		},
	})

	r.Register(Collection{
		Name: Meetings,
		Fields: []Field{
			{Name: "name", Kind: KindText, Required: true},
			{Name: "days", Kind: KindJSON},
			{Name: "time", Kind: KindText},
			{Name: "address", Kind: KindText},
			{Name: "latitude", Kind: KindReal},
			{Name: "longitude", Kind: KindReal},
			{Name: "shared", Kind: KindBoolean, Default: false},
			{Name: "createdBy", Kind: KindText},
		},
	})

	r.Register(Collection{
		Name: SponsorContacts,
		Fields: []Field{
			{Name: "userId", Kind: KindText},
			{Name: "date", Kind: KindText, Required: true},
			{Name: "method", Kind: KindText, Default: "phone"},
			{Name: "note", Kind: KindText},
		},
	})

	r.Register(Collection{
		Name: ActionItems,
		Fields: []Field{
			{Name: "contactId", Kind: KindText, Required: true},
			{Name: "title", Kind: KindText, Required: true},
			{Name: "text", Kind: KindText},
			{Name: "notes", Kind: KindText},
			{Name: "dueDate", Kind: KindText},
			{Name: "completed", Kind: KindBoolean, Default: false},
		},
	})

	r.Register(Collection{
		Name: SpiritualFitness,
		Fields: []Field{
			{Name: "userId", Kind: KindText},
			{Name: "score", Kind: KindReal, Default: 0.0},
			{Name: "breakdown", Kind: KindJSON},
			{Name: "timeframeDays", Kind: KindInteger, Default: 30},
			{Name: "computedAt", Kind: KindText},
		},
	})

	r.Register(Collection{
		Name: Preferences,
		Fields: []Field{
			{Name: "key", Kind: KindText, Required: true},
			{Name: "value", Kind: KindJSON},
		},
	})

	return r
}
