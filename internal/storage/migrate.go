package storage

import (
	"context"
	"encoding/json"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/soberlog/soberlog/internal/schema"
)

// legacyKeys maps the old flat key-value entity keys onto collections.
// The legacy format was one JSON array per entity type under a single
// top-level key.
var legacyKeys = map[string]string{
	"users":           schema.Users,
	"activities":      schema.Activities,
	"meetings":        schema.Meetings,
	"sponsorContacts": schema.SponsorContacts,
	"preferences":     schema.Preferences,
}

// Migrator copies records out of a legacy flat key-value dump into the
// record store. One-directional and best-effort: per-record failures are
// logged and skipped rather than aborting the run.
type Migrator struct {
	store      *Store
	legacyPath string
}

// NewMigrator points at the legacy dump file, normally
// <DataDir>/legacy.json.
func NewMigrator(store *Store, legacyPath string) *Migrator {
	return &Migrator{store: store, legacyPath: legacyPath}
}

func (m *Migrator) load() map[string][]Record {
	raw, err := os.ReadFile(m.legacyPath)
	if err != nil {
		return nil
	}
	var data map[string][]Record
	if err := json.Unmarshal(raw, &data); err != nil {
		logrus.WithField("path", m.legacyPath).WithError(err).Warn("Legacy data unreadable")
		return nil
	}
	return data
}

// HasLegacyData reports whether any legacy entity key holds records.
func (m *Migrator) HasLegacyData() bool {
	data := m.load()
	for key := range legacyKeys {
		if len(data[key]) > 0 {
			return true
		}
	}
	return false
}

// Migrate copies every legacy record into its collection, preserving ids.
// Records whose id already exists are skipped, so repeated runs never
// duplicate rows. Returns true only if every record copied cleanly.
func (m *Migrator) Migrate(ctx context.Context) bool {
	data := m.load()
	if data == nil {
		return true
	}

	ok := true
	for key, collection := range legacyKeys {
		for _, rec := range data[key] {
			if id, _ := rec["id"].(string); id != "" {
				existing, err := m.store.GetByID(ctx, collection, id)
				if err == nil && existing != nil {
					continue
				}
			}
			if _, err := m.store.Add(ctx, collection, rec); err != nil {
				logrus.WithFields(logrus.Fields{
					"collection": collection,
					"id":         rec["id"],
				}).WithError(err).Warn("Skipping legacy record")
				ok = false
			}
		}
	}

	logrus.WithField("complete", ok).Info("Legacy migration finished")
	return ok
}
