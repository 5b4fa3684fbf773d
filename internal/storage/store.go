package storage

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/soberlog/soberlog/internal/config"
	"github.com/soberlog/soberlog/internal/schema"
)

// Store is the single CRUD + query surface every collaborator talks to.
// It owns backend selection, schema (de)serialization and write
// serialization; callers never see which physical engine is active.
type Store struct {
	cfg     *config.Config
	reg     *schema.Registry
	backend Backend

	// writeMu serializes writes so same-id races resolve last-write-wins
	// with no torn records.
	writeMu  sync.Mutex
	openOnce sync.Once
	openErr  error
}

// New constructs an unopened store. Call Open before use.
func New(cfg *config.Config, reg *schema.Registry) *Store {
	return &Store{cfg: cfg, reg: reg}
}

// Open selects and initializes the backend. Idempotent: concurrent and
// repeated calls share one initialization attempt. A backend that cannot
// be opened is not an error for the caller — the store falls back to the
// flat file store, and to memory as a last resort.
func (s *Store) Open(ctx context.Context) error {
	s.openOnce.Do(func() {
		s.openErr = s.open(ctx)
	})
	return s.openErr
}

func (s *Store) open(ctx context.Context) error {
	switch s.cfg.StorageBackend {
	case "sqlite", "":
		backend, err := NewSQLiteBackend(s.cfg.DBPath)
		if err == nil {
			s.backend = backend
			break
		}
		logrus.WithError(err).Warnf("%v, falling back to flat store", ErrBackendUnavailable)
		fallthrough
	case "file":
		backend, err := NewFileBackend(s.cfg.DataDir + "/soberlog.json")
		if err == nil {
			s.backend = backend
			break
		}
		logrus.WithError(err).Warnf("%v, falling back to memory", ErrBackendUnavailable)
		fallthrough
	case "memory":
		backend, _ := NewFileBackend("")
		s.backend = backend
	default:
		return fmt.Errorf("unknown storage backend %q", s.cfg.StorageBackend)
	}

	if err := s.backend.Init(s.reg); err != nil {
		return fmt.Errorf("init %s backend: %w", s.backend.Name(), err)
	}
	logrus.WithField("backend", s.backend.Name()).Info("Record store ready")
	return nil
}

// BackendName reports which engine ended up active, for logs and tests.
func (s *Store) BackendName() string {
	if s.backend == nil {
		return ""
	}
	return s.backend.Name()
}

// Close flushes and releases the backend.
func (s *Store) Close() error {
	if s.backend == nil {
		return nil
	}
	return s.backend.Close()
}

// newID derives an id from creation time plus a short random suffix, so
// ids sort roughly by age even on the flat backend.
func newID() string {
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// GetAll returns every logical record in a collection. Unknown or empty
// collections yield an empty slice, never an error.
func (s *Store) GetAll(ctx context.Context, collection string) ([]Record, error) {
	if _, ok := s.reg.Collection(collection); !ok {
		return []Record{}, nil
	}
	physical, err := s.backend.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(physical))
	for _, rec := range physical {
		out = append(out, s.reg.MaterializeForRead(collection, rec))
	}
	return out, nil
}

// GetByID returns nil, nil when no record has the id.
func (s *Store) GetByID(ctx context.Context, collection, id string) (Record, error) {
	physical, err := s.backend.GetByID(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if physical == nil {
		return nil, nil
	}
	return s.reg.MaterializeForRead(collection, physical), nil
}

// Add validates, normalizes and writes a new record, assigning an id and
// timestamps when the caller did not provide them. The returned record is
// the fully-materialized stored form.
func (s *Store) Add(ctx context.Context, collection string, rec Record) (Record, error) {
	physical, err := s.reg.NormalizeForWrite(collection, rec)
	if err != nil {
		return nil, err
	}

	id, _ := rec["id"].(string)
	if id == "" {
		id = newID()
	}
	physical["id"] = id
	if created, _ := rec["createdAt"].(string); created != "" {
		physical["createdAt"] = created
	} else {
		physical["createdAt"] = nowStamp()
	}
	if updated, _ := rec["updatedAt"].(string); updated != "" {
		physical["updatedAt"] = updated
	} else {
		physical["updatedAt"] = physical["createdAt"]
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.backend.Insert(ctx, collection, physical); err != nil {
		return nil, err
	}
	return s.reg.MaterializeForRead(collection, physical), nil
}

// Update merges partial onto the stored record — never a full replace —
// and re-stamps updatedAt. Returns nil, nil when the id does not exist.
func (s *Store) Update(ctx context.Context, collection, id string, partial Record) (Record, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	existing, err := s.backend.GetByID(ctx, collection, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	merged := s.reg.MaterializeForRead(collection, existing)
	for field, value := range partial {
		if field == "id" || field == "createdAt" {
			continue // immutable once assigned
		}
		merged[field] = value
	}

	physical, err := s.reg.NormalizeForWrite(collection, merged)
	if err != nil {
		return nil, err
	}
	physical["id"] = id
	physical["createdAt"] = existing["createdAt"]
	physical["updatedAt"] = nowStamp()

	if err := s.backend.Update(ctx, collection, id, physical); err != nil {
		return nil, err
	}
	return s.reg.MaterializeForRead(collection, physical), nil
}

// Remove deletes by id, reporting whether a record was actually removed.
func (s *Store) Remove(ctx context.Context, collection, id string) (bool, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.backend.Delete(ctx, collection, id)
}

// Query executes a structured query against the active backend.
func (s *Store) Query(ctx context.Context, q Query) ([]Record, error) {
	if _, ok := s.reg.Collection(q.Collection); !ok {
		return []Record{}, nil
	}
	physical, err := s.backend.Select(ctx, q)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(physical))
	for _, rec := range physical {
		out = append(out, s.reg.MaterializeForRead(q.Collection, rec))
	}
	return out, nil
}

// Filter is a full scan with an arbitrary caller-side predicate over
// logical records.
func (s *Store) Filter(ctx context.Context, collection string, keep func(Record) bool) ([]Record, error) {
	all, err := s.GetAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]Record, 0, len(all))
	for _, rec := range all {
		if keep(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}
