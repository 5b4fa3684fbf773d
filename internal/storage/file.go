package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/soberlog/soberlog/internal/schema"
)

// FileBackend keeps every collection in memory as an ordered slice of
// records and persists the whole dataset as a single JSON document. With
// an empty path it degrades to a pure in-memory store, which is the
// fallback of last resort and what most tests run against.
type FileBackend struct {
	path string
	mu   sync.RWMutex
	data map[string][]Record
}

// NewFileBackend opens the flat store, loading an existing data file when
// present. path may be empty for memory-only operation.
func NewFileBackend(path string) (*FileBackend, error) {
	b := &FileBackend{
		path: path,
		data: make(map[string][]Record),
	}
	if path == "" {
		logrus.Info("Flat backend running in memory only")
		return b, nil
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logrus.WithField("path", path).Info("Flat backend starting with empty dataset")
			return b, nil
		}
		return nil, fmt.Errorf("read data file: %w", err)
	}
	if err := json.Unmarshal(raw, &b.data); err != nil {
		return nil, fmt.Errorf("parse data file: %w", err)
	}
	logrus.WithField("path", path).Info("Flat backend loaded")
	return b, nil
}

func (b *FileBackend) Name() string { return "file" }

// Init makes sure every registered collection has a slot.
func (b *FileBackend) Init(reg *schema.Registry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, name := range reg.Names() {
		if _, ok := b.data[name]; !ok {
			b.data[name] = []Record{}
		}
	}
	return nil
}

// save writes the dataset atomically: temp file then rename. Callers hold
// the write lock.
func (b *FileBackend) save() error {
	if b.path == "" {
		return nil
	}
	raw, err := json.Marshal(b.data)
	if err != nil {
		return fmt.Errorf("encode dataset: %w", err)
	}
	tmp := b.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := os.Rename(tmp, b.path); err != nil {
		return fmt.Errorf("replace dataset: %w", err)
	}
	return nil
}

func copyRecord(rec Record) Record {
	out := make(Record, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}

func (b *FileBackend) GetAll(_ context.Context, collection string) ([]Record, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	records := b.data[collection]
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		out = append(out, copyRecord(rec))
	}
	return out, nil
}

func (b *FileBackend) GetByID(_ context.Context, collection, id string) (Record, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, rec := range b.data[collection] {
		if recID, _ := rec["id"].(string); recID == id {
			return copyRecord(rec), nil
		}
	}
	return nil, nil
}

func (b *FileBackend) Insert(_ context.Context, collection string, rec Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[collection] = append(b.data[collection], copyRecord(rec))
	return b.save()
}

func (b *FileBackend) Update(_ context.Context, collection, id string, rec Record) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	records := b.data[collection]
	for i, existing := range records {
		if recID, _ := existing["id"].(string); recID == id {
			records[i] = copyRecord(rec)
			return b.save()
		}
	}
	return nil
}

func (b *FileBackend) Delete(_ context.Context, collection, id string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	records := b.data[collection]
	for i, existing := range records {
		if recID, _ := existing["id"].(string); recID == id {
			b.data[collection] = append(records[:i], records[i+1:]...)
			return true, b.save()
		}
	}
	return false, nil
}

// Select filters, sorts and slices in memory. Every predicate is
// expressible here, so translation errors never occur on this backend.
func (b *FileBackend) Select(ctx context.Context, q Query) ([]Record, error) {
	all, err := b.GetAll(ctx, q.Collection)
	if err != nil {
		return nil, err
	}
	return applyQuery(all, q), nil
}

func (b *FileBackend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.save()
}
