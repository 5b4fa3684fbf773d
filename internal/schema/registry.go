package schema

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrConstraint is returned when a required field is missing or empty on
// write. Callers detect it with errors.Is.
var ErrConstraint = errors.New("constraint violation")

// Kind classifies how a field is physically stored.
type Kind string

const (
	KindText    Kind = "text"
	KindInteger Kind = "integer"
	KindReal    Kind = "real"
	KindBoolean Kind = "boolean"
	KindJSON    Kind = "json" // serialized object/array, stored as text
)

// Field declares one column of a collection.
type Field struct {
	Name     string
	Kind     Kind
	Default  any
	Required bool
}

// Collection declares the field set of one named collection. The standard
// id/createdAt/updatedAt fields are implicit and managed by the store.
type Collection struct {
	Name   string
	Fields []Field
}

// Field looks up a declared field by name.
func (c *Collection) Field(name string) (Field, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Registry maps collection names to their declared schemas.
type Registry struct {
	collections map[string]*Collection
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{collections: make(map[string]*Collection)}
}

// Register adds or replaces a collection schema.
func (r *Registry) Register(c Collection) {
	cc := c
	r.collections[c.Name] = &cc
}

// Collection returns the schema for a named collection.
func (r *Registry) Collection(name string) (*Collection, bool) {
	c, ok := r.collections[name]
	return c, ok
}

// Names returns every registered collection name.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.collections))
	for name := range r.collections {
		names = append(names, name)
	}
	return names
}

// standard fields every collection carries, managed by the store.
var standardFields = map[string]bool{"id": true, "createdAt": true, "updatedAt": true}

// NormalizeForWrite produces the physical form of a record: defaults are
// filled in, required fields are validated, JSON-kind fields are encoded to
// strings, and fields the schema does not declare are dropped.
func (r *Registry) NormalizeForWrite(collection string, rec map[string]any) (map[string]any, error) {
	c, ok := r.collections[collection]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", collection)
	}

	out := make(map[string]any, len(c.Fields)+3)
	for name, value := range rec {
		if standardFields[name] {
			out[name] = value
			continue
		}
		if _, declared := c.Field(name); !declared {
			logrus.WithFields(logrus.Fields{
				"collection": collection,
				"field":      name,
			}).Debug("Dropping undeclared field on write")
		}
	}

	for _, f := range c.Fields {
		value, present := rec[f.Name]
		if !present || value == nil {
			if f.Required {
				return nil, fmt.Errorf("%w: %s.%s must be set", ErrConstraint, collection, f.Name)
			}
			if f.Default != nil {
				value = f.Default
			} else {
				continue
			}
		}
		if f.Required {
			if s, isStr := value.(string); isStr && s == "" {
				return nil, fmt.Errorf("%w: %s.%s must not be empty", ErrConstraint, collection, f.Name)
			}
		}
		if f.Kind == KindJSON {
			encoded, err := encodeJSONField(value)
			if err != nil {
				return nil, fmt.Errorf("encoding %s.%s: %w", collection, f.Name, err)
			}
			out[f.Name] = encoded
			continue
		}
		out[f.Name] = value
	}

	return out, nil
}

// MaterializeForRead decodes a physical record back into its logical form.
// Malformed or absent JSON never fails a read: the field's default (or nil)
// is substituted instead.
func (r *Registry) MaterializeForRead(collection string, rec map[string]any) map[string]any {
	c, ok := r.collections[collection]
	if !ok {
		return rec
	}

	out := make(map[string]any, len(rec))
	for name, value := range rec {
		out[name] = value
	}

	for _, f := range c.Fields {
		if f.Kind != KindJSON {
			continue
		}
		value, present := out[f.Name]
		if !present || value == nil {
			if f.Default != nil {
				out[f.Name] = f.Default
			}
			continue
		}
		s, isStr := value.(string)
		if !isStr {
			// Already structured (e.g. written before encoding existed).
			continue
		}
		var decoded any
		if err := json.Unmarshal([]byte(s), &decoded); err != nil {
			logrus.WithFields(logrus.Fields{
				"collection": collection,
				"field":      f.Name,
			}).WithError(err).Warn("Malformed stored JSON, substituting default")
			if f.Default != nil {
				out[f.Name] = f.Default
			} else {
				out[f.Name] = nil
			}
			continue
		}
		out[f.Name] = decoded
	}

	return out
}

func encodeJSONField(value any) (string, error) {
	if s, ok := value.(string); ok {
		// Tolerate callers that pre-encoded the field themselves.
		if json.Valid([]byte(s)) {
			return s, nil
		}
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
