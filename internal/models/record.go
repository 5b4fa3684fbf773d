package models

import "encoding/json"

// ToRecord converts a typed model into the loose map form the record store
// works with. The round-trip through encoding/json keeps the field names in
// sync with the json tags above.
func ToRecord(v any) (map[string]any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var rec map[string]any
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// FromRecord decodes a stored record back into a typed model. target must
// be a pointer.
func FromRecord(rec map[string]any, target any) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, target)
}
