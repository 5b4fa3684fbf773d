package schema

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeForWriteFillsDefaults(t *testing.T) {
	reg := Default()

	rec, err := reg.NormalizeForWrite(Activities, map[string]any{
		"type": "meeting",
		"date": "2025-06-01T10:00:00Z",
	})
	require.NoError(t, err)

	assert.Equal(t, "meeting", rec["type"])
	assert.Equal(t, 0, rec["duration"], "default duration should be filled")
}

func TestNormalizeForWriteRejectsMissingRequired(t *testing.T) {
	reg := Default()

	_, err := reg.NormalizeForWrite(Activities, map[string]any{
		"date": "2025-06-01T10:00:00Z",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstraint))
}

func TestNormalizeForWriteRejectsEmptyRequired(t *testing.T) {
	reg := Default()

	_, err := reg.NormalizeForWrite(Activities, map[string]any{
		"type": "",
		"date": "2025-06-01T10:00:00Z",
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConstraint))
}

func TestNormalizeForWriteEncodesJSONFields(t *testing.T) {
	reg := Default()

	rec, err := reg.NormalizeForWrite(Users, map[string]any{
		"name": "Alice",
		"privacySettings": map[string]any{
			"shareSobrietyDate": true,
		},
	})
	require.NoError(t, err)

	encoded, ok := rec["privacySettings"].(string)
	require.True(t, ok, "JSON field should be encoded to a string")
	assert.JSONEq(t, `{"shareSobrietyDate": true}`, encoded)
}

func TestNormalizeForWriteDropsUndeclaredFields(t *testing.T) {
	reg := Default()

	rec, err := reg.NormalizeForWrite(Activities, map[string]any{
		"type":      "meeting",
		"date":      "2025-06-01T10:00:00Z",
		"legacyCol": "whatever",
	})
	require.NoError(t, err)
	_, present := rec["legacyCol"]
	assert.False(t, present)
}

func TestMaterializeForReadDecodesJSON(t *testing.T) {
	reg := Default()

	out := reg.MaterializeForRead(Users, map[string]any{
		"id":              "u1",
		"name":            "Alice",
		"privacySettings": `{"shareSobrietyDate":true,"allowMessages":false}`,
	})

	decoded, ok := out["privacySettings"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, decoded["shareSobrietyDate"])
	assert.Equal(t, false, decoded["allowMessages"])
}

func TestMaterializeForReadToleratesMalformedJSON(t *testing.T) {
	reg := Default()

	out := reg.MaterializeForRead(Users, map[string]any{
		"id":              "u1",
		"privacySettings": `{"broken`,
	})

	// A malformed stored value must never fail the read.
	assert.Nil(t, out["privacySettings"])
}

func TestMaterializeForReadPassesThroughStructuredValues(t *testing.T) {
	reg := Default()

	native := map[string]any{"shareActivities": true}
	out := reg.MaterializeForRead(Users, map[string]any{
		"id":              "u1",
		"privacySettings": native,
	})
	assert.Equal(t, native, out["privacySettings"])
}

func TestRoundTripThroughNormalizeAndMaterialize(t *testing.T) {
	reg := Default()

	original := map[string]any{
		"name":       "Bob",
		"homeGroups": []any{"Sunrise Group", "Downtown Noon"},
		"sponsor": map[string]any{
			"name":  "Jim",
			"phone": "555-0100",
		},
	}
	physical, err := reg.NormalizeForWrite(Users, original)
	require.NoError(t, err)
	logical := reg.MaterializeForRead(Users, physical)

	assert.Equal(t, original["homeGroups"], logical["homeGroups"])
	assert.Equal(t, original["sponsor"], logical["sponsor"])
}
