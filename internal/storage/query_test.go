package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soberlog/soberlog/internal/schema"
)

func seedActivities(t *testing.T, store *Store) {
	t.Helper()
	ctx := context.Background()
	rows := []Record{
		{"id": "a1", "userId": "u1", "type": "meeting", "date": "2025-06-03T09:00:00Z", "duration": 60},
		{"id": "a2", "userId": "u1", "type": "prayer", "date": "2025-06-01T08:00:00Z", "duration": 15},
		{"id": "a3", "userId": "u2", "type": "meeting", "date": "2025-06-02T19:00:00Z", "duration": 60},
		{"id": "a4", "userId": "u1", "type": "reading", "date": "2025-06-02T19:00:00Z", "duration": 30},
	}
	for _, row := range rows {
		_, err := store.Add(ctx, schema.Activities, row)
		require.NoError(t, err)
	}
}

func ids(recs []Record) []string {
	out := make([]string, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec["id"].(string))
	}
	return out
}

func TestQueryEqualityPredicate(t *testing.T) {
	store := newTestStore(t)
	seedActivities(t, store)

	recs, err := store.Query(context.Background(), Query{
		Collection: schema.Activities,
		Eq:         map[string]any{"userId": "u1"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a2", "a4"}, ids(recs))
}

func TestQueryOrderingAscendingAndDescending(t *testing.T) {
	store := newTestStore(t)
	seedActivities(t, store)
	ctx := context.Background()

	asc, err := store.Query(ctx, Query{Collection: schema.Activities, OrderBy: "date"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a2", "a3", "a4", "a1"}, ids(asc))

	desc, err := store.Query(ctx, Query{Collection: schema.Activities, OrderBy: "date", Desc: true})
	require.NoError(t, err)
	assert.Equal(t, "a1", desc[0]["id"])
}

func TestQueryOrderingIsStable(t *testing.T) {
	store := newTestStore(t)
	seedActivities(t, store)

	// a3 and a4 share a date; insertion order must be preserved between
	// them.
	recs, err := store.Query(context.Background(), Query{
		Collection: schema.Activities,
		OrderBy:    "date",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a2", "a3", "a4", "a1"}, ids(recs))
}

func TestQueryLimit(t *testing.T) {
	store := newTestStore(t)
	seedActivities(t, store)

	// a3 and a4 tie on date; descending order keeps their insertion order,
	// so a3 takes the second slot.
	recs, err := store.Query(context.Background(), Query{
		Collection: schema.Activities,
		OrderBy:    "date",
		Desc:       true,
		Limit:      2,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a1", "a3"}, ids(recs))
}

func TestQueryNumericEqualityIgnoresGoNumericType(t *testing.T) {
	store := newTestStore(t)
	seedActivities(t, store)

	// Stored durations may be int or float64 depending on whether the
	// dataset went through JSON; both must match an int predicate.
	recs, err := store.Query(context.Background(), Query{
		Collection: schema.Activities,
		Eq:         map[string]any{"duration": 60},
	})
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestQueryUnknownCollectionIsEmpty(t *testing.T) {
	store := newTestStore(t)

	recs, err := store.Query(context.Background(), Query{Collection: "ghosts"})
	require.NoError(t, err)
	assert.Empty(t, recs)
}

func TestCompareValuesNilSortsFirst(t *testing.T) {
	assert.Equal(t, -1, compareValues(nil, "x"))
	assert.Equal(t, 1, compareValues("x", nil))
	assert.Equal(t, 0, compareValues(nil, nil))
}

func TestApplyQueryDoesNotMutateInput(t *testing.T) {
	records := []Record{
		{"id": "b", "n": 2},
		{"id": "a", "n": 1},
	}
	_ = applyQuery(records, Query{OrderBy: "n"})
	assert.Equal(t, "b", records[0]["id"], "input slice order must be untouched")
}
