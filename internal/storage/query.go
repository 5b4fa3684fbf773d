package storage

import (
	"sort"
	"strings"
)

// Query is the structured query contract shared by every backend:
// equality predicates, one ordering field and an optional limit. The
// relational backend translates it to a parameterized statement; the flat
// backend filters in memory. Results are identical either way.
type Query struct {
	Collection string
	Eq         map[string]any
	OrderBy    string
	Desc       bool
	Limit      int
}

// applyQuery is the reference, in-memory execution of a Query. Sorting is
// stable: records equal on the sort key keep their relative input order.
func applyQuery(records []Record, q Query) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if matchesEq(rec, q.Eq) {
			out = append(out, rec)
		}
	}

	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			c := compareValues(out[i][q.OrderBy], out[j][q.OrderBy])
			if q.Desc {
				return c > 0
			}
			return c < 0
		})
	}

	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func matchesEq(rec Record, eq map[string]any) bool {
	for field, want := range eq {
		if !valuesEqual(rec[field], want) {
			return false
		}
	}
	return true
}

// valuesEqual compares loosely-typed record values. Numbers compare by
// value regardless of Go type, since JSON decoding produces float64 while
// callers pass ints.
func valuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if af, aok := asFloat(a); aok {
		bf, bok := asFloat(b)
		return bok && af == bf
	}
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	}
	return a == b
}

// compareValues orders two record values. ISO-8601 timestamp strings
// compare correctly as plain strings; numbers compare numerically. nil
// sorts first.
func compareValues(a, b any) int {
	if a == nil || b == nil {
		switch {
		case a == nil && b == nil:
			return 0
		case a == nil:
			return -1
		default:
			return 1
		}
	}
	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return strings.Compare(as, bs)
	}
	if ab, aok := a.(bool); aok {
		if bb, bok := b.(bool); bok {
			switch {
			case ab == bb:
				return 0
			case !ab:
				return -1
			default:
				return 1
			}
		}
	}
	return 0
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
