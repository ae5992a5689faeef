package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// CacheKey is an application-defined lookup path into the local cache, for
// example ["clients", 42, "documents"]. Segments are strings or numbers.
type CacheKey []any

// Key builds a CacheKey from its segments.
func Key(segments ...any) CacheKey {
	return CacheKey(segments)
}

// Valid reports whether the key has at least one segment and every segment
// is a string or a number.
func (k CacheKey) Valid() bool {
	if len(k) == 0 {
		return false
	}
	for _, seg := range k {
		switch seg.(type) {
		case string, json.Number,
			int, int8, int16, int32, int64,
			uint, uint8, uint16, uint32, uint64,
			float32, float64:
		default:
			return false
		}
	}
	return true
}

// String returns the canonical form of the key used to index the store.
// Two keys with the same segments always produce the same string, whether the
// numbers came from Go ints or from decoded JSON.
func (k CacheKey) String() string {
	parts := make([]string, 0, len(k))
	for _, seg := range k {
		switch v := seg.(type) {
		case string:
			b, _ := json.Marshal(v)
			parts = append(parts, string(b))
		case float64:
			parts = append(parts, formatFloat(v))
		case json.Number:
			parts = append(parts, v.String())
		default:
			parts = append(parts, fmt.Sprint(v))
		}
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// Path joins the key segments with "/" for use in REST resource paths.
func (k CacheKey) Path() string {
	parts := make([]string, 0, len(k))
	for _, seg := range k {
		switch v := seg.(type) {
		case float64:
			parts = append(parts, formatFloat(v))
		default:
			parts = append(parts, fmt.Sprint(v))
		}
	}
	return strings.Join(parts, "/")
}

func formatFloat(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprint(v)
}
