package query

import "github.com/VanshTheJudged/mcp-server/internal/store"

// DefaultSentinel is the placeholder substituted for missing field values
// when no sentinel is configured.
const DefaultSentinel = "N/A"

// Normalize returns a copy of rec in which every empty value is replaced by
// sentinel. Non-empty values pass through unchanged, which makes the
// operation idempotent. Normalization is applied only to records leaving the
// pipeline; filtering always sees raw values.
func Normalize(rec store.Record, sentinel string) store.Record {
	out := make(store.Record, len(rec))
	for k, v := range rec {
		if v == "" {
			out[k] = sentinel
			continue
		}
		out[k] = v
	}
	return out
}
