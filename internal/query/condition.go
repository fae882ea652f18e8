// Package query implements the filter, sort, pagination and normalization
// pipeline shared by every protocol adapter.
package query

import (
	"strconv"
	"strings"

	"github.com/VanshTheJudged/mcp-server/internal/store"
)

// Filter operators accepted by the predicate evaluator. Every adapter speaks
// the same vocabulary.
const (
	OpEq       = "eq"
	OpContains = "contains"
	OpGt       = "gt"
	OpLt       = "lt"
)

// Condition is a single (field, operator, value) filter predicate.
type Condition struct {
	Field string `json:"field"`
	Op    string `json:"op"`
	Value string `json:"value"`
}

// Matches reports whether rec satisfies c.
//
// Degenerate inputs never fail the request:
//   - a malformed condition (empty field, op or value, or an unrecognized
//     operator) is skipped and evaluates to true;
//   - a condition referencing a field absent from rec is vacuously true;
//   - a non-numeric operand to gt/lt makes the condition a hard non-match.
func Matches(rec store.Record, c Condition) bool {
	if c.Field == "" || c.Op == "" || c.Value == "" {
		return true
	}

	raw, ok := rec[c.Field]
	if !ok {
		return true
	}

	switch c.Op {
	case OpEq:
		// Numeric-looking strings compare loosely ("500000" eq "500000.0"),
		// everything else is case-sensitive string equality.
		if a, errA := strconv.ParseFloat(raw, 64); errA == nil {
			if b, errB := strconv.ParseFloat(c.Value, 64); errB == nil {
				return a == b
			}
		}
		return raw == c.Value
	case OpContains:
		if raw == "" {
			return false
		}
		return strings.Contains(strings.ToLower(raw), strings.ToLower(c.Value))
	case OpGt:
		a, b, ok := parsePair(raw, c.Value)
		return ok && a > b
	case OpLt:
		a, b, ok := parsePair(raw, c.Value)
		return ok && a < b
	default:
		// Unrecognized operator: skip the condition.
		return true
	}
}

// MatchesAll reports whether rec satisfies every condition in filters
// (logical AND, short-circuiting).
func MatchesAll(rec store.Record, filters []Condition) bool {
	for _, c := range filters {
		if !Matches(rec, c) {
			return false
		}
	}
	return true
}

func parsePair(a, b string) (float64, float64, bool) {
	fa, err := strconv.ParseFloat(a, 64)
	if err != nil {
		return 0, 0, false
	}
	fb, err := strconv.ParseFloat(b, 64)
	if err != nil {
		return 0, 0, false
	}
	return fa, fb, true
}

// ConditionsFromAny converts a decoded JSON array of filter objects into
// conditions. Entries that are not objects or carry non-string members are
// dropped; malformed conditions that survive are later skipped by Matches.
// This is the lenient decoder shared by the tool-call adapters, which receive
// arguments as untyped JSON.
func ConditionsFromAny(raw any) []Condition {
	items, ok := raw.([]any)
	if !ok {
		return nil
	}

	conditions := make([]Condition, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		conditions = append(conditions, Condition{
			Field: stringValue(obj["field"]),
			Op:    stringValue(obj["op"]),
			Value: stringValue(obj["value"]),
		})
	}
	return conditions
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}
