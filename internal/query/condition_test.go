package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/VanshTheJudged/mcp-server/internal/store"
)

func TestMatches(t *testing.T) {
	t.Parallel()

	rec := store.Record{
		"name":      "Acme Corporation",
		"industry":  "Manufacturing",
		"employees": "3400",
		"revenue":   "870000000",
		"website":   "",
	}

	tests := []struct {
		name      string
		condition Condition
		want      bool
	}{
		{
			name:      "eq string match is case sensitive",
			condition: Condition{Field: "industry", Op: "eq", Value: "Manufacturing"},
			want:      true,
		},
		{
			name:      "eq string mismatch on case",
			condition: Condition{Field: "industry", Op: "eq", Value: "manufacturing"},
			want:      false,
		},
		{
			name:      "eq numeric compares loosely",
			condition: Condition{Field: "employees", Op: "eq", Value: "3400.0"},
			want:      true,
		},
		{
			name:      "eq numeric mismatch",
			condition: Condition{Field: "employees", Op: "eq", Value: "3500"},
			want:      false,
		},
		{
			name:      "contains is case insensitive",
			condition: Condition{Field: "name", Op: "contains", Value: "acme"},
			want:      true,
		},
		{
			name:      "contains no substring",
			condition: Condition{Field: "name", Op: "contains", Value: "globex"},
			want:      false,
		},
		{
			name:      "contains against empty value never matches",
			condition: Condition{Field: "website", Op: "contains", Value: "http"},
			want:      false,
		},
		{
			name:      "gt numeric",
			condition: Condition{Field: "employees", Op: "gt", Value: "1000"},
			want:      true,
		},
		{
			name:      "gt equal values is not greater",
			condition: Condition{Field: "employees", Op: "gt", Value: "3400"},
			want:      false,
		},
		{
			name:      "lt numeric",
			condition: Condition{Field: "employees", Op: "lt", Value: "5000"},
			want:      true,
		},
		{
			name:      "gt with non-numeric record value never matches",
			condition: Condition{Field: "industry", Op: "gt", Value: "100"},
			want:      false,
		},
		{
			name:      "lt with non-numeric operand never matches",
			condition: Condition{Field: "employees", Op: "lt", Value: "many"},
			want:      false,
		},
		{
			name:      "absent field is vacuously true",
			condition: Condition{Field: "country", Op: "eq", Value: "France"},
			want:      true,
		},
		{
			name:      "empty field is skipped",
			condition: Condition{Field: "", Op: "eq", Value: "x"},
			want:      true,
		},
		{
			name:      "empty op is skipped",
			condition: Condition{Field: "name", Op: "", Value: "x"},
			want:      true,
		},
		{
			name:      "empty value is skipped",
			condition: Condition{Field: "name", Op: "eq", Value: ""},
			want:      true,
		},
		{
			name:      "unknown operator is skipped",
			condition: Condition{Field: "name", Op: "matches", Value: "Acme"},
			want:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Matches(rec, tt.condition))
		})
	}
}

func TestMatchesAll(t *testing.T) {
	t.Parallel()

	rec := store.Record{"industry": "software", "employees": "450"}

	assert.True(t, MatchesAll(rec, nil), "no filters matches everything")
	assert.True(t, MatchesAll(rec, []Condition{
		{Field: "industry", Op: "eq", Value: "software"},
		{Field: "employees", Op: "gt", Value: "100"},
	}))
	assert.False(t, MatchesAll(rec, []Condition{
		{Field: "industry", Op: "eq", Value: "software"},
		{Field: "employees", Op: "gt", Value: "1000"},
	}), "all conditions must hold")
}

func TestConditionsFromAny(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  any
		want []Condition
	}{
		{
			name: "nil input",
			raw:  nil,
			want: nil,
		},
		{
			name: "not an array",
			raw:  map[string]any{"field": "name"},
			want: nil,
		},
		{
			name: "valid conditions",
			raw: []any{
				map[string]any{"field": "industry", "op": "eq", "value": "retail"},
				map[string]any{"field": "employees", "op": "gt", "value": "100"},
			},
			want: []Condition{
				{Field: "industry", Op: "eq", Value: "retail"},
				{Field: "employees", Op: "gt", Value: "100"},
			},
		},
		{
			name: "non-object entries are dropped",
			raw: []any{
				"not an object",
				map[string]any{"field": "industry", "op": "eq", "value": "retail"},
			},
			want: []Condition{
				{Field: "industry", Op: "eq", Value: "retail"},
			},
		},
		{
			name: "non-string members become empty",
			raw: []any{
				map[string]any{"field": "employees", "op": "gt", "value": 100},
			},
			want: []Condition{
				{Field: "employees", Op: "gt", Value: ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ConditionsFromAny(tt.raw))
		})
	}
}
