package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Parallel()

	fields := []string{"name", "industry"}
	records := []Record{
		{"name": "Acme", "industry": "manufacturing"},
		{"name": "Globex", "industry": "energy"},
	}

	t.Run("valid store", func(t *testing.T) {
		t.Parallel()
		st, err := New(fields, records, "name")
		require.NoError(t, err)
		assert.Equal(t, 2, st.Len())
		assert.Equal(t, "name", st.NameField())
		assert.Equal(t, fields, st.Fields())
	})

	t.Run("empty name field", func(t *testing.T) {
		t.Parallel()
		_, err := New(fields, records, "")
		assert.Error(t, err)
	})

	t.Run("name field not in header", func(t *testing.T) {
		t.Parallel()
		_, err := New(fields, records, "company")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not present")
	})
}

func TestFindByName(t *testing.T) {
	t.Parallel()

	st, err := New([]string{"name"}, []Record{
		{"name": "Acme Corporation"},
		{"name": "Globex"},
		{"name": "globex"}, // duplicate under case folding
		{"name": ""},
	}, "name")
	require.NoError(t, err)

	tests := []struct {
		name      string
		lookup    string
		wantName  string
		wantFound bool
	}{
		{"exact match", "Acme Corporation", "Acme Corporation", true},
		{"case insensitive", "acme corporation", "Acme Corporation", true},
		{"surrounding whitespace ignored", "  Globex  ", "Globex", true},
		{"duplicate resolves to first occurrence", "GLOBEX", "Globex", true},
		{"unknown name", "Initech", "", false},
		{"empty name", "", "", false},
		{"whitespace only", "   ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, found := st.FindByName(tt.lookup)
			assert.Equal(t, tt.wantFound, found)
			if tt.wantFound {
				assert.Equal(t, tt.wantName, rec["name"])
			}
		})
	}
}

func TestFieldsReturnsCopy(t *testing.T) {
	t.Parallel()

	st, err := New([]string{"name", "industry"}, nil, "name")
	require.NoError(t, err)

	fields := st.Fields()
	fields[0] = "mutated"
	assert.Equal(t, []string{"name", "industry"}, st.Fields())
}

func TestRecordClone(t *testing.T) {
	t.Parallel()

	rec := Record{"name": "Acme"}
	clone := rec.Clone()
	clone["name"] = "Globex"
	assert.Equal(t, "Acme", rec["name"])
}
