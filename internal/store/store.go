// Package store holds the company dataset that is loaded once at startup
// and served read-only for the remainder of the process lifetime.
package store

import (
	"fmt"
	"strings"
)

// Record is a single row of the dataset, keyed by field name. All values are
// strings as loaded from the tabular source; some fields hold numeric-looking
// strings.
type Record map[string]string

// Clone returns a shallow copy of the record.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Store is an immutable, ordered collection of records. It is built once by a
// DatasetProvider and never mutated afterwards, so it is safe for concurrent
// readers without locking.
type Store struct {
	fields    []string
	records   []Record
	nameField string
	byName    map[string]int
}

// New creates a Store from the given header fields and records. nameField
// designates the column used for lookup-by-name and must be present in
// fields.
func New(fields []string, records []Record, nameField string) (*Store, error) {
	if nameField == "" {
		return nil, fmt.Errorf("name field is required")
	}
	found := false
	for _, f := range fields {
		if f == nameField {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("name field %q not present in dataset header", nameField)
	}

	byName := make(map[string]int, len(records))
	for i, rec := range records {
		key := nameKey(rec[nameField])
		if key == "" {
			continue
		}
		// First occurrence wins for duplicate names.
		if _, ok := byName[key]; !ok {
			byName[key] = i
		}
	}

	return &Store{
		fields:    fields,
		records:   records,
		nameField: nameField,
		byName:    byName,
	}, nil
}

// Fields returns the dataset header fields in file order.
func (s *Store) Fields() []string {
	out := make([]string, len(s.fields))
	copy(out, s.fields)
	return out
}

// Records returns the records in file order. Callers must treat the returned
// slice and its records as read-only.
func (s *Store) Records() []Record {
	return s.records
}

// Len returns the number of records in the store.
func (s *Store) Len() int {
	return len(s.records)
}

// NameField returns the designated name field.
func (s *Store) NameField() string {
	return s.nameField
}

// FindByName looks up a record by its name field. The match is exact but
// case-insensitive and ignores leading/trailing whitespace.
func (s *Store) FindByName(name string) (Record, bool) {
	idx, ok := s.byName[nameKey(name)]
	if !ok {
		return nil, false
	}
	return s.records[idx], true
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
