package store

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strings"
)

// DatasetProvider abstracts the source of the company dataset. It enables
// testing with canned data and keeps the service layer independent of the
// file format.
type DatasetProvider interface {
	// GetDataset loads the full dataset. An error here is fatal at startup:
	// the server refuses to serve without data.
	GetDataset(ctx context.Context) (*Store, error)

	// GetSource returns a descriptive string about where the dataset comes
	// from, e.g. "file:/data/companies.csv".
	GetSource() string
}

// FileDatasetProvider implements DatasetProvider by reading a delimited file
// from the local filesystem. The first row is the header.
type FileDatasetProvider struct {
	path      string
	delimiter rune
	nameField string
}

var _ DatasetProvider = (*FileDatasetProvider)(nil)

// NewFileDatasetProvider creates a provider reading the delimited file at
// path. delimiter is the field separator (',' for CSV) and nameField the
// column used for lookup-by-name.
func NewFileDatasetProvider(path string, delimiter rune, nameField string) *FileDatasetProvider {
	return &FileDatasetProvider{
		path:      path,
		delimiter: delimiter,
		nameField: nameField,
	}
}

// GetDataset implements DatasetProvider.GetDataset.
func (p *FileDatasetProvider) GetDataset(_ context.Context) (*Store, error) {
	f, err := os.Open(p.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("dataset file not found: %s", p.path)
		}
		return nil, fmt.Errorf("failed to open dataset file %s: %w", p.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = p.delimiter
	// Rows may have fewer cells than the header when trailing fields are
	// empty; tolerate ragged rows and map what is there.
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset file %s: %w", p.path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset file %s is empty: header row is required", p.path)
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, field := range header {
			if i < len(row) {
				rec[field] = row[i]
			}
		}
		records = append(records, rec)
	}

	return New(header, records, p.nameField)
}

// GetSource implements DatasetProvider.GetSource.
func (p *FileDatasetProvider) GetSource() string {
	return fmt.Sprintf("file:%s", p.path)
}
