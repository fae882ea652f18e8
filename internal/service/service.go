// Package service provides the business logic for the company directory API.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/VanshTheJudged/mcp-server/internal/query"
	"github.com/VanshTheJudged/mcp-server/internal/store"
)

var (
	// ErrCompanyNotFound is returned when no record matches a lookup name.
	ErrCompanyNotFound = errors.New("company not found")
	// ErrNotReady is returned while the dataset snapshot is not loaded.
	ErrNotReady = errors.New("dataset not loaded")
)

//go:generate mockgen -destination=mocks/mock_service.go -package=mocks -source=service.go CompanyService

// CompanyService defines the interface every protocol adapter calls into.
// All operations are read-only against the startup snapshot.
type CompanyService interface {
	// CheckReadiness checks if the service is ready to serve requests.
	CheckReadiness(ctx context.Context) error

	// DatasetInfo returns metadata about the loaded dataset.
	DatasetInfo(ctx context.Context) (*DatasetInfo, error)

	// SearchCompanies runs the query pipeline and returns a result page.
	SearchCompanies(ctx context.Context, opts ...SearchOption) (*query.Page, error)

	// GetCompany returns the normalized record whose name field matches name
	// (case-insensitive, whitespace-trimmed), or ErrCompanyNotFound.
	GetCompany(ctx context.Context, name string) (store.Record, error)

	// ListFields returns the dataset's column names in file order.
	ListFields(ctx context.Context) ([]string, error)
}

// DatasetInfo describes the loaded snapshot.
type DatasetInfo struct {
	Source         string    `json:"source"`
	TotalCompanies int       `json:"total_companies"`
	FieldCount     int       `json:"field_count"`
	LoadedAt       time.Time `json:"loaded_at"`
}

// SearchOptions is the options for the SearchCompanies operation.
type SearchOptions struct {
	Filters []query.Condition
	Sort    *query.Sort
	Limit   int
	Offset  int
}

// SearchOption is a function that sets an option for SearchCompanies.
type SearchOption func(*SearchOptions) error

// WithFilters sets the filter conditions for the SearchCompanies operation.
// Malformed conditions are tolerated downstream by the evaluator.
func WithFilters(filters []query.Condition) SearchOption {
	return func(o *SearchOptions) error {
		o.Filters = filters
		return nil
	}
}

// WithSort sets the sort spec for the SearchCompanies operation.
func WithSort(field, dir string) SearchOption {
	return func(o *SearchOptions) error {
		if field == "" {
			return fmt.Errorf("invalid sort field: %q", field)
		}
		o.Sort = &query.Sort{Field: field, Dir: dir}
		return nil
	}
}

// WithLimit sets the page size for the SearchCompanies operation.
func WithLimit(limit int) SearchOption {
	return func(o *SearchOptions) error {
		if limit <= 0 {
			return fmt.Errorf("invalid limit: %d", limit)
		}
		o.Limit = limit
		return nil
	}
}

// WithOffset sets the page offset for the SearchCompanies operation.
func WithOffset(offset int) SearchOption {
	return func(o *SearchOptions) error {
		if offset < 0 {
			return fmt.Errorf("invalid offset: %d", offset)
		}
		o.Offset = offset
		return nil
	}
}
