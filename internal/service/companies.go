package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/VanshTheJudged/mcp-server/internal/query"
	"github.com/VanshTheJudged/mcp-server/internal/store"
)

// companySvc implements the CompanyService interface against an immutable
// dataset snapshot loaded once at construction.
type companySvc struct {
	provider store.DatasetProvider
	pipeline *query.Pipeline

	data     *store.Store
	loadedAt time.Time
}

var _ CompanyService = (*companySvc)(nil)

// New creates a CompanyService backed by provider. The dataset is loaded
// eagerly; a load failure is returned to the caller so the process can
// refuse to start serving.
func New(ctx context.Context, provider store.DatasetProvider, pipeline *query.Pipeline) (CompanyService, error) {
	if provider == nil {
		return nil, fmt.Errorf("dataset provider is required")
	}
	if pipeline == nil {
		pipeline = query.NewPipeline(0, 0, "")
	}

	data, err := provider.GetDataset(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}

	slog.InfoContext(ctx, "Loaded company dataset",
		"source", provider.GetSource(),
		"companies", data.Len(),
		"fields", len(data.Fields()))

	return &companySvc{
		provider: provider,
		pipeline: pipeline,
		data:     data,
		loadedAt: time.Now(),
	}, nil
}

// CheckReadiness implements CompanyService.CheckReadiness.
func (s *companySvc) CheckReadiness(_ context.Context) error {
	if s.data == nil {
		return ErrNotReady
	}
	return nil
}

// DatasetInfo implements CompanyService.DatasetInfo.
func (s *companySvc) DatasetInfo(_ context.Context) (*DatasetInfo, error) {
	if s.data == nil {
		return nil, ErrNotReady
	}
	return &DatasetInfo{
		Source:         s.provider.GetSource(),
		TotalCompanies: s.data.Len(),
		FieldCount:     len(s.data.Fields()),
		LoadedAt:       s.loadedAt,
	}, nil
}

// SearchCompanies implements CompanyService.SearchCompanies.
func (s *companySvc) SearchCompanies(_ context.Context, opts ...SearchOption) (*query.Page, error) {
	options := &SearchOptions{}
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	if s.data == nil {
		return nil, ErrNotReady
	}

	return s.pipeline.Run(s.data, query.Params{
		Filters: options.Filters,
		Sort:    options.Sort,
		Limit:   options.Limit,
		Offset:  options.Offset,
	}), nil
}

// GetCompany implements CompanyService.GetCompany.
func (s *companySvc) GetCompany(_ context.Context, name string) (store.Record, error) {
	if s.data == nil {
		return nil, ErrNotReady
	}

	rec, ok := s.data.FindByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCompanyNotFound, name)
	}

	return query.Normalize(rec, s.pipeline.Sentinel()), nil
}

// ListFields implements CompanyService.ListFields.
func (s *companySvc) ListFields(_ context.Context) ([]string, error) {
	if s.data == nil {
		return nil, ErrNotReady
	}
	return s.data.Fields(), nil
}
