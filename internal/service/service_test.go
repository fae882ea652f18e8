package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VanshTheJudged/mcp-server/internal/query"
	"github.com/VanshTheJudged/mcp-server/internal/store"
)

// stubProvider implements store.DatasetProvider with canned data.
type stubProvider struct {
	st  *store.Store
	err error
}

func (p *stubProvider) GetDataset(_ context.Context) (*store.Store, error) {
	return p.st, p.err
}

func (*stubProvider) GetSource() string {
	return "stub:test"
}

func newStubProvider(t *testing.T) *stubProvider {
	t.Helper()

	st, err := store.New(
		[]string{"name", "industry", "employees", "website"},
		[]store.Record{
			{"name": "Acme Corporation", "industry": "manufacturing", "employees": "3400", "website": ""},
			{"name": "Globex", "industry": "energy", "employees": "12000", "website": "https://globex.example"},
			{"name": "Initech", "industry": "software", "employees": "450", "website": ""},
		},
		"name",
	)
	require.NoError(t, err)
	return &stubProvider{st: st}
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("nil provider", func(t *testing.T) {
		t.Parallel()
		_, err := New(context.Background(), nil, nil)
		assert.Error(t, err)
	})

	t.Run("load failure is returned", func(t *testing.T) {
		t.Parallel()
		provider := &stubProvider{err: errors.New("disk on fire")}
		_, err := New(context.Background(), provider, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to load dataset")
	})

	t.Run("nil pipeline falls back to defaults", func(t *testing.T) {
		t.Parallel()
		svc, err := New(context.Background(), newStubProvider(t), nil)
		require.NoError(t, err)
		require.NoError(t, svc.CheckReadiness(context.Background()))
	})
}

func TestSearchCompanies(t *testing.T) {
	t.Parallel()

	svc, err := New(context.Background(), newStubProvider(t), query.NewPipeline(10, 50, "N/A"))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("no options returns everything", func(t *testing.T) {
		t.Parallel()
		page, err := svc.SearchCompanies(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		assert.Equal(t, 3, page.Showing)
	})

	t.Run("filters and sort", func(t *testing.T) {
		t.Parallel()
		page, err := svc.SearchCompanies(ctx,
			WithFilters([]query.Condition{{Field: "employees", Op: "gt", Value: "400"}}),
			WithSort("employees", "desc"),
		)
		require.NoError(t, err)
		require.Equal(t, 3, page.Total)
		assert.Equal(t, "Globex", page.Results[0]["name"])
		assert.Equal(t, "Initech", page.Results[2]["name"])
	})

	t.Run("pagination", func(t *testing.T) {
		t.Parallel()
		page, err := svc.SearchCompanies(ctx, WithLimit(1), WithOffset(1))
		require.NoError(t, err)
		assert.Equal(t, 3, page.Total)
		assert.Equal(t, 1, page.Showing)
		assert.Equal(t, 1, page.Offset)
	})

	t.Run("empty values are normalized", func(t *testing.T) {
		t.Parallel()
		page, err := svc.SearchCompanies(ctx,
			WithFilters([]query.Condition{{Field: "name", Op: "eq", Value: "Initech"}}),
		)
		require.NoError(t, err)
		require.Equal(t, 1, page.Showing)
		assert.Equal(t, "N/A", page.Results[0]["website"])
	})

	t.Run("invalid options are rejected", func(t *testing.T) {
		t.Parallel()
		_, err := svc.SearchCompanies(ctx, WithLimit(0))
		assert.Error(t, err)

		_, err = svc.SearchCompanies(ctx, WithOffset(-1))
		assert.Error(t, err)

		_, err = svc.SearchCompanies(ctx, WithSort("", "asc"))
		assert.Error(t, err)
	})
}

func TestGetCompany(t *testing.T) {
	t.Parallel()

	svc, err := New(context.Background(), newStubProvider(t), nil)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("case-insensitive lookup", func(t *testing.T) {
		t.Parallel()
		rec, err := svc.GetCompany(ctx, "  acme corporation ")
		require.NoError(t, err)
		assert.Equal(t, "Acme Corporation", rec["name"])
	})

	t.Run("record is normalized", func(t *testing.T) {
		t.Parallel()
		rec, err := svc.GetCompany(ctx, "Initech")
		require.NoError(t, err)
		assert.Equal(t, "N/A", rec["website"])
	})

	t.Run("unknown name", func(t *testing.T) {
		t.Parallel()
		_, err := svc.GetCompany(ctx, "Umbrella")
		assert.ErrorIs(t, err, ErrCompanyNotFound)
	})
}

func TestListFields(t *testing.T) {
	t.Parallel()

	svc, err := New(context.Background(), newStubProvider(t), nil)
	require.NoError(t, err)

	fields, err := svc.ListFields(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "industry", "employees", "website"}, fields)
}

func TestDatasetInfo(t *testing.T) {
	t.Parallel()

	svc, err := New(context.Background(), newStubProvider(t), nil)
	require.NoError(t, err)

	info, err := svc.DatasetInfo(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "stub:test", info.Source)
	assert.Equal(t, 3, info.TotalCompanies)
	assert.Equal(t, 4, info.FieldCount)
	assert.False(t, info.LoadedAt.IsZero())
}
