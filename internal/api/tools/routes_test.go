package tools

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/VanshTheJudged/mcp-server/internal/query"
	"github.com/VanshTheJudged/mcp-server/internal/service"
	"github.com/VanshTheJudged/mcp-server/internal/service/mocks"
	"github.com/VanshTheJudged/mcp-server/internal/store"
)

func TestListTools(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockSvc := mocks.NewMockCompanyService(ctrl)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	Router(mockSvc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Tools []Tool `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Tools, 4)

	names := make([]string, 0, len(got.Tools))
	for _, tool := range got.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
		assert.Equal(t, "object", tool.InputSchema["type"])
	}
	assert.Equal(t, []string{"search_companies", "get_company", "list_fields", "dataset_info"}, names)
}

func callTool(t *testing.T, svc service.CompanyService, body string) (*httptest.ResponseRecorder, CallResult) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/call", strings.NewReader(body))
	rec := httptest.NewRecorder()
	Router(svc).ServeHTTP(rec, req)

	var result CallResult
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	}
	return rec, result
}

func TestCallTool(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	t.Run("search_companies", func(t *testing.T) {
		t.Parallel()
		mockSvc := mocks.NewMockCompanyService(ctrl)
		page := &query.Page{
			Total:   1,
			Showing: 1,
			Results: []store.Record{{"name": "Initech"}},
		}
		mockSvc.EXPECT().SearchCompanies(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(page, nil)

		rec, result := callTool(t, mockSvc, `{
			"name": "search_companies",
			"arguments": {
				"filters": [{"field": "industry", "op": "eq", "value": "software"}],
				"limit": 5
			}
		}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, result.IsError)
		require.Len(t, result.Content, 1)
		assert.Equal(t, "text", result.Content[0].Type)
		assert.Contains(t, result.Content[0].Text, "Initech")
	})

	t.Run("get_company", func(t *testing.T) {
		t.Parallel()
		mockSvc := mocks.NewMockCompanyService(ctrl)
		mockSvc.EXPECT().GetCompany(gomock.Any(), "Acme").
			Return(store.Record{"name": "Acme"}, nil)

		rec, result := callTool(t, mockSvc, `{"name": "get_company", "arguments": {"name": "Acme"}}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "Acme")
	})

	t.Run("get_company not found sets is_error", func(t *testing.T) {
		t.Parallel()
		mockSvc := mocks.NewMockCompanyService(ctrl)
		mockSvc.EXPECT().GetCompany(gomock.Any(), "Umbrella").
			Return(nil, fmt.Errorf("%w: Umbrella", service.ErrCompanyNotFound))

		rec, result := callTool(t, mockSvc, `{"name": "get_company", "arguments": {"name": "Umbrella"}}`)

		require.Equal(t, http.StatusOK, rec.Code, "tool failures do not surface as HTTP errors")
		assert.True(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "company not found")
	})

	t.Run("get_company missing name", func(t *testing.T) {
		t.Parallel()
		mockSvc := mocks.NewMockCompanyService(ctrl)

		rec, result := callTool(t, mockSvc, `{"name": "get_company", "arguments": {}}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.True(t, result.IsError)
	})

	t.Run("list_fields", func(t *testing.T) {
		t.Parallel()
		mockSvc := mocks.NewMockCompanyService(ctrl)
		mockSvc.EXPECT().ListFields(gomock.Any()).Return([]string{"name", "industry"}, nil)

		rec, result := callTool(t, mockSvc, `{"name": "list_fields"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "industry")
	})

	t.Run("dataset_info", func(t *testing.T) {
		t.Parallel()
		mockSvc := mocks.NewMockCompanyService(ctrl)
		mockSvc.EXPECT().DatasetInfo(gomock.Any()).Return(&service.DatasetInfo{
			Source:         "file:/data/companies.csv",
			TotalCompanies: 42,
		}, nil)

		rec, result := callTool(t, mockSvc, `{"name": "dataset_info"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.False(t, result.IsError)
		assert.Contains(t, result.Content[0].Text, "42")
	})

	t.Run("unknown tool", func(t *testing.T) {
		t.Parallel()
		mockSvc := mocks.NewMockCompanyService(ctrl)

		rec, _ := callTool(t, mockSvc, `{"name": "drop_tables"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		mockSvc := mocks.NewMockCompanyService(ctrl)

		rec, _ := callTool(t, mockSvc, `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
