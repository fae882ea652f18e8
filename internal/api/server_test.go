package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/VanshTheJudged/mcp-server/internal/query"
	"github.com/VanshTheJudged/mcp-server/internal/service/mocks"
	"github.com/VanshTheJudged/mcp-server/internal/store"
)

func TestNewServerMountsAllSurfaces(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockSvc := mocks.NewMockCompanyService(ctrl)
	mockSvc.EXPECT().SearchCompanies(gomock.Any()).
		Return(&query.Page{Results: []store.Record{}}, nil).AnyTimes()
	mockSvc.EXPECT().ListFields(gomock.Any()).
		Return([]string{"name"}, nil).AnyTimes()

	mcpHit := false
	metricsHit := false
	router := NewServer(mockSvc,
		WithMiddlewares(LoggingMiddleware),
		WithMCPHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			mcpHit = true
			w.WriteHeader(http.StatusOK)
		})),
		WithMetricsHandler(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			metricsHit = true
			w.WriteHeader(http.StatusOK)
		})),
	)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{"/health", http.StatusNoContent},
		{"/api/v1/companies", http.StatusOK},
		{"/api/v1/fields", http.StatusOK},
		{"/api/v1/tools", http.StatusOK},
		{"/mcp", http.StatusOK},
		{"/metrics", http.StatusOK},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		assert.Equal(t, tt.wantStatus, rec.Code, "GET %s", tt.path)
	}

	assert.True(t, mcpHit)
	assert.True(t, metricsHit)
}

func TestNewServerWithoutOptionalHandlers(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	router := NewServer(mocks.NewMockCompanyService(ctrl))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
