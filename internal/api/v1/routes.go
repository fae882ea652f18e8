// Package v1 provides the REST API handlers for company data access.
package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/VanshTheJudged/mcp-server/internal/api/common"
	"github.com/VanshTheJudged/mcp-server/internal/query"
	"github.com/VanshTheJudged/mcp-server/internal/service"
)

// Routes defines the routes for the company API with dependency injection.
type Routes struct {
	service service.CompanyService
}

// NewRoutes creates a new Routes instance with the provided service.
func NewRoutes(svc service.CompanyService) *Routes {
	return &Routes{
		service: svc,
	}
}

// Router creates and configures the HTTP router for the v1 company endpoints.
func Router(svc service.CompanyService) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()

	r.Route("/companies", func(r chi.Router) {
		r.Get("/", routes.listCompanies)
		r.Post("/search", routes.searchCompanies)
		r.Get("/{name}", routes.getCompany)
	})
	r.Get("/fields", routes.listFields)
	r.Get("/info", routes.getDatasetInfo)

	return r
}

// searchRequest is the body of POST /companies/search.
type searchRequest struct {
	Filters []query.Condition `json:"filters,omitempty"`
	Sort    *query.Sort       `json:"sort,omitempty"`
	Limit   int               `json:"limit,omitempty"`
	Offset  int               `json:"offset,omitempty"`
}

// FieldsResponse is the response of GET /fields.
type FieldsResponse struct {
	Fields []string `json:"fields"`
}

// listCompanies handles GET /api/v1/companies.
//
//	@Summary		List companies
//	@Description	Get a page of companies, optionally sorted
//	@Tags			companies
//	@Produce		json
//	@Param			limit		query		int		false	"Maximum number of records to return"
//	@Param			offset		query		int		false	"Number of records to skip"
//	@Param			sort_by		query		string	false	"Field to sort by"
//	@Param			sort_dir	query		string	false	"Sort direction"	Enums(asc,desc)
//	@Success		200			{object}	query.Page
//	@Failure		400			{object}	map[string]string
//	@Router			/api/v1/companies [get]
func (rr *Routes) listCompanies(w http.ResponseWriter, r *http.Request) {
	opts, ok := searchOptionsFromQuery(w, r)
	if !ok {
		return
	}

	page, err := rr.service.SearchCompanies(r.Context(), opts...)
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	common.WriteJSONResponse(w, page, http.StatusOK)
}

// searchCompanies handles POST /api/v1/companies/search.
//
//	@Summary		Search companies
//	@Description	Filter companies by field conditions with optional sort and pagination
//	@Tags			companies
//	@Accept			json
//	@Produce		json
//	@Param			request	body		searchRequest	true	"Search request"
//	@Success		200		{object}	query.Page
//	@Failure		400		{object}	map[string]string
//	@Router			/api/v1/companies/search [post]
func (rr *Routes) searchCompanies(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteErrorResponse(w, "Invalid request body: must be a JSON search request", http.StatusBadRequest)
		return
	}

	opts := []service.SearchOption{}
	if len(req.Filters) > 0 {
		opts = append(opts, service.WithFilters(req.Filters))
	}
	if req.Sort != nil && req.Sort.Field != "" {
		opts = append(opts, service.WithSort(req.Sort.Field, req.Sort.Dir))
	}
	if req.Limit > 0 {
		opts = append(opts, service.WithLimit(req.Limit))
	}
	if req.Offset > 0 {
		opts = append(opts, service.WithOffset(req.Offset))
	}

	page, err := rr.service.SearchCompanies(r.Context(), opts...)
	if err != nil {
		common.WriteErrorResponse(w, err.Error(), http.StatusBadRequest)
		return
	}

	common.WriteJSONResponse(w, page, http.StatusOK)
}

// getCompany handles GET /api/v1/companies/{name}.
//
//	@Summary		Get company by name
//	@Description	Get a single company by exact name (case-insensitive)
//	@Tags			companies
//	@Produce		json
//	@Param			name	path		string	true	"Company name"
//	@Success		200		{object}	store.Record
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Router			/api/v1/companies/{name} [get]
func (rr *Routes) getCompany(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if strings.TrimSpace(name) == "" {
		common.WriteErrorResponse(w, "Company name is required", http.StatusBadRequest)
		return
	}

	rec, err := rr.service.GetCompany(r.Context(), name)
	if err != nil {
		if errors.Is(err, service.ErrCompanyNotFound) {
			common.WriteErrorResponse(w, "Company not found", http.StatusNotFound)
			return
		}
		common.WriteErrorResponse(w, "Failed to get company", http.StatusInternalServerError)
		return
	}

	common.WriteJSONResponse(w, rec, http.StatusOK)
}

// listFields handles GET /api/v1/fields.
//
//	@Summary		List dataset fields
//	@Description	Get the column names of the loaded dataset
//	@Tags			dataset
//	@Produce		json
//	@Success		200	{object}	FieldsResponse
//	@Router			/api/v1/fields [get]
func (rr *Routes) listFields(w http.ResponseWriter, r *http.Request) {
	fields, err := rr.service.ListFields(r.Context())
	if err != nil {
		common.WriteErrorResponse(w, "Failed to list fields", http.StatusInternalServerError)
		return
	}

	common.WriteJSONResponse(w, FieldsResponse{Fields: fields}, http.StatusOK)
}

// getDatasetInfo handles GET /api/v1/info.
//
//	@Summary		Get dataset information
//	@Description	Get metadata about the loaded dataset
//	@Tags			dataset
//	@Produce		json
//	@Success		200	{object}	service.DatasetInfo
//	@Router			/api/v1/info [get]
func (rr *Routes) getDatasetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := rr.service.DatasetInfo(r.Context())
	if err != nil {
		common.WriteErrorResponse(w, "Failed to get dataset information", http.StatusInternalServerError)
		return
	}

	common.WriteJSONResponse(w, info, http.StatusOK)
}

// searchOptionsFromQuery parses limit/offset/sort query parameters. It writes
// a 400 response and returns ok=false when a parameter is malformed.
func searchOptionsFromQuery(w http.ResponseWriter, r *http.Request) ([]service.SearchOption, bool) {
	q := r.URL.Query()
	opts := []service.SearchOption{}

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit <= 0 {
			common.WriteErrorResponse(w, "Invalid limit parameter: must be a positive integer", http.StatusBadRequest)
			return nil, false
		}
		opts = append(opts, service.WithLimit(limit))
	}

	if offsetStr := q.Get("offset"); offsetStr != "" {
		offset, err := strconv.Atoi(offsetStr)
		if err != nil || offset < 0 {
			common.WriteErrorResponse(w, "Invalid offset parameter: must be a non-negative integer", http.StatusBadRequest)
			return nil, false
		}
		opts = append(opts, service.WithOffset(offset))
	}

	if sortBy := q.Get("sort_by"); sortBy != "" {
		opts = append(opts, service.WithSort(sortBy, q.Get("sort_dir")))
	}

	return opts, true
}
