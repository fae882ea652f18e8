// Package tools exposes the company query operations as a discoverable
// tool catalog over plain HTTP, for clients that speak the tool-calling
// convention without a full MCP session.
package tools

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/VanshTheJudged/mcp-server/internal/api/common"
	"github.com/VanshTheJudged/mcp-server/internal/query"
	"github.com/VanshTheJudged/mcp-server/internal/service"
)

// Tool describes a single callable tool in the catalog.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

// CallRequest is the body of POST /call.
type CallRequest struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments,omitempty"`
}

// Content is a single content block in a tool call result.
type Content struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// CallResult is the envelope returned by POST /call.
type CallResult struct {
	Content []Content `json:"content"`
	IsError bool      `json:"is_error"`
}

// Routes defines the tool-discovery routes with dependency injection.
type Routes struct {
	service service.CompanyService
}

// NewRoutes creates a new Routes instance with the provided service.
func NewRoutes(svc service.CompanyService) *Routes {
	return &Routes{
		service: svc,
	}
}

// Router creates and configures the HTTP router for the tool endpoints.
func Router(svc service.CompanyService) http.Handler {
	routes := NewRoutes(svc)

	r := chi.NewRouter()
	r.Get("/", routes.listTools)
	r.Post("/call", routes.callTool)

	return r
}

// catalog returns the static tool catalog. The schemas mirror the MCP
// tool registrations so both surfaces advertise the same contract.
func catalog() []Tool {
	conditionSchema := map[string]any{
		"type": "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"field": map[string]any{"type": "string"},
				"op":    map[string]any{"type": "string", "enum": []string{"eq", "contains", "gt", "lt"}},
				"value": map[string]any{"type": "string"},
			},
			"required": []string{"field", "op", "value"},
		},
	}

	return []Tool{
		{
			Name:        "search_companies",
			Description: "Search companies by field conditions with optional sorting and pagination.",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"filters":  conditionSchema,
					"sort_by":  map[string]any{"type": "string"},
					"sort_dir": map[string]any{"type": "string", "enum": []string{"asc", "desc"}},
					"limit":    map[string]any{"type": "number"},
					"offset":   map[string]any{"type": "number"},
				},
			},
		},
		{
			Name:        "get_company",
			Description: "Get a single company by exact name (case-insensitive).",
			InputSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"name": map[string]any{"type": "string"},
				},
				"required": []string{"name"},
			},
		},
		{
			Name:        "list_fields",
			Description: "List the column names of the loaded dataset.",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
		{
			Name:        "dataset_info",
			Description: "Get metadata about the loaded dataset.",
			InputSchema: map[string]any{
				"type":       "object",
				"properties": map[string]any{},
			},
		},
	}
}

// listTools handles GET /api/v1/tools.
func (*Routes) listTools(w http.ResponseWriter, _ *http.Request) {
	common.WriteJSONResponse(w, map[string]any{"tools": catalog()}, http.StatusOK)
}

// callTool handles POST /api/v1/tools/call.
func (rr *Routes) callTool(w http.ResponseWriter, r *http.Request) {
	var req CallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.WriteErrorResponse(w, "Invalid request body: must be a JSON tool call", http.StatusBadRequest)
		return
	}

	switch req.Name {
	case "search_companies":
		rr.callSearchCompanies(w, r, req.Arguments)
	case "get_company":
		rr.callGetCompany(w, r, req.Arguments)
	case "list_fields":
		rr.callListFields(w, r)
	case "dataset_info":
		rr.callDatasetInfo(w, r)
	default:
		common.WriteErrorResponse(w, "Unknown tool: "+req.Name, http.StatusNotFound)
	}
}

func (rr *Routes) callSearchCompanies(w http.ResponseWriter, r *http.Request, args map[string]any) {
	opts := []service.SearchOption{}

	if filters := query.ConditionsFromAny(args["filters"]); len(filters) > 0 {
		opts = append(opts, service.WithFilters(filters))
	}
	if sortBy, _ := args["sort_by"].(string); sortBy != "" {
		sortDir, _ := args["sort_dir"].(string)
		opts = append(opts, service.WithSort(sortBy, sortDir))
	}
	if limit := intArg(args, "limit"); limit > 0 {
		opts = append(opts, service.WithLimit(limit))
	}
	if offset := intArg(args, "offset"); offset > 0 {
		opts = append(opts, service.WithOffset(offset))
	}

	page, err := rr.service.SearchCompanies(r.Context(), opts...)
	if err != nil {
		writeCallError(w, err)
		return
	}
	writeCallJSON(w, page)
}

func (rr *Routes) callGetCompany(w http.ResponseWriter, r *http.Request, args map[string]any) {
	name, _ := args["name"].(string)
	if strings.TrimSpace(name) == "" {
		writeCallError(w, errors.New("name argument is required"))
		return
	}

	rec, err := rr.service.GetCompany(r.Context(), name)
	if err != nil {
		writeCallError(w, err)
		return
	}
	writeCallJSON(w, rec)
}

func (rr *Routes) callListFields(w http.ResponseWriter, r *http.Request) {
	fields, err := rr.service.ListFields(r.Context())
	if err != nil {
		writeCallError(w, err)
		return
	}
	writeCallJSON(w, map[string]any{"fields": fields})
}

func (rr *Routes) callDatasetInfo(w http.ResponseWriter, r *http.Request) {
	info, err := rr.service.DatasetInfo(r.Context())
	if err != nil {
		writeCallError(w, err)
		return
	}
	writeCallJSON(w, info)
}

// writeCallJSON marshals v and wraps it in a successful call result. Tool
// payloads travel as JSON text inside a text content block.
func writeCallJSON(w http.ResponseWriter, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		writeCallError(w, err)
		return
	}
	common.WriteJSONResponse(w, CallResult{
		Content: []Content{{Type: "text", Text: string(data)}},
	}, http.StatusOK)
}

// writeCallError reports a tool execution failure. Failures of the tool
// itself still return 200 with is_error set, matching the MCP convention.
func writeCallError(w http.ResponseWriter, err error) {
	common.WriteJSONResponse(w, CallResult{
		Content: []Content{{Type: "text", Text: err.Error()}},
		IsError: true,
	}, http.StatusOK)
}

// intArg reads a numeric argument that may arrive as a JSON number or a
// numeric string.
func intArg(args map[string]any, key string) int {
	switch v := args[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	case string:
		if f, err := json.Number(v).Float64(); err == nil {
			return int(f)
		}
	}
	return 0
}
