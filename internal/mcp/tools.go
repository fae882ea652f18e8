package mcp

// In this file: MCP tool definitions and handler implementations.

import (
	"context"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpsrv "github.com/mark3labs/mcp-go/server"

	"github.com/VanshTheJudged/mcp-server/internal/query"
	"github.com/VanshTheJudged/mcp-server/internal/service"
)

// ─── search_companies ─────────────────────────────────────────────────────────

func (s *Server) toolSearchCompanies() mcpsrv.ServerTool {
	tool := mcplib.NewTool("search_companies",
		mcplib.WithDescription(`Search the company dataset by field conditions.

Each filter condition is an object with "field", "op" and "value" keys.
Supported operators: "eq" (exact match, numeric when both sides parse as
numbers), "contains" (case-insensitive substring), "gt" and "lt" (numeric
comparison; records without a numeric value in the field never match).
All conditions must hold for a record to be returned.

Results can be sorted by any field (numeric when the values parse as
numbers, lexicographic otherwise) and are paginated.`),
		mcplib.WithArray("filters",
			mcplib.Description(`Filter conditions, e.g. [{"field":"industry","op":"eq","value":"retail"}].`),
		),
		mcplib.WithString("sort_by",
			mcplib.Description("Field name to sort results by."),
		),
		mcplib.WithString("sort_dir",
			mcplib.Description(`Sort direction: "asc" (default) or "desc".`),
		),
		mcplib.WithNumber("limit",
			mcplib.Description("Maximum number of records to return."),
		),
		mcplib.WithNumber("offset",
			mcplib.Description("Number of matching records to skip."),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleSearchCompanies}
}

func (s *Server) handleSearchCompanies(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	opts := []service.SearchOption{}

	args := req.GetArguments()
	if args != nil {
		if filters := query.ConditionsFromAny(args["filters"]); len(filters) > 0 {
			opts = append(opts, service.WithFilters(filters))
		}
	}
	if sortBy, ok := stringArg(req, "sort_by"); ok && sortBy != "" {
		sortDir, _ := stringArg(req, "sort_dir")
		opts = append(opts, service.WithSort(sortBy, sortDir))
	}
	if limit := intArg(req, "limit", 0); limit > 0 {
		opts = append(opts, service.WithLimit(limit))
	}
	if offset := intArg(req, "offset", 0); offset > 0 {
		opts = append(opts, service.WithOffset(offset))
	}

	page, err := s.svc.SearchCompanies(ctx, opts...)
	if err != nil {
		return resultErr(fmt.Errorf("search_companies: %w", err)), nil
	}

	return resultJSON(page)
}

// ─── get_company ──────────────────────────────────────────────────────────────

func (s *Server) toolGetCompany() mcpsrv.ServerTool {
	tool := mcplib.NewTool("get_company",
		mcplib.WithDescription("Get a single company record by its exact name. The lookup is case-insensitive and ignores surrounding whitespace."),
		mcplib.WithString("name",
			mcplib.Description("Company name to look up."),
			mcplib.Required(),
		),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleGetCompany}
}

func (s *Server) handleGetCompany(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	name, ok := stringArg(req, "name")
	if !ok || name == "" {
		return resultErr(fmt.Errorf("get_company: name is required")), nil
	}

	rec, err := s.svc.GetCompany(ctx, name)
	if err != nil {
		return resultErr(fmt.Errorf("get_company: %w", err)), nil
	}

	return resultJSON(rec)
}

// ─── list_fields ──────────────────────────────────────────────────────────────

func (s *Server) toolListFields() mcpsrv.ServerTool {
	tool := mcplib.NewTool("list_fields",
		mcplib.WithDescription("List the column names of the loaded company dataset. Use these names in search_companies filters and sort_by."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleListFields}
}

func (s *Server) handleListFields(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	fields, err := s.svc.ListFields(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("list_fields: %w", err)), nil
	}

	return resultJSON(map[string]any{"fields": fields})
}

// ─── dataset_info ─────────────────────────────────────────────────────────────

func (s *Server) toolDatasetInfo() mcpsrv.ServerTool {
	tool := mcplib.NewTool("dataset_info",
		mcplib.WithDescription("Get metadata about the loaded dataset: source, number of companies, number of fields, and load time."),
		mcplib.WithReadOnlyHintAnnotation(true),
	)
	return mcpsrv.ServerTool{Tool: tool, Handler: s.handleDatasetInfo}
}

func (s *Server) handleDatasetInfo(ctx context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	info, err := s.svc.DatasetInfo(ctx)
	if err != nil {
		return resultErr(fmt.Errorf("dataset_info: %w", err)), nil
	}

	return resultJSON(info)
}
