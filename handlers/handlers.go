package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Marian1309/go-select-utils/databases"
	"github.com/Marian1309/go-select-utils/selector"
)

type toolFunc = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// SelectFieldsHandler creates a handler for the select_fields tool
func SelectFieldsHandler(conn databases.Connector, sel *selector.Selector) toolFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table, err := request.RequireString("table")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing table parameter: %v", err)), nil
		}

		args := arguments(request)
		fields := stringList(args["fields"])
		if len(fields) == 0 {
			return mcp.NewToolResultError("Missing fields parameter"), nil
		}

		tbl, err := conn.Describe(ctx, table)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Describe failed: %v", err)), nil
		}

		results, err := sel.Fields(ctx, tbl, fields, parseOptions(args))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Select failed: %v", err)), nil
		}

		return jsonResult(results)
	}
}

// OmitFieldsHandler creates a handler for the omit_fields tool
func OmitFieldsHandler(conn databases.Connector, sel *selector.Selector) toolFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table, err := request.RequireString("table")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing table parameter: %v", err)), nil
		}

		args := arguments(request)
		fields := stringList(args["fields"])
		if len(fields) == 0 {
			return mcp.NewToolResultError("Missing fields parameter"), nil
		}

		tbl, err := conn.Describe(ctx, table)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Describe failed: %v", err)), nil
		}

		results, err := sel.Without(ctx, tbl, fields, parseOptions(args))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Select failed: %v", err)), nil
		}

		return jsonResult(results)
	}
}

// SelectAllHandler creates a handler for the select_all tool
func SelectAllHandler(conn databases.Connector, sel *selector.Selector) toolFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table, err := request.RequireString("table")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing table parameter: %v", err)), nil
		}

		tbl, err := conn.Describe(ctx, table)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Describe failed: %v", err)), nil
		}

		results, err := sel.All(ctx, tbl, parseOptions(arguments(request)))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Select failed: %v", err)), nil
		}

		return jsonResult(results)
	}
}

// SelectOneHandler creates a handler for the select_one tool
func SelectOneHandler(conn databases.Connector, sel *selector.Selector) toolFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table, err := request.RequireString("table")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing table parameter: %v", err)), nil
		}

		tbl, err := conn.Describe(ctx, table)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Describe failed: %v", err)), nil
		}

		row, err := sel.One(ctx, tbl, parseOptions(arguments(request)))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Select failed: %v", err)), nil
		}

		// row is nil when nothing matched; that marshals to "null".
		return jsonResult(row)
	}
}

// CountHandler creates a handler for the count_rows tool
func CountHandler(conn databases.Connector, sel *selector.Selector) toolFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table, err := request.RequireString("table")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing table parameter: %v", err)), nil
		}

		tbl, err := conn.Describe(ctx, table)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Describe failed: %v", err)), nil
		}

		count, err := sel.Count(ctx, tbl, parseOptions(arguments(request)))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Count failed: %v", err)), nil
		}

		return jsonResult(map[string]any{"count": count})
	}
}

// ExistsHandler creates a handler for the row_exists tool
func ExistsHandler(conn databases.Connector, sel *selector.Selector) toolFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table, err := request.RequireString("table")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing table parameter: %v", err)), nil
		}

		tbl, err := conn.Describe(ctx, table)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Describe failed: %v", err)), nil
		}

		exists, err := sel.Exists(ctx, tbl, parseOptions(arguments(request)))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Exists failed: %v", err)), nil
		}

		return jsonResult(map[string]any{"exists": exists})
	}
}

// PluckHandler creates a handler for the pluck_field tool
func PluckHandler(conn databases.Connector, sel *selector.Selector) toolFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table, err := request.RequireString("table")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing table parameter: %v", err)), nil
		}

		field, err := request.RequireString("field")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing field parameter: %v", err)), nil
		}

		tbl, err := conn.Describe(ctx, table)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Describe failed: %v", err)), nil
		}

		values, err := sel.Pluck(ctx, tbl, field, parseOptions(arguments(request)))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Pluck failed: %v", err)), nil
		}

		return jsonResult(values)
	}
}

// RawQueryHandler creates a handler for the raw_query tool
func RawQueryHandler(sel *selector.Selector) toolFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing query parameter: %v", err)), nil
		}

		results, err := sel.Raw(ctx, sq.Expr(query))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Query failed: %v", err)), nil
		}

		return jsonResult(results)
	}
}

// ListTablesHandler creates a handler for the list_tables tool
func ListTablesHandler(conn databases.Connector) toolFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tables, err := conn.ListTables(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("List failed: %v", err)), nil
		}

		return jsonResult(tables)
	}
}

// DescribeTableHandler creates a handler for the describe_table tool
func DescribeTableHandler(conn databases.Connector) toolFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table, err := request.RequireString("table")
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Missing table parameter: %v", err)), nil
		}

		tbl, err := conn.Describe(ctx, table)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Describe failed: %v", err)), nil
		}

		return jsonResult(tbl)
	}
}

func arguments(request mcp.CallToolRequest) map[string]any {
	if args, ok := request.Params.Arguments.(map[string]any); ok {
		return args
	}
	return map[string]any{}
}

// parseOptions maps the shared tool arguments onto selector options: "where"
// as a column/value equality object, "order_by" and "group_by" as a string or
// string list, "limit" and "offset" as numbers.
func parseOptions(args map[string]any) *selector.Options {
	opts := &selector.Options{}

	if where, ok := args["where"].(map[string]any); ok && len(where) > 0 {
		opts.Where = selector.Where(sq.Eq(where))
	}
	opts.OrderBy = stringList(args["order_by"])
	opts.GroupBy = stringList(args["group_by"])

	page := &selector.Page{}
	if v, ok := args["limit"].(float64); ok {
		page.Limit = selector.Int(int(v))
	}
	if v, ok := args["offset"].(float64); ok {
		page.Offset = selector.Int(int(v))
	}
	if page.Limit != nil || page.Offset != nil {
		opts.Page = page
	}

	return opts
}

// stringList accepts both a single string and an array of strings.
func stringList(v any) []string {
	switch value := v.(type) {
	case string:
		return []string{value}
	case []any:
		var list []string
		for _, item := range value {
			if s, ok := item.(string); ok {
				list = append(list, s)
			}
		}
		return list
	default:
		return nil
	}
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to marshal results: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}
