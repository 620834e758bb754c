package mcp

import (
	goMCP "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Marian1309/go-select-utils/databases"
	"github.com/Marian1309/go-select-utils/handlers"
	"github.com/Marian1309/go-select-utils/selector"
)

func RegisterTools(s *server.MCPServer, conn databases.Connector, sel *selector.Selector) {
	selectFieldsTool := goMCP.NewTool("select_fields",
		goMCP.WithDescription("Select only the named columns from a table"),
		goMCP.WithString("table",
			goMCP.Required(),
			goMCP.Description("Name of the table to query"),
		),
		goMCP.WithArray("fields",
			goMCP.Required(),
			goMCP.Description("Column names to include"),
		),
		goMCP.WithObject("where",
			goMCP.Description("Column/value equality filters, combined with AND"),
		),
		goMCP.WithString("order_by",
			goMCP.Description("Order expression(s), e.g. 'name ASC'"),
		),
		goMCP.WithString("group_by",
			goMCP.Description("Group expression(s)"),
		),
		goMCP.WithNumber("limit",
			goMCP.Description("Max rows (default: 25)"),
		),
		goMCP.WithNumber("offset",
			goMCP.Description("Rows to skip (default: 0)"),
		),
	)

	omitFieldsTool := goMCP.NewTool("omit_fields",
		goMCP.WithDescription("Select every column of a table except the named ones"),
		goMCP.WithString("table",
			goMCP.Required(),
			goMCP.Description("Name of the table to query"),
		),
		goMCP.WithArray("fields",
			goMCP.Required(),
			goMCP.Description("Column names to exclude"),
		),
		goMCP.WithObject("where",
			goMCP.Description("Column/value equality filters, combined with AND"),
		),
		goMCP.WithString("order_by",
			goMCP.Description("Order expression(s)"),
		),
		goMCP.WithString("group_by",
			goMCP.Description("Group expression(s)"),
		),
		goMCP.WithNumber("limit",
			goMCP.Description("Max rows (default: 10)"),
		),
		goMCP.WithNumber("offset",
			goMCP.Description("Rows to skip (default: 0)"),
		),
	)

	selectAllTool := goMCP.NewTool("select_all",
		goMCP.WithDescription("Select every column of a table"),
		goMCP.WithString("table",
			goMCP.Required(),
			goMCP.Description("Name of the table to query"),
		),
		goMCP.WithObject("where",
			goMCP.Description("Column/value equality filters, combined with AND"),
		),
		goMCP.WithString("order_by",
			goMCP.Description("Order expression(s)"),
		),
		goMCP.WithNumber("limit",
			goMCP.Description("Max rows (default: 25)"),
		),
		goMCP.WithNumber("offset",
			goMCP.Description("Rows to skip (default: 0)"),
		),
	)

	selectOneTool := goMCP.NewTool("select_one",
		goMCP.WithDescription("Select the first matching row, or null when nothing matches"),
		goMCP.WithString("table",
			goMCP.Required(),
			goMCP.Description("Name of the table to query"),
		),
		goMCP.WithObject("where",
			goMCP.Description("Column/value equality filters, combined with AND"),
		),
		goMCP.WithString("order_by",
			goMCP.Description("Order expression(s)"),
		),
		goMCP.WithNumber("offset",
			goMCP.Description("Rows to skip (default: 0)"),
		),
	)

	countTool := goMCP.NewTool("count_rows",
		goMCP.WithDescription("Count the rows matching a filter"),
		goMCP.WithString("table",
			goMCP.Required(),
			goMCP.Description("Name of the table to query"),
		),
		goMCP.WithObject("where",
			goMCP.Description("Column/value equality filters, combined with AND"),
		),
	)

	existsTool := goMCP.NewTool("row_exists",
		goMCP.WithDescription("Check whether any row matches a filter"),
		goMCP.WithString("table",
			goMCP.Required(),
			goMCP.Description("Name of the table to query"),
		),
		goMCP.WithObject("where",
			goMCP.Required(),
			goMCP.Description("Column/value equality filters, combined with AND"),
		),
	)

	pluckTool := goMCP.NewTool("pluck_field",
		goMCP.WithDescription("Return the values of a single column, one per matching row"),
		goMCP.WithString("table",
			goMCP.Required(),
			goMCP.Description("Name of the table to query"),
		),
		goMCP.WithString("field",
			goMCP.Required(),
			goMCP.Description("Column to pluck"),
		),
		goMCP.WithObject("where",
			goMCP.Description("Column/value equality filters, combined with AND"),
		),
		goMCP.WithString("order_by",
			goMCP.Description("Order expression(s)"),
		),
		goMCP.WithNumber("limit",
			goMCP.Description("Max rows (default: 25)"),
		),
		goMCP.WithNumber("offset",
			goMCP.Description("Rows to skip (default: 0)"),
		),
	)

	rawQueryTool := goMCP.NewTool("raw_query",
		goMCP.WithDescription("Execute a read-only SQL query as written"),
		goMCP.WithString("query",
			goMCP.Required(),
			goMCP.Description("SQL query to execute (SELECT statements only)"),
		),
	)

	listTablesTool := goMCP.NewTool("list_tables",
		goMCP.WithDescription("List the tables of the connected database"),
	)

	describeTableTool := goMCP.NewTool("describe_table",
		goMCP.WithDescription("Show a table's columns, primary keys and row estimate"),
		goMCP.WithString("table",
			goMCP.Required(),
			goMCP.Description("Name of the table to describe"),
		),
	)

	s.AddTool(selectFieldsTool, handlers.SelectFieldsHandler(conn, sel))
	s.AddTool(omitFieldsTool, handlers.OmitFieldsHandler(conn, sel))
	s.AddTool(selectAllTool, handlers.SelectAllHandler(conn, sel))
	s.AddTool(selectOneTool, handlers.SelectOneHandler(conn, sel))
	s.AddTool(countTool, handlers.CountHandler(conn, sel))
	s.AddTool(existsTool, handlers.ExistsHandler(conn, sel))
	s.AddTool(pluckTool, handlers.PluckHandler(conn, sel))
	s.AddTool(rawQueryTool, handlers.RawQueryHandler(sel))
	s.AddTool(listTablesTool, handlers.ListTablesHandler(conn))
	s.AddTool(describeTableTool, handlers.DescribeTableHandler(conn))
}
