package mcp

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/daybook-ai/daybook/pkg/journal"
)

const (
	defaultSearchLimit = 20
	defaultRecentLimit = 10
)

// RegisterPingTool registers the simple ping tool.
func RegisterPingTool(s *server.MCPServer) {
	pingTool := mcp.NewTool("ping",
		mcp.WithDescription("Responds with 'pong' to check if the Daybook MCP server is alive."),
	)
	s.AddTool(pingTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("pong_daybook"), nil
	})
}

// RegisterAddEntryTool registers the journal_add tool.
func RegisterAddEntryTool(s *server.MCPServer, db *sql.DB) {
	addTool := mcp.NewTool("journal_add",
		mcp.WithDescription("Add a new journal entry manually. Use when the user explicitly asks to save/remember something."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Brief title for the entry.")),
		mcp.WithString("description", mcp.Required(), mcp.Description("Detailed description (1-2 sentences).")),
		mcp.WithString("project", mcp.Description("Optional project/repo name.")),
		mcp.WithString("tags", mcp.Description("Optional comma-separated list of tags.")),
	)
	s.AddTool(addTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAdd(ctx, db, request, nil)
	})
}

// RegisterAutoCaptureTool registers the journal_auto_capture tool. It is the
// same write path as journal_add with an 'auto-capture' tag prepended, meant
// to be invoked by assistant hooks when substantial progress occurred.
func RegisterAutoCaptureTool(s *server.MCPServer, db *sql.DB) {
	captureTool := mcp.NewTool("journal_auto_capture",
		mcp.WithDescription("Automatically capture significant work. Use when substantial progress or decisions were made. Summarize the goal and what was accomplished."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Brief title summarizing what was accomplished.")),
		mcp.WithString("description", mcp.Required(), mcp.Description("The goal and what was done (1-2 sentences).")),
		mcp.WithString("project", mcp.Description("Optional project/repo name.")),
		mcp.WithString("tags", mcp.Description("Optional comma-separated list of tags.")),
	)
	s.AddTool(captureTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return handleAdd(ctx, db, request, []string{"auto-capture"})
	})
}

func handleAdd(ctx context.Context, db *sql.DB, request mcp.CallToolRequest, prependTags []string) (*mcp.CallToolResult, error) {
	title, titleOk := request.Params.Arguments["title"].(string)
	description, descOk := request.Params.Arguments["description"].(string)
	project, _ := request.Params.Arguments["project"].(string)
	tagsStr, _ := request.Params.Arguments["tags"].(string)

	if !titleOk || title == "" {
		return mcp.NewToolResultError("'title' parameter is required and must be a non-empty string."), nil
	}
	if !descOk || description == "" {
		return mcp.NewToolResultError("'description' parameter is required and must be a non-empty string."), nil
	}

	tags := append(prependTags, parseTags(tagsStr)...)

	entry, err := journal.AddEntry(ctx, db, title, description, project, tags)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to create journal entry: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Journal entry created (ID: %d)", entry.ID)), nil
}

// RegisterSearchTool registers the journal_search tool.
func RegisterSearchTool(s *server.MCPServer, db *sql.DB) {
	searchTool := mcp.NewTool("journal_search",
		mcp.WithDescription("Search journal entries with advanced query syntax. Supports: ID search (\"42\" or \"id:42\"), tag filtering (\"tag:bugfix\" or \"#bugfix\"), exact phrases (\"\\\"user auth\\\"\"), date ranges (\"last week authentication\"), and keywords. All filters combine with AND."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query with optional syntax: ID (42 or id:42), tags (tag:name or #name), exact phrases (\"phrase\"), time (last week, yesterday), keywords.")),
		mcp.WithString("project", mcp.Description("Optional project filter (exact match).")),
		mcp.WithNumber("limit", mcp.DefaultNumber(defaultSearchLimit), mcp.Description("Maximum results (default: 20).")),
	)
	s.AddTool(searchTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, queryOk := request.Params.Arguments["query"].(string)
		if !queryOk || query == "" {
			return mcp.NewToolResultError("'query' parameter is required and must be a non-empty string."), nil
		}
		project, _ := request.Params.Arguments["project"].(string)
		limit := intArgument(request, "limit", defaultSearchLimit)

		plan := journal.CompileQuery(query, time.Now())
		entries, err := journal.SearchEntries(ctx, db, plan, project, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Search failed: %v", err)), nil
		}

		if len(entries) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No entries found matching '%s'", query)), nil
		}

		return mcp.NewToolResultText(formatEntries(entries, "")), nil
	})
}

// RegisterTimeQueryTool registers the journal_time_query tool.
func RegisterTimeQueryTool(s *server.MCPServer, db *sql.DB) {
	timeQueryTool := mcp.NewTool("journal_time_query",
		mcp.WithDescription("Find entries by time period. Supports natural language like 'last month', 'yesterday', 'january 2024', 'last 3 days'. Use when the user asks what they worked on some time ago."),
		mcp.WithString("time_expression", mcp.Required(), mcp.Description("Time period (e.g., 'last week', 'yesterday', 'january').")),
		mcp.WithString("query", mcp.Description("Optional text filter within the time range.")),
		mcp.WithString("project", mcp.Description("Optional project filter (exact match).")),
	)
	s.AddTool(timeQueryTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		timeExpr, exprOk := request.Params.Arguments["time_expression"].(string)
		if !exprOk || timeExpr == "" {
			return mcp.NewToolResultError("'time_expression' parameter is required and must be a non-empty string."), nil
		}
		query, _ := request.Params.Arguments["query"].(string)
		project, _ := request.Params.Arguments["project"].(string)

		start, end := journal.ResolveTimeRange(timeExpr, time.Now())

		entries, err := journal.QueryTimeRange(ctx, db, start, end, query, project)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Time query failed: %v", err)), nil
		}

		if len(entries) == 0 {
			return mcp.NewToolResultText(fmt.Sprintf("No entries found for '%s'", timeExpr)), nil
		}

		return mcp.NewToolResultText(formatEntries(entries, timeExpr)), nil
	})
}

// RegisterListRecentTool registers the journal_list_recent tool.
func RegisterListRecentTool(s *server.MCPServer, db *sql.DB) {
	listRecentTool := mcp.NewTool("journal_list_recent",
		mcp.WithDescription("Get most recent journal entries. Useful for remembering recent work after context cleared."),
		mcp.WithNumber("limit", mcp.DefaultNumber(defaultRecentLimit), mcp.Description("Number of entries (default: 10).")),
		mcp.WithString("project", mcp.Description("Optional project filter (exact match).")),
	)
	s.AddTool(listRecentTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		limit := intArgument(request, "limit", defaultRecentLimit)
		project, _ := request.Params.Arguments["project"].(string)

		entries, err := journal.ListRecent(ctx, db, project, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list entries: %v", err)), nil
		}

		if len(entries) == 0 {
			return mcp.NewToolResultText("No journal entries found"), nil
		}

		return mcp.NewToolResultText(formatEntries(entries, "")), nil
	})
}

// RegisterListProjectsTool registers the journal_list_projects tool.
func RegisterListProjectsTool(s *server.MCPServer, db *sql.DB) {
	listProjectsTool := mcp.NewTool("journal_list_projects",
		mcp.WithDescription("List all projects with entry counts. Useful for seeing what projects have been worked on."),
	)
	s.AddTool(listProjectsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projects, err := journal.ListProjects(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to list projects: %v", err)), nil
		}

		if len(projects) == 0 {
			return mcp.NewToolResultText("No projects found in journal"), nil
		}

		formatted := "Projects:\n\n"
		for _, p := range projects {
			formatted += fmt.Sprintf("- %s: %d entries\n", p.Project, p.Count)
		}

		return mcp.NewToolResultText(formatted), nil
	})
}

// RegisterStatsTool registers the journal_stats tool.
func RegisterStatsTool(s *server.MCPServer, db *sql.DB) {
	statsTool := mcp.NewTool("journal_stats",
		mcp.WithDescription("Get journal statistics including total entries, date ranges, and per-project counts."),
	)
	s.AddTool(statsTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		stats, err := journal.GetStats(ctx, db)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to gather stats: %v", err)), nil
		}

		return mcp.NewToolResultText(formatStats(stats)), nil
	})
}

// RegisterDeleteEntryTool registers the journal_delete tool.
func RegisterDeleteEntryTool(s *server.MCPServer, db *sql.DB) {
	deleteTool := mcp.NewTool("journal_delete",
		mcp.WithDescription("Delete a specific journal entry by ID. Use when the user asks to forget something specific."),
		mcp.WithNumber("entry_id", mcp.Required(), mcp.Description("ID of the entry to delete.")),
	)
	s.AddTool(deleteTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rawID, idOk := request.Params.Arguments["entry_id"].(float64)
		if !idOk {
			return mcp.NewToolResultError("'entry_id' parameter is required and must be a number."), nil
		}
		entryID := int64(rawID)

		err := journal.DeleteEntry(ctx, db, entryID)
		if errors.Is(err, journal.ErrEntryNotFound) {
			return mcp.NewToolResultText(fmt.Sprintf("Entry %d not found", entryID)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete entry %d: %v", entryID, err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Deleted journal entry %d", entryID)), nil
	})
}

// RegisterDeleteProjectTool registers the journal_delete_by_project tool.
func RegisterDeleteProjectTool(s *server.MCPServer, db *sql.DB) {
	deleteProjectTool := mcp.NewTool("journal_delete_by_project",
		mcp.WithDescription("Delete all entries for a specific project. Use with caution."),
		mcp.WithString("project", mcp.Required(), mcp.Description("Project name (exact match).")),
	)
	s.AddTool(deleteProjectTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		project, projectOk := request.Params.Arguments["project"].(string)
		if !projectOk || project == "" {
			return mcp.NewToolResultError("'project' parameter is required and must be a non-empty string."), nil
		}

		count, err := journal.DeleteByProject(ctx, db, project)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to delete entries for project '%s': %v", project, err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Deleted %d entries for project '%s'", count, project)), nil
	})
}

// RegisterImportTool registers the journal_import tool.
func RegisterImportTool(s *server.MCPServer, db *sql.DB) {
	importTool := mcp.NewTool("journal_import",
		mcp.WithDescription("Import entries from another journal database file. Merges with existing entries (avoids duplicates)."),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path to the source database file.")),
	)
	s.AddTool(importTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filePath, pathOk := request.Params.Arguments["file_path"].(string)
		if !pathOk || filePath == "" {
			return mcp.NewToolResultError("'file_path' parameter is required and must be a non-empty string."), nil
		}

		imported, err := journal.ImportFromDB(ctx, db, filePath)
		if errors.Is(err, journal.ErrSourceNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("Source database not found: %s", filePath)), nil
		}
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Import failed: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Imported %d new entries from %s", imported, filePath)), nil
	})
}

// RegisterExportTool registers the journal_export tool.
func RegisterExportTool(s *server.MCPServer, db *sql.DB) {
	exportTool := mcp.NewTool("journal_export",
		mcp.WithDescription("Export the journal to a SQLite database file for sharing or backup."),
		mcp.WithString("file_path", mcp.Description("Optional destination path (default: journal_export_TIMESTAMP.db).")),
	)
	s.AddTool(exportTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		filePath, _ := request.Params.Arguments["file_path"].(string)

		exportedPath, err := journal.ExportToDB(ctx, db, filePath)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Export failed: %v", err)), nil
		}

		return mcp.NewToolResultText(fmt.Sprintf("Exported journal to %s", exportedPath)), nil
	})
}

// intArgument reads a numeric argument (JSON numbers arrive as float64),
// falling back to def when absent or non-positive.
func intArgument(request mcp.CallToolRequest, name string, def int) int {
	raw, ok := request.Params.Arguments[name].(float64)
	if !ok || raw <= 0 {
		return def
	}
	return int(raw)
}
