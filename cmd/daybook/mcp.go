package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/daybook-ai/daybook/pkg/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Daybook MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes all journal
functionality as MCP tools via STDIO.

The --db flag is optional. If not provided, a system-specific default location will be used:
- Windows: %USERPROFILE%\AppData\Roaming\daybook\daybook.db
- macOS: ~/Library/Application Support/daybook/daybook.db
- Linux: ~/.local/share/daybook/daybook.db

Example:
  daybook mcp
  daybook mcp --db journal.db`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := mcp.NewDaybookMCPServer(dbPath, walMode, syncMode)
		if err != nil {
			return err
		}

		db := srv.DB()
		s := srv.MCPRawServer()

		mcp.RegisterPingTool(s)
		mcp.RegisterAddEntryTool(s, db)
		mcp.RegisterAutoCaptureTool(s, db)
		mcp.RegisterSearchTool(s, db)
		mcp.RegisterTimeQueryTool(s, db)
		mcp.RegisterListRecentTool(s, db)
		mcp.RegisterListProjectsTool(s, db)
		mcp.RegisterStatsTool(s, db)
		mcp.RegisterDeleteEntryTool(s, db)
		mcp.RegisterDeleteProjectTool(s, db)
		mcp.RegisterImportTool(s, db)
		mcp.RegisterExportTool(s, db)

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "Daybook MCP server started. DB: %s (WAL: %t, Sync: %s)\n", srv.DBPath, walMode, syncMode)
		fmt.Fprintln(os.Stderr, "Available tools: ping, journal_add, journal_auto_capture, journal_search, journal_time_query, journal_list_recent, journal_list_projects, journal_stats, journal_delete, journal_delete_by_project, journal_import, journal_export")
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		return srv.Start()
	},
}
