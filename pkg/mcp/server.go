package mcp

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	daybook "github.com/daybook-ai/daybook/pkg"
	pkgdb "github.com/daybook-ai/daybook/pkg/db"
	"github.com/daybook-ai/daybook/pkg/utils"
)

// DaybookMCPServer bundles the MCP server with the process-wide database
// handle. The handle is opened once here and reused by every tool handler
// until Close.
type DaybookMCPServer struct {
	mcpServer *server.MCPServer
	db        *sql.DB
	DBPath    string
}

// NewDaybookMCPServer spins up an MCP server backed by the SQLite database at
// dbPath (per-OS default when empty). The schema is initialized or upgraded
// automatically.
func NewDaybookMCPServer(dbPath string, enableWAL bool, syncPragma string) (*DaybookMCPServer, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		"Daybook MCP Server",
		daybook.Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	dbConn, err := pkgdb.OpenDBConnection(resolvedPath, enableWAL, syncPragma)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := pkgdb.UpgradeDB(dbConn, resolvedPath, pkgdb.TargetSchemaVersion); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to initialize/upgrade database schema for '%s': %w", resolvedPath, err)
	}

	return &DaybookMCPServer{
		mcpServer: s,
		db:        dbConn,
		DBPath:    resolvedPath,
	}, nil
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
func (s *DaybookMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// DB returns the underlying *sql.DB.
func (s *DaybookMCPServer) DB() *sql.DB {
	return s.db
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *DaybookMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close cleans up allocated resources.
func (s *DaybookMCPServer) Close() error {
	if s.db != nil {
		// TRUNCATE mode waits for transactions and writes the WAL back to the main DB.
		if _, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: WAL checkpoint failed during close: %v\n", err)
		}
		return s.db.Close()
	}
	return nil
}
