package main

import (
	"database/sql"
	"fmt"

	pkgdb "github.com/daybook-ai/daybook/pkg/db"
	"github.com/daybook-ai/daybook/pkg/journal"
	"github.com/daybook-ai/daybook/pkg/utils"
)

// openDB resolves the database path (per-OS default when --db is absent),
// opens the connection, and auto-migrates the schema so a fresh database
// works on first use.
func openDB() (*sql.DB, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}

	dbConn, err := pkgdb.OpenDBConnection(resolvedPath, walMode, syncMode)
	if err != nil {
		return nil, err
	}

	if err := pkgdb.UpgradeDB(dbConn, resolvedPath, pkgdb.TargetSchemaVersion); err != nil {
		dbConn.Close()
		return nil, err
	}

	return dbConn, nil
}

func printEntry(entry journal.Entry) {
	fmt.Println("Entry Details:")
	fmt.Printf("ID:          %d\n", entry.ID)
	fmt.Printf("Created At:  %s\n", entry.CreatedAt)
	if entry.Project != "" {
		fmt.Printf("Project:     %s\n", entry.Project)
	}
	fmt.Printf("Title:       %s\n", entry.Title)
	if len(entry.Tags) > 0 {
		fmt.Printf("Tags:        %s\n", journal.JoinTags(entry.Tags))
	}
	fmt.Println("\nDescription:")
	fmt.Println("------------------------------------------------------------")
	fmt.Println(entry.Description)
	fmt.Println("------------------------------------------------------------")
}

func printEntryList(entries []journal.Entry) {
	fmt.Println("ID | Created At | Project | Title | Tags")
	fmt.Println("------------------------------------------------------------")
	for _, e := range entries {
		project := e.Project
		if project == "" {
			project = "-"
		}
		tags := journal.JoinTags(e.Tags)
		if tags == "" {
			tags = "-"
		}
		fmt.Printf("%d | %s | %s | %s | %s\n", e.ID, e.CreatedAt, project, e.Title, tags)
	}
}
