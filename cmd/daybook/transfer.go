package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybook-ai/daybook/pkg/journal"
)

var importCmd = &cobra.Command{
	Use:   "import [source-db]",
	Short: "Import entries from another journal database",
	Long: `Import entries from another daybook database file. Entries whose creation
timestamp, title, and description all match an existing entry are skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		imported, err := journal.ImportFromDB(cmd.Context(), dbConn, args[0])
		if errors.Is(err, journal.ErrSourceNotFound) {
			return fmt.Errorf("source database not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}

		fmt.Printf("Imported %d new entries from %s.\n", imported, args[0])
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [dest-db]",
	Short: "Export the journal to a database file",
	Long: `Export the whole journal to a new SQLite database file for sharing or backup.
Without an argument the export goes to journal_export_TIMESTAMP.db in the
current directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		destPath := ""
		if len(args) == 1 {
			destPath = args[0]
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		exportedPath, err := journal.ExportToDB(cmd.Context(), dbConn, destPath)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}

		fmt.Printf("Exported journal to %s.\n", exportedPath)
		return nil
	},
}

func initTransferCmd() {}
