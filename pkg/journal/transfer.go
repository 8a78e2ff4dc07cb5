package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrSourceNotFound reports a missing import source database.
var ErrSourceNotFound = errors.New("source database not found")

// importStatement copies rows from the attached source, skipping any whose
// (created_at, title, description) triple already exists. IFNULL tolerates
// source databases that stored NULL for absent project/tags.
const importStatement = `
INSERT INTO journal_entries (created_at, project, title, description, tags)
SELECT s.created_at, IFNULL(s.project, ''), s.title, s.description, IFNULL(s.tags, '')
FROM source.journal_entries s
WHERE NOT EXISTS (
    SELECT 1 FROM journal_entries j
    WHERE j.created_at = s.created_at
    AND j.title = s.title
    AND j.description = s.description
)
`

// ImportFromDB merges entries from another journal database file into db,
// suppressing duplicates, and reports how many rows were imported. A missing
// source file yields ErrSourceNotFound.
func ImportFromDB(ctx context.Context, db *sql.DB, sourcePath string) (int64, error) {
	path := expandHomePath(sourcePath)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return 0, fmt.Errorf("failed to stat source database '%s': %w", path, err)
	}

	if _, err := db.ExecContext(ctx, "ATTACH DATABASE ? AS source;", path); err != nil {
		return 0, fmt.Errorf("failed to attach source database '%s': %w", path, err)
	}

	res, execErr := db.ExecContext(ctx, importStatement)

	if _, err := db.ExecContext(ctx, "DETACH DATABASE source;"); err != nil && execErr == nil {
		return 0, fmt.Errorf("failed to detach source database: %w", err)
	}

	if execErr != nil {
		return 0, fmt.Errorf("failed to import entries from '%s': %w", path, execErr)
	}

	return res.RowsAffected()
}

// ExportToDB writes the whole journal to a new database file via VACUUM INTO
// and returns the path written. An empty destPath defaults to
// journal_export_<timestamp>.db in the working directory.
func ExportToDB(ctx context.Context, db *sql.DB, destPath string) (string, error) {
	if destPath == "" {
		destPath = fmt.Sprintf("journal_export_%s.db", time.Now().Format("20060102_150405"))
	}
	path := expandHomePath(destPath)

	if _, err := db.ExecContext(ctx, "VACUUM INTO ?;", path); err != nil {
		return "", fmt.Errorf("failed to export journal to '%s': %w", path, err)
	}

	return path, nil
}

func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if homeDir, err := os.UserHomeDir(); err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
