package journal

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExportImportRoundTrip(t *testing.T) {
	ctx := context.Background()
	sourceDB := setupTestDB(t)

	insertEntryAt(t, ctx, sourceDB, "2024-03-01T09:00:00.000000", "webapp", "First", "First entry.", "a,b")
	insertEntryAt(t, ctx, sourceDB, "2024-03-02T09:00:00.000000", "infra", "Second", "Second entry.", "")

	exportPath := filepath.Join(t.TempDir(), "export.db")
	written, err := ExportToDB(ctx, sourceDB, exportPath)
	if err != nil {
		t.Fatalf("ExportToDB failed: %v", err)
	}
	if written != exportPath {
		t.Errorf("Expected export path %s, got %s", exportPath, written)
	}

	destDB := setupTestDB(t)
	imported, err := ImportFromDB(ctx, destDB, exportPath)
	if err != nil {
		t.Fatalf("ImportFromDB failed: %v", err)
	}
	if imported != 2 {
		t.Errorf("Expected 2 imported entries, got %d", imported)
	}

	entries, err := ListRecent(ctx, destDB, "", 10)
	if err != nil {
		t.Fatalf("ListRecent failed after import: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries after import, got %d", len(entries))
	}
	if entries[0].Title != "Second" || entries[1].Title != "First" {
		t.Errorf("Imported entries out of order: %s, %s", entries[0].Title, entries[1].Title)
	}
	if entries[1].Project != "webapp" || len(entries[1].Tags) != 2 {
		t.Errorf("Imported entry lost fields: %+v", entries[1])
	}
}

func TestImportSuppressesDuplicates(t *testing.T) {
	ctx := context.Background()
	sourceDB := setupTestDB(t)

	insertEntryAt(t, ctx, sourceDB, "2024-03-01T09:00:00.000000", "webapp", "Shared", "Same everywhere.", "")
	insertEntryAt(t, ctx, sourceDB, "2024-03-02T09:00:00.000000", "webapp", "Unique", "Only in source.", "")

	exportPath := filepath.Join(t.TempDir(), "export.db")
	if _, err := ExportToDB(ctx, sourceDB, exportPath); err != nil {
		t.Fatalf("ExportToDB failed: %v", err)
	}

	destDB := setupTestDB(t)
	// Pre-seed the destination with one entry identical on the duplicate key.
	insertEntryAt(t, ctx, destDB, "2024-03-01T09:00:00.000000", "other-project", "Shared", "Same everywhere.", "x")

	imported, err := ImportFromDB(ctx, destDB, exportPath)
	if err != nil {
		t.Fatalf("ImportFromDB failed: %v", err)
	}
	// Matching (created_at, title, description) suppresses the row even
	// though project and tags differ.
	if imported != 1 {
		t.Errorf("Expected 1 imported entry, got %d", imported)
	}

	// A second import of the same file is a complete no-op.
	imported, err = ImportFromDB(ctx, destDB, exportPath)
	if err != nil {
		t.Fatalf("Second ImportFromDB failed: %v", err)
	}
	if imported != 0 {
		t.Errorf("Expected 0 entries on re-import, got %d", imported)
	}

	entries, err := ListRecent(ctx, destDB, "", 10)
	if err != nil {
		t.Fatalf("ListRecent failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Expected 2 entries total, got %d", len(entries))
	}
}

func TestImportMissingSource(t *testing.T) {
	destDB := setupTestDB(t)

	missing := filepath.Join(t.TempDir(), "does-not-exist.db")
	_, err := ImportFromDB(context.Background(), destDB, missing)
	if !errors.Is(err, ErrSourceNotFound) {
		t.Errorf("Expected ErrSourceNotFound, got: %v", err)
	}
}

func TestExportDefaultPath(t *testing.T) {
	ctx := context.Background()
	sourceDB := setupTestDB(t)

	// Run from a temp dir so the default-named file lands somewhere disposable.
	origDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd failed: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("Chdir failed: %v", err)
	}
	defer os.Chdir(origDir)

	written, err := ExportToDB(ctx, sourceDB, "")
	if err != nil {
		t.Fatalf("ExportToDB with default path failed: %v", err)
	}
	if !strings.HasPrefix(written, "journal_export_") || !strings.HasSuffix(written, ".db") {
		t.Errorf("Expected default export name journal_export_*.db, got %s", written)
	}
}
