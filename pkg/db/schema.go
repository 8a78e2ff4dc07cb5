package db

const (
	// SchemaV1 defines the SQL statements for version 1 of the database schema.
	// This schema pertains to the 'journaldb' component.
	//
	// created_at is assigned by the application as an ISO-8601 local timestamp
	// (see journal.TimestampLayout) so that string comparison orders entries
	// chronologically. tags is a single comma-joined string; '' means no tags.
	SchemaV1 = `
CREATE TABLE IF NOT EXISTS daybook_versions (
    component TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    created_at REAL DEFAULT (unixepoch())
);

CREATE TABLE IF NOT EXISTS journal_entries (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TEXT NOT NULL,
    project TEXT NOT NULL DEFAULT '',
    title TEXT NOT NULL,
    description TEXT NOT NULL,
    tags TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_journal_entries_created_at
    ON journal_entries(created_at);

CREATE INDEX IF NOT EXISTS idx_journal_entries_project
    ON journal_entries(project);
`
)
