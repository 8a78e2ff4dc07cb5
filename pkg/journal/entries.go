package journal

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
)

const (
	createEntryStatement = `
	INSERT INTO journal_entries (created_at, project, title, description, tags)
	VALUES (?, ?, ?, ?, ?)
	`

	getEntryStatement = `
	SELECT id, created_at, project, title, description, tags
	FROM journal_entries
	WHERE id = ?
	`

	listRecentStatement = `
	SELECT id, created_at, project, title, description, tags
	FROM journal_entries
	`

	deleteEntryStatement = `
	DELETE FROM journal_entries
	WHERE id = ?
	`

	deleteByProjectStatement = `
	DELETE FROM journal_entries
	WHERE project = ?
	`
)

// AddEntry inserts a new journal entry and returns it as stored. created_at
// is assigned here, once, from the local wall clock.
func AddEntry(ctx context.Context, db *sql.DB, title, description, project string, tags []string) (Entry, error) {
	createdAt := FormatTimestamp(time.Now())

	res, err := db.ExecContext(
		ctx,
		createEntryStatement,
		createdAt,
		project,
		title,
		description,
		JoinTags(tags),
	)
	if err != nil {
		return Entry{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, err
	}

	return GetEntry(ctx, db, id)
}

// GetEntry retrieves a single entry by its integer id.
func GetEntry(ctx context.Context, db *sql.DB, id int64) (Entry, error) {
	var entry Entry
	var tags string

	err := db.QueryRowContext(ctx, getEntryStatement, id).Scan(
		&entry.ID,
		&entry.CreatedAt,
		&entry.Project,
		&entry.Title,
		&entry.Description,
		&tags,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrEntryNotFound
		}
		return Entry{}, err
	}

	entry.Tags = SplitTags(tags)
	return entry, nil
}

// ListRecent returns the newest entries first, optionally restricted to a
// project (exact match), truncated to limit.
func ListRecent(ctx context.Context, db *sql.DB, project string, limit int) ([]Entry, error) {
	query := listRecentStatement
	var args []interface{}

	if project != "" {
		query += " WHERE project = ?"
		args = append(args, project)
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// DeleteEntry removes an entry by id. Returns ErrEntryNotFound if no row
// matched.
func DeleteEntry(ctx context.Context, db *sql.DB, id int64) error {
	res, err := db.ExecContext(ctx, deleteEntryStatement, id)
	if err != nil {
		return err
	}

	rowsAffected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// DeleteByProject removes every entry whose project equals the given name
// exactly (case-sensitive) and reports how many were removed.
func DeleteByProject(ctx context.Context, db *sql.DB, project string) (int64, error) {
	res, err := db.ExecContext(ctx, deleteByProjectStatement, project)
	if err != nil {
		return 0, err
	}

	return res.RowsAffected()
}

// scanEntries drains rows produced by any SELECT over the full column set.
func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		var tags string

		err := rows.Scan(
			&entry.ID,
			&entry.CreatedAt,
			&entry.Project,
			&entry.Title,
			&entry.Description,
			&tags,
		)
		if err != nil {
			return nil, err
		}

		entry.Tags = SplitTags(tags)
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}
