package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

const entryColumns = "id, created_at, project, title, description, tags"

// tagMatchCondition matches a filter tag against the stored comma-joined tag
// string: equal to it, leading element, trailing element, or interior
// element. A tag that is merely a substring of a longer tag name must not
// match.
const tagMatchCondition = `(LOWER(tags) = ? OR LOWER(tags) LIKE ? OR LOWER(tags) LIKE ? OR LOWER(tags) LIKE ?)`

// SearchEntries evaluates a compiled FilterPlan against the store. All active
// clauses AND together; project, when non-empty, is an additional exact
// (case-sensitive) constraint. Results come back newest-created first,
// silently truncated to limit.
//
// An ID-lookup plan short-circuits to a primary-key fetch and ignores every
// other filter, including project. A missing id yields an empty result, not
// an error.
func SearchEntries(ctx context.Context, db *sql.DB, plan FilterPlan, project string, limit int) ([]Entry, error) {
	if plan.IDLookup {
		entry, err := GetEntry(ctx, db, plan.EntryID)
		if errors.Is(err, ErrEntryNotFound) {
			return nil, nil
		}
		if err != nil {
			return nil, err
		}
		return []Entry{entry}, nil
	}

	var conds []string
	var args []interface{}

	for _, tag := range plan.Tags {
		lt := strings.ToLower(tag)
		conds = append(conds, tagMatchCondition)
		args = append(args, lt, lt+",%", "%,"+lt, "%,"+lt+",%")
	}

	for _, phrase := range plan.Phrases {
		lp := strings.ToLower(phrase)
		conds = append(conds, "(INSTR(LOWER(title), ?) > 0 OR INSTR(LOWER(description), ?) > 0)")
		args = append(args, lp, lp)
	}

	if plan.HasTimeRange {
		conds = append(conds, "created_at BETWEEN ? AND ?")
		args = append(args, FormatTimestamp(plan.RangeStart), FormatTimestamp(plan.RangeEnd))
	}

	for _, keyword := range plan.Keywords {
		lk := strings.ToLower(keyword)
		conds = append(conds, "(INSTR(LOWER(title), ?) > 0 OR INSTR(LOWER(description), ?) > 0 OR INSTR(LOWER(tags), ?) > 0)")
		args = append(args, lk, lk, lk)
	}

	if project != "" {
		conds = append(conds, "project = ?")
		args = append(args, project)
	}

	query := "SELECT " + entryColumns + " FROM journal_entries"
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

// QueryTimeRange returns entries created within [start, end], optionally
// narrowed by a substring filter over title/description/tags and by an exact
// project match. Newest first, no limit.
func QueryTimeRange(ctx context.Context, db *sql.DB, start, end time.Time, textFilter, project string) ([]Entry, error) {
	query := "SELECT " + entryColumns + " FROM journal_entries WHERE created_at BETWEEN ? AND ?"
	args := []interface{}{FormatTimestamp(start), FormatTimestamp(end)}

	if textFilter != "" {
		needle := strings.ToLower(textFilter)
		query += " AND (INSTR(LOWER(title), ?) > 0 OR INSTR(LOWER(description), ?) > 0 OR INSTR(LOWER(tags), ?) > 0)"
		args = append(args, needle, needle, needle)
	}

	if project != "" {
		query += " AND project = ?"
		args = append(args, project)
	}

	query += " ORDER BY created_at DESC, id DESC"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute time range query: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}
