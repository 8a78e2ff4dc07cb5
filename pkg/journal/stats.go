package journal

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	listProjectsStatement = `
	SELECT project, COUNT(*) as count
	FROM journal_entries
	WHERE project != ''
	GROUP BY project
	ORDER BY count DESC, project ASC
	`

	statsStatement = `
	SELECT
		COUNT(*),
		IFNULL(MIN(created_at), ''),
		IFNULL(MAX(created_at), ''),
		COUNT(DISTINCT CASE WHEN project != '' THEN project END)
	FROM journal_entries
	`
)

// ListProjects returns every non-empty project with its entry count, most
// entries first.
func ListProjects(ctx context.Context, db *sql.DB) ([]ProjectCount, error) {
	rows, err := db.QueryContext(ctx, listProjectsStatement)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []ProjectCount
	for rows.Next() {
		var pc ProjectCount
		if err := rows.Scan(&pc.Project, &pc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan project row: %w", err)
		}
		projects = append(projects, pc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating over project rows: %w", err)
	}

	return projects, nil
}

// GetStats aggregates journal-wide statistics: entry count, first/last
// creation timestamps, and per-project counts.
func GetStats(ctx context.Context, db *sql.DB) (Stats, error) {
	var stats Stats

	err := db.QueryRowContext(ctx, statsStatement).Scan(
		&stats.TotalEntries,
		&stats.FirstEntry,
		&stats.LastEntry,
		&stats.TotalProjects,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to aggregate stats: %w", err)
	}

	stats.PerProject, err = ListProjects(ctx, db)
	if err != nil {
		return Stats{}, err
	}

	return stats, nil
}
