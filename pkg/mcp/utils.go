package mcp

import (
	"fmt"
	"strings"

	"github.com/daybook-ai/daybook/pkg/journal"
)

// parseTags splits a comma-separated tag string, trimming whitespace and
// dropping empty segments.
func parseTags(tagsStr string) []string {
	if tagsStr == "" {
		return nil
	}

	var tagsList []string
	for _, tag := range strings.Split(tagsStr, ",") {
		t := strings.TrimSpace(tag)
		if t != "" {
			tagsList = append(tagsList, t)
		}
	}
	return tagsList
}

// formatEntries renders entries as a readable text block for tool responses.
// timeExpr, when non-empty, is echoed in the header.
func formatEntries(entries []journal.Entry, timeExpr string) string {
	var b strings.Builder

	b.WriteString("Journal Entries")
	if timeExpr != "" {
		fmt.Fprintf(&b, " (%s)", timeExpr)
	}
	fmt.Fprintf(&b, ": %d found\n\n", len(entries))

	for _, entry := range entries {
		fmt.Fprintf(&b, "[%d] %s\n", entry.ID, entry.Title)
		b.WriteString(entry.CreatedAt)
		if entry.Project != "" {
			fmt.Fprintf(&b, " | project: %s", entry.Project)
		}
		if len(entry.Tags) > 0 {
			fmt.Fprintf(&b, " | tags: %s", journal.JoinTags(entry.Tags))
		}
		fmt.Fprintf(&b, "\n%s\n\n", entry.Description)
	}

	return b.String()
}

// formatStats renders journal statistics as a readable text block.
func formatStats(stats journal.Stats) string {
	var b strings.Builder

	b.WriteString("Journal Statistics:\n\n")
	fmt.Fprintf(&b, "Total Entries: %d\n", stats.TotalEntries)
	fmt.Fprintf(&b, "First Entry: %s\n", orNA(stats.FirstEntry))
	fmt.Fprintf(&b, "Last Entry: %s\n", orNA(stats.LastEntry))
	fmt.Fprintf(&b, "Total Projects: %d\n", stats.TotalProjects)

	b.WriteString("\nEntries per Project:\n")
	if len(stats.PerProject) == 0 {
		b.WriteString("No projects tracked\n")
	} else {
		for _, p := range stats.PerProject {
			fmt.Fprintf(&b, "- %s: %d\n", p.Project, p.Count)
		}
	}

	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
