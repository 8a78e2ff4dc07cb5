package journal

import (
	"strings"
	"time"
)

// TimestampLayout is the storage format for created_at. Fixed width with
// zero-padded microseconds, so lexicographic comparison of stored strings
// matches chronological order. Timestamps are local wall-clock time.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Entry is one journal record. IDs are assigned by SQLite AUTOINCREMENT and
// are never reused; created_at is set once at creation and never changes.
type Entry struct {
	ID          int64    `json:"id"`
	CreatedAt   string   `json:"created_at"`
	Project     string   `json:"project,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// ProjectCount pairs a project name with its entry count.
type ProjectCount struct {
	Project string `json:"project"`
	Count   int64  `json:"count"`
}

// Stats summarizes the whole journal.
type Stats struct {
	TotalEntries  int64          `json:"total_entries"`
	FirstEntry    string         `json:"first_entry,omitempty"`
	LastEntry     string         `json:"last_entry,omitempty"`
	TotalProjects int64          `json:"total_projects"`
	PerProject    []ProjectCount `json:"entries_per_project,omitempty"`
}

// JoinTags serializes a tag list to the stored comma-joined form. Order and
// duplicates are preserved. A tag containing a comma would corrupt the stored
// form (and the tag-match contract in search); storage does not reject it.
func JoinTags(tags []string) string {
	return strings.Join(tags, ",")
}

// SplitTags is the inverse of JoinTags. An empty stored value means no tags.
func SplitTags(stored string) []string {
	if stored == "" {
		return nil
	}
	return strings.Split(stored, ",")
}

// FormatTimestamp renders t in the storage layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
