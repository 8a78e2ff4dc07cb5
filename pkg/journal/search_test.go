package journal

import (
	"context"
	"database/sql"
	"testing"
	"time"
)

// seedSearchEntries loads a small fixture set with controlled timestamps and
// returns the DB. Entry ids ascend with creation time.
func seedSearchEntries(t *testing.T, ctx context.Context) *sql.DB {
	t.Helper()
	testDB := setupTestDB(t)

	insertEntryAt(t, ctx, testDB, "2024-03-04T10:00:00.000000", "webapp",
		"Fixed user authentication", "Resolved the OAuth token refresh loop.", "bugfix,auth")
	insertEntryAt(t, ctx, testDB, "2024-03-05T11:00:00.000000", "webapp",
		"Redis caching layer", "Added a cache in front of the session store.", "api,redis")
	insertEntryAt(t, ctx, testDB, "2024-03-12T09:30:00.000000", "infra",
		"Cluster upgrade", "Rolled the redis-cluster nodes to the new version.", "redis-cluster")
	insertEntryAt(t, ctx, testDB, "2024-03-14T16:00:00.000000", "webapp",
		"Auth fix follow-up", "Second fix for the auth token expiry edge case.", "auth")

	return testDB
}

func titlesOf(entries []Entry) []string {
	titles := make([]string, len(entries))
	for i, e := range entries {
		titles[i] = e.Title
	}
	return titles
}

func TestSearchEntriesIDLookup(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	entry, err := AddEntry(ctx, testDB, "Target", "Direct fetch.", "webapp", nil)
	if err != nil {
		t.Fatalf("AddEntry failed: %v", err)
	}

	plan := FilterPlan{EntryID: entry.ID, IDLookup: true}
	results, err := SearchEntries(ctx, testDB, plan, "", 20)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(results) != 1 || results[0].ID != entry.ID {
		t.Errorf("Expected exactly the target entry, got %v", results)
	}

	// The lookup ignores the project filter entirely.
	results, err = SearchEntries(ctx, testDB, plan, "some-other-project", 20)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("Expected project filter to be ignored on ID lookup, got %v", results)
	}

	// A missing id is an empty result, not an error.
	missing := FilterPlan{EntryID: entry.ID + 1000, IDLookup: true}
	results, err = SearchEntries(ctx, testDB, missing, "", 20)
	if err != nil {
		t.Fatalf("SearchEntries failed for missing id: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected empty result for missing id, got %v", results)
	}
}

func TestSearchEntriesTagMatchesWholeTagOnly(t *testing.T) {
	ctx := context.Background()
	testDB := seedSearchEntries(t, ctx)

	// 'redis' matches the stored tag 'redis' but not 'redis-cluster'.
	plan := FilterPlan{Tags: []string{"redis"}}
	results, err := SearchEntries(ctx, testDB, plan, "", 20)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Redis caching layer" {
		t.Errorf("Expected only the caching entry, got %v", titlesOf(results))
	}

	// 'red' is a prefix of a tag, not a tag; no matches.
	plan = FilterPlan{Tags: []string{"red"}}
	results, err = SearchEntries(ctx, testDB, plan, "", 20)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no matches for partial tag 'red', got %v", titlesOf(results))
	}

	// Leading, trailing, and single-element positions all match.
	plan = FilterPlan{Tags: []string{"auth"}}
	results, err = SearchEntries(ctx, testDB, plan, "", 20)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 entries tagged auth, got %v", titlesOf(results))
	}
}

func TestSearchEntriesMultipleTagsAND(t *testing.T) {
	ctx := context.Background()
	testDB := seedSearchEntries(t, ctx)

	plan := FilterPlan{Tags: []string{"api", "redis"}}
	results, err := SearchEntries(ctx, testDB, plan, "", 20)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Redis caching layer" {
		t.Errorf("Expected only the entry carrying both tags, got %v", titlesOf(results))
	}
}

func TestSearchEntriesKeywordsAND(t *testing.T) {
	ctx := context.Background()
	testDB := seedSearchEntries(t, ctx)

	plan := FilterPlan{Keywords: []string{"auth", "token"}}
	results, err := SearchEntries(ctx, testDB, plan, "", 20)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	// Both auth entries mention tokens; the redis ones do not.
	if len(results) != 2 {
		t.Errorf("Expected 2 entries matching both keywords, got %v", titlesOf(results))
	}

	plan = FilterPlan{Keywords: []string{"auth", "cluster"}}
	results, err = SearchEntries(ctx, testDB, plan, "", 20)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no entry matching both keywords, got %v", titlesOf(results))
	}
}

func TestSearchEntriesKeywordReachesTags(t *testing.T) {
	ctx := context.Background()
	testDB := seedSearchEntries(t, ctx)

	// 'bugfix' appears only in a tag, and keywords search tags too.
	plan := FilterPlan{Keywords: []string{"bugfix"}}
	results, err := SearchEntries(ctx, testDB, plan, "", 20)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Fixed user authentication" {
		t.Errorf("Expected the bugfix-tagged entry, got %v", titlesOf(results))
	}
}

func TestSearchEntriesPhraseSkipsTags(t *testing.T) {
	ctx := context.Background()
	testDB := seedSearchEntries(t, ctx)

	// Phrases match title and description, case-insensitively.
	plan := FilterPlan{Phrases: []string{"oauth token"}}
	results, err := SearchEntries(ctx, testDB, plan, "", 20)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Fixed user authentication" {
		t.Errorf("Expected the OAuth entry, got %v", titlesOf(results))
	}

	// A phrase that only occurs in tags does not match.
	plan = FilterPlan{Phrases: []string{"bugfix"}}
	results, err = SearchEntries(ctx, testDB, plan, "", 20)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no phrase match inside tags, got %v", titlesOf(results))
	}
}

func TestSearchEntriesTimeRange(t *testing.T) {
	ctx := context.Background()
	testDB := seedSearchEntries(t, ctx)

	start := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 10, 23, 59, 59, 999999000, time.UTC)
	plan := FilterPlan{HasTimeRange: true, RangeStart: start, RangeEnd: end}

	results, err := SearchEntries(ctx, testDB, plan, "", 20)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected the 2 entries created March 4-10, got %v", titlesOf(results))
	}
}

func TestSearchEntriesProjectAndLimit(t *testing.T) {
	ctx := context.Background()
	testDB := seedSearchEntries(t, ctx)

	results, err := SearchEntries(ctx, testDB, FilterPlan{}, "webapp", 20)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 webapp entries, got %v", titlesOf(results))
	}

	// Newest first.
	if results[0].Title != "Auth fix follow-up" {
		t.Errorf("Expected newest entry first, got '%s'", results[0].Title)
	}

	// Limit silently truncates.
	results, err = SearchEntries(ctx, testDB, FilterPlan{}, "webapp", 1)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Auth fix follow-up" {
		t.Errorf("Expected only the newest webapp entry, got %v", titlesOf(results))
	}
}

func TestSearchEntriesCombinedClauses(t *testing.T) {
	ctx := context.Background()
	testDB := seedSearchEntries(t, ctx)

	start := time.Date(2024, time.March, 11, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 17, 23, 59, 59, 999999000, time.UTC)
	plan := FilterPlan{
		Tags:         []string{"auth"},
		Keywords:     []string{"expiry"},
		HasTimeRange: true,
		RangeStart:   start,
		RangeEnd:     end,
	}

	results, err := SearchEntries(ctx, testDB, plan, "webapp", 20)
	if err != nil {
		t.Fatalf("SearchEntries failed: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Auth fix follow-up" {
		t.Errorf("Expected only the follow-up entry, got %v", titlesOf(results))
	}
}

func TestQueryTimeRange(t *testing.T) {
	ctx := context.Background()
	testDB := seedSearchEntries(t, ctx)

	start := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 31, 23, 59, 59, 999999000, time.UTC)

	results, err := QueryTimeRange(ctx, testDB, start, end, "", "")
	if err != nil {
		t.Fatalf("QueryTimeRange failed: %v", err)
	}
	if len(results) != 4 {
		t.Fatalf("Expected all 4 entries in March, got %v", titlesOf(results))
	}
	if results[0].Title != "Auth fix follow-up" {
		t.Errorf("Expected newest entry first, got '%s'", results[0].Title)
	}

	// Text filter narrows within the range, reaching tags too.
	results, err = QueryTimeRange(ctx, testDB, start, end, "redis", "")
	if err != nil {
		t.Fatalf("QueryTimeRange with filter failed: %v", err)
	}
	if len(results) != 2 {
		t.Errorf("Expected 2 redis entries, got %v", titlesOf(results))
	}

	// Project narrows further.
	results, err = QueryTimeRange(ctx, testDB, start, end, "redis", "infra")
	if err != nil {
		t.Fatalf("QueryTimeRange with project failed: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Cluster upgrade" {
		t.Errorf("Expected only the infra entry, got %v", titlesOf(results))
	}

	// An empty window yields no entries.
	empty := time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
	results, err = QueryTimeRange(ctx, testDB, empty, empty.Add(24*time.Hour), "", "")
	if err != nil {
		t.Fatalf("QueryTimeRange failed: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("Expected no entries in 2023, got %v", titlesOf(results))
	}
}
