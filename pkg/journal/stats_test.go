package journal

import (
	"context"
	"reflect"
	"testing"
)

func TestListProjects(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	insertEntryAt(t, ctx, testDB, "2024-03-01T09:00:00.000000", "webapp", "W1", "", "")
	insertEntryAt(t, ctx, testDB, "2024-03-02T09:00:00.000000", "webapp", "W2", "", "")
	insertEntryAt(t, ctx, testDB, "2024-03-03T09:00:00.000000", "api", "A1", "", "")
	insertEntryAt(t, ctx, testDB, "2024-03-04T09:00:00.000000", "", "No project", "", "")

	projects, err := ListProjects(ctx, testDB)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}

	expected := []ProjectCount{
		{Project: "webapp", Count: 2},
		{Project: "api", Count: 1},
	}
	if !reflect.DeepEqual(projects, expected) {
		t.Errorf("Expected projects %v, got %v", expected, projects)
	}
}

func TestListProjectsTiedCountsSortByName(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	insertEntryAt(t, ctx, testDB, "2024-03-01T09:00:00.000000", "zeta", "Z1", "", "")
	insertEntryAt(t, ctx, testDB, "2024-03-02T09:00:00.000000", "alpha", "A1", "", "")

	projects, err := ListProjects(ctx, testDB)
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("Expected 2 projects, got %d", len(projects))
	}
	if projects[0].Project != "alpha" || projects[1].Project != "zeta" {
		t.Errorf("Expected alphabetical order on tied counts, got %v", projects)
	}
}

func TestGetStatsEmpty(t *testing.T) {
	testDB := setupTestDB(t)

	stats, err := GetStats(context.Background(), testDB)
	if err != nil {
		t.Fatalf("GetStats failed on empty journal: %v", err)
	}

	if stats.TotalEntries != 0 {
		t.Errorf("Expected 0 total entries, got %d", stats.TotalEntries)
	}
	if stats.FirstEntry != "" || stats.LastEntry != "" {
		t.Errorf("Expected empty first/last timestamps, got '%s'/'%s'", stats.FirstEntry, stats.LastEntry)
	}
	if stats.TotalProjects != 0 {
		t.Errorf("Expected 0 projects, got %d", stats.TotalProjects)
	}
	if len(stats.PerProject) != 0 {
		t.Errorf("Expected no per-project counts, got %v", stats.PerProject)
	}
}

func TestGetStats(t *testing.T) {
	testDB := setupTestDB(t)
	ctx := context.Background()

	insertEntryAt(t, ctx, testDB, "2024-01-15T08:00:00.000000", "webapp", "Oldest", "", "")
	insertEntryAt(t, ctx, testDB, "2024-02-20T10:30:00.000000", "api", "Middle", "", "")
	insertEntryAt(t, ctx, testDB, "2024-03-05T17:45:00.000000", "", "Newest", "", "")

	stats, err := GetStats(ctx, testDB)
	if err != nil {
		t.Fatalf("GetStats failed: %v", err)
	}

	if stats.TotalEntries != 3 {
		t.Errorf("Expected 3 total entries, got %d", stats.TotalEntries)
	}
	if stats.FirstEntry != "2024-01-15T08:00:00.000000" {
		t.Errorf("Expected first entry timestamp 2024-01-15T08:00:00.000000, got '%s'", stats.FirstEntry)
	}
	if stats.LastEntry != "2024-03-05T17:45:00.000000" {
		t.Errorf("Expected last entry timestamp 2024-03-05T17:45:00.000000, got '%s'", stats.LastEntry)
	}

	// The empty project is not counted as a project.
	if stats.TotalProjects != 2 {
		t.Errorf("Expected 2 projects, got %d", stats.TotalProjects)
	}
	if len(stats.PerProject) != 2 {
		t.Errorf("Expected 2 per-project counts, got %v", stats.PerProject)
	}
}
