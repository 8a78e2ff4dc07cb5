package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/daybook-ai/daybook/pkg/journal"
)

var forceDeleteProjectFlag bool

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List all projects with entry counts",
	Long:  `List every project that has journal entries, together with how many entries each has.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		projects, err := journal.ListProjects(cmd.Context(), dbConn)
		if err != nil {
			return err
		}

		if len(projects) == 0 {
			fmt.Println("No projects found in journal.")
			return nil
		}

		fmt.Println("Projects:")
		for _, p := range projects {
			fmt.Printf("  %s: %d entries\n", p.Project, p.Count)
		}
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show journal statistics",
	Long:  `Show total entry count, first/last entry timestamps, and per-project entry counts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		stats, err := journal.GetStats(cmd.Context(), dbConn)
		if err != nil {
			return err
		}

		fmt.Println("Journal Statistics:")
		fmt.Printf("Total Entries:  %d\n", stats.TotalEntries)
		if stats.FirstEntry != "" {
			fmt.Printf("First Entry:    %s\n", stats.FirstEntry)
			fmt.Printf("Last Entry:     %s\n", stats.LastEntry)
		}
		fmt.Printf("Total Projects: %d\n", stats.TotalProjects)

		if len(stats.PerProject) > 0 {
			fmt.Println("\nEntries per Project:")
			for _, p := range stats.PerProject {
				fmt.Printf("  %s: %d\n", p.Project, p.Count)
			}
		}
		return nil
	},
}

var deleteProjectCmd = &cobra.Command{
	Use:   "delete-project [project]",
	Short: "Delete all entries for a project",
	Long:  `Permanently delete every entry whose project matches the given name exactly.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		project := args[0]

		if !forceDeleteProjectFlag {
			return errors.New("refusing to delete without --force")
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		count, err := journal.DeleteByProject(cmd.Context(), dbConn, project)
		if err != nil {
			return fmt.Errorf("failed to delete entries for project '%s': %w", project, err)
		}

		fmt.Printf("Deleted %d entries for project '%s'.\n", count, project)
		return nil
	},
}

func initProjectsCmd() {
	deleteProjectCmd.Flags().BoolVar(&forceDeleteProjectFlag, "force", false, "Actually delete the entries")
}
