package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/daybook-ai/daybook/pkg/journal"
)

var (
	projectFlag string
	limitFlag   int
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new journal entry",
	Long:  `Add a new journal entry with a title, description, and optional project and tags.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		tagsStr, _ := cmd.Flags().GetString("tags")

		if title == "" {
			return errors.New("entry title is required")
		}
		if description == "" {
			return errors.New("entry description is required")
		}

		var tags []string
		if tagsStr != "" {
			for _, tag := range strings.Split(tagsStr, ",") {
				t := strings.TrimSpace(tag)
				if t != "" {
					tags = append(tags, t)
				}
			}
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, err := journal.AddEntry(cmd.Context(), dbConn, title, description, projectFlag, tags)
		if err != nil {
			return fmt.Errorf("failed to create entry: %w", err)
		}

		printEntry(entry)
		return nil
	},
}

var getCmd = &cobra.Command{
	Use:   "get [entry-id]",
	Short: "Get an entry by ID",
	Long:  `Retrieve an entry by its numeric ID.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid entry ID: %w", err)
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entry, err := journal.GetEntry(cmd.Context(), dbConn, entryID)
		if errors.Is(err, journal.ErrEntryNotFound) {
			return fmt.Errorf("entry not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to get entry: %w", err)
		}

		printEntry(entry)
		return nil
	},
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List the most recent entries",
	Long:  `List the most recent journal entries, newest first, optionally filtered by project.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		entries, err := journal.ListRecent(cmd.Context(), dbConn, projectFlag, limitFlag)
		if err != nil {
			return fmt.Errorf("failed to list entries: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No journal entries found.")
			return nil
		}

		printEntryList(entries)
		return nil
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete [entry-id]",
	Short: "Delete an entry",
	Long:  `Permanently delete an entry by its numeric ID.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		entryID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid entry ID: %w", err)
		}

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		err = journal.DeleteEntry(cmd.Context(), dbConn, entryID)
		if errors.Is(err, journal.ErrEntryNotFound) {
			return fmt.Errorf("entry not found: %s", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to delete entry: %w", err)
		}

		fmt.Printf("Entry %d deleted.\n", entryID)
		return nil
	},
}

func initEntriesCmd() {
	addCmd.Flags().String("title", "", "Title of the entry (required)")
	addCmd.Flags().String("description", "", "Description of the entry (required)")
	addCmd.Flags().StringVar(&projectFlag, "project", "", "Project/repo name for the entry")
	addCmd.Flags().String("tags", "", "Comma-separated list of tags for the entry")
	addCmd.MarkFlagRequired("title")
	addCmd.MarkFlagRequired("description")

	recentCmd.Flags().StringVar(&projectFlag, "project", "", "Only list entries for this project")
	recentCmd.Flags().IntVar(&limitFlag, "limit", 10, "Maximum number of entries to list")
}
