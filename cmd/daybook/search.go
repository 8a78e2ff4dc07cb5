package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/daybook-ai/daybook/pkg/journal"
)

var (
	searchProjectFlag string
	searchLimitFlag   int
	timeQueryFlag     string
	timeProjectFlag   string
)

var searchCmd = &cobra.Command{
	Use:   "search [query...]",
	Short: "Search journal entries",
	Long: `Search journal entries with the full query syntax: ID lookup (42 or id:42),
tag filters (tag:name or #name), exact phrases ("some phrase"), natural-language
time expressions (last week, january 2024), and plain keywords. All filters
combine with AND.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires a search query")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		plan := journal.CompileQuery(query, time.Now())
		entries, err := journal.SearchEntries(cmd.Context(), dbConn, plan, searchProjectFlag, searchLimitFlag)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(entries) == 0 {
			fmt.Printf("No entries found matching '%s'.\n", query)
			return nil
		}

		fmt.Printf("Found %d matching entries:\n", len(entries))
		printEntryList(entries)
		return nil
	},
}

var timeCmd = &cobra.Command{
	Use:   "time [expression...]",
	Short: "Find entries by time period",
	Long: `Find entries within a natural-language time period such as 'last week',
'yesterday', 'january 2024', 'last 3 days', or an ISO date like 2024-01-15.`,
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires a time expression")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		expression := strings.Join(args, " ")

		dbConn, err := openDB()
		if err != nil {
			return err
		}
		defer dbConn.Close()

		start, end := journal.ResolveTimeRange(expression, time.Now())

		entries, err := journal.QueryTimeRange(cmd.Context(), dbConn, start, end, timeQueryFlag, timeProjectFlag)
		if err != nil {
			return fmt.Errorf("time query failed: %w", err)
		}

		if len(entries) == 0 {
			fmt.Printf("No entries found for '%s'.\n", expression)
			return nil
		}

		fmt.Printf("Found %d entries for '%s' (%s .. %s):\n",
			len(entries), expression, journal.FormatTimestamp(start), journal.FormatTimestamp(end))
		printEntryList(entries)
		return nil
	},
}

func initSearchCmd() {
	searchCmd.Flags().StringVar(&searchProjectFlag, "project", "", "Only search entries for this project")
	searchCmd.Flags().IntVar(&searchLimitFlag, "limit", 20, "Maximum number of results")

	timeCmd.Flags().StringVar(&timeQueryFlag, "query", "", "Text filter within the time range")
	timeCmd.Flags().StringVar(&timeProjectFlag, "project", "", "Only list entries for this project")
}
