package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	daybook "github.com/daybook-ai/daybook/pkg"
	pkgdb "github.com/daybook-ai/daybook/pkg/db"
	"github.com/daybook-ai/daybook/pkg/utils"
)

var (
	dbPath   string
	walMode  bool
	syncMode string
)

var rootCmd = &cobra.Command{
	Use:     "daybook",
	Short:   "A personal work journal for you and your AI assistants.",
	Long:    ``,
	Version: fmt.Sprintf("v%s", daybook.Version),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for daybook.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(daybook completion bash)

  Bash (persist):
    $ daybook completion bash > /etc/bash_completion.d/daybook

  Zsh:
    $ daybook completion zsh > "${fpath[1]}/_daybook"

  Fish:
    $ daybook completion fish | source
    $ daybook completion fish > ~/.config/fish/completions/daybook.fish

  PowerShell:
    PS> daybook completion powershell | Out-String | Invoke-Expression`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of daybook",
	Long:  `All software has versions. This is daybook's`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(daybook.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the daybook database",
	Long:  `Provides commands for managing the daybook SQLite database, including schema upgrades.`,
}

var dbUpgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Upgrade the daybook database schema to the latest version for the journaldb component",
	Long: `Connects to the SQLite database at the specified path (or the system default) and applies
any necessary schema migrations to bring the journaldb component up to the current
application schema version. If the database does not exist or is uninitialized for this
component, it will be created and initialized with the latest schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
		if err != nil {
			return err
		}

		fmt.Printf("Attempting to upgrade journaldb component in database at: %s (WAL: %t, Sync: %s)\n", resolvedPath, walMode, syncMode)

		dbConn, err := pkgdb.OpenDBConnection(resolvedPath, walMode, syncMode)
		if err != nil {
			return err
		}
		defer dbConn.Close()

		return pkgdb.UpgradeDB(dbConn, resolvedPath, pkgdb.TargetSchemaVersion)
	},
}

func initCmd() {
	// Persistent DB flags on rootCmd so all commands can use them.
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the database file (uses system-specific default if not provided)")
	rootCmd.PersistentFlags().BoolVar(&walMode, "wal", false, "Enable SQLite WAL (Write-Ahead Logging) mode (default: false)")
	rootCmd.PersistentFlags().StringVar(&syncMode, "sync", "FULL", "SQLite synchronous pragma (OFF, NORMAL, FULL, EXTRA) (default: FULL)")

	dbCmd.AddCommand(dbUpgradeCmd)

	initEntriesCmd()
	initSearchCmd()
	initProjectsCmd()
	initTransferCmd()
	rootCmd.AddCommand(
		completionCmd,
		versionCmd,
		dbCmd,
		addCmd,
		getCmd,
		recentCmd,
		deleteCmd,
		searchCmd,
		timeCmd,
		projectsCmd,
		statsCmd,
		deleteProjectCmd,
		importCmd,
		exportCmd,
		mcpCmd,
	)
}

func main() {
	initCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
