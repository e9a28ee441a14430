// ABOUTME: CLI command for copying data between storage backends.
// ABOUTME: Moves accounts, routines and workouts from sqlite to markdown or back.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/elevate/internal/config"
	"github.com/harperreed/elevate/internal/storage"
)

var (
	migrateTo     string
	migrateDest   string
	migrateDryRun bool
	migrateSwitch bool
)

var migrateCmd = public(&cobra.Command{
	Use:   "migrate",
	Short: "Copy data to another storage backend",
	Long: `Copy every account, routine and workout from the current backend to
another one.

The destination directory must be empty or missing; migrate never merges
into existing data. Your current data is left untouched.

USAGE:

  elevate migrate --to markdown --dest ~/elevate-md --dry-run
  elevate migrate --to markdown --dest ~/elevate-md
  elevate migrate --to sqlite --dest ~/elevate-db --switch

With --switch the config file is updated to use the new backend and
directory once the copy succeeds.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if migrateTo != config.BackendSQLite && migrateTo != config.BackendMarkdown {
			return fmt.Errorf("unknown backend: %q (use sqlite or markdown)", migrateTo)
		}
		if migrateDest == "" {
			return fmt.Errorf("--dest is required")
		}
		dest := config.ExpandPath(migrateDest)
		if dest == cfg.GetDataDir() {
			return fmt.Errorf("destination is the current data directory")
		}

		nonEmpty, err := storage.IsDirNonEmpty(dest)
		if err != nil {
			return err
		}
		if nonEmpty {
			return fmt.Errorf("destination %s is not empty", dest)
		}

		if migrateDryRun {
			color.New(color.FgYellow).Fprintln(out, "Dry run mode - no changes will be made")
			accounts, err := repo.ListAccounts()
			if err != nil {
				return err
			}
			routines, err := repo.ListRoutines()
			if err != nil {
				return err
			}
			workouts, err := repo.ListWorkouts(0)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Would copy %d accounts, %d routines, %d workouts\n",
				len(accounts), len(routines), len(workouts))
			fmt.Fprintf(out, "  from %s (%s)\n  to   %s (%s)\n",
				cfg.GetDataDir(), cfg.GetBackend(), dest, migrateTo)
			return nil
		}

		dst, err := config.OpenBackend(migrateTo, dest)
		if err != nil {
			return fmt.Errorf("failed to open destination: %w", err)
		}
		summary, err := storage.MigrateData(repo, dst)
		if cerr := dst.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		color.New(color.FgGreen).Fprintf(out, "✓ Migrated to %s\n", dest)
		fmt.Fprintf(out, "  Accounts: %d\n", summary.Accounts)
		fmt.Fprintf(out, "  Routines: %d\n", summary.Routines)
		fmt.Fprintf(out, "  Workouts: %d\n", summary.Workouts)

		if migrateSwitch {
			next := &config.Config{Backend: migrateTo, DataDir: dest}
			if err := next.Save(); err != nil {
				return fmt.Errorf("failed to update config: %w", err)
			}
			fmt.Fprintf(out, "  Config now uses %s at %s\n", migrateTo, dest)
		}
		return nil
	},
})

func init() {
	migrateCmd.Flags().StringVar(&migrateTo, "to", config.BackendMarkdown, "destination backend (sqlite or markdown)")
	migrateCmd.Flags().StringVar(&migrateDest, "dest", "", "destination data directory")
	migrateCmd.Flags().BoolVar(&migrateDryRun, "dry-run", false, "preview migration without making changes")
	migrateCmd.Flags().BoolVar(&migrateSwitch, "switch", false, "point the config at the new backend afterwards")
	rootCmd.AddCommand(migrateCmd)
}
