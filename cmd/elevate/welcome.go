// ABOUTME: First-run onboarding command.
// ABOUTME: Shows the tour once, then records that the user has seen it.
package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	welcomeReset bool
	welcomeForce bool
)

const welcomeTour = `Elevate keeps your strength training in one place.

  1. Create an account:    elevate auth signup you@example.com
  2. Pick a routine:       elevate routine list
  3. Start lifting:        elevate workout start --routine routine1
  4. Watch the trend:      elevate progress

Browse the %d exercises in the catalog with 'elevate exercise list'.`

var welcomeCmd = public(&cobra.Command{
	Use:   "welcome",
	Short: "Show the first-run tour",
	Long: `Show the getting-started tour. It is shown in full the first time only;
afterwards a one-line reminder is printed unless --force is given.

Use --reset to see the tour again on the next run.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if welcomeReset {
			if err := prefStore.SetFirstTimeUser(true); err != nil {
				return fmt.Errorf("failed to reset onboarding: %w", err)
			}
			fmt.Fprintln(out, "The tour will be shown again on the next 'elevate welcome'.")
			return nil
		}

		first, err := prefStore.FirstTimeUser()
		if err != nil {
			logger.Warn("could not read onboarding flag", "err", err)
		}
		if !first && !welcomeForce {
			fmt.Fprintln(out, "Welcome back. Run 'elevate --help' for commands.")
			return nil
		}

		fmt.Fprintln(out, color.New(color.Bold).Sprint("Welcome to Elevate!"))
		fmt.Fprintln(out)
		fmt.Fprintf(out, welcomeTour+"\n", len(exercises.All()))

		if err := prefStore.SetFirstTimeUser(false); err != nil {
			return fmt.Errorf("failed to save onboarding: %w", err)
		}
		return nil
	},
})

func init() {
	welcomeCmd.Flags().BoolVar(&welcomeReset, "reset", false, "show the tour again next time")
	welcomeCmd.Flags().BoolVar(&welcomeForce, "force", false, "show the tour even if already seen")
	rootCmd.AddCommand(welcomeCmd)
}
