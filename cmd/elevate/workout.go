// ABOUTME: CLI commands for workouts: start a live session, browse history, delete.
// ABOUTME: Finished sessions are saved to the configured storage backend.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/elevate/internal/calc"
	"github.com/harperreed/elevate/internal/models"
	"github.com/harperreed/elevate/internal/notify"
	"github.com/harperreed/elevate/internal/session"
	"github.com/harperreed/elevate/internal/storage"
)

var (
	workoutRoutine string
	workoutName    string
	workoutLimit   int
)

var workoutCmd = &cobra.Command{
	Use:     "workout",
	Aliases: []string{"w"},
	Short:   "Log and review workouts",
	Long: `Log a workout live and review the ones you've finished.

WORKFLOW:

  1. Start a workout:     elevate workout start --routine routine1
  2. Log your sets:       weight 60, reps 8, done, set, ...
  3. Finish and save:     finish
  4. Review it later:     elevate workout show abc123

COMMANDS:

  start    Start a live workout, empty or from a routine
  list     List finished workouts, newest first
  show     Show a workout's exercises and sets
  delete   Delete a workout

The duration timer runs while the session is open. Ending input (Ctrl-D)
or interrupting (Ctrl-C) abandons the workout without saving.`,
}

var workoutStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a live workout",
	Long: `Start a live workout session and log it interactively.

Examples:
  elevate workout start
  elevate workout start --routine routine1
  elevate workout start --name "Morning lift"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		n := notifier(cmd)
		opts := []session.Option{
			session.WithNotifier(n),
			session.WithExercises(exercises),
			session.WithLogger(logger),
		}

		var sess *session.Session
		if workoutRoutine != "" {
			r, err := findRoutine(workoutRoutine)
			if err != nil {
				return err
			}
			n.Notify("Starting workout", fmt.Sprintf("Starting %s routine", r.Name), notify.Info)
			sess = session.NewFromRoutine(*r, opts...)
		} else {
			sess = session.New(opts...)
		}
		defer sess.Close()

		if err := sess.Rename(workoutName); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()
		if err := sess.Start(ctx); err != nil {
			return err
		}

		w, err := runLive(ctx, sess, cmd.InOrStdin(), out)
		if err != nil && ctx.Err() == nil {
			return err
		}
		if w == nil {
			return nil
		}

		return saveWorkout(out, repo, w, os.TempDir())
	},
}

// saveWorkout stores a finished workout. When the save fails the workout is
// written to dir in export format, or printed if that fails too, so it can
// be restored with 'elevate import'.
func saveWorkout(out io.Writer, r storage.Repository, w *models.Workout, dir string) error {
	saveErr := r.CreateWorkout(w)
	if saveErr == nil {
		fmt.Fprintf(out, "  ID: %s\n", models.ShortID(w.ID))
		return nil
	}

	raw, err := storage.ExportWorkoutJSON(w)
	if err != nil {
		return fmt.Errorf("failed to save workout: %w", errors.Join(saveErr, err))
	}
	path := filepath.Join(dir, fmt.Sprintf("elevate-workout-%s.json", models.ShortID(w.ID)))
	if err := os.WriteFile(path, raw, 0600); err != nil {
		logger.Warn("could not write recovery file", "path", path, "err", err)
		color.New(color.FgRed).Fprintln(out, "✗ Workout not saved. Copy the JSON below and run 'elevate import <file>':")
		fmt.Fprintln(out, string(raw))
		return fmt.Errorf("failed to save workout: %w", saveErr)
	}

	color.New(color.FgRed).Fprintf(out, "✗ Workout not saved. Recover it with: elevate import %s\n", path)
	return fmt.Errorf("failed to save workout: %w", saveErr)
}

var workoutListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List workouts",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workouts, err := repo.ListWorkouts(workoutLimit)
		if err != nil {
			return fmt.Errorf("failed to list workouts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(workouts) == 0 {
			fmt.Fprintln(out, "No workouts found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, w := range workouts {
			fmt.Fprintf(out, "%s %s %s %s\n",
				faint.Sprint(models.ShortID(w.ID)),
				faint.Sprint(w.Date.Local().Format("2006-01-02 15:04")),
				padRight(truncate(w.Name, 24), 24),
				faint.Sprintf("%-8s %d exercises  %g kg",
					calc.FormatDuration(w.Duration), len(w.ExerciseSets), calc.TotalVolume(w)))
		}
		return nil
	},
}

var workoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show workout details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := repo.GetWorkout(args[0])
		if err != nil {
			return fmt.Errorf("failed to get workout: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s\n",
			color.New(color.Faint).Sprint(models.ShortID(w.ID)),
			color.New(color.Faint).Sprint(w.Date.Local().Format("2006-01-02 15:04")))
		printWorkout(out, w, -1, nil)
		return nil
	},
}

var workoutDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"del", "rm"},
	Short:   "Delete a workout",
	Long: `Delete a workout by its ID or ID prefix.

The ID prefix is shown in the first column of 'elevate workout list'.
This permanently deletes the workout. If the prefix matches several
workouts, nothing is deleted and an error is returned.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		w, err := repo.GetWorkout(args[0])
		if err != nil {
			return fmt.Errorf("workout not found: %w", err)
		}
		if err := repo.DeleteWorkout(w.ID); err != nil {
			return fmt.Errorf("failed to delete workout: %w", err)
		}

		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted %s\n", w.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n",
			color.New(color.Faint).Sprint(models.ShortID(w.ID)),
			w.Date.Local().Format("2006-01-02 15:04"))
		return nil
	},
}

// contextOf returns cmd's context, or Background when it runs outside Execute.
func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func init() {
	workoutStartCmd.Flags().StringVarP(&workoutRoutine, "routine", "r", "", "routine ID to start from")
	workoutStartCmd.Flags().StringVarP(&workoutName, "name", "n", "", "workout name")
	workoutListCmd.Flags().IntVarP(&workoutLimit, "limit", "n", 20, "max workouts to show (0 for all)")

	workoutCmd.AddCommand(workoutStartCmd)
	workoutCmd.AddCommand(workoutListCmd)
	workoutCmd.AddCommand(workoutShowCmd)
	workoutCmd.AddCommand(workoutDeleteCmd)
	rootCmd.AddCommand(workoutCmd)
}
