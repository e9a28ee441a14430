// ABOUTME: CLI commands for workout routines.
// ABOUTME: Lists built-in and saved routines; creates and deletes saved ones.
package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/elevate/internal/models"
)

var (
	routineDescription string
	routineExercises   []string
)

var routineCmd = &cobra.Command{
	Use:     "routine",
	Aliases: []string{"r"},
	Short:   "Manage workout routines",
	Long: `Routines are templates for a workout: an ordered list of exercises with
suggested sets and reps. Built-in routines are read-only; routines you
create are saved in your storage backend.

COMMANDS:

  list     List routines
  show     Show a routine's exercises
  create   Save a new routine
  delete   Delete a saved routine

EXAMPLES:

  elevate routine create "Push Day" -e bent-over-row:4:8 -e ez-curl:3:12
  elevate workout start --routine <id>`,
}

var routineListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List routines",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list, err := registry.List()
		if err != nil {
			return fmt.Errorf("failed to list routines: %w", err)
		}

		out := cmd.OutOrStdout()
		faint := color.New(color.Faint)
		for _, r := range list {
			id := r.ID
			if !registry.IsSeed(id) {
				id = models.ShortID(id)
			}
			fmt.Fprintf(out, "%s %s %s\n",
				faint.Sprint(padRight(id, 10)),
				padRight(r.Name, 20),
				faint.Sprintf("%d exercises  %s", len(r.Exercises), truncate(r.Description, 40)))
		}
		return nil
	},
}

var routineShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show routine details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := findRoutine(args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.New(color.Bold).Sprint(r.Name))
		if r.Description != "" {
			fmt.Fprintln(out, r.Description)
		}
		fmt.Fprintln(out)
		for i, t := range r.Exercises {
			fmt.Fprintf(out, "  %d. %s  %d x %d\n", i+1, padRight(exercises.Name(t.ExerciseID), 34), t.SuggestedSets, t.SuggestedReps)
		}
		return nil
	},
}

var routineCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Save a new routine",
	Long: `Save a routine. Each --exercise is exercise-id:sets:reps, in order.

Examples:
  elevate routine create "Back Builder" -e bent-over-row:4:6 -e pull-up:3:8
  elevate routine create Legs -e deadlift:5:5 --description "Heavy pulls"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets := make([]models.RoutineExercise, 0, len(routineExercises))
		for _, raw := range routineExercises {
			t, err := parseTarget(raw)
			if err != nil {
				return err
			}
			targets = append(targets, t)
		}

		r, err := registry.Create(args[0], routineDescription, targets)
		if err != nil {
			return err
		}

		color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "✓ Created routine %s\n", r.Name)
		fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s\n", models.ShortID(r.ID))
		return nil
	},
}

var routineDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved routine",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := findRoutine(args[0])
		if err != nil {
			return err
		}
		if err := registry.Delete(r.ID); err != nil {
			return fmt.Errorf("failed to delete routine: %w", err)
		}

		color.New(color.FgYellow).Fprintf(cmd.OutOrStdout(), "✗ Deleted routine %s\n", r.Name)
		return nil
	},
}

// parseTarget reads "exercise-id:sets:reps".
func parseTarget(raw string) (models.RoutineExercise, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return models.RoutineExercise{}, fmt.Errorf("invalid exercise %q (use id:sets:reps)", raw)
	}
	sets, err := strconv.Atoi(parts[1])
	if err != nil {
		return models.RoutineExercise{}, fmt.Errorf("invalid sets in %q", raw)
	}
	reps, err := strconv.Atoi(parts[2])
	if err != nil {
		return models.RoutineExercise{}, fmt.Errorf("invalid reps in %q", raw)
	}
	return models.RoutineExercise{ExerciseID: parts[0], SuggestedSets: sets, SuggestedReps: reps}, nil
}

// findRoutine resolves a routine by ID or, for saved routines, ID prefix.
func findRoutine(idOrPrefix string) (*models.Routine, error) {
	if r, ok, err := registry.Get(idOrPrefix); err != nil {
		return nil, err
	} else if ok {
		return r, nil
	}

	list, err := registry.List()
	if err != nil {
		return nil, err
	}
	var matches []models.Routine
	for _, r := range list {
		if !registry.IsSeed(r.ID) && strings.HasPrefix(r.ID, idOrPrefix) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("routine not found: %s", idOrPrefix)
	case 1:
		return &matches[0], nil
	default:
		return nil, fmt.Errorf("routine prefix %q is ambiguous", idOrPrefix)
	}
}

func init() {
	routineCreateCmd.Flags().StringVarP(&routineDescription, "description", "d", "", "what the routine is for")
	routineCreateCmd.Flags().StringArrayVarP(&routineExercises, "exercise", "e", nil, "exercise as id:sets:reps (repeatable)")

	routineCmd.AddCommand(routineListCmd)
	routineCmd.AddCommand(routineShowCmd)
	routineCmd.AddCommand(routineCreateCmd)
	routineCmd.AddCommand(routineDeleteCmd)
	rootCmd.AddCommand(routineCmd)
}
