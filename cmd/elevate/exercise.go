// ABOUTME: CLI commands for browsing the exercise catalog.
// ABOUTME: Filters by muscle, equipment or search term; shows instructions.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/elevate/internal/models"
)

var (
	exerciseMuscle    string
	exerciseEquipment string
	exerciseSearch    string
)

var exerciseCmd = &cobra.Command{
	Use:     "exercise",
	Aliases: []string{"ex"},
	Short:   "Browse the exercise catalog",
	Long: `Browse the built-in exercise catalog.

COMMANDS:

  list        List exercises, optionally filtered
  show        Show muscles, equipment and instructions
  muscles     List every muscle in the catalog
  equipment   List every piece of equipment in the catalog

EXAMPLES:

  elevate exercise list --muscle Lats
  elevate exercise list --equipment Barbell
  elevate exercise list --search curl
  elevate exercise show deadlift`,
}

var exerciseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List exercises",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		list := exercises.All()
		if exerciseMuscle != "" {
			list = keepIDs(list, exercises.ByMuscle(exerciseMuscle))
		}
		if exerciseEquipment != "" {
			list = keepIDs(list, exercises.ByEquipment(exerciseEquipment))
		}
		if exerciseSearch != "" {
			list = keepIDs(list, exercises.Search(exerciseSearch))
		}

		out := cmd.OutOrStdout()
		if len(list) == 0 {
			fmt.Fprintln(out, "No exercises found.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, e := range list {
			fmt.Fprintf(out, "%s %s %s\n",
				faint.Sprint(padRight(e.ID, 16)),
				padRight(e.Name, 34),
				faint.Sprint(strings.Join(e.PrimaryMuscles, ", ")))
		}
		return nil
	},
}

// keepIDs returns the members of list that also appear in filter.
func keepIDs(list, filter []models.Exercise) []models.Exercise {
	keep := make(map[string]bool, len(filter))
	for _, e := range filter {
		keep[e.ID] = true
	}
	var out []models.Exercise
	for _, e := range list {
		if keep[e.ID] {
			out = append(out, e)
		}
	}
	return out
}

var exerciseShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show exercise details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, ok := exercises.Get(args[0])
		if !ok {
			return fmt.Errorf("exercise not found: %s", args[0])
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, color.New(color.Bold).Sprint(e.Name))
		fmt.Fprintf(out, "Category:  %s\n", e.Category)
		fmt.Fprintf(out, "Primary:   %s\n", strings.Join(e.PrimaryMuscles, ", "))
		if len(e.SecondaryMuscles) > 0 {
			fmt.Fprintf(out, "Secondary: %s\n", strings.Join(e.SecondaryMuscles, ", "))
		}
		fmt.Fprintf(out, "Equipment: %s\n", strings.Join(e.Equipment, ", "))
		if e.Instructions != "" {
			fmt.Fprintf(out, "\n%s\n", e.Instructions)
		}
		return nil
	},
}

var exerciseMusclesCmd = &cobra.Command{
	Use:   "muscles",
	Short: "List muscles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, m := range exercises.Muscles() {
			fmt.Fprintln(cmd.OutOrStdout(), m)
		}
		return nil
	},
}

var exerciseEquipmentCmd = &cobra.Command{
	Use:   "equipment",
	Short: "List equipment",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, e := range exercises.Equipment() {
			fmt.Fprintln(cmd.OutOrStdout(), e)
		}
		return nil
	},
}

func init() {
	exerciseListCmd.Flags().StringVarP(&exerciseMuscle, "muscle", "m", "", "filter by primary or secondary muscle")
	exerciseListCmd.Flags().StringVarP(&exerciseEquipment, "equipment", "e", "", "filter by equipment")
	exerciseListCmd.Flags().StringVarP(&exerciseSearch, "search", "s", "", "match name or primary muscle")

	exerciseCmd.AddCommand(exerciseListCmd)
	exerciseCmd.AddCommand(exerciseShowCmd)
	exerciseCmd.AddCommand(exerciseMusclesCmd)
	exerciseCmd.AddCommand(exerciseEquipmentCmd)
	rootCmd.AddCommand(exerciseCmd)
}
