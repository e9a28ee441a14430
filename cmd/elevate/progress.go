// ABOUTME: CLI command for the progress dashboard.
// ABOUTME: Prints totals, the volume-over-time series and per-exercise max weights.
package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harperreed/elevate/internal/calc"
	"github.com/harperreed/elevate/internal/models"
	"github.com/harperreed/elevate/internal/progress"
)

// barWidth is the widest bar drawn in the volume chart.
const barWidth = 30

var progressExercise string

var progressCmd = &cobra.Command{
	Use:     "progress",
	Aliases: []string{"stats"},
	Short:   "Show training progress",
	Long: `Show your training progress across all finished workouts.

The dashboard has three parts: totals (workouts, time, volume), total
volume per workout from oldest to newest, and the max weight lifted per
exercise each time you trained it.

Examples:
  elevate progress
  elevate progress --exercise deadlift`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		history, err := repo.ListWorkouts(0)
		if err != nil {
			return fmt.Errorf("failed to load workouts: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(history) == 0 {
			fmt.Fprintln(out, "No workouts yet. Start one with 'elevate workout start'.")
			return nil
		}

		bold := color.New(color.Bold)
		faint := color.New(color.Faint)

		if progressExercise == "" {
			s := calc.Summarize(history)
			fmt.Fprintln(out, bold.Sprint("Totals"))
			fmt.Fprintf(out, "  Workouts:  %d\n", s.Workouts)
			fmt.Fprintf(out, "  Time:      %s\n", calc.FormatDuration(s.TotalDuration))
			fmt.Fprintf(out, "  Volume:    %g kg\n\n", s.TotalVolume)

			fmt.Fprintln(out, bold.Sprint("Volume"))
			printVolumeChart(out, calc.VolumeSeries(history))
			fmt.Fprintln(out)
		}

		oldestFirst := make([]*models.Workout, len(history))
		for i, w := range history {
			oldestFirst[len(history)-1-i] = w
		}
		report := progress.Aggregate(oldestFirst, exercises)

		groups := report.Groups()
		if progressExercise != "" {
			g, ok := report.Get(progressExercise)
			if !ok {
				return fmt.Errorf("no history for exercise: %s", progressExercise)
			}
			groups = []*progress.Group{g}
		}

		fmt.Fprintln(out, bold.Sprint("Exercises"))
		for _, g := range groups {
			fmt.Fprintf(out, "  %s %s\n", padRight(g.Exercise.Name, 34), faint.Sprintf("best %g kg", g.Best()))
			for _, p := range g.Series {
				fmt.Fprintf(out, "    %s  %6g kg  %s\n",
					faint.Sprint(p.Date.Local().Format("2006-01-02")), p.MaxWeight,
					faint.Sprintf("%d sets", p.Sets))
			}
		}
		return nil
	},
}

// printVolumeChart draws one bar per workout scaled to the heaviest.
func printVolumeChart(out io.Writer, points []calc.VolumePoint) {
	var peak float64
	for _, p := range points {
		if p.Volume > peak {
			peak = p.Volume
		}
	}

	faint := color.New(color.Faint)
	green := color.New(color.FgGreen)
	for _, p := range points {
		width := 0
		if peak > 0 {
			width = int(p.Volume / peak * barWidth)
		}
		fmt.Fprintf(out, "  %s %s %s\n",
			faint.Sprint(p.Date.Local().Format("01-02")),
			green.Sprint(strings.Repeat("█", width))+strings.Repeat(" ", barWidth-width),
			faint.Sprintf("%g kg  %.0f min", p.Volume, p.Minutes))
	}
}

func init() {
	progressCmd.Flags().StringVarP(&progressExercise, "exercise", "e", "", "show a single exercise")
	rootCmd.AddCommand(progressCmd)
}
