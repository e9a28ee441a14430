// ABOUTME: CLI command for starting MCP server.
// ABOUTME: Runs stdio-based MCP server so AI assistants can log and query workouts.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	elevatemcp "github.com/harperreed/elevate/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP server",
	Long: `Start the Model Context Protocol (MCP) server for AI assistant integration.

MCP lets an assistant browse exercises, run a live workout and read your
history through a standardized protocol. The server communicates via
stdin/stdout and requires a signed-in session.

CONFIGURATION:

  {
    "mcpServers": {
      "elevate": {
        "command": "elevate",
        "args": ["mcp"]
      }
    }
  }

AVAILABLE TOOLS:

  list_exercises       Browse the catalog by muscle, equipment or search
  get_exercise         Exercise details
  list_routines        Built-in and saved routines
  create_routine       Save a routine
  delete_routine       Delete a saved routine
  start_workout        Start a live workout, optionally from a routine
  add_exercise         Add an exercise to the live workout
  add_set              Add a set (copies the previous set)
  update_set           Change weight or reps
  complete_set         Mark a set done or not done
  set_notes            Exercise or workout notes
  get_active_workout   Current live workout
  finish_workout       Finish and save
  discard_workout      Abandon the live workout
  list_workouts        Recent workouts
  get_workout          Workout with all sets
  delete_workout       Delete a workout
  get_progress         Max weight per exercise over time

AVAILABLE RESOURCES:

  elevate://exercises   Exercise catalog
  elevate://routines    Routines
  elevate://recent      Recent workouts
  elevate://today       Today's workouts
  elevate://summary     Totals, volume series and best lifts`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// stdout carries the protocol, so diagnostics only go to stderr.
		level := log.InfoLevel
		if verbose {
			level = log.DebugLevel
		}
		mcpLogger := log.NewWithOptions(os.Stderr, log.Options{
			Level:           level,
			ReportTimestamp: true,
			TimeFormat:      time.Kitchen,
			Prefix:          "elevate-mcp",
		})

		server, err := elevatemcp.NewServer(repo,
			elevatemcp.WithLogger(mcpLogger),
			elevatemcp.WithAuth(watcher))
		if err != nil {
			return err
		}

		ctx, cancel := context.WithCancel(contextOf(cmd))
		defer cancel()

		// Handle shutdown signals
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigChan)
		go func() {
			select {
			case <-sigChan:
				cancel()
			case <-ctx.Done():
			}
		}()

		return server.Serve(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
