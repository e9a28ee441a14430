// ABOUTME: Root Cobra command for the elevate CLI.
// ABOUTME: Opens storage, preferences and the auth watcher in PersistentPreRunE.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/harperreed/elevate/internal/auth"
	"github.com/harperreed/elevate/internal/catalog"
	"github.com/harperreed/elevate/internal/config"
	"github.com/harperreed/elevate/internal/notify"
	"github.com/harperreed/elevate/internal/prefs"
	"github.com/harperreed/elevate/internal/routines"
	"github.com/harperreed/elevate/internal/storage"
)

// publicAnnotation marks commands that run without a signed-in session.
const publicAnnotation = "public"

var (
	cfg       *config.Config
	repo      storage.Repository
	prefStore *prefs.Store
	provider  auth.Provider
	watcher   *auth.Watcher
	logger    = log.New(io.Discard)
	exercises = catalog.Default()
	registry  *routines.Registry

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "elevate",
	Short: "Strength training tracker",
	Long: `Elevate tracks your strength workouts from the terminal.

Log sets, reps and weight during a live workout, start from routines,
and watch your lifts progress over time.

QUICK START:

  $ elevate auth signup you@example.com    # Create a local account
  $ elevate routine list                   # See built-in routines
  $ elevate workout start --routine routine1
  $ elevate workout list                   # Review history
  $ elevate progress                       # Volume and best lifts

EXERCISES:

  $ elevate exercise list --muscle Lats
  $ elevate exercise show deadlift

MCP INTEGRATION:

  Run 'elevate mcp' to start the Model Context Protocol server for AI
  assistants. Add to your assistant's MCP config:

  {
    "mcpServers": {
      "elevate": { "command": "elevate", "args": ["mcp"] }
    }
  }

DATA STORAGE:

  Workouts live in ~/.local/share/elevate/elevate.db by default.
  Set "backend": "markdown" in ~/.config/elevate/config.json to keep
  them as Markdown files instead.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip setup for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		if verbose {
			logger = log.NewWithOptions(os.Stderr, log.Options{
				Level:           log.DebugLevel,
				ReportTimestamp: true,
				TimeFormat:      time.Kitchen,
				Prefix:          "elevate",
			})
		}

		if err := openAll(cmd); err != nil {
			closeAll()
			return err
		}

		if cmd.Annotations[publicAnnotation] != "true" {
			if _, err := requireSession(); err != nil {
				return err
			}
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeAll()
	},
}

// Execute runs the root command. Storage is closed even when the command
// fails, since cobra skips post-run hooks after an error.
func Execute() error {
	err := rootCmd.Execute()
	if cerr := closeAll(); err == nil {
		err = cerr
	}
	return err
}

func openAll(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	repo, err = cfg.OpenStorage()
	if err != nil {
		return fmt.Errorf("failed to open storage: %w", err)
	}
	logger.Debug("storage opened", "backend", cfg.GetBackend(), "dir", cfg.GetDataDir())

	prefStore, err = cfg.OpenPrefs()
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}

	provider = auth.NewLocal(repo, prefStore, auth.WithLogger(logger))
	watcher, err = auth.Watch(contextOf(cmd), provider, func(e auth.Event) {
		logger.Debug("session changed", "event", e.Kind)
	})
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	registry = routines.New(repo, exercises)
	return nil
}

func closeAll() error {
	var errs []error
	if watcher != nil {
		watcher.Close()
		watcher = nil
	}
	if prefStore != nil {
		errs = append(errs, prefStore.Close())
		prefStore = nil
	}
	if repo != nil {
		errs = append(errs, repo.Close())
		repo = nil
	}
	provider = nil
	registry = nil
	return errors.Join(errs...)
}

// requireSession guards commands that need a signed-in user.
func requireSession() (*auth.Session, error) {
	s, err := watcher.Require()
	if errors.Is(err, auth.ErrNotSignedIn) {
		return nil, fmt.Errorf("not signed in; run 'elevate auth login <email>' or 'elevate auth signup <email>'")
	}
	return s, err
}

func notifier(cmd *cobra.Command) notify.Notifier {
	return notify.NewConsole(cmd.OutOrStdout())
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}

func padRight(s string, length int) string {
	if len(s) >= length {
		return s
	}
	return s + strings.Repeat(" ", length-len(s))
}

func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04",
		"2006-01-02T15:04",
		"2006-01-02",
		time.RFC3339,
	}
	for _, f := range formats {
		if t, err := time.ParseInLocation(f, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time format")
}

func public(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[publicAnnotation] = "true"
	return cmd
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
}
