// ABOUTME: Data migration between elevate storage backends.
// ABOUTME: Copies accounts, routines and workouts from source to destination.

package storage

import (
	"fmt"
	"os"
)

// MigrateSummary holds counts of migrated entities.
type MigrateSummary struct {
	Accounts int
	Routines int
	Workouts int
}

// MigrateData copies all data from src to dst storage.
// The destination should be empty before calling this function.
func MigrateData(src, dst Repository) (*MigrateSummary, error) {
	summary := &MigrateSummary{}

	accounts, err := src.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("list source accounts: %w", err)
	}
	for _, a := range accounts {
		if err := dst.CreateAccount(a); err != nil {
			return nil, fmt.Errorf("create account %s: %w", a.Email, err)
		}
		summary.Accounts++
	}

	routines, err := src.ListRoutines()
	if err != nil {
		return nil, fmt.Errorf("list source routines: %w", err)
	}
	for _, r := range routines {
		if err := dst.CreateRoutine(r); err != nil {
			return nil, fmt.Errorf("create routine %s: %w", r.ID, err)
		}
		summary.Routines++
	}

	workouts, err := src.ListWorkouts(0)
	if err != nil {
		return nil, fmt.Errorf("list source workouts: %w", err)
	}
	// Oldest first so the destination's insertion order matches history.
	for i := len(workouts) - 1; i >= 0; i-- {
		w := workouts[i]
		if err := dst.CreateWorkout(w); err != nil {
			return nil, fmt.Errorf("create workout %s: %w", w.ID, err)
		}
		summary.Workouts++
	}

	return summary, nil
}

// IsDirNonEmpty checks whether a directory exists and contains any files or subdirectories.
// Returns false if the directory does not exist or is empty.
func IsDirNonEmpty(path string) (bool, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read directory %q: %w", path, err)
	}
	return len(entries) > 0, nil
}
