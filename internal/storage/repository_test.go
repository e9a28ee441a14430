// ABOUTME: Tests for Repository interface implementations.
// ABOUTME: Every test runs against both the SQLite and markdown backends.
package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/elevate/internal/models"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "elevate-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { _ = os.RemoveAll(tmpDir) })

	db, err := Open(filepath.Join(tmpDir, DBFileName))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func setupTestMarkdownStore(t *testing.T) *MarkdownStore {
	t.Helper()

	store, err := NewMarkdownStore(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create MarkdownStore: %v", err)
	}
	return store
}

// forEachBackend runs fn once per Repository implementation.
func forEachBackend(t *testing.T, fn func(t *testing.T, repo Repository)) {
	t.Helper()
	backends := []struct {
		name string
		open func(t *testing.T) Repository
	}{
		{"sqlite", func(t *testing.T) Repository { return setupTestDB(t) }},
		{"markdown", func(t *testing.T) Repository { return setupTestMarkdownStore(t) }},
	}
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			fn(t, b.open(t))
		})
	}
}

// sampleWorkout builds a completed two-exercise workout.
func sampleWorkout(date time.Time) *models.Workout {
	w := models.NewWorkout().WithName("Pull Day").WithDate(date).WithNotes("felt strong")
	w.Duration = 3600
	w.Completed = true

	pull := models.NewExerciseSet("pull-up")
	pull.Notes = "strict form"
	pull.Sets = []models.Set{
		{ID: models.NewID(), Weight: 0, Reps: 10, Completed: true, Date: date},
		{ID: models.NewID(), Weight: 0, Reps: 8, Completed: true, Date: date.Add(2 * time.Minute)},
		{ID: models.NewID(), Weight: 0, Reps: 7, Completed: false, Date: date.Add(4 * time.Minute)},
	}
	lat := models.NewExerciseSet("lat-pulldown")
	lat.Sets = []models.Set{
		{ID: models.NewID(), Weight: 65, Reps: 12, Completed: true, Date: date.Add(10 * time.Minute)},
		{ID: models.NewID(), Weight: 70.5, Reps: 10, Completed: true, Date: date.Add(12 * time.Minute)},
	}
	w.ExerciseSets = []models.ExerciseSet{pull, lat}
	return w
}

// assertSameWorkout compares every persisted field, set order included.
func assertSameWorkout(t *testing.T, got, want *models.Workout) {
	t.Helper()
	if got.ID != want.ID || got.Name != want.Name || got.Duration != want.Duration ||
		got.Notes != want.Notes || got.Completed != want.Completed {
		t.Errorf("workout mismatch:\n got  %+v\n want %+v", got, want)
	}
	if !got.Date.Equal(want.Date) {
		t.Errorf("Date = %v, want %v", got.Date, want.Date)
	}
	if len(got.ExerciseSets) != len(want.ExerciseSets) {
		t.Fatalf("got %d exercise sets, want %d", len(got.ExerciseSets), len(want.ExerciseSets))
	}
	for i, wes := range want.ExerciseSets {
		ges := got.ExerciseSets[i]
		if ges.ID != wes.ID || ges.ExerciseID != wes.ExerciseID || ges.Notes != wes.Notes {
			t.Errorf("exercise set %d = %+v, want %+v", i, ges, wes)
		}
		if len(ges.Sets) != len(wes.Sets) {
			t.Fatalf("exercise set %d: got %d sets, want %d", i, len(ges.Sets), len(wes.Sets))
		}
		for j, ws := range wes.Sets {
			gs := ges.Sets[j]
			if gs.ID != ws.ID || gs.Weight != ws.Weight || gs.Reps != ws.Reps ||
				gs.Completed != ws.Completed || !gs.Date.Equal(ws.Date) {
				t.Errorf("set %d.%d = %+v, want %+v", i, j, gs, ws)
			}
		}
	}
}

func TestWorkoutRoundTrip(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		w := sampleWorkout(time.Date(2025, 5, 26, 18, 0, 0, 123456789, time.UTC))
		if err := repo.CreateWorkout(w); err != nil {
			t.Fatalf("CreateWorkout failed: %v", err)
		}

		got, err := repo.GetWorkout(w.ID)
		if err != nil {
			t.Fatalf("GetWorkout failed: %v", err)
		}
		assertSameWorkout(t, got, w)
	})
}

func TestWorkoutWithoutExerciseSets(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		w := models.NewWorkout()
		if err := repo.CreateWorkout(w); err != nil {
			t.Fatalf("CreateWorkout failed: %v", err)
		}
		got, err := repo.GetWorkout(w.ID)
		if err != nil {
			t.Fatalf("GetWorkout failed: %v", err)
		}
		if got.ExerciseSets == nil || len(got.ExerciseSets) != 0 {
			t.Errorf("ExerciseSets = %#v, want empty non-nil", got.ExerciseSets)
		}
	})
}

func TestGetWorkoutByPrefix(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		w := sampleWorkout(time.Now())
		if err := repo.CreateWorkout(w); err != nil {
			t.Fatalf("CreateWorkout failed: %v", err)
		}

		got, err := repo.GetWorkout(models.ShortID(w.ID))
		if err != nil {
			t.Fatalf("GetWorkout by prefix failed: %v", err)
		}
		if got.ID != w.ID {
			t.Errorf("ID mismatch: got %v, want %v", got.ID, w.ID)
		}
	})
}

func TestGetWorkoutNotFound(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		_, err := repo.GetWorkout("deadbeef")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
		_, err = repo.GetWorkout("00000000-0000-0000-0000-000000000000")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound for full ID, got %v", err)
		}
	})
}

func TestGetWorkoutAmbiguousPrefix(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		a := sampleWorkout(time.Now())
		a.ID = "aaaa1111-0000-0000-0000-000000000001"
		b := sampleWorkout(time.Now())
		b.ID = "aaaa2222-0000-0000-0000-000000000002"
		for _, w := range []*models.Workout{a, b} {
			if err := repo.CreateWorkout(w); err != nil {
				t.Fatalf("CreateWorkout failed: %v", err)
			}
		}

		_, err := repo.GetWorkout("aaaa")
		if !errors.Is(err, ErrAmbiguous) {
			t.Errorf("expected ErrAmbiguous, got %v", err)
		}
	})
}

func TestListWorkouts(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		base := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
		old := sampleWorkout(base)
		mid := sampleWorkout(base.AddDate(0, 0, 7))
		recent := sampleWorkout(base.AddDate(0, 0, 14))
		for _, w := range []*models.Workout{mid, old, recent} {
			if err := repo.CreateWorkout(w); err != nil {
				t.Fatalf("CreateWorkout failed: %v", err)
			}
		}

		all, err := repo.ListWorkouts(0)
		if err != nil {
			t.Fatalf("ListWorkouts failed: %v", err)
		}
		want := []string{recent.ID, mid.ID, old.ID}
		if len(all) != len(want) {
			t.Fatalf("got %d workouts, want %d", len(all), len(want))
		}
		for i, id := range want {
			if all[i].ID != id {
				t.Errorf("position %d: got %s, want %s", i, all[i].ID, id)
			}
		}
		if len(all[0].ExerciseSets) != 2 {
			t.Errorf("listed workouts should carry their sets")
		}

		limited, err := repo.ListWorkouts(2)
		if err != nil {
			t.Fatalf("ListWorkouts(2) failed: %v", err)
		}
		if len(limited) != 2 || limited[0].ID != recent.ID {
			t.Errorf("limit not applied: %d workouts", len(limited))
		}
	})
}

func TestListWorkoutsEmpty(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		got, err := repo.ListWorkouts(0)
		if err != nil {
			t.Fatalf("ListWorkouts failed: %v", err)
		}
		if len(got) != 0 {
			t.Errorf("expected no workouts, got %d", len(got))
		}
	})
}

func TestDeleteWorkout(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		w := sampleWorkout(time.Now())
		if err := repo.CreateWorkout(w); err != nil {
			t.Fatalf("CreateWorkout failed: %v", err)
		}

		if err := repo.DeleteWorkout(models.ShortID(w.ID)); err != nil {
			t.Fatalf("DeleteWorkout failed: %v", err)
		}
		if _, err := repo.GetWorkout(w.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.DeleteWorkout(w.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("second delete: expected ErrNotFound, got %v", err)
		}
	})
}

func TestRoutines(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		upper := models.NewRoutine("Upper", "arms and back", []models.RoutineExercise{
			{ExerciseID: "ez-curl", SuggestedSets: 4, SuggestedReps: 10},
			{ExerciseID: "bent-over-row", SuggestedSets: 3, SuggestedReps: 8},
		})
		legs := models.NewRoutine("Legs", "", []models.RoutineExercise{
			{ExerciseID: "deadlift", SuggestedSets: 5, SuggestedReps: 5},
		})
		for _, r := range []*models.Routine{upper, legs} {
			if err := repo.CreateRoutine(r); err != nil {
				t.Fatalf("CreateRoutine failed: %v", err)
			}
		}

		got, err := repo.ListRoutines()
		if err != nil {
			t.Fatalf("ListRoutines failed: %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("got %d routines, want 2", len(got))
		}
		if got[0].ID != upper.ID || got[1].ID != legs.ID {
			t.Errorf("routines not in creation order: %s, %s", got[0].Name, got[1].Name)
		}
		if got[0].Description != "arms and back" {
			t.Errorf("Description = %q", got[0].Description)
		}
		if len(got[0].Exercises) != 2 || got[0].Exercises[1] != upper.Exercises[1] {
			t.Errorf("targets = %+v, want %+v", got[0].Exercises, upper.Exercises)
		}

		if err := repo.DeleteRoutine(upper.ID); err != nil {
			t.Fatalf("DeleteRoutine failed: %v", err)
		}
		got, _ = repo.ListRoutines()
		if len(got) != 1 || got[0].ID != legs.ID {
			t.Errorf("expected only Legs after delete, got %d", len(got))
		}
		if err := repo.DeleteRoutine(upper.ID); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestAccounts(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		a := models.NewAccount("Lifter@Example.com ", "$2a$10$hash")
		if err := repo.CreateAccount(a); err != nil {
			t.Fatalf("CreateAccount failed: %v", err)
		}

		got, err := repo.GetAccount("lifter@example.com")
		if err != nil {
			t.Fatalf("GetAccount failed: %v", err)
		}
		if got.ID != a.ID || got.PasswordHash != a.PasswordHash || got.Email != "lifter@example.com" {
			t.Errorf("account = %+v", got)
		}

		dup := models.NewAccount("LIFTER@example.com", "other")
		if err := repo.CreateAccount(dup); !errors.Is(err, ErrExists) {
			t.Errorf("expected ErrExists, got %v", err)
		}

		if _, err := repo.GetAccount("nobody@example.com"); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}

		all, err := repo.ListAccounts()
		if err != nil || len(all) != 1 {
			t.Errorf("ListAccounts = %d, %v", len(all), err)
		}
	})
}

func TestDBPath(t *testing.T) {
	db := setupTestDB(t)
	if filepath.Base(db.Path()) != DBFileName {
		t.Errorf("Path = %s", db.Path())
	}
}

func TestDataDirUsesXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	if got := DataDir(); got != "/tmp/xdg-data/elevate" {
		t.Errorf("DataDir = %s", got)
	}
	if got := DefaultDBPath(); got != "/tmp/xdg-data/elevate/elevate.db" {
		t.Errorf("DefaultDBPath = %s", got)
	}
}
