// ABOUTME: Tests for export and import functionality.
// ABOUTME: Verifies JSON and YAML round-trips and the markdown report.
package storage

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/elevate/internal/models"
)

func names(id string) string {
	switch id {
	case "pull-up":
		return "Pull Up"
	case "lat-pulldown":
		return "Lat Pulldown (Machine)"
	}
	return id
}

func seedRepo(t *testing.T, repo Repository) (*models.Workout, *models.Routine) {
	t.Helper()
	w := sampleWorkout(time.Date(2025, 5, 26, 18, 0, 0, 0, time.UTC))
	if err := repo.CreateWorkout(w); err != nil {
		t.Fatalf("CreateWorkout failed: %v", err)
	}
	r := models.NewRoutine("Arms", "pump", []models.RoutineExercise{{ExerciseID: "ez-curl", SuggestedSets: 3, SuggestedReps: 12}})
	if err := repo.CreateRoutine(r); err != nil {
		t.Fatalf("CreateRoutine failed: %v", err)
	}
	return w, r
}

func TestExportJSON(t *testing.T) {
	db := setupTestDB(t)
	w, r := seedRepo(t, db)

	out, err := ExportJSON(db)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	var data ExportData
	if err := json.Unmarshal(out, &data); err != nil {
		t.Fatalf("exported JSON does not parse: %v", err)
	}
	if data.Version != ExportVersion || data.Tool != "elevate" {
		t.Errorf("header = %s/%s", data.Version, data.Tool)
	}
	if len(data.Workouts) != 1 || len(data.Routines) != 1 {
		t.Fatalf("got %d workouts, %d routines", len(data.Workouts), len(data.Routines))
	}
	assertSameWorkout(t, data.Workouts[0], w)
	if data.Routines[0].ID != r.ID {
		t.Errorf("routine ID = %s, want %s", data.Routines[0].ID, r.ID)
	}
}

func TestExportJSONEmpty(t *testing.T) {
	db := setupTestDB(t)

	out, err := ExportJSON(db)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}
	if !strings.Contains(string(out), `"workouts": []`) {
		t.Errorf("empty export should carry an empty workouts array:\n%s", out)
	}
}

func TestJSONRoundTripAcrossBackends(t *testing.T) {
	src := setupTestDB(t)
	w, r := seedRepo(t, src)

	out, err := ExportJSON(src)
	if err != nil {
		t.Fatalf("ExportJSON failed: %v", err)
	}

	dst := setupTestMarkdownStore(t)
	if err := ImportJSON(dst, out); err != nil {
		t.Fatalf("ImportJSON failed: %v", err)
	}

	got, err := dst.GetWorkout(w.ID)
	if err != nil {
		t.Fatalf("GetWorkout after import failed: %v", err)
	}
	assertSameWorkout(t, got, w)

	routines, _ := dst.ListRoutines()
	if len(routines) != 1 || routines[0].ID != r.ID {
		t.Errorf("routines after import = %d", len(routines))
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	src := setupTestMarkdownStore(t)
	w, _ := seedRepo(t, src)

	out, err := ExportYAML(src)
	if err != nil {
		t.Fatalf("ExportYAML failed: %v", err)
	}
	if !strings.Contains(string(out), "tool: elevate") {
		t.Errorf("YAML export missing header:\n%s", out)
	}

	dst := setupTestDB(t)
	if err := ImportYAML(dst, out); err != nil {
		t.Fatalf("ImportYAML failed: %v", err)
	}
	got, err := dst.GetWorkout(w.ID)
	if err != nil {
		t.Fatalf("GetWorkout after import failed: %v", err)
	}
	assertSameWorkout(t, got, w)
}

func TestImportIsIdempotent(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		seedRepo(t, repo)
		out, err := ExportJSON(repo)
		if err != nil {
			t.Fatalf("ExportJSON failed: %v", err)
		}

		if err := ImportJSON(repo, out); err != nil {
			t.Fatalf("re-import failed: %v", err)
		}

		workouts, _ := repo.ListWorkouts(0)
		routines, _ := repo.ListRoutines()
		if len(workouts) != 1 || len(routines) != 1 {
			t.Errorf("re-import duplicated data: %d workouts, %d routines", len(workouts), len(routines))
		}
	})
}

func TestExportWorkoutJSONImports(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repo Repository) {
		w := sampleWorkout(time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC))
		out, err := ExportWorkoutJSON(w)
		if err != nil {
			t.Fatalf("ExportWorkoutJSON failed: %v", err)
		}

		if err := ImportJSON(repo, out); err != nil {
			t.Fatalf("ImportJSON failed: %v", err)
		}
		got, err := repo.GetWorkout(w.ID)
		if err != nil {
			t.Fatalf("workout not imported: %v", err)
		}
		if got.Name != w.Name || len(got.ExerciseSets) != len(w.ExerciseSets) {
			t.Errorf("imported = %+v", got)
		}
	})
}

func TestImportInvalid(t *testing.T) {
	db := setupTestDB(t)
	if err := ImportJSON(db, []byte("{not json")); err == nil {
		t.Error("expected JSON error")
	}
	if err := ImportYAML(db, []byte("workouts: [")); err == nil {
		t.Error("expected YAML error")
	}
}

func TestExportMarkdown(t *testing.T) {
	db := setupTestDB(t)
	seedRepo(t, db)

	md, err := ExportMarkdown(db, names, nil)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	for _, want := range []string{
		"# Elevate Export",
		"## Summary",
		"| 1 | 1h 0m |",
		"### Pull Day (2025-05-26 18:00)",
		"| Pull Up | 1 | 0 kg | 10 | x |",
		"| Lat Pulldown (Machine) | 2 | 70.5 kg | 10 | x |",
		"felt strong",
		"## Routines",
		"| ez-curl | 3 | 12 |",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q\n%s", want, md)
		}
	}
}

func TestExportMarkdownWithSince(t *testing.T) {
	db := setupTestDB(t)
	seedRepo(t, db)

	since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	md, err := ExportMarkdown(db, names, &since)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}
	if strings.Contains(md, "### Pull Day") {
		t.Error("workout before since should be excluded")
	}
	if !strings.Contains(md, "| 0 |") {
		t.Error("summary should count zero workouts")
	}
}
