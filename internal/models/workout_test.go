// ABOUTME: Tests for Workout, ExerciseSet and Set models.
// ABOUTME: Validates constructors, builders and deep copies.
package models

import (
	"testing"
	"time"
)

func TestNewWorkout(t *testing.T) {
	w := NewWorkout()

	if w.ID == "" {
		t.Error("expected ID to be set")
	}
	if w.Name != DefaultWorkoutName {
		t.Errorf("Name = %s, want %s", w.Name, DefaultWorkoutName)
	}
	if w.Date.IsZero() {
		t.Error("expected Date to be set")
	}
	if w.Duration != 0 {
		t.Errorf("Duration = %d, want 0", w.Duration)
	}
	if len(w.ExerciseSets) != 0 {
		t.Errorf("expected no exercise sets, got %d", len(w.ExerciseSets))
	}
	if w.Completed {
		t.Error("new workout should not be completed")
	}
}

func TestWorkoutBuilders(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	w := NewWorkout().WithName("Pull Day").WithDate(at).WithNotes("felt strong")

	if w.Name != "Pull Day" {
		t.Errorf("Name = %s, want Pull Day", w.Name)
	}
	if !w.Date.Equal(at) {
		t.Errorf("Date = %v, want %v", w.Date, at)
	}
	if w.Notes != "felt strong" {
		t.Errorf("Notes = %q, want %q", w.Notes, "felt strong")
	}
}

func TestNewExerciseSetSeedsOneEmptySet(t *testing.T) {
	es := NewExerciseSet("pull-up")

	if es.ExerciseID != "pull-up" {
		t.Errorf("ExerciseID = %s, want pull-up", es.ExerciseID)
	}
	if len(es.Sets) != 1 {
		t.Fatalf("expected 1 set, got %d", len(es.Sets))
	}
	s := es.Sets[0]
	if s.Weight != 0 || s.Reps != 0 || s.Completed {
		t.Errorf("seed set not empty: %+v", s)
	}
	if s.ID == "" || es.ID == "" {
		t.Error("expected IDs to be generated")
	}
}

func TestSetBuilders(t *testing.T) {
	s := NewSet().WithWeight(70).WithReps(10)
	if s.Weight != 70 || s.Reps != 10 {
		t.Errorf("got %+v, want weight 70 reps 10", s)
	}
}

func TestWorkoutExerciseSetLookup(t *testing.T) {
	w := NewWorkout()
	w.ExerciseSets = append(w.ExerciseSets, NewExerciseSet("deadlift"))
	id := w.ExerciseSets[0].ID

	es, ok := w.ExerciseSet(id)
	if !ok {
		t.Fatal("expected exercise set to be found")
	}
	es.Notes = "belt on"
	if w.ExerciseSets[0].Notes != "belt on" {
		t.Error("lookup should return a pointer into the workout")
	}

	if _, ok := w.ExerciseSet("missing"); ok {
		t.Error("expected miss for unknown ID")
	}
}

func TestWorkoutCloneIsDeep(t *testing.T) {
	w := NewWorkout()
	w.ExerciseSets = append(w.ExerciseSets, NewExerciseSet("ez-curl"))

	c := w.Clone()
	c.ExerciseSets[0].Sets[0].Weight = 30
	c.ExerciseSets[0].Sets = append(c.ExerciseSets[0].Sets, NewSet())

	if w.ExerciseSets[0].Sets[0].Weight != 0 {
		t.Error("clone shares set storage with original")
	}
	if len(w.ExerciseSets[0].Sets) != 1 {
		t.Error("appending to clone changed original")
	}
}

func TestShortID(t *testing.T) {
	if got := ShortID("abc"); got != "abc" {
		t.Errorf("ShortID(abc) = %s", got)
	}
	if got := ShortID("0123456789"); got != "01234567" {
		t.Errorf("ShortID = %s, want 01234567", got)
	}
}
