// ABOUTME: Tests for Exercise and Routine models.
// ABOUTME: Checks copies never alias reference data.
package models

import "testing"

func TestExerciseClone(t *testing.T) {
	e := Exercise{
		ID:             "pull-up",
		PrimaryMuscles: []string{"Lats"},
		Equipment:      []string{"Pull-up Bar"},
	}

	c := e.Clone()
	c.PrimaryMuscles[0] = "Biceps"
	c.Equipment = append(c.Equipment, "Belt")

	if e.PrimaryMuscles[0] != "Lats" {
		t.Error("clone aliases PrimaryMuscles")
	}
	if len(e.Equipment) != 1 {
		t.Error("clone aliases Equipment")
	}
}

func TestNewRoutine(t *testing.T) {
	targets := []RoutineExercise{{ExerciseID: "deadlift", SuggestedSets: 3, SuggestedReps: 10}}
	r := NewRoutine("Leg Day", "lower body", targets)

	if r.ID == "" {
		t.Error("expected ID to be set")
	}
	targets[0].SuggestedSets = 99
	if r.Exercises[0].SuggestedSets != 3 {
		t.Error("routine should copy its targets")
	}
}
