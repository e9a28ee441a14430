// ABOUTME: Built-in routines available to every user.
// ABOUTME: Targets reference exercises in the default catalog.
package routines

import "github.com/harperreed/elevate/internal/models"

var seedRoutines = []models.Routine{
	{
		ID:          "routine1",
		Name:        "Pull Day",
		Description: "Focus on back and biceps",
		Exercises: []models.RoutineExercise{
			{ExerciseID: "pull-up", SuggestedSets: 3, SuggestedReps: 8},
			{ExerciseID: "lat-pulldown", SuggestedSets: 3, SuggestedReps: 10},
			{ExerciseID: "ez-curl", SuggestedSets: 3, SuggestedReps: 12},
			{ExerciseID: "bent-over-row", SuggestedSets: 3, SuggestedReps: 8},
			{ExerciseID: "rear-delt-fly", SuggestedSets: 3, SuggestedReps: 15},
		},
	},
	{
		ID:          "routine2",
		Name:        "Leg Day",
		Description: "Focus on lower body strength",
		Exercises: []models.RoutineExercise{
			{ExerciseID: "deadlift", SuggestedSets: 3, SuggestedReps: 10},
		},
	},
}

// Seeds returns copies of the built-in routines.
func Seeds() []models.Routine {
	out := make([]models.Routine, len(seedRoutines))
	for i, r := range seedRoutines {
		out[i] = r.Clone()
	}
	return out
}
