// ABOUTME: Exercise and Routine reference models.
// ABOUTME: Both are read-only data looked up by ID, never owned by a workout.
package models

// Exercise describes a movement in the catalog.
type Exercise struct {
	ID               string   `json:"id" yaml:"id"`
	Name             string   `json:"name" yaml:"name"`
	Category         string   `json:"category" yaml:"category"`
	PrimaryMuscles   []string `json:"primary_muscles" yaml:"primary_muscles"`
	SecondaryMuscles []string `json:"secondary_muscles" yaml:"secondary_muscles"`
	Equipment        []string `json:"equipment" yaml:"equipment"`
	Instructions     string   `json:"instructions" yaml:"instructions"`
	Image            string   `json:"image,omitempty" yaml:"image,omitempty"`
}

// Clone returns a copy that shares no slices with e.
func (e Exercise) Clone() Exercise {
	e.PrimaryMuscles = append([]string(nil), e.PrimaryMuscles...)
	e.SecondaryMuscles = append([]string(nil), e.SecondaryMuscles...)
	e.Equipment = append([]string(nil), e.Equipment...)
	return e
}

// RoutineExercise is one target of a routine.
type RoutineExercise struct {
	ExerciseID    string `json:"exercise_id" yaml:"exercise_id"`
	SuggestedSets int    `json:"suggested_sets" yaml:"suggested_sets"`
	SuggestedReps int    `json:"suggested_reps" yaml:"suggested_reps"`
}

// Routine is a named, ordered plan used to seed a workout.
type Routine struct {
	ID          string            `json:"id" yaml:"id"`
	Name        string            `json:"name" yaml:"name"`
	Description string            `json:"description" yaml:"description"`
	Exercises   []RoutineExercise `json:"exercises" yaml:"exercises"`
}

// NewRoutine creates a routine with a generated ID.
func NewRoutine(name, description string, targets []RoutineExercise) *Routine {
	return &Routine{
		ID:          NewID(),
		Name:        name,
		Description: description,
		Exercises:   append([]RoutineExercise(nil), targets...),
	}
}

// Clone returns a copy that shares no slices with r.
func (r Routine) Clone() Routine {
	r.Exercises = append([]RoutineExercise(nil), r.Exercises...)
	return r
}
