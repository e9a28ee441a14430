// ABOUTME: Workout, ExerciseSet and Set models for strength sessions.
// ABOUTME: A workout owns its exercise sets; each exercise set owns its sets.
package models

import (
	"time"

	"github.com/google/uuid"
)

// DefaultWorkoutName is the name given to workouts started without a routine.
const DefaultWorkoutName = "New Workout"

// Set is a single performed set of an exercise. Weight is in kg.
type Set struct {
	ID        string    `json:"id" yaml:"id"`
	Weight    float64   `json:"weight" yaml:"weight"`
	Reps      int       `json:"reps" yaml:"reps"`
	Completed bool      `json:"completed" yaml:"completed"`
	Date      time.Time `json:"date" yaml:"date"`
}

// NewSet creates an empty, uncompleted set with a fresh ID.
func NewSet() Set {
	return Set{
		ID:   NewID(),
		Date: time.Now(),
	}
}

// WithWeight sets the weight in kg.
func (s Set) WithWeight(kg float64) Set {
	s.Weight = kg
	return s
}

// WithReps sets the rep count.
func (s Set) WithReps(reps int) Set {
	s.Reps = reps
	return s
}

// ExerciseSet binds an exercise to the ordered sets performed for it
// within one workout. Sets[i-1] is the "previous" set of Sets[i].
type ExerciseSet struct {
	ID         string `json:"id" yaml:"id"`
	ExerciseID string `json:"exercise_id" yaml:"exercise_id"`
	Sets       []Set  `json:"sets" yaml:"sets"`
	Notes      string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// NewExerciseSet creates an ExerciseSet seeded with exactly one empty set.
func NewExerciseSet(exerciseID string) ExerciseSet {
	return ExerciseSet{
		ID:         NewID(),
		ExerciseID: exerciseID,
		Sets:       []Set{NewSet()},
	}
}

// Workout is a training session. Duration is in seconds.
type Workout struct {
	ID           string        `json:"id" yaml:"id"`
	Name         string        `json:"name" yaml:"name"`
	Date         time.Time     `json:"date" yaml:"date"`
	Duration     int           `json:"duration" yaml:"duration"`
	ExerciseSets []ExerciseSet `json:"exercise_sets" yaml:"exercise_sets"`
	Notes        string        `json:"notes,omitempty" yaml:"notes,omitempty"`
	Completed    bool          `json:"completed" yaml:"completed"`
}

// NewWorkout creates an empty, active workout started now.
func NewWorkout() *Workout {
	return &Workout{
		ID:           NewID(),
		Name:         DefaultWorkoutName,
		Date:         time.Now(),
		ExerciseSets: []ExerciseSet{},
	}
}

// WithName sets the workout name.
func (w *Workout) WithName(name string) *Workout {
	w.Name = name
	return w
}

// WithDate sets a custom start timestamp.
func (w *Workout) WithDate(t time.Time) *Workout {
	w.Date = t
	return w
}

// WithNotes sets notes on the workout.
func (w *Workout) WithNotes(notes string) *Workout {
	w.Notes = notes
	return w
}

// ExerciseSet returns the exercise set with the given ID.
func (w *Workout) ExerciseSet(id string) (*ExerciseSet, bool) {
	for i := range w.ExerciseSets {
		if w.ExerciseSets[i].ID == id {
			return &w.ExerciseSets[i], true
		}
	}
	return nil, false
}

// Clone returns a deep copy of the workout.
func (w *Workout) Clone() *Workout {
	if w == nil {
		return nil
	}
	c := *w
	c.ExerciseSets = make([]ExerciseSet, len(w.ExerciseSets))
	for i, es := range w.ExerciseSets {
		es.Sets = append([]Set(nil), es.Sets...)
		c.ExerciseSets[i] = es
	}
	return &c
}

// NewID returns a fresh random identifier.
func NewID() string {
	return uuid.NewString()
}

// ShortID returns the 8-character prefix used in listings.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
