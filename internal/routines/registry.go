// ABOUTME: Routine registry: built-in seed routines plus user-created ones.
// ABOUTME: Seeds are read-only; user routines persist through a Store.
package routines

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/elevate/internal/models"
)

var (
	// ErrReadOnly is returned when deleting a built-in routine.
	ErrReadOnly = errors.New("built-in routines are read-only")
	// ErrInvalid wraps validation failures from Create.
	ErrInvalid = errors.New("invalid routine")
	// ErrNoStore is returned by mutations on a registry without a store.
	ErrNoStore = errors.New("routine storage not configured")
)

// Store persists user routines.
type Store interface {
	CreateRoutine(r *models.Routine) error
	ListRoutines() ([]*models.Routine, error)
	DeleteRoutine(id string) error
}

// ExerciseLookup resolves exercise IDs. *catalog.Catalog satisfies it.
type ExerciseLookup interface {
	Get(id string) (*models.Exercise, bool)
}

// Registry lists and finds routines.
type Registry struct {
	seeds     []models.Routine
	store     Store
	exercises ExerciseLookup
}

// New returns a registry over the seed routines and, when store is non-nil,
// the user's own routines. exercises validates targets on Create.
func New(store Store, exercises ExerciseLookup) *Registry {
	return &Registry{
		seeds:     Seeds(),
		store:     store,
		exercises: exercises,
	}
}

// Static returns the read-only registry of seed routines.
func Static() *Registry {
	return New(nil, nil)
}

// List returns seed routines followed by user routines.
func (r *Registry) List() ([]models.Routine, error) {
	out := make([]models.Routine, 0, len(r.seeds))
	for _, s := range r.seeds {
		out = append(out, s.Clone())
	}
	if r.store == nil {
		return out, nil
	}

	user, err := r.store.ListRoutines()
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	for _, u := range user {
		out = append(out, u.Clone())
	}
	return out, nil
}

// Get finds a routine by ID. A miss is reported by the false return, not
// as an error.
func (r *Registry) Get(id string) (*models.Routine, bool, error) {
	all, err := r.List()
	if err != nil {
		return nil, false, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], true, nil
		}
	}
	return nil, false, nil
}

// IsSeed reports whether id names a built-in routine.
func (r *Registry) IsSeed(id string) bool {
	for _, s := range r.seeds {
		if s.ID == id {
			return true
		}
	}
	return false
}

// Create validates and stores a user routine.
func (r *Registry) Create(name, description string, targets []models.RoutineExercise) (*models.Routine, error) {
	if r.store == nil {
		return nil, ErrNoStore
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalid)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("%w: at least one exercise is required", ErrInvalid)
	}
	for _, t := range targets {
		if t.SuggestedSets < 1 || t.SuggestedReps < 1 {
			return nil, fmt.Errorf("%w: %s needs positive sets and reps", ErrInvalid, t.ExerciseID)
		}
		if r.exercises != nil {
			if _, ok := r.exercises.Get(t.ExerciseID); !ok {
				return nil, fmt.Errorf("%w: unknown exercise %q", ErrInvalid, t.ExerciseID)
			}
		}
	}

	routine := models.NewRoutine(name, strings.TrimSpace(description), targets)
	if err := r.store.CreateRoutine(routine); err != nil {
		return nil, fmt.Errorf("create routine: %w", err)
	}
	return routine, nil
}

// Delete removes a user routine.
func (r *Registry) Delete(id string) error {
	if r.IsSeed(id) {
		return ErrReadOnly
	}
	if r.store == nil {
		return ErrNoStore
	}
	if err := r.store.DeleteRoutine(id); err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	return nil
}
