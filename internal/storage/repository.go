// ABOUTME: Repository interface for elevate data storage.
// ABOUTME: Defines the contract for workouts, routines and local accounts.
package storage

import (
	"errors"

	"github.com/harperreed/elevate/internal/models"
)

var (
	// ErrNotFound is returned when no record matches an ID, prefix or email.
	ErrNotFound = errors.New("not found")
	// ErrAmbiguous is returned when an ID prefix matches more than one record.
	ErrAmbiguous = errors.New("ambiguous prefix")
	// ErrExists is returned when creating an account whose email is taken.
	ErrExists = errors.New("already exists")
)

// Repository defines the storage interface for elevate data.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Workout operations. Only completed workouts are persisted.
	CreateWorkout(w *models.Workout) error
	GetWorkout(idOrPrefix string) (*models.Workout, error)
	ListWorkouts(limit int) ([]*models.Workout, error)
	DeleteWorkout(idOrPrefix string) error

	// User routine operations
	CreateRoutine(r *models.Routine) error
	ListRoutines() ([]*models.Routine, error)
	DeleteRoutine(id string) error

	// Account operations
	CreateAccount(a *models.Account) error
	GetAccount(email string) (*models.Account, error)
	ListAccounts() ([]*models.Account, error)

	// Export/Import
	GetAllData() (*ExportData, error)
	ImportData(data *ExportData) error

	// Lifecycle
	Close() error
}
