// ABOUTME: User routine and local account operations for SQLite storage.
// ABOUTME: Routine targets keep their order via a position column.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/elevate/internal/models"
)

// CreateRoutine stores a user routine with its targets.
func (d *DB) CreateRoutine(r *models.Routine) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("create routine: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`INSERT INTO routines (id, name, description) VALUES (?, ?, ?)`,
		r.ID, r.Name, nullString(r.Description)); err != nil {
		return fmt.Errorf("create routine: %w", err)
	}

	for i, t := range r.Exercises {
		_, err := tx.Exec(`
			INSERT INTO routine_exercises (routine_id, position, exercise_id, suggested_sets, suggested_reps)
			VALUES (?, ?, ?, ?, ?)
		`, r.ID, i, t.ExerciseID, t.SuggestedSets, t.SuggestedReps)
		if err != nil {
			return fmt.Errorf("create routine exercise: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create routine: %w", err)
	}
	return nil
}

// ListRoutines returns user routines in creation order.
func (d *DB) ListRoutines() ([]*models.Routine, error) {
	rows, err := d.db.Query(`
		SELECT r.id, r.name, r.description,
		       re.exercise_id, re.suggested_sets, re.suggested_reps
		FROM routines r
		LEFT JOIN routine_exercises re ON re.routine_id = r.id
		ORDER BY r.rowid ASC, re.position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	defer rows.Close()

	var routines []*models.Routine
	for rows.Next() {
		var id, name string
		var description, exerciseID sql.NullString
		var sets, reps sql.NullInt64

		if err := rows.Scan(&id, &name, &description, &exerciseID, &sets, &reps); err != nil {
			return nil, fmt.Errorf("scan routine: %w", err)
		}

		n := len(routines)
		if n == 0 || routines[n-1].ID != id {
			routines = append(routines, &models.Routine{
				ID:          id,
				Name:        name,
				Description: description.String,
				Exercises:   []models.RoutineExercise{},
			})
			n++
		}
		if exerciseID.Valid {
			routines[n-1].Exercises = append(routines[n-1].Exercises, models.RoutineExercise{
				ExerciseID:    exerciseID.String,
				SuggestedSets: int(sets.Int64),
				SuggestedReps: int(reps.Int64),
			})
		}
	}
	return routines, rows.Err()
}

// DeleteRoutine removes a user routine and its targets.
func (d *DB) DeleteRoutine(id string) error {
	result, err := d.db.Exec("DELETE FROM routines WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete routine: %w: %s", ErrNotFound, id)
	}
	return nil
}

// CreateAccount stores a local account. The email must be unused.
func (d *DB) CreateAccount(a *models.Account) error {
	_, err := d.db.Exec(`
		INSERT INTO accounts (id, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`, a.ID, models.NormalizeEmail(a.Email), a.PasswordHash, formatTime(a.CreatedAt))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return fmt.Errorf("create account: %w: %s", ErrExists, a.Email)
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// GetAccount looks up an account by email.
func (d *DB) GetAccount(email string) (*models.Account, error) {
	var a models.Account
	var createdAt string

	err := d.db.QueryRow(`
		SELECT id, email, password_hash, created_at FROM accounts WHERE email = ?
	`, models.NormalizeEmail(email)).Scan(&a.ID, &a.Email, &a.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, email)
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	a.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parse account created_at %q: %w", createdAt, err)
	}
	return &a, nil
}

// ListAccounts returns every local account ordered by email.
func (d *DB) ListAccounts() ([]*models.Account, error) {
	rows, err := d.db.Query(`SELECT id, email, password_hash, created_at FROM accounts ORDER BY email ASC`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*models.Account
	for rows.Next() {
		var a models.Account
		var createdAt string
		if err := rows.Scan(&a.ID, &a.Email, &a.PasswordHash, &createdAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		if a.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, fmt.Errorf("parse account created_at %q: %w", createdAt, err)
		}
		accounts = append(accounts, &a)
	}
	return accounts, rows.Err()
}
