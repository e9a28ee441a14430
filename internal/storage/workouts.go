// ABOUTME: Workout CRUD operations for SQLite storage.
// ABOUTME: A workout is written in one transaction with its exercise sets and sets.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/elevate/internal/models"
)

// CreateWorkout stores a workout with all its exercise sets and sets.
func (d *DB) CreateWorkout(w *models.Workout) error {
	tx, err := d.db.Begin()
	if err != nil {
		return fmt.Errorf("create workout: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO workouts (id, name, performed_at, duration_seconds, notes, completed)
		VALUES (?, ?, ?, ?, ?, ?)
	`, w.ID, w.Name, formatTime(w.Date), w.Duration, nullString(w.Notes), boolToInt(w.Completed))
	if err != nil {
		return fmt.Errorf("create workout: %w", err)
	}

	for i, es := range w.ExerciseSets {
		_, err := tx.Exec(`
			INSERT INTO exercise_sets (id, workout_id, position, exercise_id, notes)
			VALUES (?, ?, ?, ?, ?)
		`, es.ID, w.ID, i, es.ExerciseID, nullString(es.Notes))
		if err != nil {
			return fmt.Errorf("create exercise set: %w", err)
		}

		for j, s := range es.Sets {
			_, err := tx.Exec(`
				INSERT INTO sets (exercise_set_id, position, id, weight, reps, completed, performed_at)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, es.ID, j, s.ID, s.Weight, s.Reps, boolToInt(s.Completed), formatTime(s.Date))
			if err != nil {
				return fmt.Errorf("create set: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create workout: %w", err)
	}
	return nil
}

// GetWorkout retrieves a workout by ID or ID prefix, with its sets.
func (d *DB) GetWorkout(idOrPrefix string) (*models.Workout, error) {
	id, err := d.resolveWorkoutID(idOrPrefix)
	if err != nil {
		return nil, err
	}

	row := d.db.QueryRow(`
		SELECT id, name, performed_at, duration_seconds, notes, completed
		FROM workouts
		WHERE id = ?
	`, id)
	w, err := scanWorkout(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
		}
		return nil, err
	}

	if err := d.loadExerciseSets(w); err != nil {
		return nil, err
	}
	return w, nil
}

// ListWorkouts retrieves workouts with their sets.
// Results are sorted by date descending (most recent first).
func (d *DB) ListWorkouts(limit int) ([]*models.Workout, error) {
	query := `
		SELECT id, name, performed_at, duration_seconds, notes, completed
		FROM workouts
		ORDER BY performed_at DESC
	`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	var workouts []*models.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("list workouts: %w", err)
	}
	_ = rows.Close()

	// Children are loaded after the cursor is closed; the pool has one connection.
	for _, w := range workouts {
		if err := d.loadExerciseSets(w); err != nil {
			return nil, err
		}
	}
	return workouts, nil
}

// DeleteWorkout removes a workout and its sets (cascade delete).
func (d *DB) DeleteWorkout(idOrPrefix string) error {
	id, err := d.resolveWorkoutID(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}

	result, err := d.db.Exec("DELETE FROM workouts WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("delete workout: %w: %s", ErrNotFound, idOrPrefix)
	}

	return nil
}

// resolveWorkoutID finds the full ID from a prefix.
func (d *DB) resolveWorkoutID(idOrPrefix string) (string, error) {
	if isFullID(idOrPrefix) {
		return idOrPrefix, nil
	}

	rows, err := d.db.Query(`SELECT id FROM workouts WHERE id LIKE ? || '%'`, idOrPrefix)
	if err != nil {
		return "", fmt.Errorf("resolve workout ID: %w", err)
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return "", fmt.Errorf("scan workout ID: %w", err)
		}
		matches = append(matches, id)
	}

	return pickMatch(idOrPrefix, matches)
}

// loadExerciseSets fills w.ExerciseSets in stored order.
func (d *DB) loadExerciseSets(w *models.Workout) error {
	rows, err := d.db.Query(`
		SELECT es.id, es.exercise_id, es.notes,
		       s.id, s.weight, s.reps, s.completed, s.performed_at
		FROM exercise_sets es
		LEFT JOIN sets s ON s.exercise_set_id = es.id
		WHERE es.workout_id = ?
		ORDER BY es.position ASC, s.position ASC
	`, w.ID)
	if err != nil {
		return fmt.Errorf("load exercise sets: %w", err)
	}
	defer rows.Close()

	w.ExerciseSets = []models.ExerciseSet{}
	for rows.Next() {
		var esID, exerciseID string
		var esNotes, setID, setDate sql.NullString
		var weight sql.NullFloat64
		var reps, completed sql.NullInt64

		if err := rows.Scan(&esID, &exerciseID, &esNotes, &setID, &weight, &reps, &completed, &setDate); err != nil {
			return fmt.Errorf("scan exercise set: %w", err)
		}

		n := len(w.ExerciseSets)
		if n == 0 || w.ExerciseSets[n-1].ID != esID {
			w.ExerciseSets = append(w.ExerciseSets, models.ExerciseSet{
				ID:         esID,
				ExerciseID: exerciseID,
				Sets:       []models.Set{},
				Notes:      esNotes.String,
			})
			n++
		}
		if !setID.Valid {
			continue
		}

		date, err := parseTime(setDate.String)
		if err != nil {
			return fmt.Errorf("parse set date %q: %w", setDate.String, err)
		}
		w.ExerciseSets[n-1].Sets = append(w.ExerciseSets[n-1].Sets, models.Set{
			ID:        setID.String,
			Weight:    weight.Float64,
			Reps:      int(reps.Int64),
			Completed: completed.Int64 != 0,
			Date:      date,
		})
	}
	return rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanWorkout scans a single row into a Workout without its sets.
func scanWorkout(row rowScanner) (*models.Workout, error) {
	var w models.Workout
	var performedAt string
	var notes sql.NullString
	var completed int

	if err := row.Scan(&w.ID, &w.Name, &performedAt, &w.Duration, &notes, &completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan workout: %w", err)
	}

	date, err := parseTime(performedAt)
	if err != nil {
		return nil, fmt.Errorf("parse workout date %q: %w", performedAt, err)
	}
	w.Date = date
	w.Notes = notes.String
	w.Completed = completed != 0
	w.ExerciseSets = []models.ExerciseSet{}
	return &w, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// isFullID reports whether s looks like a complete UUID.
func isFullID(s string) bool {
	return len(s) == 36 && strings.Count(s, "-") == 4
}

// pickMatch resolves a prefix lookup to exactly one ID.
func pickMatch(idOrPrefix string, matches []string) (string, error) {
	if len(matches) == 0 {
		return "", fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%w %s: matches multiple records", ErrAmbiguous, idOrPrefix)
	}
	return matches[0], nil
}
