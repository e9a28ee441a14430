// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Workouts own exercise_sets which own sets; routines own routine_exercises.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS workouts (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		performed_at TEXT NOT NULL,
		duration_seconds INTEGER NOT NULL DEFAULT 0,
		notes TEXT,
		completed INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS exercise_sets (
		id TEXT PRIMARY KEY,
		workout_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		exercise_id TEXT NOT NULL,
		notes TEXT,
		FOREIGN KEY (workout_id) REFERENCES workouts(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS sets (
		exercise_set_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		id TEXT NOT NULL,
		weight REAL NOT NULL DEFAULT 0,
		reps INTEGER NOT NULL DEFAULT 0,
		completed INTEGER NOT NULL DEFAULT 0,
		performed_at TEXT NOT NULL,
		PRIMARY KEY (exercise_set_id, position),
		FOREIGN KEY (exercise_set_id) REFERENCES exercise_sets(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS routines (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS routine_exercises (
		routine_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		exercise_id TEXT NOT NULL,
		suggested_sets INTEGER NOT NULL,
		suggested_reps INTEGER NOT NULL,
		PRIMARY KEY (routine_id, position),
		FOREIGN KEY (routine_id) REFERENCES routines(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS accounts (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_workouts_performed ON workouts(performed_at DESC);
	CREATE INDEX IF NOT EXISTS idx_exercise_sets_workout ON exercise_sets(workout_id);
	CREATE INDEX IF NOT EXISTS idx_exercise_sets_exercise ON exercise_sets(exercise_id);
	`

	_, err := d.db.Exec(schema)
	return err
}
