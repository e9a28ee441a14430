// ABOUTME: MarkdownStore: file-based storage with one markdown file per record.
// ABOUTME: Workouts, routines and accounts live under the data dir as YAML-frontmatter files.

package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/elevate/internal/models"
	"gopkg.in/yaml.v3"
)

// MarkdownStore provides file-based storage for elevate data using markdown files.
type MarkdownStore struct {
	dataDir string
}

// Compile-time check that MarkdownStore implements Repository.
var _ Repository = (*MarkdownStore)(nil)

// NewMarkdownStore creates a new markdown-backed store rooted at dataDir.
func NewMarkdownStore(dataDir string) (*MarkdownStore, error) {
	if err := os.MkdirAll(dataDir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &MarkdownStore{dataDir: dataDir}, nil
}

// Close releases resources. For MarkdownStore this is a no-op.
func (s *MarkdownStore) Close() error {
	return nil
}

func (s *MarkdownStore) workoutsDir() string { return filepath.Join(s.dataDir, "workouts") }
func (s *MarkdownStore) routinesDir() string { return filepath.Join(s.dataDir, "routines") }
func (s *MarkdownStore) accountsDir() string { return filepath.Join(s.dataDir, "accounts") }

// workoutFilePath returns the path for a workout file.
// Format: workouts/YYYY/MM/YYYY-MM-DD-<name>-<id_prefix>.md.
func (s *MarkdownStore) workoutFilePath(w *models.Workout) string {
	date := w.Date.UTC()
	return filepath.Join(s.workoutsDir(), date.Format("2006"), date.Format("01"),
		fmt.Sprintf("%s-%s-%s.md", date.Format("2006-01-02"), slugify(w.Name), models.ShortID(w.ID)))
}

// routineFilePath returns routines/<name>-<id_prefix>.md.
func (s *MarkdownStore) routineFilePath(r *models.Routine) string {
	return filepath.Join(s.routinesDir(),
		fmt.Sprintf("%s-%s.md", slugify(r.Name), models.ShortID(r.ID)))
}

// accountFilePath returns accounts/<id_prefix>.md.
func (s *MarkdownStore) accountFilePath(a *models.Account) string {
	return filepath.Join(s.accountsDir(), models.ShortID(a.ID)+".md")
}

// workoutFrontmatter holds the YAML frontmatter of a workout file.
// The markdown body carries the workout notes.
type workoutFrontmatter struct {
	ID              string                   `yaml:"id"`
	Name            string                   `yaml:"name"`
	Date            string                   `yaml:"date"`
	DurationSeconds int                      `yaml:"duration_seconds"`
	Completed       bool                     `yaml:"completed"`
	ExerciseSets    []exerciseSetFrontmatter `yaml:"exercise_sets,omitempty"`
}

type exerciseSetFrontmatter struct {
	ID         string           `yaml:"id"`
	ExerciseID string           `yaml:"exercise_id"`
	Notes      string           `yaml:"notes,omitempty"`
	Sets       []setFrontmatter `yaml:"sets,omitempty"`
}

type setFrontmatter struct {
	ID        string  `yaml:"id"`
	Weight    float64 `yaml:"weight"`
	Reps      int     `yaml:"reps"`
	Completed bool    `yaml:"completed"`
	Date      string  `yaml:"date"`
}

// routineFrontmatter holds a routine; the body carries its description.
type routineFrontmatter struct {
	ID        string                   `yaml:"id"`
	Name      string                   `yaml:"name"`
	CreatedAt string                   `yaml:"created_at"`
	Exercises []models.RoutineExercise `yaml:"exercises"`
}

type accountFrontmatter struct {
	ID           string `yaml:"id"`
	Email        string `yaml:"email"`
	PasswordHash string `yaml:"password_hash"`
	CreatedAt    string `yaml:"created_at"`
}

// workoutToFrontmatter converts a models.Workout to frontmatter.
func workoutToFrontmatter(w *models.Workout) workoutFrontmatter {
	fm := workoutFrontmatter{
		ID:              w.ID,
		Name:            w.Name,
		Date:            formatTime(w.Date),
		DurationSeconds: w.Duration,
		Completed:       w.Completed,
	}
	for _, es := range w.ExerciseSets {
		esf := exerciseSetFrontmatter{ID: es.ID, ExerciseID: es.ExerciseID, Notes: es.Notes}
		for _, set := range es.Sets {
			esf.Sets = append(esf.Sets, setFrontmatter{
				ID:        set.ID,
				Weight:    set.Weight,
				Reps:      set.Reps,
				Completed: set.Completed,
				Date:      formatTime(set.Date),
			})
		}
		fm.ExerciseSets = append(fm.ExerciseSets, esf)
	}
	return fm
}

// workoutFromFrontmatter converts frontmatter to a models.Workout.
func workoutFromFrontmatter(fm *workoutFrontmatter, notes string) (*models.Workout, error) {
	date, err := parseTime(fm.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", fm.Date, err)
	}

	w := &models.Workout{
		ID:           fm.ID,
		Name:         fm.Name,
		Date:         date,
		Duration:     fm.DurationSeconds,
		Completed:    fm.Completed,
		Notes:        notes,
		ExerciseSets: make([]models.ExerciseSet, 0, len(fm.ExerciseSets)),
	}
	for _, esf := range fm.ExerciseSets {
		es := models.ExerciseSet{
			ID:         esf.ID,
			ExerciseID: esf.ExerciseID,
			Notes:      esf.Notes,
			Sets:       make([]models.Set, 0, len(esf.Sets)),
		}
		for _, sf := range esf.Sets {
			setDate, err := parseTime(sf.Date)
			if err != nil {
				return nil, fmt.Errorf("parse set date %q: %w", sf.Date, err)
			}
			es.Sets = append(es.Sets, models.Set{
				ID:        sf.ID,
				Weight:    sf.Weight,
				Reps:      sf.Reps,
				Completed: sf.Completed,
				Date:      setDate,
			})
		}
		w.ExerciseSets = append(w.ExerciseSets, es)
	}
	return w, nil
}

// readFrontmatterFile decodes the YAML header of path into fm and returns
// the trimmed body.
func readFrontmatterFile(path string, fm interface{}) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	yamlStr, body := parseFrontmatter(string(data))
	if yamlStr == "" {
		return "", fmt.Errorf("no frontmatter in %s", path)
	}
	if err := yaml.Unmarshal([]byte(yamlStr), fm); err != nil {
		return "", fmt.Errorf("parse frontmatter in %s: %w", path, err)
	}
	return strings.TrimSpace(body), nil
}

// readWorkoutFile reads a workout from a markdown file.
func readWorkoutFile(path string) (*models.Workout, error) {
	var fm workoutFrontmatter
	notes, err := readFrontmatterFile(path, &fm)
	if err != nil {
		return nil, err
	}
	return workoutFromFrontmatter(&fm, notes)
}

// writeWorkoutFile writes a workout with all its sets to a markdown file.
func (s *MarkdownStore) writeWorkoutFile(w *models.Workout) error {
	fm := workoutToFrontmatter(w)
	content, err := renderFrontmatter(&fm, noteBody(w.Notes))
	if err != nil {
		return fmt.Errorf("render workout file: %w", err)
	}
	return atomicWrite(s.workoutFilePath(w), []byte(content))
}

// walkMarkdown calls fn for every .md file below dir. A missing dir is empty.
func walkMarkdown(dir string, fn func(path string) error) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(path, ".md") {
			return nil
		}
		return fn(path)
	})
}

// walkWorkoutFiles walks all workout markdown files and calls fn for each.
func (s *MarkdownStore) walkWorkoutFiles(fn func(path string, w *models.Workout) error) error {
	return walkMarkdown(s.workoutsDir(), func(path string) error {
		w, err := readWorkoutFile(path)
		if err != nil {
			return fmt.Errorf("read workout file %s: %w", path, err)
		}
		return fn(path, w)
	})
}

// findWorkoutFile finds the file path for a workout by ID or prefix.
func (s *MarkdownStore) findWorkoutFile(idOrPrefix string) (string, *models.Workout, error) {
	full := isFullID(idOrPrefix)

	var foundPath string
	var foundWorkout *models.Workout
	var matches []string

	err := s.walkWorkoutFiles(func(path string, w *models.Workout) error {
		if (full && w.ID == idOrPrefix) || (!full && strings.HasPrefix(w.ID, idOrPrefix)) {
			foundPath = path
			foundWorkout = w
			matches = append(matches, w.ID)
			if full {
				return filepath.SkipAll
			}
		}
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	if _, err := pickMatch(idOrPrefix, matches); err != nil {
		return "", nil, err
	}
	return foundPath, foundWorkout, nil
}

// --- Repository interface methods ---

// CreateWorkout stores a workout as a markdown file.
func (s *MarkdownStore) CreateWorkout(w *models.Workout) error {
	return s.writeWorkoutFile(w)
}

// GetWorkout retrieves a workout by ID or ID prefix.
func (s *MarkdownStore) GetWorkout(idOrPrefix string) (*models.Workout, error) {
	_, w, err := s.findWorkoutFile(idOrPrefix)
	return w, err
}

// ListWorkouts retrieves workouts sorted by date descending (most recent first).
func (s *MarkdownStore) ListWorkouts(limit int) ([]*models.Workout, error) {
	var workouts []*models.Workout

	err := s.walkWorkoutFiles(func(path string, w *models.Workout) error {
		workouts = append(workouts, w)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list workouts: %w", err)
	}

	sort.SliceStable(workouts, func(i, j int) bool {
		return workouts[i].Date.After(workouts[j].Date)
	})

	if limit > 0 && len(workouts) > limit {
		workouts = workouts[:limit]
	}
	return workouts, nil
}

// DeleteWorkout removes a workout file by ID or prefix.
func (s *MarkdownStore) DeleteWorkout(idOrPrefix string) error {
	path, _, err := s.findWorkoutFile(idOrPrefix)
	if err != nil {
		return fmt.Errorf("delete workout: %w", err)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete workout file: %w", err)
	}
	return nil
}

// CreateRoutine stores a user routine as a markdown file.
func (s *MarkdownStore) CreateRoutine(r *models.Routine) error {
	fm := routineFrontmatter{
		ID:        r.ID,
		Name:      r.Name,
		CreatedAt: formatTime(time.Now()),
		Exercises: r.Exercises,
	}
	content, err := renderFrontmatter(&fm, noteBody(r.Description))
	if err != nil {
		return fmt.Errorf("render routine file: %w", err)
	}
	return atomicWrite(s.routineFilePath(r), []byte(content))
}

type routineFile struct {
	path    string
	routine *models.Routine
	created time.Time
}

func (s *MarkdownStore) routineFiles() ([]routineFile, error) {
	var files []routineFile
	err := walkMarkdown(s.routinesDir(), func(path string) error {
		var fm routineFrontmatter
		description, err := readFrontmatterFile(path, &fm)
		if err != nil {
			return fmt.Errorf("read routine file %s: %w", path, err)
		}
		created, err := parseTime(fm.CreatedAt)
		if err != nil {
			return fmt.Errorf("parse created_at %q: %w", fm.CreatedAt, err)
		}
		exercises := fm.Exercises
		if exercises == nil {
			exercises = []models.RoutineExercise{}
		}
		files = append(files, routineFile{
			path: path,
			routine: &models.Routine{
				ID:          fm.ID,
				Name:        fm.Name,
				Description: description,
				Exercises:   exercises,
			},
			created: created,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(files, func(i, j int) bool { return files[i].created.Before(files[j].created) })
	return files, nil
}

// ListRoutines returns user routines, oldest first.
func (s *MarkdownStore) ListRoutines() ([]*models.Routine, error) {
	files, err := s.routineFiles()
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	routines := make([]*models.Routine, 0, len(files))
	for _, f := range files {
		routines = append(routines, f.routine)
	}
	return routines, nil
}

// DeleteRoutine removes a user routine file.
func (s *MarkdownStore) DeleteRoutine(id string) error {
	files, err := s.routineFiles()
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	for _, f := range files {
		if f.routine.ID == id {
			if err := os.Remove(f.path); err != nil {
				return fmt.Errorf("delete routine file: %w", err)
			}
			return nil
		}
	}
	return fmt.Errorf("delete routine: %w: %s", ErrNotFound, id)
}

// CreateAccount stores a local account. The email must be unused.
func (s *MarkdownStore) CreateAccount(a *models.Account) error {
	_, err := s.GetAccount(a.Email)
	if err == nil {
		return fmt.Errorf("create account: %w: %s", ErrExists, a.Email)
	}
	if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("create account: %w", err)
	}

	fm := accountFrontmatter{
		ID:           a.ID,
		Email:        models.NormalizeEmail(a.Email),
		PasswordHash: a.PasswordHash,
		CreatedAt:    formatTime(a.CreatedAt),
	}
	content, err := renderFrontmatter(&fm, "")
	if err != nil {
		return fmt.Errorf("render account file: %w", err)
	}
	return atomicWrite(s.accountFilePath(a), []byte(content))
}

// GetAccount looks up an account by email.
func (s *MarkdownStore) GetAccount(email string) (*models.Account, error) {
	accounts, err := s.ListAccounts()
	if err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	want := models.NormalizeEmail(email)
	for _, a := range accounts {
		if a.Email == want {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, email)
}

// ListAccounts returns every local account ordered by email.
func (s *MarkdownStore) ListAccounts() ([]*models.Account, error) {
	var accounts []*models.Account
	err := walkMarkdown(s.accountsDir(), func(path string) error {
		var fm accountFrontmatter
		if _, err := readFrontmatterFile(path, &fm); err != nil {
			return fmt.Errorf("read account file %s: %w", path, err)
		}
		createdAt, err := parseTime(fm.CreatedAt)
		if err != nil {
			return fmt.Errorf("parse created_at %q: %w", fm.CreatedAt, err)
		}
		accounts = append(accounts, &models.Account{
			ID:           fm.ID,
			Email:        fm.Email,
			PasswordHash: fm.PasswordHash,
			CreatedAt:    createdAt,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].Email < accounts[j].Email })
	return accounts, nil
}

// GetAllData retrieves all data for export.
func (s *MarkdownStore) GetAllData() (*ExportData, error) {
	return collectExport(s)
}

// ImportData imports data from an export format.
func (s *MarkdownStore) ImportData(data *ExportData) error {
	return applyImport(s, data)
}
