// ABOUTME: Active workout session: owns one workout and serialises its mutations.
// ABOUTME: Handles exercise/set edits, notes, finish and discard transitions.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/harperreed/elevate/internal/calc"
	"github.com/harperreed/elevate/internal/models"
	"github.com/harperreed/elevate/internal/notify"
)

var (
	// ErrEmptyWorkout is returned when finishing a workout with no exercises.
	ErrEmptyWorkout = errors.New("cannot finish empty workout")
	// ErrNotActive is returned for mutations after finish or discard.
	ErrNotActive = errors.New("workout is no longer active")
	// ErrSetIndex is returned when a set index is outside the exercise's sets.
	ErrSetIndex = errors.New("set index out of range")
)

// State is the lifecycle state of a session.
type State int

const (
	Active State = iota
	Completed
	Discarded
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Completed:
		return "completed"
	case Discarded:
		return "discarded"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ExerciseLookup resolves exercise IDs to definitions. *catalog.Catalog
// satisfies it.
type ExerciseLookup interface {
	Get(id string) (*models.Exercise, bool)
}

// Confirmer asks the user a blocking yes/no question.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

// Confirm calls f.
func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// DiscardPrompt is the question asked before abandoning a non-empty workout.
const DiscardPrompt = "Are you sure you want to discard this workout?"

// Session is a workout in progress. All methods are safe for concurrent use;
// the duration timer and user actions are serialised by an internal mutex.
type Session struct {
	mu       sync.Mutex
	workout  *models.Workout
	state    State
	notifier notify.Notifier
	lookup   ExerciseLookup
	logger   *log.Logger
	now      func() time.Time
	interval time.Duration

	stopTimer context.CancelFunc
	timerDone chan struct{}
}

// Option configures a Session.
type Option func(*Session)

// WithNotifier sets where user-visible messages go.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Session) { s.notifier = n }
}

// WithExercises sets the lookup used to name exercises in notifications.
func WithExercises(l ExerciseLookup) Option {
	return func(s *Session) { s.lookup = l }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithClock overrides time.Now for set and workout timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithTickInterval overrides the one-second duration tick.
func WithTickInterval(d time.Duration) Option {
	return func(s *Session) { s.interval = d }
}

// New starts an empty workout session.
func New(opts ...Option) *Session {
	s := &Session{
		notifier: notify.Discard,
		logger:   log.New(io.Discard),
		now:      time.Now,
		interval: time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}

	w := models.NewWorkout()
	w.Date = s.now()
	s.workout = w
	s.logger.Debug("session created", "workout", models.ShortID(w.ID))
	return s
}

// NewFromRoutine starts a session pre-populated with the routine's targets:
// one exercise set per target holding SuggestedSets sets of SuggestedReps.
func NewFromRoutine(r models.Routine, opts ...Option) *Session {
	s := New(opts...)
	s.workout.Name = r.Name
	for _, target := range r.Exercises {
		es := models.ExerciseSet{ID: models.NewID(), ExerciseID: target.ExerciseID}
		n := target.SuggestedSets
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			es.Sets = append(es.Sets, s.newSet(0, target.SuggestedReps))
		}
		s.workout.ExerciseSets = append(s.workout.ExerciseSets, es)
	}
	s.logger.Debug("session seeded from routine", "routine", r.ID, "exercises", len(r.Exercises))
	return s
}

func (s *Session) newSet(weight float64, reps int) models.Set {
	return models.Set{
		ID:     models.NewID(),
		Weight: weight,
		Reps:   reps,
		Date:   s.now(),
	}
}

// State reports the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a deep copy of the workout for rendering or saving.
func (s *Session) Snapshot() *models.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workout.Clone()
}

// Duration returns the elapsed seconds counted so far.
func (s *Session) Duration() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workout.Duration
}

// AddExercise appends a new exercise set seeded with one empty set and
// returns its ID.
func (s *Session) AddExercise(exerciseID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active {
		return "", ErrNotActive
	}

	es := models.ExerciseSet{
		ID:         models.NewID(),
		ExerciseID: exerciseID,
		Sets:       []models.Set{s.newSet(0, 0)},
	}
	s.workout.ExerciseSets = append(s.workout.ExerciseSets, es)

	if s.lookup != nil {
		if e, ok := s.lookup.Get(exerciseID); ok {
			s.notifier.Notify("Exercise added",
				fmt.Sprintf("%s has been added to your workout", e.Name), notify.Success)
		}
	}
	s.logger.Debug("exercise added", "exercise", exerciseID, "exercise_set", models.ShortID(es.ID))
	return es.ID, nil
}

// AddSet appends a set to the exercise set, carrying weight and reps forward
// from its last set. An unknown exerciseSetID is a silent no-op reported by
// the false return, so stale references never fail.
func (s *Session) AddSet(exerciseSetID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active {
		return false, ErrNotActive
	}

	es, ok := s.workout.ExerciseSet(exerciseSetID)
	if !ok {
		s.logger.Debug("add set ignored, unknown exercise set", "exercise_set", exerciseSetID)
		return false, nil
	}

	var weight float64
	var reps int
	if n := len(es.Sets); n > 0 {
		weight, reps = es.Sets[n-1].Weight, es.Sets[n-1].Reps
	}
	es.Sets = append(es.Sets, s.newSet(weight, reps))
	return true, nil
}

// UpdateSet replaces the set at index wholesale. An unknown exerciseSetID is
// a no-op; an index outside the sets returns ErrSetIndex.
func (s *Session) UpdateSet(exerciseSetID string, index int, set models.Set) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active {
		return ErrNotActive
	}

	es, ok := s.workout.ExerciseSet(exerciseSetID)
	if !ok {
		return nil
	}
	if index < 0 || index >= len(es.Sets) {
		return fmt.Errorf("%w: %d of %d", ErrSetIndex, index, len(es.Sets))
	}
	es.Sets[index] = set
	return nil
}

// ToggleSetCompletion sets only the completed flag of the set at index.
func (s *Session) ToggleSetCompletion(exerciseSetID string, index int, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active {
		return ErrNotActive
	}

	es, ok := s.workout.ExerciseSet(exerciseSetID)
	if !ok {
		return nil
	}
	if index < 0 || index >= len(es.Sets) {
		return fmt.Errorf("%w: %d of %d", ErrSetIndex, index, len(es.Sets))
	}
	es.Sets[index].Completed = completed
	return nil
}

// SetNotes replaces the notes of an exercise set. Unknown IDs are ignored.
func (s *Session) SetNotes(exerciseSetID, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active {
		return ErrNotActive
	}

	if es, ok := s.workout.ExerciseSet(exerciseSetID); ok {
		es.Notes = text
	}
	return nil
}

// SetWorkoutNotes replaces the notes of the workout itself.
func (s *Session) SetWorkoutNotes(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active {
		return ErrNotActive
	}
	s.workout.Notes = text
	return nil
}

// Rename sets the workout name. Blank names keep the current one.
func (s *Session) Rename(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != Active {
		return ErrNotActive
	}
	if name = strings.TrimSpace(name); name != "" {
		s.workout.Name = name
	}
	return nil
}

// Previous returns the set performed before the one at index in the same
// exercise set.
func (s *Session) Previous(exerciseSetID string, index int) (models.Set, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	es, ok := s.workout.ExerciseSet(exerciseSetID)
	if !ok || index < 1 || index > len(es.Sets) {
		return models.Set{}, false
	}
	return es.Sets[index-1], true
}

// Tick adds one second to the duration while the session is active.
func (s *Session) Tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Active {
		s.workout.Duration++
	}
}

// Finish completes the workout and freezes its duration. A workout without
// exercises is refused with ErrEmptyWorkout and stays active.
func (s *Session) Finish() (*models.Workout, error) {
	s.mu.Lock()
	if s.state != Active {
		s.mu.Unlock()
		return nil, ErrNotActive
	}
	if len(s.workout.ExerciseSets) == 0 {
		s.mu.Unlock()
		s.notifier.Notify("Cannot finish empty workout",
			"Add at least one exercise before finishing", notify.Destructive)
		return nil, ErrEmptyWorkout
	}

	s.state = Completed
	s.workout.Completed = true
	done := s.workout.Clone()
	stop, wait := s.detachTimer()
	s.mu.Unlock()

	release(stop, wait)
	s.notifier.Notify("Workout completed",
		fmt.Sprintf("%s finished in %s", done.Name, calc.FormatDuration(done.Duration)), notify.Success)
	s.logger.Info("workout finished", "workout", models.ShortID(done.ID),
		"duration", done.Duration, "volume", calc.TotalVolume(done))
	return done, nil
}

// Discard abandons the workout. A workout with exercises is only dropped
// after the confirmer agrees; an empty one is dropped immediately. Returns
// whether the workout was discarded.
func (s *Session) Discard(ctx context.Context, c Confirmer) (bool, error) {
	s.mu.Lock()
	if s.state != Active {
		s.mu.Unlock()
		return false, ErrNotActive
	}
	needsConfirm := len(s.workout.ExerciseSets) > 0
	s.mu.Unlock()

	if needsConfirm {
		if c == nil {
			return false, nil
		}
		ok, err := c.Confirm(ctx, DiscardPrompt)
		if err != nil {
			return false, fmt.Errorf("confirm discard: %w", err)
		}
		if !ok {
			return false, nil
		}
	}

	s.mu.Lock()
	if s.state != Active {
		s.mu.Unlock()
		return false, ErrNotActive
	}
	s.state = Discarded
	stop, wait := s.detachTimer()
	s.mu.Unlock()

	release(stop, wait)
	s.logger.Debug("workout discarded", "workout", models.ShortID(s.workout.ID))
	return true, nil
}

// Close releases the timer. An active session is abandoned as if discarded
// without confirmation. Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.state == Active {
		s.state = Discarded
	}
	stop, wait := s.detachTimer()
	s.mu.Unlock()

	release(stop, wait)
	return nil
}
